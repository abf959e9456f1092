// Package night implements the nightly planning/journal workflow: one
// upserted entry per (owner, date) carrying top tasks, notes, a structured
// reflection block, shutdown-habit checks, and appended journal notes.
package night

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

// EntryView is a night entry with its reflection parsed for the client.
type EntryView struct {
	domain.NightEntry
	ReflectionParsed *Reflection `json:"reflection_parsed,omitempty"`
}

type UseCase struct {
	entries repository.NightEntryRepository
	logger  *zap.Logger
}

func New(entries repository.NightEntryRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{entries: entries, logger: logger}
}

// Get returns the entry for the date (today when empty), or nil when none
// exists yet.
func (uc *UseCase) Get(ctx context.Context, ownerID, date string) (*EntryView, error) {
	if date == "" {
		date = domain.DateString(time.Now())
	}
	entry, err := uc.entries.GetByDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return withParsedReflection(entry), nil
}

// SaveInput is the upserted planning payload. FreeformJournal, when
// non-blank, is appended to the entry's journal history rather than
// replacing anything.
type SaveInput struct {
	Date            string
	TopTasks        []string
	Notes           string
	Reflection      string
	ShutdownHabits  []domain.ShutdownHabit
	FreeformJournal string
}

// Save upserts the (owner, date) entry. TopTasks is capped at
// domain.MaxTopTasks; the refreshed document is returned.
func (uc *UseCase) Save(ctx context.Context, ownerID string, in SaveInput) (*EntryView, error) {
	date := in.Date
	if date == "" {
		date = domain.DateString(time.Now())
	}

	topTasks := in.TopTasks
	if topTasks == nil {
		topTasks = []string{}
	}
	if len(topTasks) > domain.MaxTopTasks {
		topTasks = topTasks[:domain.MaxTopTasks]
	}
	shutdown := in.ShutdownHabits
	if shutdown == nil {
		shutdown = []domain.ShutdownHabit{}
	}

	entry, err := uc.entries.Upsert(ctx, &domain.NightEntry{
		OwnerID:        ownerID,
		Date:           date,
		TopTasks:       topTasks,
		Notes:          in.Notes,
		Reflection:     in.Reflection,
		ShutdownHabits: shutdown,
	})
	if err != nil {
		return nil, err
	}

	if journal := strings.TrimSpace(in.FreeformJournal); journal != "" {
		note := domain.HistoryNote{
			ID:        uuid.NewString(),
			Date:      date,
			Text:      journal,
			CreatedAt: time.Now(),
		}
		if err := uc.entries.AppendHistoryNote(ctx, ownerID, date, note); err != nil {
			return nil, err
		}
		entry, err = uc.entries.GetByDate(ctx, ownerID, date)
		if err != nil {
			return nil, err
		}
	}

	uc.logger.Info("night entry saved", zap.String("date", date))
	return withParsedReflection(entry), nil
}

// History returns all of the owner's entries, most recent date first.
func (uc *UseCase) History(ctx context.Context, ownerID string) ([]domain.NightEntry, error) {
	entries, err := uc.entries.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.NightEntry{}
	}
	return entries, nil
}

// JournalHistory flattens every entry's journal notes into one list, newest
// first.
func (uc *UseCase) JournalHistory(ctx context.Context, ownerID string) ([]domain.JournalNote, error) {
	entries, err := uc.entries.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	notes := []domain.JournalNote{}
	for _, entry := range entries {
		for _, note := range entry.HistoryNotes {
			date := note.Date
			if date == "" {
				date = entry.Date
			}
			notes = append(notes, domain.JournalNote{
				NoteID:    note.ID,
				EntryDate: entry.Date,
				Date:      date,
				Text:      note.Text,
				CreatedAt: note.CreatedAt,
			})
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

// DeleteJournalNote removes one journal note by id.
func (uc *UseCase) DeleteJournalNote(ctx context.Context, ownerID, noteID string) error {
	if noteID == "" {
		return domain.NewError(domain.ErrCodeInvalid, "noteId required")
	}
	return uc.entries.DeleteHistoryNote(ctx, ownerID, noteID)
}

func withParsedReflection(entry *domain.NightEntry) *EntryView {
	view := &EntryView{NightEntry: *entry}
	if entry.Reflection != "" {
		view.ReflectionParsed = ParseReflection(entry.Reflection)
	}
	return view
}
