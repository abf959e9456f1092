package night

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noctura/backend/domain"
)

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries map[string]domain.NightEntry // keyed by ownerID+"/"+date
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]domain.NightEntry)}
}

func entryKey(ownerID, date string) string { return ownerID + "/" + date }

func (r *fakeEntryRepo) GetByDate(_ context.Context, ownerID, date string) (*domain.NightEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryKey(ownerID, date)]
	if !ok {
		return nil, nil
	}
	clone := e
	return &clone, nil
}

func (r *fakeEntryRepo) Upsert(_ context.Context, entry *domain.NightEntry) (*domain.NightEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entryKey(entry.OwnerID, entry.Date)
	existing, ok := r.entries[key]
	if !ok {
		entry.ID = uuid.NewString()
		entry.CreatedAt = time.Now()
	} else {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		entry.HistoryNotes = existing.HistoryNotes
	}
	entry.UpdatedAt = time.Now()
	r.entries[key] = *entry
	clone := *entry
	return &clone, nil
}

func (r *fakeEntryRepo) AppendHistoryNote(_ context.Context, ownerID, date string, note domain.HistoryNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entryKey(ownerID, date)
	e, ok := r.entries[key]
	if !ok {
		return domain.ErrEntryNotFound
	}
	e.HistoryNotes = append(e.HistoryNotes, note)
	r.entries[key] = e
	return nil
}

func (r *fakeEntryRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.NightEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.NightEntry
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) DeleteHistoryNote(_ context.Context, ownerID, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.entries {
		if e.OwnerID != ownerID {
			continue
		}
		for i, note := range e.HistoryNotes {
			if note.ID == noteID {
				e.HistoryNotes = append(e.HistoryNotes[:i], e.HistoryNotes[i+1:]...)
				r.entries[key] = e
				return nil
			}
		}
	}
	return domain.ErrNoteNotFound
}

func TestGetMissingEntryReturnsNil(t *testing.T) {
	uc := New(newFakeEntryRepo(), nil)

	view, err := uc.Get(context.Background(), "owner", "2026-08-27")
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestSaveCapsTopTasks(t *testing.T) {
	uc := New(newFakeEntryRepo(), nil)

	view, err := uc.Save(context.Background(), "owner", SaveInput{
		Date:     "2026-08-27",
		TopTasks: []string{"a", "b", "c", "d", "e"},
	})
	require.NoError(t, err)
	assert.Len(t, view.TopTasks, domain.MaxTopTasks)
	assert.Equal(t, []string{"a", "b", "c"}, view.TopTasks)
}

func TestSaveUpsertsSameDate(t *testing.T) {
	uc := New(newFakeEntryRepo(), nil)

	first, err := uc.Save(context.Background(), "owner", SaveInput{Date: "2026-08-27", Notes: "v1"})
	require.NoError(t, err)
	second, err := uc.Save(context.Background(), "owner", SaveInput{Date: "2026-08-27", Notes: "v2"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "v2", second.Notes)

	history, err := uc.History(context.Background(), "owner")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSaveAppendsFreeformJournal(t *testing.T) {
	uc := New(newFakeEntryRepo(), nil)

	_, err := uc.Save(context.Background(), "owner", SaveInput{
		Date:            "2026-08-27",
		FreeformJournal: "long day",
	})
	require.NoError(t, err)
	view, err := uc.Save(context.Background(), "owner", SaveInput{
		Date:            "2026-08-27",
		FreeformJournal: "better evening",
	})
	require.NoError(t, err)
	require.Len(t, view.HistoryNotes, 2)

	// Blank journals must not append.
	view, err = uc.Save(context.Background(), "owner", SaveInput{
		Date:            "2026-08-27",
		FreeformJournal: "   ",
	})
	require.NoError(t, err)
	assert.Len(t, view.HistoryNotes, 2)
}

func TestSaveParsesReflection(t *testing.T) {
	uc := New(newFakeEntryRepo(), nil)

	view, err := uc.Save(context.Background(), "owner", SaveInput{
		Date:       "2026-08-27",
		Reflection: "Learned: patience\nGrateful: tea\nMood: 4",
	})
	require.NoError(t, err)
	require.NotNil(t, view.ReflectionParsed)
	assert.Equal(t, "patience", view.ReflectionParsed.Learned)
	assert.Equal(t, "4", view.ReflectionParsed.Mood)
}

func TestJournalHistoryFlattensNewestFirst(t *testing.T) {
	repo := newFakeEntryRepo()
	uc := New(repo, nil)

	_, err := uc.Save(context.Background(), "owner", SaveInput{Date: "2026-08-26", FreeformJournal: "older"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = uc.Save(context.Background(), "owner", SaveInput{Date: "2026-08-27", FreeformJournal: "newer"})
	require.NoError(t, err)

	notes, err := uc.JournalHistory(context.Background(), "owner")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "newer", notes[0].Text)
	assert.Equal(t, "older", notes[1].Text)
}

func TestDeleteJournalNote(t *testing.T) {
	uc := New(newFakeEntryRepo(), nil)

	view, err := uc.Save(context.Background(), "owner", SaveInput{Date: "2026-08-27", FreeformJournal: "note"})
	require.NoError(t, err)
	require.Len(t, view.HistoryNotes, 1)

	require.NoError(t, uc.DeleteJournalNote(context.Background(), "owner", view.HistoryNotes[0].ID))
	err = uc.DeleteJournalNote(context.Background(), "owner", view.HistoryNotes[0].ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
