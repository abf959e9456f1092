package habit

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

// UseCase manages owner-scoped habits and their per-date completion marks.
type UseCase struct {
	habits repository.HabitRepository
	logger *zap.Logger
}

func New(habits repository.HabitRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{habits: habits, logger: logger}
}

func (uc *UseCase) List(ctx context.Context, ownerID string) ([]domain.Habit, error) {
	habits, err := uc.habits.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []domain.Habit{}
	}
	return habits, nil
}

// CreateInput carries the creatable habit fields.
type CreateInput struct {
	Title       string
	Description string
	Frequency   domain.Frequency
	SheetURL    string
	IsShutdown  bool
}

func (uc *UseCase) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.Habit, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	frequency := in.Frequency
	if frequency == "" {
		frequency = domain.FrequencyDaily
	}
	if !domain.ValidFrequency(frequency) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid frequency")
	}

	habit := &domain.Habit{
		OwnerID:        ownerID,
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		Frequency:      frequency,
		SheetURL:       strings.TrimSpace(in.SheetURL),
		IsShutdown:     in.IsShutdown,
		CompletedDates: []string{},
	}
	created, err := uc.habits.Create(ctx, habit)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("habit created", zap.String("habit_id", created.ID))
	return created, nil
}

// Patch is a sparse habit update.
type Patch struct {
	Title       *string
	Description *string
	Frequency   *domain.Frequency
	SheetURL    *string
	IsShutdown  *bool
}

func (uc *UseCase) Update(ctx context.Context, ownerID, id string, patch Patch) (*domain.Habit, error) {
	habit, err := uc.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title cannot be empty")
		}
		habit.Title = title
	}
	if patch.Description != nil {
		habit.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Frequency != nil {
		if !domain.ValidFrequency(*patch.Frequency) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid frequency")
		}
		habit.Frequency = *patch.Frequency
	}
	if patch.SheetURL != nil {
		habit.SheetURL = strings.TrimSpace(*patch.SheetURL)
	}
	if patch.IsShutdown != nil {
		habit.IsShutdown = *patch.IsShutdown
	}

	if err := uc.habits.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return uc.habits.Delete(ctx, id)
}

// MarkCompleted records a completion for the given YYYY-MM-DD date (today
// when empty). Marking an already-marked date is a no-op.
func (uc *UseCase) MarkCompleted(ctx context.Context, ownerID, id, date string) (*domain.Habit, error) {
	habit, err := uc.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = domain.DateString(time.Now())
	}

	if !habit.IsCompletedOn(date) {
		habit.CompletedDates = append(habit.CompletedDates, date)
		if err := uc.habits.Update(ctx, habit); err != nil {
			return nil, err
		}
	}
	return habit, nil
}

// UnmarkCompleted removes a completion mark for the given date.
func (uc *UseCase) UnmarkCompleted(ctx context.Context, ownerID, id, date string) (*domain.Habit, error) {
	habit, err := uc.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = domain.DateString(time.Now())
	}

	kept := habit.CompletedDates[:0]
	changed := false
	for _, d := range habit.CompletedDates {
		if d == date {
			changed = true
			continue
		}
		kept = append(kept, d)
	}
	if changed {
		habit.CompletedDates = kept
		if err := uc.habits.Update(ctx, habit); err != nil {
			return nil, err
		}
	}
	return habit, nil
}

func (uc *UseCase) loadOwned(ctx context.Context, ownerID, id string) (*domain.Habit, error) {
	habit, err := uc.habits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return habit, nil
}
