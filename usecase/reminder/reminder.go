package reminder

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// UseCase manages date-keyed reminders backing the calendar overview.
type UseCase struct {
	reminders repository.ReminderRepository
	logger    *zap.Logger
}

func New(reminders repository.ReminderRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{reminders: reminders, logger: logger}
}

func (uc *UseCase) ListByDate(ctx context.Context, ownerID, date string) ([]domain.Reminder, error) {
	if !dateRe.MatchString(date) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "date must be YYYY-MM-DD")
	}
	reminders, err := uc.reminders.ListByDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []domain.Reminder{}
	}
	return reminders, nil
}

func (uc *UseCase) ListByRange(ctx context.Context, ownerID, start, end string) ([]domain.Reminder, error) {
	if !dateRe.MatchString(start) || !dateRe.MatchString(end) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "start and end must be YYYY-MM-DD")
	}
	reminders, err := uc.reminders.ListByRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []domain.Reminder{}
	}
	return reminders, nil
}

// CreateInput carries the creatable reminder fields.
type CreateInput struct {
	Title       string
	Description string
	Date        string
	Time        string
}

func (uc *UseCase) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if !dateRe.MatchString(in.Date) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "date must be YYYY-MM-DD")
	}
	if in.Time != "" && !timeRe.MatchString(in.Time) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "time must be HH:MM")
	}

	return uc.reminders.Create(ctx, &domain.Reminder{
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		Time:        in.Time,
	})
}

// Patch is a sparse reminder update.
type Patch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
}

func (uc *UseCase) Update(ctx context.Context, ownerID, id string, patch Patch) (*domain.Reminder, error) {
	reminder, err := uc.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title cannot be empty")
		}
		reminder.Title = title
	}
	if patch.Description != nil {
		reminder.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Date != nil {
		if !dateRe.MatchString(*patch.Date) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "date must be YYYY-MM-DD")
		}
		reminder.Date = *patch.Date
	}
	if patch.Time != nil {
		if *patch.Time != "" && !timeRe.MatchString(*patch.Time) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "time must be HH:MM")
		}
		reminder.Time = *patch.Time
	}

	if err := uc.reminders.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return uc.reminders.Delete(ctx, id)
}

func (uc *UseCase) loadOwned(ctx context.Context, ownerID, id string) (*domain.Reminder, error) {
	reminder, err := uc.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return reminder, nil
}
