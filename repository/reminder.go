package repository

import (
	"context"

	"github.com/noctura/backend/domain"
)

type ReminderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	// ListByDate returns the owner's reminders on one YYYY-MM-DD date.
	ListByDate(ctx context.Context, ownerID, date string) ([]domain.Reminder, error)
	// ListByRange returns the owner's reminders with start <= date <= end.
	ListByRange(ctx context.Context, ownerID, start, end string) ([]domain.Reminder, error)
	Create(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error)
	Update(ctx context.Context, reminder *domain.Reminder) error
	Delete(ctx context.Context, id string) error
}
