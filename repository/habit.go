package repository

import (
	"context"

	"github.com/noctura/backend/domain"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Habit, error)
	Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error)
	Update(ctx context.Context, habit *domain.Habit) error
	Delete(ctx context.Context, id string) error
}
