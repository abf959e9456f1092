package repository

import (
	"context"

	"github.com/noctura/backend/domain"
)

type BedtimeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BedtimePlan, error)
	// ListByOwner returns plans ordered by time of day ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.BedtimePlan, error)
	Create(ctx context.Context, plan *domain.BedtimePlan) (*domain.BedtimePlan, error)
	Update(ctx context.Context, plan *domain.BedtimePlan) error
	Delete(ctx context.Context, id string) error
}
