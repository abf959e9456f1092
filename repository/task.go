package repository

import (
	"context"

	"github.com/noctura/backend/domain"
)

// TaskRepository is a document collection of board records. One
// implementation instance is bound per resource kind (todo, kanban); the
// bound table and owner column are configuration, not code.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// GetByIDs returns only the records it finds; callers detect missing
	// ids by comparing lengths.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Task, error)
	// ListByOwner returns all records owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// UpdateStatuses applies every status change in one transaction.
	UpdateStatuses(ctx context.Context, changes map[string]domain.Status) error
	Delete(ctx context.Context, id string) error
}
