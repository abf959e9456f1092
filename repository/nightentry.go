package repository

import (
	"context"

	"github.com/noctura/backend/domain"
)

// NightEntryRepository stores one entry per (owner, date).
type NightEntryRepository interface {
	// GetByDate returns nil, nil when no entry exists for the date.
	GetByDate(ctx context.Context, ownerID, date string) (*domain.NightEntry, error)
	// Upsert creates or replaces the entry's planning fields, leaving
	// HistoryNotes untouched, and returns the fresh document.
	Upsert(ctx context.Context, entry *domain.NightEntry) (*domain.NightEntry, error)
	// AppendHistoryNote adds a journal note to the (owner, date) entry.
	AppendHistoryNote(ctx context.Context, ownerID, date string, note domain.HistoryNote) error
	// ListByOwner returns all entries, most recent date first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.NightEntry, error)
	// DeleteHistoryNote removes a note by id across the owner's entries.
	DeleteHistoryNote(ctx context.Context, ownerID, noteID string) error
}
