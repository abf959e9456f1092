package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

type nightEntryRepository struct {
	pool *pgxpool.Pool
}

// NewNightEntryRepository returns a Postgres-backed implementation of
// NightEntryRepository. The (user_id, entry_date) pair is unique; Upsert
// relies on it.
func NewNightEntryRepository(pool *pgxpool.Pool) repository.NightEntryRepository {
	return &nightEntryRepository{pool: pool}
}

const entryColumns = `id, user_id, entry_date, top_tasks, notes, reflection, shutdown_habits, history_notes, created_at, updated_at`

func (r *nightEntryRepository) GetByDate(ctx context.Context, ownerID, date string) (*domain.NightEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM night_entries WHERE user_id = $1 AND entry_date = $2`
	entry, err := scanEntry(r.pool.QueryRow(ctx, query, ownerID, date))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (r *nightEntryRepository) Upsert(ctx context.Context, entry *domain.NightEntry) (*domain.NightEntry, error) {
	if entry == nil {
		return nil, domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
	INSERT INTO night_entries (id, user_id, entry_date, top_tasks, notes, reflection, shutdown_habits, history_notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, '[]')
	ON CONFLICT (user_id, entry_date) DO UPDATE
	SET top_tasks = EXCLUDED.top_tasks,
		notes = EXCLUDED.notes,
		reflection = EXCLUDED.reflection,
		shutdown_habits = EXCLUDED.shutdown_habits,
		updated_at = NOW()
	RETURNING ` + entryColumns

	return scanEntry(r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.OwnerID,
		entry.Date,
		marshalJSON(entry.TopTasks),
		entry.Notes,
		entry.Reflection,
		marshalJSON(entry.ShutdownHabits),
	))
}

func (r *nightEntryRepository) AppendHistoryNote(ctx context.Context, ownerID, date string, note domain.HistoryNote) error {
	const query = `
	UPDATE night_entries
	SET history_notes = history_notes || $3::jsonb,
		updated_at = NOW()
	WHERE user_id = $1 AND entry_date = $2
	`
	tag, err := r.pool.Exec(ctx, query, ownerID, date, marshalJSON([]domain.HistoryNote{note}))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *nightEntryRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.NightEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM night_entries WHERE user_id = $1 ORDER BY entry_date DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.NightEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *nightEntryRepository) DeleteHistoryNote(ctx context.Context, ownerID, noteID string) error {
	// Filters the note out of whichever entry holds it.
	const query = `
	UPDATE night_entries
	SET history_notes = (
		SELECT COALESCE(jsonb_agg(n), '[]'::jsonb)
		FROM jsonb_array_elements(history_notes) AS n
		WHERE n->>'id' <> $2
	),
	updated_at = NOW()
	WHERE user_id = $1 AND history_notes @> jsonb_build_array(jsonb_build_object('id', $2::text))
	`
	tag, err := r.pool.Exec(ctx, query, ownerID, noteID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func scanEntry(row interface {
	Scan(dest ...interface{}) error
}) (*domain.NightEntry, error) {
	var entry domain.NightEntry
	var (
		topTasks []byte
		shutdown []byte
		history  []byte
	)

	if err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.Date,
		&topTasks,
		&entry.Notes,
		&entry.Reflection,
		&shutdown,
		&history,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	entry.TopTasks = []string{}
	entry.ShutdownHabits = []domain.ShutdownHabit{}
	unmarshalJSON(topTasks, &entry.TopTasks)
	unmarshalJSON(shutdown, &entry.ShutdownHabits)
	unmarshalJSON(history, &entry.HistoryNotes)

	return &entry, nil
}
