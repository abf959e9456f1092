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

type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository returns a Postgres-backed implementation of HabitRepository.
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{pool: pool}
}

const habitColumns = `id, user_id, title, description, frequency, completed_dates, is_shutdown, last_reset_week, sheet_url, created_at, updated_at`

func (r *habitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`
	return scanHabit(r.pool.QueryRow(ctx, query, id))
}

func (r *habitRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *habit)
	}
	return habits, rows.Err()
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	if habit == nil {
		return nil, domain.ErrInvalidPayload
	}
	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO habits (id, user_id, title, description, frequency, completed_dates, is_shutdown, last_reset_week, sheet_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.OwnerID,
		habit.Title,
		habit.Description,
		string(habit.Frequency),
		marshalJSON(habit.CompletedDates),
		habit.IsShutdown,
		habit.LastResetWeek,
		habit.SheetURL,
	).Scan(&habit.CreatedAt, &habit.UpdatedAt); err != nil {
		return nil, err
	}

	return habit, nil
}

func (r *habitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if habit == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE habits
	SET title = $2,
		description = $3,
		frequency = $4,
		completed_dates = $5,
		is_shutdown = $6,
		last_reset_week = $7,
		sheet_url = $8,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.Title,
		habit.Description,
		string(habit.Frequency),
		marshalJSON(habit.CompletedDates),
		habit.IsShutdown,
		habit.LastResetWeek,
		habit.SheetURL,
	).Scan(&habit.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return err
	}

	return nil
}

func (r *habitRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func scanHabit(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Habit, error) {
	var habit domain.Habit
	var (
		frequency string
		dates     []byte
	)

	if err := row.Scan(
		&habit.ID,
		&habit.OwnerID,
		&habit.Title,
		&habit.Description,
		&frequency,
		&dates,
		&habit.IsShutdown,
		&habit.LastResetWeek,
		&habit.SheetURL,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, err
	}

	habit.Frequency = domain.Frequency(frequency)
	habit.CompletedDates = []string{}
	unmarshalJSON(dates, &habit.CompletedDates)

	return &habit, nil
}
