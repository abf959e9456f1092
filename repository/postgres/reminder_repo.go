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

type reminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository returns a Postgres-backed implementation of ReminderRepository.
func NewReminderRepository(pool *pgxpool.Pool) repository.ReminderRepository {
	return &reminderRepository{pool: pool}
}

const reminderColumns = `id, user_id, title, description, remind_date, remind_time, created_at`

func (r *reminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`
	return scanReminder(r.pool.QueryRow(ctx, query, id))
}

func (r *reminderRepository) ListByDate(ctx context.Context, ownerID, date string) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = $1 AND remind_date = $2 ORDER BY remind_time NULLS LAST, created_at`
	rows, err := r.pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

func (r *reminderRepository) ListByRange(ctx context.Context, ownerID, start, end string) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = $1 AND remind_date BETWEEN $2 AND $3 ORDER BY remind_date, remind_time NULLS LAST`
	rows, err := r.pool.Query(ctx, query, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error) {
	if reminder == nil {
		return nil, domain.ErrInvalidPayload
	}
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO reminders (id, user_id, title, description, remind_date, remind_time)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`

	var remindTime interface{}
	if reminder.Time != "" {
		remindTime = reminder.Time
	}

	if err := r.pool.QueryRow(ctx, query,
		reminder.ID,
		reminder.OwnerID,
		reminder.Title,
		reminder.Description,
		reminder.Date,
		remindTime,
	).Scan(&reminder.CreatedAt); err != nil {
		return nil, err
	}

	return reminder, nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE reminders
	SET title = $2, description = $3, remind_date = $4, remind_time = $5
	WHERE id = $1
	`

	var remindTime interface{}
	if reminder.Time != "" {
		remindTime = reminder.Time
	}

	tag, err := r.pool.Exec(ctx, query,
		reminder.ID,
		reminder.Title,
		reminder.Description,
		reminder.Date,
		remindTime,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func scanReminder(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Reminder, error) {
	var reminder domain.Reminder
	var remindTime *string

	if err := row.Scan(
		&reminder.ID,
		&reminder.OwnerID,
		&reminder.Title,
		&reminder.Description,
		&reminder.Date,
		&remindTime,
		&reminder.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}

	if remindTime != nil {
		reminder.Time = *remindTime
	}
	return &reminder, nil
}

func collectReminders(rows pgx.Rows) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}
	return reminders, rows.Err()
}
