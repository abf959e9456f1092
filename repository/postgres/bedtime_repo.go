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

type bedtimeRepository struct {
	pool *pgxpool.Pool
}

// NewBedtimeRepository returns a Postgres-backed implementation of BedtimeRepository.
func NewBedtimeRepository(pool *pgxpool.Pool) repository.BedtimeRepository {
	return &bedtimeRepository{pool: pool}
}

const planColumns = `id, user_id, title, description, plan_time, created_at, updated_at`

func (r *bedtimeRepository) GetByID(ctx context.Context, id string) (*domain.BedtimePlan, error) {
	query := `SELECT ` + planColumns + ` FROM bedtime_plans WHERE id = $1`
	return scanPlan(r.pool.QueryRow(ctx, query, id))
}

func (r *bedtimeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.BedtimePlan, error) {
	query := `SELECT ` + planColumns + ` FROM bedtime_plans WHERE user_id = $1 ORDER BY plan_time ASC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.BedtimePlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

func (r *bedtimeRepository) Create(ctx context.Context, plan *domain.BedtimePlan) (*domain.BedtimePlan, error) {
	if plan == nil {
		return nil, domain.ErrInvalidPayload
	}
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO bedtime_plans (id, user_id, title, description, plan_time)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		plan.ID,
		plan.OwnerID,
		plan.Title,
		plan.Description,
		plan.Time,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt); err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *bedtimeRepository) Update(ctx context.Context, plan *domain.BedtimePlan) error {
	if plan == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE bedtime_plans
	SET title = $2, description = $3, plan_time = $4, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		plan.ID,
		plan.Title,
		plan.Description,
		plan.Time,
	).Scan(&plan.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPlanNotFound
		}
		return err
	}

	return nil
}

func (r *bedtimeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bedtime_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func scanPlan(row interface {
	Scan(dest ...interface{}) error
}) (*domain.BedtimePlan, error) {
	var plan domain.BedtimePlan

	if err := row.Scan(
		&plan.ID,
		&plan.OwnerID,
		&plan.Title,
		&plan.Description,
		&plan.Time,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	return &plan, nil
}
