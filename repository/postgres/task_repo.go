package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

// TaskTable binds a task repository instance to one board collection. Both
// board kinds share the row shape; table name and owner column are the only
// differences.
type TaskTable struct {
	Name        string
	OwnerColumn string
}

// TodoTable and KanbanTable are the two collections backing the board engine.
var (
	TodoTable   = TaskTable{Name: "tasks", OwnerColumn: "user_id"}
	KanbanTable = TaskTable{Name: "kanban_tasks", OwnerColumn: "owner_id"}
)

type taskRepository struct {
	pool  *pgxpool.Pool
	table TaskTable
}

// NewTaskRepository returns a Postgres-backed TaskRepository bound to the
// given table.
func NewTaskRepository(pool *pgxpool.Pool, table TaskTable) repository.TaskRepository {
	return &taskRepository{pool: pool, table: table}
}

func (r *taskRepository) columns() string {
	return fmt.Sprintf("id, %s, title, description, status, priority, due_date, comments, created_at, updated_at", r.table.OwnerColumn)
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, r.columns(), r.table.Name)
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1)`, r.columns(), r.table.Name)
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY created_at DESC`,
		r.columns(), r.table.Name, r.table.OwnerColumn)
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
	INSERT INTO %s (id, %s, title, description, status, priority, due_date, comments)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`, r.table.Name, r.table.OwnerColumn)

	var due interface{}
	if task.DueDate != nil {
		due = *task.DueDate
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		due,
		marshalJSON(task.Comments),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	query := fmt.Sprintf(`
	UPDATE %s
	SET title = $2,
		description = $3,
		status = $4,
		priority = $5,
		due_date = $6,
		comments = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`, r.table.Name)

	var due interface{}
	if task.DueDate != nil {
		due = *task.DueDate
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		due,
		marshalJSON(task.Comments),
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) UpdateStatuses(ctx context.Context, changes map[string]domain.Status) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`UPDATE %s SET status = $2, updated_at = NOW() WHERE id = $1`, r.table.Name)
	for id, status := range changes {
		tag, err := tx.Exec(ctx, query, id, string(status))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrTaskNotFound
		}
	}

	return tx.Commit(ctx)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table.Name)
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		status   string
		priority string
		due      *time.Time
		comments []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&due,
		&comments,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = domain.Status(status)
	task.Priority = domain.Priority(priority)
	task.DueDate = due
	unmarshalJSON(comments, &task.Comments)

	return &task, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
