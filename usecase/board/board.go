// Package board implements the parameterized CRUD and status-transition
// engine shared by the linear todo list and the kanban board. The two kinds
// are instances of one Engine differing only in status vocabulary, response
// grouping, and which extra fields they carry.
package board

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

// Config parameterizes an Engine instance.
type Config struct {
	// Kind names the resource for logging ("todo", "kanban").
	Kind string
	// Statuses is the kind's fixed vocabulary; the first member is the
	// initial status.
	Statuses []domain.Status
	// GroupByStatus selects the grouped list response shape.
	GroupByStatus bool
	// AllowDueDate enables the dueDate field on create/update.
	AllowDueDate bool
}

// Engine applies ownership-scoped CRUD over one board collection. All
// authorization and validation for both kinds lives here.
type Engine struct {
	cfg    Config
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(cfg Config, tasks repository.TaskRepository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		tasks:  tasks,
		logger: logger.With(zap.String("board", cfg.Kind)),
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ListResult is the closed union of the two list response shapes: exactly
// one of Flat or Buckets is non-nil, selected by the engine's grouping flag.
type ListResult struct {
	Flat    []domain.Task
	Buckets map[domain.Status][]domain.Task
}

// CreateInput carries the creatable fields. Pointer fields distinguish
// "absent" from zero values.
type CreateInput struct {
	Title       string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
	DueDate     *string
}

// Patch carries a sparse update: only non-nil fields are applied. Presence,
// not truthiness, controls whether a field is touched. DueDateSet marks
// presence separately so an explicit null can clear the stored date.
type Patch struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
	DueDate     *string
	DueDateSet  bool
}

// StatusChange is one item of a batch status update.
type StatusChange struct {
	ID        string
	NewStatus domain.Status
}

// List returns the caller's records, flat and newest first, or bucketed by
// status when the kind groups. Every status key is present even if empty;
// records carrying an out-of-vocabulary status land in the initial bucket.
func (e *Engine) List(ctx context.Context, ownerID string) (*ListResult, error) {
	tasks, err := e.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if !e.cfg.GroupByStatus {
		if tasks == nil {
			tasks = []domain.Task{}
		}
		return &ListResult{Flat: tasks}, nil
	}

	buckets := make(map[domain.Status][]domain.Task, len(e.cfg.Statuses))
	for _, s := range e.cfg.Statuses {
		buckets[s] = []domain.Task{}
	}
	for _, t := range tasks {
		s := t.Status
		if !e.validStatus(s) {
			s = e.cfg.Statuses[0]
		}
		buckets[s] = append(buckets[s], t)
	}
	return &ListResult{Buckets: buckets}, nil
}

// Create validates and persists a new record owned by ownerID.
func (e *Engine) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}

	task := &domain.Task{
		OwnerID:  ownerID,
		Title:    title,
		Status:   e.cfg.Statuses[0],
		Priority: domain.PriorityMedium,
	}

	if in.Description != nil {
		task.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		if !e.validStatus(*in.Status) {
			return nil, e.statusError()
		}
		task.Status = *in.Status
	}
	if in.Priority != nil {
		if !domain.ValidPriority(*in.Priority) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid priority")
		}
		task.Priority = *in.Priority
	}
	if in.DueDate != nil && e.cfg.AllowDueDate {
		due, err := domain.NormalizeDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}

	created, err := e.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	e.logger.Info("task created", zap.String("task_id", created.ID))
	return created, nil
}

// Update applies a sparse patch to the caller's record. Omitted fields are
// never reset.
func (e *Engine) Update(ctx context.Context, ownerID, id string, patch Patch) (*domain.Task, error) {
	task, err := e.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title cannot be empty")
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		if !e.validStatus(*patch.Status) {
			return nil, e.statusError()
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !domain.ValidPriority(*patch.Priority) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid priority")
		}
		task.Priority = *patch.Priority
	}
	if patch.DueDateSet && e.cfg.AllowDueDate {
		if patch.DueDate == nil {
			task.DueDate = nil
		} else {
			due, err := domain.NormalizeDueDate(*patch.DueDate)
			if err != nil {
				return nil, err
			}
			task.DueDate = due
		}
	}

	if err := e.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Move sets only the status; it is the single-card drag operation. Any
// status may move to any other status.
func (e *Engine) Move(ctx context.Context, ownerID, id string, newStatus domain.Status) (*domain.Task, error) {
	if newStatus == "" || !e.validStatus(newStatus) {
		return nil, domain.NewError(domain.ErrCodeInvalid,
			fmt.Sprintf("newStatus is required and must be one of: %s", e.statusList()))
	}

	task, err := e.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	task.Status = newStatus
	if err := e.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete permanently removes the caller's record.
func (e *Engine) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := e.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := e.tasks.Delete(ctx, id); err != nil {
		return err
	}
	e.logger.Info("task deleted", zap.String("task_id", id))
	return nil
}

// BatchUpdateStatus validates every item before mutating anything. A single
// unresolvable id fails the whole batch with the missing ids listed; a
// single foreign-owned record fails the whole batch with Forbidden. Only
// after every check passes are the changes applied, all together.
func (e *Engine) BatchUpdateStatus(ctx context.Context, ownerID string, items []StatusChange) ([]domain.Task, error) {
	if len(items) == 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "tasks array is required")
	}

	changes := make(map[string]domain.Status, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "each task must include a valid id")
		}
		if _, err := uuid.Parse(it.ID); err != nil {
			return nil, domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("invalid task id: %s", it.ID))
		}
		if it.NewStatus == "" || !e.validStatus(it.NewStatus) {
			return nil, e.statusError()
		}
		if _, seen := changes[it.ID]; !seen {
			ids = append(ids, it.ID)
		}
		changes[it.ID] = it.NewStatus
	}

	tasks, err := e.tasks.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tasks) != len(ids) {
		found := make(map[string]bool, len(tasks))
		for _, t := range tasks {
			found[t.ID] = true
		}
		var missing []string
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, &domain.BatchMissingError{IDs: missing}
	}
	for _, t := range tasks {
		if t.OwnerID != ownerID {
			return nil, domain.NewError(domain.ErrCodeForbidden,
				"Forbidden: one or more tasks do not belong to the user")
		}
	}

	if err := e.tasks.UpdateStatuses(ctx, changes); err != nil {
		return nil, err
	}
	e.logger.Info("batch status update applied", zap.Int("count", len(changes)))

	refreshed, err := e.tasks.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(refreshed, func(i, j int) bool {
		return refreshed[i].CreatedAt.After(refreshed[j].CreatedAt)
	})
	return refreshed, nil
}

func (e *Engine) loadOwned(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid task id")
	}
	task, err := e.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

func (e *Engine) validStatus(s domain.Status) bool {
	for _, v := range e.cfg.Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func (e *Engine) statusList() string {
	parts := make([]string, len(e.cfg.Statuses))
	for i, s := range e.cfg.Statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func (e *Engine) statusError() *domain.Error {
	return domain.NewError(domain.ErrCodeInvalid,
		fmt.Sprintf("status must be one of: %s", e.statusList()))
}
