package board

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noctura/backend/domain"
)

// fakeTaskRepo is an in-memory TaskRepository used to exercise the engine
// without a database.
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := t
	return &clone, nil
}

func (r *fakeTaskRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) UpdateStatuses(_ context.Context, changes map[string]domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range changes {
		if _, ok := r.tasks[id]; !ok {
			return domain.ErrTaskNotFound
		}
	}
	for id, status := range changes {
		t := r.tasks[id]
		t.Status = status
		t.UpdatedAt = time.Now()
		r.tasks[id] = t
	}
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func newTodoEngine(repo *fakeTaskRepo) *Engine {
	return New(Config{
		Kind:          "todo",
		Statuses:      domain.TodoStatuses,
		GroupByStatus: false,
		AllowDueDate:  true,
	}, repo, nil)
}

func newKanbanEngine(repo *fakeTaskRepo) *Engine {
	return New(Config{
		Kind:          "kanban",
		Statuses:      domain.KanbanStatuses,
		GroupByStatus: true,
		AllowDueDate:  false,
	}, repo, nil)
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.Status) *domain.Status { return &s }

func prioPtr(p domain.Priority) *domain.Priority { return &p }

func mustCreate(t *testing.T, e *Engine, owner, title string) *domain.Task {
	t.Helper()
	task, err := e.Create(context.Background(), owner, CreateInput{Title: title})
	require.NoError(t, err)
	return task
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	repo := newFakeTaskRepo()
	e := newTodoEngine(repo)

	_, err := e.Create(context.Background(), "u1", CreateInput{Title: "   "})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, repo.tasks, "nothing may be persisted on validation failure")
}

func TestCreateDefaultsAndTrimming(t *testing.T) {
	e := newTodoEngine(newFakeTaskRepo())

	task, err := e.Create(context.Background(), "u1", CreateInput{
		Title:       "  read a chapter  ",
		Description: strPtr("  before bed "),
	})
	require.NoError(t, err)
	assert.Equal(t, "read a chapter", task.Title)
	assert.Equal(t, "before bed", task.Description)
	assert.Equal(t, domain.StatusPending, task.Status, "initial status is the vocabulary's first member")
	assert.Equal(t, domain.PriorityMedium, task.Priority)
}

func TestCreateRejectsForeignVocabulary(t *testing.T) {
	e := newTodoEngine(newFakeTaskRepo())

	_, err := e.Create(context.Background(), "u1", CreateInput{
		Title:  "task",
		Status: statusPtr(domain.StatusToDo),
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUpdateOwnershipIsolation(t *testing.T) {
	repo := newFakeTaskRepo()
	e := newTodoEngine(repo)
	task := mustCreate(t, e, "u1", "mine")

	_, err := e.Update(context.Background(), "u2", task.ID, Patch{Title: strPtr("stolen")})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	stored, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", stored.Title, "record must be left unmodified")
}

func TestDeleteAndMoveOwnershipIsolation(t *testing.T) {
	repo := newFakeTaskRepo()
	e := newTodoEngine(repo)
	task := mustCreate(t, e, "u1", "mine")

	err := e.Delete(context.Background(), "u2", task.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	_, err = e.Move(context.Background(), "u2", task.ID, domain.StatusCompleted)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	stored, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestSparseUpdateLeavesOmittedFields(t *testing.T) {
	e := newTodoEngine(newFakeTaskRepo())

	task, err := e.Create(context.Background(), "u1", CreateInput{
		Title:    "task",
		Priority: prioPtr(domain.PriorityHigh),
	})
	require.NoError(t, err)

	updated, err := e.Update(context.Background(), "u1", task.ID, Patch{
		Description: strPtr("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, updated.Priority, "omitted priority must not reset to default")
	assert.Equal(t, "task", updated.Title)
	assert.Equal(t, "x", updated.Description)
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	e := newTodoEngine(newFakeTaskRepo())
	task := mustCreate(t, e, "u1", "task")

	_, err := e.Update(context.Background(), "u1", task.ID, Patch{Title: strPtr("  ")})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUpdateDueDateClearsOnNull(t *testing.T) {
	e := newTodoEngine(newFakeTaskRepo())

	task, err := e.Create(context.Background(), "u1", CreateInput{
		Title:   "task",
		DueDate: strPtr("2024-03-15"),
	})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)

	updated, err := e.Update(context.Background(), "u1", task.ID, Patch{DueDateSet: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestDueDateNormalizedToLocalMidday(t *testing.T) {
	e := newTodoEngine(newFakeTaskRepo())

	task, err := e.Create(context.Background(), "u1", CreateInput{
		Title:   "task",
		DueDate: strPtr("2024-03-15"),
	})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)

	local := task.DueDate.In(time.Local)
	assert.Equal(t, 2024, local.Year())
	assert.Equal(t, time.March, local.Month())
	assert.Equal(t, 15, local.Day())
	assert.Equal(t, 12, local.Hour(), "plain dates pin to local midday, not UTC midnight")
}

func TestMoveRejectsUnknownStatus(t *testing.T) {
	repo := newFakeTaskRepo()
	e := newKanbanEngine(repo)
	task := mustCreate(t, e, "u1", "card")

	_, err := e.Move(context.Background(), "u1", task.ID, domain.Status("Shipped"))
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	stored, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusToDo, stored.Status)
}

func TestMoveAllowsAnyTransition(t *testing.T) {
	e := newKanbanEngine(newFakeTaskRepo())
	task := mustCreate(t, e, "u1", "card")

	moved, err := e.Move(context.Background(), "u1", task.ID, domain.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, moved.Status)

	// No terminal state: Done can go straight back.
	moved, err = e.Move(context.Background(), "u1", task.ID, domain.StatusToDo)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusToDo, moved.Status)
}

func TestGroupedListHasEveryBucket(t *testing.T) {
	e := newKanbanEngine(newFakeTaskRepo())
	mustCreate(t, e, "u1", "card")

	result, err := e.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Nil(t, result.Flat)
	require.NotNil(t, result.Buckets)
	for _, s := range domain.KanbanStatuses {
		_, ok := result.Buckets[s]
		assert.True(t, ok, "bucket %q must be present even if empty", s)
	}
	assert.Len(t, result.Buckets[domain.StatusToDo], 1)
}

func TestFlatListScopedToOwner(t *testing.T) {
	e := newTodoEngine(newFakeTaskRepo())
	mustCreate(t, e, "u1", "mine")
	mustCreate(t, e, "u2", "theirs")

	result, err := e.List(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, result.Flat)
	require.Len(t, result.Flat, 1)
	assert.Equal(t, "mine", result.Flat[0].Title)
}

func TestBatchUpdateAtomicOnMissingID(t *testing.T) {
	repo := newFakeTaskRepo()
	e := newKanbanEngine(repo)

	var items []StatusChange
	for i := 0; i < 3; i++ {
		task := mustCreate(t, e, "u1", "card")
		items = append(items, StatusChange{ID: task.ID, NewStatus: domain.StatusDone})
	}
	ghost := uuid.NewString()
	items = append(items, StatusChange{ID: ghost, NewStatus: domain.StatusDone})

	_, err := e.BatchUpdateStatus(context.Background(), "u1", items)
	require.Error(t, err)

	var missing *domain.BatchMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{ghost}, missing.IDs)

	for _, it := range items[:3] {
		stored, err := repo.GetByID(context.Background(), it.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusToDo, stored.Status, "no valid item may have been applied")
	}
}

func TestBatchUpdateRejectsForeignRecords(t *testing.T) {
	repo := newFakeTaskRepo()
	e := newKanbanEngine(repo)

	mine := mustCreate(t, e, "u1", "mine")
	theirs := mustCreate(t, e, "u2", "theirs")

	_, err := e.BatchUpdateStatus(context.Background(), "u1", []StatusChange{
		{ID: mine.ID, NewStatus: domain.StatusDone},
		{ID: theirs.ID, NewStatus: domain.StatusDone},
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	stored, err := repo.GetByID(context.Background(), mine.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusToDo, stored.Status)
}

func TestBatchUpdateRejectsInvalidEntriesBeforeCommit(t *testing.T) {
	repo := newFakeTaskRepo()
	e := newKanbanEngine(repo)
	task := mustCreate(t, e, "u1", "card")

	_, err := e.BatchUpdateStatus(context.Background(), "u1", []StatusChange{
		{ID: task.ID, NewStatus: domain.StatusDone},
		{ID: "not-a-uuid", NewStatus: domain.StatusDone},
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	stored, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusToDo, stored.Status)
}

func TestBatchUpdateAppliesAndReturnsRefreshedSet(t *testing.T) {
	e := newKanbanEngine(newFakeTaskRepo())

	a := mustCreate(t, e, "u1", "a")
	b := mustCreate(t, e, "u1", "b")

	updated, err := e.BatchUpdateStatus(context.Background(), "u1", []StatusChange{
		{ID: a.ID, NewStatus: domain.StatusDoing},
		{ID: b.ID, NewStatus: domain.StatusDone},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)

	byID := map[string]domain.Status{}
	for _, task := range updated {
		byID[task.ID] = task.Status
	}
	assert.Equal(t, domain.StatusDoing, byID[a.ID])
	assert.Equal(t, domain.StatusDone, byID[b.ID])
}
