package client

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noctura/backend/domain"
)

// fakeBoardAPI plays the server: it holds the canonical record set and can
// be told to fail the next mutation.
type fakeBoardAPI struct {
	mu       sync.Mutex
	tasks    map[string]domain.Task
	failNext error
	moves    int
	lists    int
}

func newFakeBoardAPI(tasks ...domain.Task) *fakeBoardAPI {
	api := &fakeBoardAPI{tasks: make(map[string]domain.Task)}
	for _, task := range tasks {
		api.tasks[task.ID] = task
	}
	return api
}

func (a *fakeBoardAPI) List() ([]domain.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lists++
	out := make([]domain.Task, 0, len(a.tasks))
	for _, task := range a.tasks {
		out = append(out, task)
	}
	return out, nil
}

func (a *fakeBoardAPI) Move(id string, newStatus domain.Status) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.moves++
	if a.failNext != nil {
		err := a.failNext
		a.failNext = nil
		return err
	}
	task, ok := a.tasks[id]
	if !ok {
		return errors.New("not found")
	}
	task.Status = newStatus
	a.tasks[id] = task
	return nil
}

func (a *fakeBoardAPI) Delete(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failNext != nil {
		err := a.failNext
		a.failNext = nil
		return err
	}
	delete(a.tasks, id)
	return nil
}

func newDragFixture(t *testing.T, tasks ...domain.Task) (*BoardState, *fakeBoardAPI, *DragController, *[]error) {
	t.Helper()
	state := kanbanBoard(tasks...)
	api := newFakeBoardAPI(tasks...)
	var notified []error
	ctrl := NewDragController(state, api, func(err error) {
		notified = append(notified, err)
	})
	return state, api, ctrl, &notified
}

func TestDragSuccessConvergesToServer(t *testing.T) {
	state, api, ctrl, notified := newDragFixture(t, card("a", domain.StatusToDo))

	require.True(t, ctrl.Begin("a"))
	ctrl.Hover(domain.StatusDoing)
	ctrl.End(domain.StatusDoing, true)

	got, found := state.StatusOf("a")
	require.True(t, found)
	assert.Equal(t, domain.StatusDoing, got)

	assert.Equal(t, domain.StatusDoing, api.tasks["a"].Status)
	assert.Empty(t, *notified)
	assert.Equal(t, 1, api.lists, "success path must re-fetch")
}

func TestDragFailureRollsBackToServerTruth(t *testing.T) {
	state, api, ctrl, notified := newDragFixture(t, card("a", domain.StatusToDo))
	api.failNext = errors.New("boom")

	require.True(t, ctrl.Begin("a"))
	ctrl.End(domain.StatusDone, true)

	// The optimistic move is overwritten by the rollback re-fetch.
	got, found := state.StatusOf("a")
	require.True(t, found)
	assert.Equal(t, domain.StatusToDo, got)
	assert.NotEmpty(t, *notified)
	assert.Equal(t, 1, api.lists, "failure path must re-fetch")
}

func TestDragDroppedOutsideAnyColumnSettlesAtOrigin(t *testing.T) {
	state, api, ctrl, _ := newDragFixture(t, card("a", domain.StatusToDo))

	require.True(t, ctrl.Begin("a"))
	ctrl.Hover(domain.StatusDoing)
	ctrl.Hover(domain.StatusDone)
	ctrl.End("", false)

	got, _ := state.StatusOf("a")
	assert.Equal(t, domain.StatusToDo, got)
	assert.Zero(t, api.moves, "invalid drop must not call the server")
}

func TestDragDroppedOnOriginMakesNoCall(t *testing.T) {
	state, api, ctrl, _ := newDragFixture(t, card("a", domain.StatusToDo))

	require.True(t, ctrl.Begin("a"))
	ctrl.Hover(domain.StatusDoing)
	ctrl.End(domain.StatusToDo, true)

	got, _ := state.StatusOf("a")
	assert.Equal(t, domain.StatusToDo, got)
	assert.Zero(t, api.moves)
	assert.Zero(t, api.lists)
}

func TestRapidSuccessiveDragsLastFetchWins(t *testing.T) {
	state, _, ctrl, notified := newDragFixture(t, card("a", domain.StatusToDo))

	require.True(t, ctrl.Begin("a"))
	ctrl.End(domain.StatusDoing, true)
	require.True(t, ctrl.Begin("a"))
	ctrl.End(domain.StatusDone, true)

	got, found := state.StatusOf("a")
	require.True(t, found)
	assert.Equal(t, domain.StatusDone, got)
	assert.Empty(t, *notified)
}

func TestOptimisticDeleteSuccess(t *testing.T) {
	state, api, ctrl, notified := newDragFixture(t,
		card("a", domain.StatusToDo), card("b", domain.StatusDone))

	ctrl.DeleteCard("a")

	assert.Equal(t, 1, state.Len())
	_, remains := api.tasks["a"]
	assert.False(t, remains)
	assert.Empty(t, *notified)
}

func TestOptimisticDeleteFailureRestoresCard(t *testing.T) {
	state, api, ctrl, notified := newDragFixture(t, card("a", domain.StatusToDo))
	api.failNext = errors.New("boom")

	ctrl.DeleteCard("a")

	// The rollback re-fetch restores the card from server truth.
	_, found := state.StatusOf("a")
	assert.True(t, found)
	assert.NotEmpty(t, *notified)
}

func TestBeginUnknownCard(t *testing.T) {
	_, _, ctrl, _ := newDragFixture(t, card("a", domain.StatusToDo))

	assert.False(t, ctrl.Begin("ghost"))
}
