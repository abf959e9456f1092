package habit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noctura/backend/domain"
)

type fakeHabitRepo struct {
	mu     sync.Mutex
	habits map[string]domain.Habit
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{habits: make(map[string]domain.Habit)}
}

func (r *fakeHabitRepo) GetByID(_ context.Context, id string) (*domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := h
	return &clone, nil
}

func (r *fakeHabitRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Habit
	for _, h := range r.habits {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHabitRepo) Create(_ context.Context, habit *domain.Habit) (*domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	habit.ID = uuid.NewString()
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = habit.CreatedAt
	r.habits[habit.ID] = *habit
	clone := *habit
	return &clone, nil
}

func (r *fakeHabitRepo) Update(_ context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.habits[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	r.habits[habit.ID] = *habit
	return nil
}

func (r *fakeHabitRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.habits[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(r.habits, id)
	return nil
}

func seedHabit(t *testing.T, uc *UseCase, owner string) *domain.Habit {
	t.Helper()
	h, err := uc.Create(context.Background(), owner, CreateInput{Title: "stretch"})
	require.NoError(t, err)
	return h
}

func TestCreateDefaultsToDaily(t *testing.T) {
	uc := New(newFakeHabitRepo(), nil)

	h := seedHabit(t, uc, "owner")
	assert.Equal(t, domain.FrequencyDaily, h.Frequency)
	assert.NotNil(t, h.CompletedDates)
	assert.Empty(t, h.CompletedDates)
}

func TestCreateRejectsUnknownFrequency(t *testing.T) {
	uc := New(newFakeHabitRepo(), nil)

	_, err := uc.Create(context.Background(), "owner", CreateInput{
		Title:     "stretch",
		Frequency: domain.Frequency("hourly"),
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestMarkCompletedIdempotentPerDate(t *testing.T) {
	uc := New(newFakeHabitRepo(), nil)
	h := seedHabit(t, uc, "owner")

	first, err := uc.MarkCompleted(context.Background(), "owner", h.ID, "2026-08-27")
	require.NoError(t, err)
	second, err := uc.MarkCompleted(context.Background(), "owner", h.ID, "2026-08-27")
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-08-27"}, first.CompletedDates)
	assert.Equal(t, []string{"2026-08-27"}, second.CompletedDates)
}

func TestMarkCompletedDefaultsToToday(t *testing.T) {
	uc := New(newFakeHabitRepo(), nil)
	h := seedHabit(t, uc, "owner")

	marked, err := uc.MarkCompleted(context.Background(), "owner", h.ID, "")
	require.NoError(t, err)

	assert.True(t, marked.IsCompletedOn(domain.DateString(time.Now())))
}

func TestUnmarkCompletedRemovesOnlyThatDate(t *testing.T) {
	uc := New(newFakeHabitRepo(), nil)
	h := seedHabit(t, uc, "owner")

	_, err := uc.MarkCompleted(context.Background(), "owner", h.ID, "2026-08-26")
	require.NoError(t, err)
	_, err = uc.MarkCompleted(context.Background(), "owner", h.ID, "2026-08-27")
	require.NoError(t, err)

	left, err := uc.UnmarkCompleted(context.Background(), "owner", h.ID, "2026-08-26")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-27"}, left.CompletedDates)
}

func TestHabitOwnershipEnforced(t *testing.T) {
	uc := New(newFakeHabitRepo(), nil)
	h := seedHabit(t, uc, "alice")

	_, err := uc.MarkCompleted(context.Background(), "bob", h.ID, "2026-08-27")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	err = uc.Delete(context.Background(), "bob", h.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
}
