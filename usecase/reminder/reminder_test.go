package reminder

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

type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders map[string]domain.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[string]domain.Reminder)}
}

func (r *fakeReminderRepo) GetByID(_ context.Context, id string) (*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.reminders[id]
	if !ok {
		return nil, domain.ErrReminderNotFound
	}
	clone := rem
	return &clone, nil
}

func (r *fakeReminderRepo) ListByDate(_ context.Context, ownerID, date string) ([]domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reminder
	for _, rem := range r.reminders {
		if rem.OwnerID == ownerID && rem.Date == date {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) ListByRange(_ context.Context, ownerID, start, end string) ([]domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reminder
	for _, rem := range r.reminders {
		if rem.OwnerID == ownerID && rem.Date >= start && rem.Date <= end {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) Create(_ context.Context, reminder *domain.Reminder) (*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder.ID = uuid.NewString()
	reminder.CreatedAt = time.Now()
	r.reminders[reminder.ID] = *reminder
	clone := *reminder
	return &clone, nil
}

func (r *fakeReminderRepo) Update(_ context.Context, reminder *domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reminders[reminder.ID]; !ok {
		return domain.ErrReminderNotFound
	}
	r.reminders[reminder.ID] = *reminder
	return nil
}

func (r *fakeReminderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reminders, id)
	return nil
}

func TestCreateValidatesDateAndTime(t *testing.T) {
	uc := New(newFakeReminderRepo(), nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, "owner", CreateInput{Title: "dentist", Date: "27-08-2026"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Create(ctx, "owner", CreateInput{Title: "dentist", Date: "2026-08-27", Time: "9am"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	created, err := uc.Create(ctx, "owner", CreateInput{Title: "dentist", Date: "2026-08-27", Time: "09:30"})
	require.NoError(t, err)
	assert.Equal(t, "09:30", created.Time)
}

func TestCreateAllowsOmittedTime(t *testing.T) {
	uc := New(newFakeReminderRepo(), nil)

	created, err := uc.Create(context.Background(), "owner", CreateInput{Title: "water plants", Date: "2026-08-27"})
	require.NoError(t, err)
	assert.Empty(t, created.Time)
}

func TestListByRangeInclusive(t *testing.T) {
	uc := New(newFakeReminderRepo(), nil)
	ctx := context.Background()

	for _, date := range []string{"2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"} {
		_, err := uc.Create(ctx, "owner", CreateInput{Title: "r " + date, Date: date})
		require.NoError(t, err)
	}

	got, err := uc.ListByRange(ctx, "owner", "2026-08-26", "2026-08-27")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListByDateRejectsMalformedDate(t *testing.T) {
	uc := New(newFakeReminderRepo(), nil)

	_, err := uc.ListByDate(context.Background(), "owner", "today")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUpdateOwnershipAndClearTime(t *testing.T) {
	uc := New(newFakeReminderRepo(), nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, "alice", CreateInput{Title: "call", Date: "2026-08-27", Time: "10:00"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "bob", created.ID, Patch{Title: ptr("hijack")})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	updated, err := uc.Update(ctx, "alice", created.ID, Patch{Time: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, updated.Time)
}

func ptr(s string) *string { return &s }
