package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noctura/backend/domain"
)

func openTestCache(t *testing.T) *SnapshotCache {
	t.Helper()
	cache, err := OpenSnapshotCache(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestSnapshotRoundTrip(t *testing.T) {
	cache := openTestCache(t)

	saved := []domain.Task{card("a", domain.StatusToDo), card("b", domain.StatusDone)}
	require.NoError(t, cache.Save("kanban", saved))

	tasks, savedAt, ok, err := cache.Load("kanban")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, tasks, 2)
	assert.False(t, savedAt.IsZero())
}

func TestSnapshotMissingKind(t *testing.T) {
	cache := openTestCache(t)

	_, _, ok, err := cache.Load("todo")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotOverwriteAndClear(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Save("kanban", []domain.Task{card("a", domain.StatusToDo)}))
	require.NoError(t, cache.Save("kanban", []domain.Task{card("b", domain.StatusDone)}))

	tasks, _, ok, err := cache.Load("kanban")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].ID)

	require.NoError(t, cache.Clear("kanban"))
	_, _, ok, err = cache.Load("kanban")
	require.NoError(t, err)
	assert.False(t, ok)
}
