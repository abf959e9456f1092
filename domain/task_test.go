package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMappingIsTotalBothWays(t *testing.T) {
	require.Len(t, TodoToKanban, len(TodoStatuses))
	require.Len(t, KanbanToTodo, len(KanbanStatuses))

	for _, s := range TodoStatuses {
		k, ok := TodoToKanban[s]
		require.True(t, ok, "todo status %q has no kanban counterpart", s)
		assert.Equal(t, s, KanbanToTodo[k])
	}
	for _, s := range KanbanStatuses {
		td, ok := KanbanToTodo[s]
		require.True(t, ok, "kanban status %q has no todo counterpart", s)
		assert.Equal(t, s, TodoToKanban[td])
	}
}

func TestNormalizeDueDatePlainDatePinnedToMidday(t *testing.T) {
	due, err := NormalizeDueDate("2026-03-15")
	require.NoError(t, err)

	assert.Equal(t, 2026, due.Year())
	assert.Equal(t, time.March, due.Month())
	assert.Equal(t, 15, due.Day())
	assert.Equal(t, 12, due.Hour())
	assert.Equal(t, "2026-03-15", due.Format("2006-01-02"))
}

func TestNormalizeDueDateAcceptsRFC3339(t *testing.T) {
	due, err := NormalizeDueDate("2026-03-15T23:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, due.Hour())
}

func TestNormalizeDueDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "15/03/2026", "soon", "2026-3-1"} {
		_, err := NormalizeDueDate(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestIsCompletedAcrossVocabularies(t *testing.T) {
	assert.True(t, (&Task{Status: StatusCompleted}).IsCompleted())
	assert.True(t, (&Task{Status: StatusDone}).IsCompleted())
	assert.False(t, (&Task{Status: StatusPending}).IsCompleted())
	assert.False(t, (&Task{Status: StatusToDo}).IsCompleted())

	var nilTask *Task
	assert.False(t, nilTask.IsCompleted())
}
