package domain

import (
	"regexp"
	"time"
)

// Status is one member of a board's status vocabulary. The todo list and the
// kanban board use disjoint vocabularies over the same four conceptual
// states; TodoStatuses and KanbanStatuses enumerate the legal members for
// each kind.
type Status string

const (
	// Linear todo vocabulary. StatusBacklog is a legacy member still
	// accepted by the schema but absent from the active vocabulary.
	StatusBacklog    Status = "backlog"
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"

	// Kanban column vocabulary.
	StatusToDo  Status = "To Do"
	StatusDoing Status = "In Progress"
	StatusDone  Status = "Done"
)

// TodoStatuses and KanbanStatuses are the fixed vocabularies; the first
// member of each is the kind's initial status.
var (
	TodoStatuses   = []Status{StatusPending, StatusInProgress, StatusCompleted}
	KanbanStatuses = []Status{StatusToDo, StatusDoing, StatusDone}
)

// TodoToKanban is the total bidirectional mapping between the two
// vocabularies. KanbanToTodo is derived from it so the two can never drift.
var TodoToKanban = map[Status]Status{
	StatusPending:    StatusToDo,
	StatusInProgress: StatusDoing,
	StatusCompleted:  StatusDone,
}

var KanbanToTodo = invert(TodoToKanban)

func invert(m map[Status]Status) map[Status]Status {
	out := make(map[Status]Status, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Priority is the task urgency level. Omitting priority on a partial update
// must leave the stored value untouched, never reset it to the default.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ValidPriority reports whether p is a member of the priority enumeration.
func ValidPriority(p Priority) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

// Comment is a kanban card subdocument.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Task represents a user-owned board record. Both the todo list and the
// kanban board persist this shape; they differ only in status vocabulary
// and response grouping.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Comments    []Comment  `json:"comments,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && (t.Status == StatusCompleted || t.Status == StatusDone)
}

var plainDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeDueDate parses an incoming due date and pins it to local midday
// so the calendar date survives rendering in any timezone. Plain YYYY-MM-DD
// values and RFC3339 timestamps are accepted; anything else is rejected.
func NormalizeDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, ErrInvalidPayload
	}
	if plainDateRe.MatchString(raw) {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, WrapError(ErrCodeInvalid, "invalid due date", err)
		}
		t := middayOf(parsed)
		return &t, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, WrapError(ErrCodeInvalid, "invalid due date", err)
	}
	t := middayOf(parsed.In(time.Local))
	return &t, nil
}

func middayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
}
