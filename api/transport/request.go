package transport

import (
	"encoding/json"

	"github.com/noctura/backend/domain"
)

// TaskCreateRequest carries the creatable board fields. Pointer fields
// distinguish omitted values from zero values.
type TaskCreateRequest struct {
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Status      *domain.Status   `json:"status"`
	Priority    *domain.Priority `json:"priority"`
	DueDate     *string          `json:"dueDate"`
}

// TaskUpdateRequest is a sparse board patch. DueDate is raw JSON so an
// explicit null (clear the date) is distinguishable from an absent key.
type TaskUpdateRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *domain.Status   `json:"status"`
	Priority    *domain.Priority `json:"priority"`
	DueDate     json.RawMessage  `json:"dueDate"`
}

// MoveRequest is the single-card drag payload.
type MoveRequest struct {
	NewStatus domain.Status `json:"newStatus"`
}

// BatchItem is one entry of a batch status update.
type BatchItem struct {
	ID        string        `json:"id"`
	NewStatus domain.Status `json:"newStatus"`
}

// BatchUpdateRequest carries a batch status update.
type BatchUpdateRequest struct {
	Tasks []BatchItem `json:"tasks"`
}

// CommentRequest carries a kanban card comment body.
type CommentRequest struct {
	Text string `json:"text"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type HabitCreateRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Frequency   domain.Frequency `json:"frequency"`
	SheetURL    string           `json:"sheetUrl"`
	IsShutdown  bool             `json:"isShutdown"`
}

type HabitUpdateRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Frequency   *domain.Frequency `json:"frequency"`
	SheetURL    *string           `json:"sheetUrl"`
	IsShutdown  *bool             `json:"isShutdown"`
}

type NightEntrySaveRequest struct {
	Date            string                 `json:"date"`
	TopTasks        []string               `json:"topTasks"`
	Notes           string                 `json:"notes"`
	Reflection      string                 `json:"reflection"`
	ShutdownHabits  []domain.ShutdownHabit `json:"shutdownHabits"`
	FreeformJournal string                 `json:"freeformJournal"`
}

type ReminderCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type ReminderUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

type BedtimeCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
}

type BedtimeUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Time        *string `json:"time"`
}
