package domain

import "time"

// MaxTopTasks caps the nightly "top tasks" list.
const MaxTopTasks = 3

// ShutdownHabit records whether a shutdown-routine habit was completed as
// part of a night entry.
type ShutdownHabit struct {
	HabitID   string `json:"habit_id"`
	Completed bool   `json:"completed"`
}

// HistoryNote is a freeform journal note appended to a night entry.
type HistoryNote struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NightEntry is the nightly planning/journal document. Exactly one entry
// exists per (owner, date); saves upsert.
type NightEntry struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	Date           string          `json:"date"`
	TopTasks       []string        `json:"top_tasks"`
	Notes          string          `json:"notes"`
	Reflection     string          `json:"reflection"`
	ShutdownHabits []ShutdownHabit `json:"shutdown_habits"`
	HistoryNotes   []HistoryNote   `json:"history_notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// JournalNote is a flattened history note as returned by the journal
// history listing.
type JournalNote struct {
	NoteID    string    `json:"note_id"`
	EntryDate string    `json:"entry_date"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
