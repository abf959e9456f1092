package domain

import "time"

// Reminder is a calendar item keyed by plain date with an optional HH:MM
// time of day.
type Reminder struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
