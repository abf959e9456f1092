package domain

import "time"

// BedtimePlan is a recurring evening routine item scheduled at an HH:MM
// time. Plans list in ascending time order.
type BedtimePlan struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
