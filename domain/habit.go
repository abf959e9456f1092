package domain

import "time"

// Frequency is how often a habit is expected to be performed.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

func ValidFrequency(f Frequency) bool {
	for _, v := range Frequencies {
		if v == f {
			return true
		}
	}
	return false
}

// Habit is a recurring activity tracked by completion dates. CompletedDates
// holds plain YYYY-MM-DD strings and behaves as a set: marking a date twice
// is a no-op.
type Habit struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Frequency      Frequency `json:"frequency"`
	CompletedDates []string  `json:"completed_dates"`
	IsShutdown     bool      `json:"is_shutdown"`
	LastResetWeek  *int      `json:"last_reset_week,omitempty"`
	SheetURL       string    `json:"sheet_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsCompletedOn reports whether the habit was marked done on the given
// YYYY-MM-DD date.
func (h *Habit) IsCompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// DateString formats t as the plain calendar date used for habit marks and
// night entries.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
