package meetings

import "time"

// Meeting is a planning committee meeting with its agenda and minutes.
type Meeting struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Location    string    `json:"location"`
	Agenda      string    `json:"agenda"`
	Minutes     string    `json:"minutes"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
