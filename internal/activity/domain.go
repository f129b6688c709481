package activity

import "time"

// Entry is one row on the activity tab. ActorName is joined in from
// admin_users and empty when the actor account was deleted.
type Entry struct {
	ID         int64          `json:"id"`
	ActorID    int64          `json:"actor_id"`
	ActorName  string         `json:"actor_name,omitempty"`
	Action     string         `json:"action"`
	Entity     string         `json:"entity"`
	EntityID   string         `json:"entity_id"`
	Meta       map[string]any `json:"meta,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type ListFilter struct {
	ActorID int64
	Entity  string
}
