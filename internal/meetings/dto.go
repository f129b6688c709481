package meetings

import "time"

type CreateMeetingRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Location    string    `json:"location" validate:"max=300"`
	Agenda      string    `json:"agenda" validate:"max=10000"`
}

// UpdateMeetingRequest is a sparse patch; minutes are usually filled in
// after the meeting happened.
type UpdateMeetingRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=300"`
	Agenda      *string    `json:"agenda,omitempty" validate:"omitempty,max=10000"`
	Minutes     *string    `json:"minutes,omitempty" validate:"omitempty,max=20000"`
}

func (r UpdateMeetingRequest) empty() bool {
	return r.Title == nil && r.ScheduledAt == nil && r.Location == nil &&
		r.Agenda == nil && r.Minutes == nil
}

type ListMeetingsFilter struct {
	From *time.Time
	To   *time.Time
}
