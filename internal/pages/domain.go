package pages

import "time"

// Page is a site section that can be shown or hidden from the public
// navigation without a deploy.
type Page struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Visible   bool      `json:"visible"`
	Position  int       `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdatePageRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Visible  *bool   `json:"visible,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

func (r UpdatePageRequest) empty() bool {
	return r.Title == nil && r.Visible == nil && r.Position == nil
}
