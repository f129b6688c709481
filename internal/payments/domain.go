package payments

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Registration is a public signup for the reunion weekend with its payment
// state. Amounts are stored in cents as charged.
type Registration struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Attendees       int       `json:"attendees"`
	Nights          int       `json:"nights"`
	RoomTier        string    `json:"room_tier"`
	MealPlan        string    `json:"meal_plan"`
	AmountCents     int64     `json:"amount_cents"`
	Currency        string    `json:"currency"`
	Status          Status    `json:"status"`
	PaymentIntentID string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateRegistrationRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Attendees int    `json:"attendees" validate:"required,min=1,max=500"`
	Nights    int    `json:"nights" validate:"required,min=1,max=14"`
	RoomTier  string `json:"room_tier" validate:"required"`
	MealPlan  string `json:"meal_plan"`
}
