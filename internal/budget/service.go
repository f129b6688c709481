package budget

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

type EstimateRequest struct {
	Attendees int    `json:"attendees" validate:"required,min=1,max=500"`
	Nights    int    `json:"nights" validate:"required,min=1,max=14"`
	RoomTier  string `json:"room_tier" validate:"required"`
	MealPlan  string `json:"meal_plan"`
}

type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type Estimate struct {
	LineItems []LineItem      `json:"line_items"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

// Estimate prices a stay from the static rate table. All arithmetic is
// decimal so repeated estimates never drift.
func (r EstimateRequest) Estimate() (Estimate, error) {
	if r.Attendees < 1 {
		return Estimate{}, fmt.Errorf("%w: at least one attendee", shared.ErrValidation)
	}
	if r.Nights < 1 {
		return Estimate{}, fmt.Errorf("%w: at least one night", shared.ErrValidation)
	}
	roomRate, ok := roomRates[r.RoomTier]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: unknown room tier %q", shared.ErrValidation, r.RoomTier)
	}
	mealPlan := r.MealPlan
	if mealPlan == "" {
		mealPlan = MealNone
	}
	mealRate, ok := mealRates[mealPlan]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: unknown meal plan %q", shared.ErrValidation, mealPlan)
	}

	attendees := decimal.NewFromInt(int64(r.Attendees))
	nights := decimal.NewFromInt(int64(r.Nights))
	personNights := attendees.Mul(nights)

	lodging := roomRate.Mul(personNights)
	meals := mealRate.Mul(personNights)
	fees := registrationFee.Mul(attendees)

	items := []LineItem{
		{Label: fmt.Sprintf("Lodging (%s, %d nights)", r.RoomTier, r.Nights), Amount: lodging},
		{Label: fmt.Sprintf("Meals (%s)", mealPlan), Amount: meals},
		{Label: "Registration fee", Amount: fees},
	}
	total := lodging.Add(meals).Add(fees)
	return Estimate{LineItems: items, Total: total, Currency: "USD"}, nil
}

// AmountCents returns the estimate total in cents for the payment provider.
func (e Estimate) AmountCents() int64 {
	return e.Total.Mul(decimal.NewFromInt(100)).IntPart()
}
