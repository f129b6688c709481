package budget

import "github.com/shopspring/decimal"

// Room tiers and meal plans offered for the reunion weekend. Rates are per
// person per night and come from the venue contract.
const (
	RoomStandard = "standard"
	RoomDeluxe   = "deluxe"
	RoomSuite    = "suite"

	MealNone      = "none"
	MealBreakfast = "breakfast"
	MealFull      = "full"
)

var roomRates = map[string]decimal.Decimal{
	RoomStandard: decimal.NewFromInt(89),
	RoomDeluxe:   decimal.NewFromInt(129),
	RoomSuite:    decimal.NewFromInt(189),
}

var mealRates = map[string]decimal.Decimal{
	MealNone:      decimal.Zero,
	MealBreakfast: decimal.NewFromInt(12),
	MealFull:      decimal.NewFromInt(34),
}

// registrationFee is charged once per attendee, not per night.
var registrationFee = decimal.NewFromFloat(17.50)
