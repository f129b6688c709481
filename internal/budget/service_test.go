package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

func TestEstimateIsExact(t *testing.T) {
	// 4 people, 3 nights, deluxe + full meals:
	// lodging 129*12 = 1548, meals 34*12 = 408, fees 17.50*4 = 70.
	est, err := EstimateRequest{
		Attendees: 4, Nights: 3, RoomTier: RoomDeluxe, MealPlan: MealFull,
	}.Estimate()
	require.NoError(t, err)

	require.Len(t, est.LineItems, 3)
	assert.True(t, est.LineItems[0].Amount.Equal(decimal.NewFromInt(1548)), "lodging was %s", est.LineItems[0].Amount)
	assert.True(t, est.LineItems[1].Amount.Equal(decimal.NewFromInt(408)), "meals was %s", est.LineItems[1].Amount)
	assert.True(t, est.LineItems[2].Amount.Equal(decimal.NewFromInt(70)), "fees was %s", est.LineItems[2].Amount)
	assert.True(t, est.Total.Equal(decimal.NewFromInt(2026)), "total was %s", est.Total)
	assert.Equal(t, int64(202600), est.AmountCents())
	assert.Equal(t, "USD", est.Currency)
}

func TestEstimateDefaultsToNoMeals(t *testing.T) {
	est, err := EstimateRequest{Attendees: 1, Nights: 2, RoomTier: RoomStandard}.Estimate()
	require.NoError(t, err)
	// lodging 89*2 = 178, fees 17.50.
	assert.True(t, est.Total.Equal(decimal.NewFromFloat(195.50)), "total was %s", est.Total)
}

func TestEstimateValidation(t *testing.T) {
	_, err := EstimateRequest{Attendees: 0, Nights: 1, RoomTier: RoomStandard}.Estimate()
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = EstimateRequest{Attendees: 1, Nights: 0, RoomTier: RoomStandard}.Estimate()
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = EstimateRequest{Attendees: 1, Nights: 1, RoomTier: "penthouse"}.Estimate()
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = EstimateRequest{Attendees: 1, Nights: 1, RoomTier: RoomStandard, MealPlan: "keto"}.Estimate()
	assert.ErrorIs(t, err, shared.ErrValidation)
}
