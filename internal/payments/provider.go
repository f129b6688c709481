package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// PaymentProvider creates payment intents with the card processor. The
// service depends on this interface so tests run without Stripe.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, email, description string) (IntentRef, error)
}

// IntentRef is what the frontend needs to complete a payment.
type IntentRef struct {
	ID           string
	ClientSecret string
}

// StripeProvider is a thin pass-through to the official Stripe SDK. The API
// key is set process-wide at startup (stripe.Key).
type StripeProvider struct{}

func (StripeProvider) CreateIntent(ctx context.Context, amountCents int64, currency, email, description string) (IntentRef, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(email),
		Description:  stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return IntentRef{}, fmt.Errorf("create payment intent: %w", err)
	}
	return IntentRef{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}
