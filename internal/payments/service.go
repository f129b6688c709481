package payments

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/budget"
	"github.com/mahoneyreunion/reunion/internal/messages"
	"github.com/mahoneyreunion/reunion/internal/shared"
	"github.com/mahoneyreunion/reunion/jobs"
)

// Service handles public registrations: price the stay, open a payment
// intent, and confirm the payment afterwards.
type Service struct {
	repo     Repository
	provider PaymentProvider
	enqueuer messages.Enqueuer
	logger   *slog.Logger
}

func NewService(repo Repository, provider PaymentProvider, enqueuer messages.Enqueuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, provider: provider, enqueuer: enqueuer, logger: logger}
}

// Register prices the request against the rate table and opens a payment
// intent for that exact amount. The registration stays pending until Confirm.
func (s *Service) Register(ctx context.Context, req CreateRegistrationRequest) (Registration, string, error) {
	if !auth.ValidateEmail(req.Email) {
		return Registration{}, "", fmt.Errorf("%w: invalid email address", shared.ErrValidation)
	}
	estimate, err := budget.EstimateRequest{
		Attendees: req.Attendees,
		Nights:    req.Nights,
		RoomTier:  req.RoomTier,
		MealPlan:  req.MealPlan,
	}.Estimate()
	if err != nil {
		return Registration{}, "", err
	}

	amount := estimate.AmountCents()
	intent, err := s.provider.CreateIntent(ctx, amount, "usd", req.Email,
		fmt.Sprintf("Reunion registration for %s (%d attendees)", req.Name, req.Attendees))
	if err != nil {
		return Registration{}, "", err
	}

	mealPlan := req.MealPlan
	if mealPlan == "" {
		mealPlan = budget.MealNone
	}
	reg, err := s.repo.Create(ctx, Registration{
		Name:            req.Name,
		Email:           req.Email,
		Attendees:       req.Attendees,
		Nights:          req.Nights,
		RoomTier:        req.RoomTier,
		MealPlan:        mealPlan,
		AmountCents:     amount,
		Currency:        "usd",
		PaymentIntentID: intent.ID,
	})
	if err != nil {
		return Registration{}, "", err
	}
	return reg, intent.ClientSecret, nil
}

// Confirm marks a pending registration paid and queues the receipt email.
// Confirming twice is a no-op on the second call.
func (s *Service) Confirm(ctx context.Context, id int64) (Registration, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Registration{}, err
	}
	if existing.Status == StatusPaid {
		return existing, nil
	}

	reg, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return Registration{}, err
	}

	if s.enqueuer != nil {
		_, err := s.enqueuer.EnqueueSendEmail(ctx, jobs.SendEmailPayload{
			To:      reg.Email,
			Subject: "Your reunion registration is confirmed",
			Body: fmt.Sprintf("Hi %s,\n\nWe received your payment of $%d.%02d. See you there!\n",
				reg.Name, reg.AmountCents/100, reg.AmountCents%100),
		})
		if err != nil {
			s.logger.Warn("enqueue receipt email", slog.Int64("registration_id", reg.ID), slog.Any("error", err))
		}
	}
	return reg, nil
}
