package payments

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahoneyreunion/reunion/internal/budget"
	"github.com/mahoneyreunion/reunion/internal/shared"
	"github.com/mahoneyreunion/reunion/jobs"
)

type stubRepo struct {
	regs   map[int64]Registration
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{regs: map[int64]Registration{}, nextID: 10}
}

func (r *stubRepo) Get(_ context.Context, id int64) (Registration, error) {
	reg, ok := r.regs[id]
	if !ok {
		return Registration{}, shared.ErrNotFound
	}
	return reg, nil
}

func (r *stubRepo) Create(_ context.Context, reg Registration) (Registration, error) {
	r.nextID++
	reg.ID = r.nextID
	reg.Status = StatusPending
	reg.CreatedAt = time.Now()
	reg.UpdatedAt = reg.CreatedAt
	r.regs[reg.ID] = reg
	return reg, nil
}

func (r *stubRepo) MarkPaid(_ context.Context, id int64) (Registration, error) {
	reg, ok := r.regs[id]
	if !ok {
		return Registration{}, shared.ErrNotFound
	}
	reg.Status = StatusPaid
	r.regs[id] = reg
	return reg, nil
}

type stubProvider struct {
	amounts []int64
	err     error
}

func (p *stubProvider) CreateIntent(_ context.Context, amountCents int64, _, _, _ string) (IntentRef, error) {
	if p.err != nil {
		return IntentRef{}, p.err
	}
	p.amounts = append(p.amounts, amountCents)
	return IntentRef{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

type stubEnqueuer struct {
	payloads []jobs.SendEmailPayload
}

func (e *stubEnqueuer) EnqueueSendEmail(_ context.Context, p jobs.SendEmailPayload) (*asynq.TaskInfo, error) {
	e.payloads = append(e.payloads, p)
	return &asynq.TaskInfo{Queue: jobs.QueueDefault}, nil
}

func validRequest() CreateRegistrationRequest {
	return CreateRegistrationRequest{
		Name:      "June Mahoney",
		Email:     "june@example.com",
		Attendees: 2,
		Nights:    2,
		RoomTier:  budget.RoomStandard,
	}
}

func TestRegisterChargesRateTableAmount(t *testing.T) {
	repo := newStubRepo()
	provider := &stubProvider{}
	svc := NewService(repo, provider, nil, nil)

	reg, secret, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	// 2 people * 2 nights * $89 + 2 * $17.50 fee = $391.
	assert.Equal(t, int64(39100), reg.AmountCents)
	assert.Equal(t, []int64{39100}, provider.amounts)
	assert.Equal(t, StatusPending, reg.Status)
	assert.Equal(t, "pi_test_secret", secret)
	assert.Equal(t, budget.MealNone, reg.MealPlan)
}

func TestRegisterRejectsInvalidStay(t *testing.T) {
	svc := NewService(newStubRepo(), &stubProvider{}, nil, nil)

	req := validRequest()
	req.RoomTier = "penthouse"
	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrValidation)

	req = validRequest()
	req.Email = "nope"
	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestRegisterSurfacesProviderFailure(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, &stubProvider{err: assert.AnError}, nil, nil)

	_, _, err := svc.Register(context.Background(), validRequest())
	require.Error(t, err)
	assert.Empty(t, repo.regs, "no registration row without a payment intent")
}

func TestConfirmMarksPaidAndSendsReceiptOnce(t *testing.T) {
	repo := newStubRepo()
	enq := &stubEnqueuer{}
	svc := NewService(repo, &stubProvider{}, enq, nil)

	reg, _, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	paid, err := svc.Confirm(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)
	require.Len(t, enq.payloads, 1)
	assert.Equal(t, "june@example.com", enq.payloads[0].To)
	assert.Contains(t, enq.payloads[0].Body, "$391.00")

	// Second confirm is a no-op, no duplicate receipt.
	again, err := svc.Confirm(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, again.Status)
	assert.Len(t, enq.payloads, 1)

	_, err = svc.Confirm(context.Background(), 999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
