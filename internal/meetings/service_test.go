package meetings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

type stubRepo struct {
	meetings map[int64]Meeting
	nextID   int64
}

func newStubRepo(ms ...Meeting) *stubRepo {
	r := &stubRepo{meetings: map[int64]Meeting{}, nextID: 10}
	for _, m := range ms {
		r.meetings[m.ID] = m
	}
	return r
}

func (r *stubRepo) List(_ context.Context, _ ListMeetingsFilter, _ shared.Pagination) ([]Meeting, int, error) {
	var out []Meeting
	for _, m := range r.meetings {
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *stubRepo) Get(_ context.Context, id int64) (Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return Meeting{}, shared.ErrNotFound
	}
	return m, nil
}

func (r *stubRepo) Create(_ context.Context, req CreateMeetingRequest, createdBy int64) (Meeting, error) {
	r.nextID++
	m := Meeting{
		ID: r.nextID, Title: req.Title, ScheduledAt: req.ScheduledAt,
		Location: req.Location, Agenda: req.Agenda, CreatedBy: createdBy,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.meetings[m.ID] = m
	return m, nil
}

func (r *stubRepo) Update(_ context.Context, id int64, req UpdateMeetingRequest) (Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return Meeting{}, shared.ErrNotFound
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.ScheduledAt != nil {
		m.ScheduledAt = *req.ScheduledAt
	}
	if req.Minutes != nil {
		m.Minutes = *req.Minutes
	}
	r.meetings[id] = m
	return m, nil
}

func (r *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.meetings[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.meetings, id)
	return nil
}

func actor() *auth.Principal {
	return &auth.Principal{ID: 3, Email: "mod@example.com", Role: auth.RoleModerator}
}

func TestCreateRequiresSchedule(t *testing.T) {
	svc := NewService(newStubRepo(), nil, nil)

	when := time.Date(2026, 10, 3, 15, 0, 0, 0, time.UTC)
	meeting, err := svc.Create(context.Background(), actor(), CreateMeetingRequest{
		Title:       "Venue walkthrough",
		ScheduledAt: when,
		Location:    "Riverside Park pavilion",
	})
	require.NoError(t, err)
	assert.Equal(t, when, meeting.ScheduledAt)
	assert.Equal(t, int64(3), meeting.CreatedBy)

	_, err = svc.Create(context.Background(), actor(), CreateMeetingRequest{Title: "No date"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateFillsInMinutesAfterward(t *testing.T) {
	repo := newStubRepo(Meeting{ID: 1, Title: "Kickoff", ScheduledAt: time.Now()})
	svc := NewService(repo, nil, nil)

	minutes := "Agreed on the first weekend of July."
	meeting, err := svc.Update(context.Background(), actor(), 1, UpdateMeetingRequest{Minutes: &minutes})
	require.NoError(t, err)
	assert.Equal(t, minutes, meeting.Minutes)

	_, err = svc.Update(context.Background(), actor(), 1, UpdateMeetingRequest{})
	assert.ErrorIs(t, err, shared.ErrValidation)

	zero := time.Time{}
	_, err = svc.Update(context.Background(), actor(), 1, UpdateMeetingRequest{ScheduledAt: &zero})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestListRejectsInvertedRange(t *testing.T) {
	svc := NewService(newStubRepo(), nil, nil)

	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)
	_, _, err := svc.List(context.Background(), ListMeetingsFilter{From: &from, To: &to}, shared.NewPagination(1, 20, 0))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAnonymousActorRejected(t *testing.T) {
	svc := NewService(newStubRepo(), nil, nil)

	_, err := svc.Create(context.Background(), nil, CreateMeetingRequest{})
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)

	assert.ErrorIs(t, svc.Delete(context.Background(), nil, 1), shared.ErrUnauthenticated)
}
