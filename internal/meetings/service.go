package meetings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
	logger   *slog.Logger
}

func NewService(repo Repository, activity *shared.ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, activity: activity, logger: logger}
}

func (s *Service) List(ctx context.Context, filter ListMeetingsFilter, page shared.Pagination) ([]Meeting, int, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, fmt.Errorf("%w: date range is inverted", shared.ErrValidation)
	}
	return s.repo.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id int64) (Meeting, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *auth.Principal, req CreateMeetingRequest) (Meeting, error) {
	if actor == nil {
		return Meeting{}, shared.ErrUnauthenticated
	}
	if req.ScheduledAt.IsZero() {
		return Meeting{}, fmt.Errorf("%w: scheduled_at is required", shared.ErrValidation)
	}

	meeting, err := s.repo.Create(ctx, req, actor.ID)
	if err != nil {
		return Meeting{}, err
	}
	s.record(ctx, actor, "meeting.create", meeting.ID, map[string]any{"title": meeting.Title})
	return meeting, nil
}

func (s *Service) Update(ctx context.Context, actor *auth.Principal, id int64, req UpdateMeetingRequest) (Meeting, error) {
	if actor == nil {
		return Meeting{}, shared.ErrUnauthenticated
	}
	if req.empty() {
		return Meeting{}, fmt.Errorf("%w: no fields to update", shared.ErrValidation)
	}
	if req.ScheduledAt != nil && req.ScheduledAt.IsZero() {
		return Meeting{}, fmt.Errorf("%w: scheduled_at cannot be cleared", shared.ErrValidation)
	}

	meeting, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return Meeting{}, err
	}
	s.record(ctx, actor, "meeting.update", meeting.ID, nil)
	return meeting, nil
}

func (s *Service) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	if actor == nil {
		return shared.ErrUnauthenticated
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "meeting.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *auth.Principal, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "meeting",
		EntityID: fmt.Sprintf("%d", id),
		Meta:     meta,
	}); err != nil {
		s.logger.Warn("record activity", slog.String("action", action), slog.Any("error", err))
	}
}
