package tasks

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

func (s *Service) List(ctx context.Context, filter ListTasksFilter, page shared.Pagination) ([]Task, int, error) {
	if filter.Status != "" && !filter.Status.Known() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", shared.ErrValidation, filter.Status)
	}
	if filter.Priority != "" && !filter.Priority.Known() {
		return nil, 0, fmt.Errorf("%w: unknown priority %q", shared.ErrValidation, filter.Priority)
	}
	return s.repo.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id int64) (Task, error) {
	return s.repo.Get(ctx, id)
}

// Create opens a new task in todo state. Priority defaults to medium.
func (s *Service) Create(ctx context.Context, actor *auth.Principal, req CreateTaskRequest) (Task, error) {
	if actor == nil {
		return Task{}, shared.ErrUnauthenticated
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if !req.Priority.Known() {
		return Task{}, fmt.Errorf("%w: unknown priority %q", shared.ErrValidation, req.Priority)
	}

	task, err := s.repo.Create(ctx, req, actor.ID)
	if err != nil {
		return Task{}, err
	}
	s.record(ctx, actor, "task.create", task.ID, map[string]any{"title": task.Title})
	return task, nil
}

func (s *Service) Update(ctx context.Context, actor *auth.Principal, id int64, req UpdateTaskRequest) (Task, error) {
	if actor == nil {
		return Task{}, shared.ErrUnauthenticated
	}
	if req.empty() {
		return Task{}, fmt.Errorf("%w: no fields to update", shared.ErrValidation)
	}
	if req.Status != nil && !req.Status.Known() {
		return Task{}, fmt.Errorf("%w: unknown status %q", shared.ErrValidation, *req.Status)
	}
	if req.Priority != nil && !req.Priority.Known() {
		return Task{}, fmt.Errorf("%w: unknown priority %q", shared.ErrValidation, *req.Priority)
	}

	task, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return Task{}, err
	}
	s.record(ctx, actor, "task.update", task.ID, map[string]any{"status": task.Status})
	return task, nil
}

func (s *Service) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	if actor == nil {
		return shared.ErrUnauthenticated
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "task.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *auth.Principal, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "task",
		EntityID: fmt.Sprintf("%d", id),
		Meta:     meta,
	}); err != nil {
		s.logger.Warn("record activity", slog.String("action", action), slog.Any("error", err))
	}
}
