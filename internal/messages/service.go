package messages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/shared"
	"github.com/mahoneyreunion/reunion/jobs"
)

// Enqueuer submits background email tasks. Satisfied by *jobs.Client.
type Enqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error)
}

// Service handles contact intake and admin triage.
type Service struct {
	repo         Repository
	enqueuer     Enqueuer
	activity     *shared.ActivityRecorder
	contactInbox string
	logger       *slog.Logger
}

func NewService(repo Repository, enqueuer Enqueuer, activity *shared.ActivityRecorder, contactInbox string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, enqueuer: enqueuer, activity: activity, contactInbox: contactInbox, logger: logger}
}

// Submit stores a public contact message and queues a notification email.
// Queue trouble never fails the submission; the message is already stored.
func (s *Service) Submit(ctx context.Context, req SubmitMessageRequest) (Message, error) {
	if !auth.ValidateEmail(req.Email) {
		return Message{}, fmt.Errorf("%w: invalid email address", shared.ErrValidation)
	}
	msg, err := s.repo.Create(ctx, req)
	if err != nil {
		return Message{}, err
	}

	if s.enqueuer != nil && s.contactInbox != "" {
		subject := msg.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		_, err := s.enqueuer.EnqueueSendEmail(ctx, jobs.SendEmailPayload{
			To:      s.contactInbox,
			Subject: "New contact message: " + subject,
			Body:    fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Body),
		})
		if err != nil {
			s.logger.Warn("enqueue contact notification", slog.Int64("message_id", msg.ID), slog.Any("error", err))
		}
	}
	return msg, nil
}

func (s *Service) List(ctx context.Context, filter ListMessagesFilter, page shared.Pagination) ([]Message, int, error) {
	if filter.Status != "" && !filter.Status.Known() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", shared.ErrValidation, filter.Status)
	}
	return s.repo.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id int64) (Message, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves a message through triage.
func (s *Service) UpdateStatus(ctx context.Context, actor *auth.Principal, id int64, status Status) (Message, error) {
	if !status.Known() {
		return Message{}, fmt.Errorf("%w: unknown status %q", shared.ErrValidation, status)
	}
	msg, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return Message{}, err
	}
	s.record(ctx, actor, "message.status", msg.ID, map[string]any{"status": status})
	return msg, nil
}

func (s *Service) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "message.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor *auth.Principal, action string, id int64, meta map[string]any) {
	if s.activity == nil || actor == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "contact_message",
		EntityID: fmt.Sprintf("%d", id),
		Meta:     meta,
	}); err != nil {
		s.logger.Warn("record activity", slog.String("action", action), slog.Any("error", err))
	}
}
