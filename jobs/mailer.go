package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"
)

// Mailer delivers a single email. The worker and tests provide different
// implementations.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay (Mailpit locally).
type SMTPMailer struct {
	Addr string
	From string
}

func (m SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// MailHandler processes TaskTypeSendEmail tasks.
type MailHandler struct {
	Mailer Mailer
	Logger *slog.Logger
}

func (h MailHandler) HandleSendEmail(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.To == "" {
		return asynq.SkipRetry
	}
	if err := h.Mailer.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("send email", slog.String("to", payload.To), slog.Any("error", err))
		}
		return err
	}
	if h.Logger != nil {
		h.Logger.Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	}
	return nil
}
