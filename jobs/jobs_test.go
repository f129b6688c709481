package jobs

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to, subject, body string
	err               error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestMailHandlerDeliversPayload(t *testing.T) {
	mailer := &recordingMailer{}
	h := MailHandler{Mailer: mailer}

	task, err := NewSendEmailTask(SendEmailPayload{
		To:      "family@example.com",
		Subject: "New contact message",
		Body:    "Aunt June wrote in.",
	})
	require.NoError(t, err)

	require.NoError(t, h.HandleSendEmail(context.Background(), task))
	assert.Equal(t, "family@example.com", mailer.to)
	assert.Equal(t, "New contact message", mailer.subject)
	assert.Equal(t, "Aunt June wrote in.", mailer.body)
}

func TestMailHandlerSkipsMalformedPayload(t *testing.T) {
	h := MailHandler{Mailer: &recordingMailer{}}

	err := h.HandleSendEmail(context.Background(), asynq.NewTask(TaskTypeSendEmail, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.HandleSendEmail(context.Background(), asynq.NewTask(TaskTypeSendEmail, []byte(`{"subject":"no recipient"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestMailHandlerPropagatesDeliveryError(t *testing.T) {
	sendErr := errors.New("relay down")
	h := MailHandler{Mailer: &recordingMailer{err: sendErr}}

	task, err := NewSendEmailTask(SendEmailPayload{To: "x@example.com"})
	require.NoError(t, err)
	assert.ErrorIs(t, h.HandleSendEmail(context.Background(), task), sendErr)
}

func TestClientEnqueuesToDefaultQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	opts := asynq.RedisClientOpt{Addr: mr.Addr()}

	client, err := NewClient(opts)
	require.NoError(t, err)
	defer client.Close()

	info, err := client.EnqueueSendEmail(context.Background(), SendEmailPayload{
		To:      "family@example.com",
		Subject: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, QueueDefault, info.Queue)
	assert.Equal(t, TaskTypeSendEmail, info.Type)

	inspector := asynq.NewInspector(opts)
	defer inspector.Close()
	queueInfo, err := inspector.GetQueueInfo(QueueDefault)
	require.NoError(t, err)
	assert.Equal(t, 1, queueInfo.Pending)
}
