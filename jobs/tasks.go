package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue all reunion background jobs run on.
	QueueDefault = "default"
	// TaskTypeSendEmail delivers a transactional email.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeActivityPrune trims old rows out of activity_logs.
	TaskTypeActivityPrune = "activity:prune"
)

// SendEmailPayload describes a single outbound email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs the Asynq task for an outbound email.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewActivityPruneTask constructs the retention task. It carries no payload;
// the retention window is fixed in the handler.
func NewActivityPruneTask() *asynq.Task {
	return asynq.NewTask(TaskTypeActivityPrune, nil)
}
