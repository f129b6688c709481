package messages

type SubmitMessageRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Body    string `json:"body" validate:"required,min=1,max=5000"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

type ListMessagesFilter struct {
	Status Status
	Search string
}
