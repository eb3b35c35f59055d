package types

// Feedback is the payload accepted by the JSON submission endpoint. Rules are
// declared in `validate` tags and applied explicitly by the services package;
// binding only decodes.
type Feedback struct {
	Name    string   `json:"name" validate:"required"`
	Email   string   `json:"email" validate:"required,email"`
	Message string   `json:"message" validate:"required"`
	Tags    []string `json:"tags" validate:"required"`
}

// FormSubmission is the payload accepted by the URL-encoded form endpoint.
// The email address is deliberately not format-checked on this path.
type FormSubmission struct {
	Name    string   `form:"name" json:"name" validate:"required"`
	Email   string   `form:"email" json:"email" validate:"required"`
	Message string   `form:"message" json:"message" validate:"required"`
	Tags    []string `form:"tags" json:"tags" validate:"required"`
}

// SubmissionResponse is returned by the form endpoint on success.
type SubmissionResponse struct {
	Message string         `json:"message"`
	Data    FormSubmission `json:"data"`
}

// ProcessedResponse is returned by the JSON endpoint on success.
type ProcessedResponse struct {
	Message       string   `json:"message"`
	ProcessedData Feedback `json:"processed_data"`
}

const (
	FormSubmittedMessage = "Form submitted successfully!"
	JSONSubmittedMessage = "JSON submitted successfully!"
)
