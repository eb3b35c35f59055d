package types

import "github.com/NomadCrew/feedback-intake/errors"

// HTTPErrorResponse is the body of a plain request error, e.g. a 400.
type HTTPErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse is the body of a 422 listing every failing field.
type ValidationErrorResponse struct {
	Detail []errors.FieldError `json:"detail"`
}
