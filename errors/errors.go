package errors

import (
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	BadRequestError ErrorType = "BAD_REQUEST"
	ServerError     ErrorType = "SERVER_ERROR"
)

// Field error kinds reported in the "type" member of a validation error entry.
const (
	FieldMissing    = "missing"
	FieldValueError = "value_error"
	FieldTypeError  = "type_error"
	FieldJSONError  = "json_invalid"
)

// FieldError describes a single failing input field. Loc is the path to the
// field, rooted at the request part it came from (e.g. ["body", "email"]).
// Array elements are addressed by their int index.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Path renders Loc in dotted form, e.g. "body.tags.1".
func (f FieldError) Path() string {
	parts := make([]string, len(f.Loc))
	for i, p := range f.Loc {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".")
}

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType    `json:"type"`
	Message    string       `json:"message"`
	Detail     string       `json:"detail,omitempty"`
	Fields     []FieldError `json:"fields,omitempty"`
	HTTPStatus int          `json:"-"`
	Raw        error        `json:"-"`
}

func (e *AppError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Path(), f.Msg))
		}
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, strings.Join(parts, "; "))
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the status the error should be rendered with.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// ValidationFailed reports one or more invalid input fields with a 422 status.
func ValidationFailed(fields ...FieldError) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    "Request validation failed",
		Fields:     fields,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// BadRequest reports a request that passed validation but was rejected by
// handler logic. The detail is returned to the client verbatim.
func BadRequest(detail string) *AppError {
	return &AppError{
		Type:       BadRequestError,
		Message:    "Bad Request",
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// BodyField builds the location of a field inside the request body.
func BodyField(path ...any) []any {
	return append([]any{"body"}, path...)
}

func MissingField(field string) FieldError {
	return FieldError{Loc: BodyField(field), Msg: "Field required", Type: FieldMissing}
}

func InvalidField(field, msg string) FieldError {
	return FieldError{Loc: BodyField(field), Msg: msg, Type: FieldValueError}
}

// WrongType reports a value of the wrong JSON type at loc.
func WrongType(loc []any, expected string) FieldError {
	return FieldError{Loc: loc, Msg: "Input should be a valid " + expected, Type: FieldTypeError}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusUnprocessableEntity
	case BadRequestError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
