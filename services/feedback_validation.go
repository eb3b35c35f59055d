package services

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	apperrors "github.com/NomadCrew/feedback-intake/errors"
	"github.com/NomadCrew/feedback-intake/types"
	"github.com/go-playground/validator/v10"
)

const invalidEmailMsg = "value is not a valid email address"

// fieldOrder fixes the order in which failing fields are reported so that
// rule failures and length failures interleave the way the payload reads.
var fieldOrder = map[string]int{"name": 0, "email": 1, "message": 2, "tags": 3}

// FeedbackValidator applies the submission rules. Handlers bind request input
// without validation and call it explicitly before doing any work.
type FeedbackValidator struct {
	validate         *validator.Validate
	minMessageLength int
}

// NewFeedbackValidator returns a validator that rejects messages shorter than
// minMessageLength characters.
func NewFeedbackValidator(minMessageLength int) *FeedbackValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return &FeedbackValidator{validate: v, minMessageLength: minMessageLength}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// MessageTooShortDetail is the reason reported for a short message on both endpoints.
func (v *FeedbackValidator) MessageTooShortDetail() string {
	return fmt.Sprintf("Message must be at least %d characters long.", v.minMessageLength)
}

// MessageLongEnough reports whether message meets the minimum length,
// counted in characters rather than bytes.
func (v *FeedbackValidator) MessageLongEnough(message string) bool {
	return utf8.RuneCountInString(message) >= v.minMessageLength
}

// ValidateFeedback checks a JSON submission. Every failing field is reported
// in a single 422 error.
func (v *FeedbackValidator) ValidateFeedback(fb *types.Feedback) error {
	fields := v.fieldErrors(fb)
	if fb.Message != "" && !v.MessageLongEnough(fb.Message) {
		fields = append(fields, apperrors.InvalidField("message", v.MessageTooShortDetail()))
	}
	if len(fields) == 0 {
		return nil
	}

	slices.SortStableFunc(fields, func(a, b apperrors.FieldError) int {
		return fieldRank(a) - fieldRank(b)
	})
	return apperrors.ValidationFailed(fields...)
}

// ValidateFormSubmission checks a form submission. Missing fields are a 422;
// a short message on an otherwise complete form is a 400. The email address
// is not format-checked here.
func (v *FeedbackValidator) ValidateFormSubmission(fs *types.FormSubmission) error {
	if fields := v.fieldErrors(fs); len(fields) > 0 {
		return apperrors.ValidationFailed(fields...)
	}
	if !v.MessageLongEnough(fs.Message) {
		return apperrors.BadRequest(v.MessageTooShortDetail())
	}
	return nil
}

func (v *FeedbackValidator) fieldErrors(s interface{}) []apperrors.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Loc: apperrors.BodyField(), Msg: err.Error(), Type: apperrors.FieldValueError}}
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, translateFieldError(fe))
	}
	return fields
}

func translateFieldError(fe validator.FieldError) apperrors.FieldError {
	switch fe.Tag() {
	case "required":
		return apperrors.MissingField(fe.Field())
	case "email":
		return apperrors.InvalidField(fe.Field(), invalidEmailMsg)
	default:
		return apperrors.InvalidField(fe.Field(), fmt.Sprintf("failed on the '%s' rule", fe.Tag()))
	}
}

func fieldRank(f apperrors.FieldError) int {
	if len(f.Loc) < 2 {
		return -1
	}
	name, _ := f.Loc[1].(string)
	if rank, ok := fieldOrder[name]; ok {
		return rank
	}
	return len(fieldOrder)
}
