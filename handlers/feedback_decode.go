package handlers

import (
	"bytes"
	"encoding/json"

	apperrors "github.com/NomadCrew/feedback-intake/errors"
	"github.com/NomadCrew/feedback-intake/types"
)

var jsonNull = []byte("null")

// decodeFeedback parses a JSON submission. The body must be exactly one JSON
// object. Keys are matched case-sensitively and unknown keys are ignored.
// Values of the wrong type, including null, are reported together; absent
// keys are left for the validator to report as missing.
func decodeFeedback(data []byte) (types.Feedback, *apperrors.AppError) {
	var fb types.Feedback

	if !json.Valid(data) {
		return fb, apperrors.ValidationFailed(apperrors.FieldError{
			Loc:  apperrors.BodyField(),
			Msg:  "JSON decode error",
			Type: apperrors.FieldJSONError,
		})
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return fb, apperrors.ValidationFailed(apperrors.WrongType(apperrors.BodyField(), "object"))
	}

	var fields []apperrors.FieldError
	fields = decodeString(raw, "name", &fb.Name, fields)
	fields = decodeString(raw, "email", &fb.Email, fields)
	fields = decodeString(raw, "message", &fb.Message, fields)
	if value, ok := raw["tags"]; ok {
		var tagErrs []apperrors.FieldError
		fb.Tags, tagErrs = decodeTags(value)
		fields = append(fields, tagErrs...)
	}

	if len(fields) > 0 {
		return fb, apperrors.ValidationFailed(fields...)
	}
	return fb, nil
}

func decodeString(raw map[string]json.RawMessage, key string, dst *string, fields []apperrors.FieldError) []apperrors.FieldError {
	value, ok := raw[key]
	if !ok {
		return fields
	}
	if isNull(value) || json.Unmarshal(value, dst) != nil {
		return append(fields, apperrors.WrongType(apperrors.BodyField(key), "string"))
	}
	return fields
}

// decodeTags returns a non-nil slice for any well-formed array, so an empty
// list stays distinguishable from an absent one.
func decodeTags(value json.RawMessage) ([]string, []apperrors.FieldError) {
	var items []json.RawMessage
	if isNull(value) || json.Unmarshal(value, &items) != nil {
		return nil, []apperrors.FieldError{apperrors.WrongType(apperrors.BodyField("tags"), "list")}
	}

	tags := make([]string, len(items))
	var fields []apperrors.FieldError
	for i, item := range items {
		if isNull(item) || json.Unmarshal(item, &tags[i]) != nil {
			fields = append(fields, apperrors.WrongType(apperrors.BodyField("tags", i), "string"))
		}
	}
	return tags, fields
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), jsonNull)
}
