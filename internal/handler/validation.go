package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// formatValidationError converts validator errors to short client messages.
// Field names are the JSON names registered by the validator package.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		field := fe.Field()

		switch fe.Tag() {
		case "required":
			return "invalid request: " + field + " is required"
		case "notblank":
			return "invalid request: " + field + " cannot be whitespace only"
		case "max":
			return "invalid request: " + field + " exceeds maximum length of " + fe.Param()
		case "gte":
			return "invalid request: " + field + " must be at least " + fe.Param()
		case "lte":
			return "invalid request: " + field + " must be at most " + fe.Param()
		case "oneof":
			return "invalid request: " + field + " must be one of " + fe.Param()
		case "phone":
			return "invalid request: " + field + " must be 10 to 15 digits"
		case "pin":
			return "invalid request: " + field + " must be 4 to 6 digits"
		case "url":
			return "invalid request: " + field + " must be a valid URL"
		default:
			return "invalid request: " + field + " is invalid"
		}
	}
	return "invalid request"
}
