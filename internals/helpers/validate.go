package helper

import (
	"github.com/go-playground/validator/v10"
)

// Shared validator instance for all DTOs.
var Validate = validator.New()

// ValidationMap converts validator.v10 errors into the standard
// field → messages shape used by JsonValidationError.
func ValidationMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "this field is required"
		case "email":
			msg = "must be a valid email address"
		case "min":
			msg = "must be at least " + fe.Param() + " characters"
		case "max":
			msg = "must be at most " + fe.Param() + " characters"
		case "oneof":
			msg = "must be one of: " + fe.Param()
		case "e164":
			msg = "must be a valid phone number"
		default:
			msg = "invalid value"
		}
		out[field] = append(out[field], msg)
	}
	return out
}
