// Package dto holds the request bodies the API accepts, with their
// validation rules.
package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and returns per-field messages suitable for
// the error envelope's details.
func Validate(v interface{}) (map[string]string, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldName(fe)] = messageFor(fe)
	}
	return details, err
}

func fieldName(fe validator.FieldError) string {
	// Namespace is Type.Field; report just the field, lowered to match
	// the JSON casing.
	parts := strings.Split(fe.Namespace(), ".")
	name := parts[len(parts)-1]
	return strings.ToLower(name[:1]) + name[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
