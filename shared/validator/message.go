package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":         "{field} is required",
		"gte":              "{field} must be greater than or equal to {param}",
		"lte":              "{field} must be less than or equal to {param}",
		"oneof":            "{field} must be one of {param}",
		"max":              "{field} must be less than or equal to {param}",
		"min":              "{field} must be greater than or equal to {param}",
		"email":            "{field} must be a valid email address",
		"gt":               "{field} must be greater than {param}",
		"gtfield":          "{field} must be after {param}",
		"url":              "{field} must be a valid URL",
		"uuid":             "{field} must be a valid UUID",
		"len":              "{field} must be {param} characters long",
		"hexadecimal":      "{field} must be hexadecimal",
		"required_without": "{field} is required when {param} is empty",
		"nefield":          "{field} must differ from {param}",
		"stay_date":        "{field} must be a date (YYYY-MM-DD)",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			if tmpl, ok := messages[valErr.Tag()]; ok {
				return strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(tmpl)
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
