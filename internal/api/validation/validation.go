// Package validation checks request payloads before they reach the catalog
// and returns every problem at once as field errors.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/redeinformatica/vitrine/internal/optional"
)

const (
	maxNameLen        = 255
	maxDescriptionLen = 2000
	maxBlobRefLen     = 255
)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func requiredText(field, value string, max int) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: field + " is required"}
	}
	if utf8.RuneCountInString(value) > max {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, max)}
	}
	return nil
}

func optionalText(field string, value *string, max int) *FieldError {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(*value) > max {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, max)}
	}
	return nil
}

func blobRef(field string, value *string) *FieldError {
	if value == nil {
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return &FieldError{Field: field, Message: field + " must not be empty"}
	}
	if len(*value) > maxBlobRefLen {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, maxBlobRefLen)}
	}
	return nil
}

// setValue returns the value of a Set option, or nil for Keep and Clear.
func setValue[T any](v optional.Value[T]) *T {
	if got, ok := v.Get(); ok {
		return &got
	}
	return nil
}

func collect(errs ...*FieldError) []FieldError {
	var out []FieldError
	for _, e := range errs {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}
