package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redeinformatica/vitrine/internal/api/validation"
)

func assertFieldError(t *testing.T, errs []validation.FieldError, field, contains string) {
	t.Helper()
	for _, e := range errs {
		if e.Field == field {
			assert.Contains(t, e.Message, contains)
			return
		}
	}
	t.Errorf("expected field error on %q containing %q, got none", field, contains)
}

func assertNoFieldError(t *testing.T, errs []validation.FieldError, field string) {
	t.Helper()
	for _, e := range errs {
		if e.Field == field {
			t.Errorf("unexpected field error on %q: %s", field, e.Message)
		}
	}
}

func strPtr(s string) *string { return &s }
