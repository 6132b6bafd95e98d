package catalog

import (
	"errors"
	"fmt"

	"github.com/redeinformatica/vitrine/internal/item"
)

var (
	// ErrUnauthenticated is returned by writes made without a signed-in user.
	ErrUnauthenticated = errors.New("must be logged in")

	// ErrNotFoundOrForbidden covers both a missing record and one owned by
	// someone else, so non-owners cannot probe for existence.
	ErrNotFoundOrForbidden = errors.New("not found or unauthorized")

	// ErrCategoryNotFoundOrForbidden is the referential failure of item
	// creation against a category the caller does not own.
	ErrCategoryNotFoundOrForbidden = errors.New("category not found or unauthorized")

	// ErrTooManyImages is returned when an item would reference more than item.MaxImages blobs.
	ErrTooManyImages = fmt.Errorf("an item may have at most %d images", item.MaxImages)

	// ErrInvalidInput wraps field-level rule violations.
	ErrInvalidInput = errors.New("invalid input")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
