package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/optional"
)

// Category represents a row in the categories table.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description *string
	ImageID     *string // blob reference, never a URL
	BannerID    *string // blob reference, never a URL
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateFields holds the owner-editable fields of a category.
// Name is always replaced; the optional fields follow their tag.
type UpdateFields struct {
	Name        string
	Description optional.Value[string]
	ImageID     optional.Value[string]
	BannerID    optional.Value[string]
}
