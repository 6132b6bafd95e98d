package item

import (
	"time"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/optional"
)

// MaxImages is the largest number of images an item may reference.
const MaxImages = 5

// Item represents a row in the items table.
type Item struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Price       float64
	Quantity    int
	// ImageID is the legacy single-image field. Any update clears it.
	ImageID *string
	// ImageIDs is nil when the item predates multi-image support.
	ImageIDs   []string
	CategoryID uuid.UUID
	UserID     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ImageRefs returns the blob references to display, in order: ImageIDs when
// present, otherwise the legacy ImageID as a single entry.
func (i *Item) ImageRefs() []string {
	if i.ImageIDs != nil {
		return i.ImageIDs
	}
	if i.ImageID != nil {
		return []string{*i.ImageID}
	}
	return []string{}
}

// UpdateFields holds the owner-editable fields of an item. Name, Price and
// Quantity are always replaced; CategoryID cannot be changed.
type UpdateFields struct {
	Name        string
	Description optional.Value[string]
	Price       float64
	Quantity    int
	ImageIDs    optional.Value[[]string]
}
