package item

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an item record is not found.
var ErrNotFound = errors.New("item not found")

// Repository provides CRUD operations on the items table. List methods
// return items in insertion order.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]Item, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Item, error)
	ListAll(ctx context.Context) ([]Item, error)
	// Update replaces the editable fields and always clears the legacy image_id.
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByCategory removes every item of a category and returns how many were removed.
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// DeleteOrphans removes items whose category no longer exists.
	DeleteOrphans(ctx context.Context) (int64, error)
}
