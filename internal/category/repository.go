package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a category record is not found.
var ErrNotFound = errors.New("category not found")

// Repository provides CRUD operations on the categories table.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// ListByUser returns the categories owned by userID ordered by name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error)
	// ListAll returns every category ordered by name.
	ListAll(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
