package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/category"
	"github.com/redeinformatica/vitrine/internal/item"
)

// ownedCategory loads a category and checks it belongs to userID.
func ownedCategory(ctx context.Context, repo category.Repository, id, userID uuid.UUID) (*category.Category, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("loading category: %w", err)
	}
	if c.UserID != userID {
		return nil, ErrNotFoundOrForbidden
	}
	return c, nil
}

// ownedItem loads an item and checks it belongs to userID.
func ownedItem(ctx context.Context, repo item.Repository, id, userID uuid.UUID) (*item.Item, error) {
	it, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("loading item: %w", err)
	}
	if it.UserID != userID {
		return nil, ErrNotFoundOrForbidden
	}
	return it, nil
}
