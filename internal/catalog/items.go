package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/blob"
	"github.com/redeinformatica/vitrine/internal/item"
)

// NewItem holds the fields of an item to create. A nil ImageIDs stores an
// item without images.
type NewItem struct {
	Name        string
	Description *string
	Price       float64
	Quantity    int
	CategoryID  uuid.UUID
	ImageIDs    []string
}

// ListItemsByCategory returns the items of a category. It does not require
// a signed-in caller.
func (s *Service) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]ItemView, error) {
	items, err := s.store.Items().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return s.enrichItems(ctx, items)
}

// ListItemsByUser returns the caller's items. Anonymous callers get an
// empty list.
func (s *Service) ListItemsByUser(ctx context.Context) ([]ItemView, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return []ItemView{}, nil
	}
	items, err := s.store.Items().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return s.enrichItems(ctx, items)
}

// CreateItem inserts an item into a category owned by the caller and
// returns its id.
func (s *Service) CreateItem(ctx context.Context, in NewItem) (uuid.UUID, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if err := checkItemFields(in.Name, in.Price, in.Quantity); err != nil {
		return uuid.Nil, err
	}
	if len(in.ImageIDs) > item.MaxImages {
		return uuid.Nil, ErrTooManyImages
	}

	if _, err := ownedCategory(ctx, s.store.Categories(), in.CategoryID, userID); err != nil {
		if errors.Is(err, ErrNotFoundOrForbidden) {
			return uuid.Nil, ErrCategoryNotFoundOrForbidden
		}
		return uuid.Nil, err
	}

	it := &item.Item{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		ImageIDs:    in.ImageIDs,
		CategoryID:  in.CategoryID,
		UserID:      userID,
	}
	if err := s.store.Items().Create(ctx, it); err != nil {
		return uuid.Nil, fmt.Errorf("creating item: %w", err)
	}
	return it.ID, nil
}

// UpdateItem replaces the editable fields of an item owned by the caller.
// The legacy single image reference is always cleared.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, fields item.UpdateFields) (*ItemView, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkItemFields(fields.Name, fields.Price, fields.Quantity); err != nil {
		return nil, err
	}
	if ids, ok := fields.ImageIDs.Get(); ok && len(ids) > item.MaxImages {
		return nil, ErrTooManyImages
	}

	repo := s.store.Items()
	if _, err := ownedItem(ctx, repo, id, userID); err != nil {
		return nil, err
	}
	updated, err := repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("updating item: %w", err)
	}
	return s.enrichItem(ctx, *updated)
}

// RemoveItem deletes an item owned by the caller.
func (s *Service) RemoveItem(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	repo := s.store.Items()
	if _, err := ownedItem(ctx, repo, id, userID); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return ErrNotFoundOrForbidden
		}
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// GenerateItemUploadURL issues an upload slot for one item image.
func (s *Service) GenerateItemUploadURL(ctx context.Context) (*blob.Upload, error) {
	return s.generateUploadURL(ctx)
}

func checkItemFields(name string, price float64, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name is required")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return invalid("price must be a finite number >= 0")
	}
	if quantity < 0 {
		return invalid("quantity must be >= 0")
	}
	return nil
}

func (s *Service) enrichItems(ctx context.Context, items []item.Item) ([]ItemView, error) {
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		v, err := s.enrichItem(ctx, it)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *Service) enrichItem(ctx context.Context, it item.Item) (*ItemView, error) {
	urls, err := s.resolveItemImages(ctx, &it)
	if err != nil {
		return nil, err
	}
	return &ItemView{Item: it, ImageURLs: urls}, nil
}

// resolveItemImages resolves every image reference of it, keeping order.
func (s *Service) resolveItemImages(ctx context.Context, it *item.Item) ([]*string, error) {
	refs := it.ImageRefs()
	urls := make([]*string, 0, len(refs))
	for i := range refs {
		u, err := s.resolveURL(ctx, &refs[i])
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}
