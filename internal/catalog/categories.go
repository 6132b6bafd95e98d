package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/blob"
	"github.com/redeinformatica/vitrine/internal/category"
)

// NewCategory holds the fields of a category to create.
type NewCategory struct {
	Name        string
	Description *string
	ImageID     *string
	BannerID    *string
}

// ListCategories returns the caller's categories ordered by name. Anonymous
// callers get an empty list.
func (s *Service) ListCategories(ctx context.Context) ([]CategoryView, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return []CategoryView{}, nil
	}
	cats, err := s.store.Categories().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return s.enrichCategories(ctx, cats)
}

// ListPublicCategories returns every category ordered by name.
func (s *Service) ListPublicCategories(ctx context.Context) ([]CategoryView, error) {
	cats, err := s.store.Categories().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return s.enrichCategories(ctx, cats)
}

// CreateCategory inserts a category owned by the caller and returns its id.
func (s *Service) CreateCategory(ctx context.Context, in NewCategory) (uuid.UUID, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return uuid.Nil, invalid("name is required")
	}

	c := &category.Category{
		Name:        in.Name,
		Description: in.Description,
		ImageID:     in.ImageID,
		BannerID:    in.BannerID,
		UserID:      userID,
	}
	if err := s.store.Categories().Create(ctx, c); err != nil {
		return uuid.Nil, fmt.Errorf("creating category: %w", err)
	}
	return c.ID, nil
}

// UpdateCategory replaces the name and applies the optional fields of a
// category owned by the caller.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, fields category.UpdateFields) (*CategoryView, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fields.Name) == "" {
		return nil, invalid("name is required")
	}

	repo := s.store.Categories()
	if _, err := ownedCategory(ctx, repo, id, userID); err != nil {
		return nil, err
	}
	updated, err := repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return s.enrichCategory(ctx, *updated)
}

// RemoveCategory deletes a category owned by the caller together with all
// of its items, in one transaction.
func (s *Service) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}

	var removed int64
	err = s.store.WithinTx(ctx, func(tx Store) error {
		if _, err := ownedCategory(ctx, tx.Categories(), id, userID); err != nil {
			return err
		}
		n, err := tx.Items().DeleteByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("deleting category items: %w", err)
		}
		if err := tx.Categories().Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting category: %w", err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("category removed", "categoryId", id, "itemsRemoved", removed)
	return nil
}

// GenerateCategoryUploadURL issues an upload slot for a category image.
func (s *Service) GenerateCategoryUploadURL(ctx context.Context) (*blob.Upload, error) {
	return s.generateUploadURL(ctx)
}

func (s *Service) enrichCategories(ctx context.Context, cats []category.Category) ([]CategoryView, error) {
	views := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		v, err := s.enrichCategory(ctx, c)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *Service) enrichCategory(ctx context.Context, c category.Category) (*CategoryView, error) {
	imageURL, err := s.resolveURL(ctx, c.ImageID)
	if err != nil {
		return nil, err
	}
	bannerURL, err := s.resolveURL(ctx, c.BannerID)
	if err != nil {
		return nil, err
	}
	return &CategoryView{Category: c, ImageURL: imageURL, BannerURL: bannerURL}, nil
}
