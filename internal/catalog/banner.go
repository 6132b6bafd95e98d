package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/banner"
	"github.com/redeinformatica/vitrine/internal/blob"
)

// GetBanner returns the caller's banner, or nil when there is none or the
// caller is anonymous.
func (s *Service) GetBanner(ctx context.Context) (*BannerView, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, nil
	}
	b, err := s.store.Banners().GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, banner.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading banner: %w", err)
	}
	return s.enrichBanner(ctx, b)
}

// GetPublicBanner returns the oldest banner in the store regardless of its
// owner, or nil when there is none.
func (s *Service) GetPublicBanner(ctx context.Context) (*BannerView, error) {
	b, err := s.store.Banners().First(ctx)
	if err != nil {
		if errors.Is(err, banner.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading banner: %w", err)
	}
	return s.enrichBanner(ctx, b)
}

// CreateBanner replaces the caller's banner with one showing imageID.
// The delete and insert share a transaction; a concurrent replace that wins
// the unique index surfaces as banner.ErrDuplicate.
func (s *Service) CreateBanner(ctx context.Context, imageID string) (uuid.UUID, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(imageID) == "" {
		return uuid.Nil, invalid("imageId is required")
	}

	b := &banner.Banner{ImageID: imageID, UserID: userID}
	err = s.store.WithinTx(ctx, func(tx Store) error {
		if _, err := tx.Banners().DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("deleting previous banner: %w", err)
		}
		if err := tx.Banners().Create(ctx, b); err != nil {
			if errors.Is(err, banner.ErrDuplicate) {
				return err
			}
			return fmt.Errorf("creating banner: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return b.ID, nil
}

// RemoveBanner deletes the caller's banner if there is one.
func (s *Service) RemoveBanner(ctx context.Context) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.store.Banners().DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting banner: %w", err)
	}
	return nil
}

// GenerateBannerUploadURL issues an upload slot for a banner image.
func (s *Service) GenerateBannerUploadURL(ctx context.Context) (*blob.Upload, error) {
	return s.generateUploadURL(ctx)
}

func (s *Service) enrichBanner(ctx context.Context, b *banner.Banner) (*BannerView, error) {
	u, err := s.resolveURL(ctx, &b.ImageID)
	if err != nil {
		return nil, err
	}
	return &BannerView{Banner: *b, ImageURL: u}, nil
}
