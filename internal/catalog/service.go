// Package catalog is the access layer over categories, items and banners.
// It resolves the caller, enforces per-user ownership and referential rules,
// and enriches records with download URLs for their images.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/blob"
)

// Service implements the catalog operations.
type Service struct {
	store    Store
	identity IdentityResolver
	blobs    blob.Store
}

// NewService creates a new catalog Service.
func NewService(store Store, identity IdentityResolver, blobs blob.Store) *Service {
	return &Service{
		store:    store,
		identity: identity,
		blobs:    blobs,
	}
}

// requireUser returns the caller or ErrUnauthenticated.
func (s *Service) requireUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}
	return userID, nil
}

// generateUploadURL issues a blob upload slot to a signed-in caller.
func (s *Service) generateUploadURL(ctx context.Context) (*blob.Upload, error) {
	if _, err := s.requireUser(ctx); err != nil {
		return nil, err
	}
	up, err := s.blobs.IssueUploadURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("issuing upload url: %w", err)
	}
	return up, nil
}

// resolveURL maps an optional blob reference to a download URL.
func (s *Service) resolveURL(ctx context.Context, ref *string) (*string, error) {
	if ref == nil {
		return nil, nil
	}
	u, err := s.blobs.ResolveURL(ctx, *ref)
	if err != nil {
		return nil, fmt.Errorf("resolving image url: %w", err)
	}
	return u, nil
}
