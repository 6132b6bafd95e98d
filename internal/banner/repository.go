package banner

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a banner record is not found.
var ErrNotFound = errors.New("banner not found")

// ErrDuplicate is returned when the user already has a banner.
var ErrDuplicate = errors.New("user already has a banner")

// Repository provides operations on the banners table.
type Repository interface {
	Create(ctx context.Context, b *Banner) error
	GetByUser(ctx context.Context, userID uuid.UUID) (*Banner, error)
	// First returns the oldest banner of any user.
	First(ctx context.Context) (*Banner, error)
	// DeleteByUser removes the user's banner. It reports whether one existed.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (bool, error)
}
