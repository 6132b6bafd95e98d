package banner

import (
	"time"

	"github.com/google/uuid"
)

// Banner represents a row in the banners table. A user has at most one.
type Banner struct {
	ID        uuid.UUID
	ImageID   string
	UserID    uuid.UUID
	CreatedAt time.Time
}
