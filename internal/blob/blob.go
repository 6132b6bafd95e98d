// Package blob is the storage facade for catalog images. Clients upload
// bytes straight to a presigned URL and keep only the returned storage id;
// readers resolve that id to a short-lived download URL.
package blob

import (
	"context"
	"time"
)

// Upload is a single-use upload slot.
type Upload struct {
	URL       string
	StorageID string
	ExpiresAt time.Time
}

// Store issues upload slots and resolves storage ids to fetchable URLs.
type Store interface {
	IssueUploadURL(ctx context.Context) (*Upload, error)
	// ResolveURL returns nil when the blob does not exist.
	ResolveURL(ctx context.Context, storageID string) (*string, error)
}
