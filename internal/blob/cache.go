package blob

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedURL struct {
	url     string
	expires time.Time
}

// CachedStore memoises resolved download URLs so list pages do not stat
// every image on every request. Misses are never cached, so a blob that
// appears later resolves on the next read.
type CachedStore struct {
	next  Store
	ttl   time.Duration
	cache *lru.Cache[string, cachedURL]
	now   func() time.Time
}

// NewCachedStore wraps next. Entries live for ttl, which must stay below the
// lifetime of the presigned URLs next hands out.
func NewCachedStore(next Store, size int, ttl time.Duration) (*CachedStore, error) {
	cache, err := lru.New[string, cachedURL](size)
	if err != nil {
		return nil, fmt.Errorf("create url cache: %w", err)
	}
	return &CachedStore{
		next:  next,
		ttl:   ttl,
		cache: cache,
		now:   time.Now,
	}, nil
}

// IssueUploadURL is never cached.
func (c *CachedStore) IssueUploadURL(ctx context.Context) (*Upload, error) {
	return c.next.IssueUploadURL(ctx)
}

// ResolveURL serves from cache while the entry is fresh.
func (c *CachedStore) ResolveURL(ctx context.Context, storageID string) (*string, error) {
	if entry, ok := c.cache.Get(storageID); ok {
		if c.now().Before(entry.expires) {
			u := entry.url
			return &u, nil
		}
		c.cache.Remove(storageID)
	}

	u, err := c.next.ResolveURL(ctx, storageID)
	if err != nil || u == nil {
		return u, err
	}

	c.cache.Add(storageID, cachedURL{url: *u, expires: c.now().Add(c.ttl)})
	return u, nil
}
