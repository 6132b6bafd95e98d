package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker tracks signed-out session ids until their tokens expire.
type Revoker interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// MemoryRevoker keeps revoked ids in-memory (single instance only).
type MemoryRevoker struct {
	mu  sync.Mutex
	ids map[string]time.Time
	now func() time.Time
}

// NewMemoryRevoker builds an in-memory revoker.
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		ids: make(map[string]time.Time),
		now: time.Now,
	}
}

// Revoke marks a session as revoked for ttl.
func (r *MemoryRevoker) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	r.ids[sessionID] = r.now().Add(ttl)
	r.mu.Unlock()
	return nil
}

// IsRevoked checks if the session is revoked, dropping expired entries.
func (r *MemoryRevoker) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.ids[sessionID]
	if !ok {
		return false, nil
	}
	if r.now().After(expiry) {
		delete(r.ids, sessionID)
		return false, nil
	}
	return true, nil
}

// RedisRevoker stores revoked ids in Redis with TTL so every replica sees them.
type RedisRevoker struct {
	client redis.UniversalClient
}

// NewRedisRevoker builds a Redis-backed revoker.
func NewRedisRevoker(client redis.UniversalClient) *RedisRevoker {
	return &RedisRevoker{client: client}
}

// Revoke marks a session as revoked until expiry.
func (r *RedisRevoker) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKey(sessionID), "1", ttl).Err()
}

// IsRevoked checks if the session is revoked.
func (r *RedisRevoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func revocationKey(sessionID string) string {
	return "vitrine:revoked:" + sessionID
}
