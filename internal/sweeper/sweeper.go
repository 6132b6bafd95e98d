// Package sweeper periodically removes items left behind by a category that
// no longer exists.
package sweeper

import (
	"context"
	"log/slog"
	"time"
)

// OrphanDeleter deletes items whose category is gone. item.Repository
// satisfies it.
type OrphanDeleter interface {
	DeleteOrphans(ctx context.Context) (int64, error)
}

// Sweeper runs DeleteOrphans on a fixed interval.
type Sweeper struct {
	items    OrphanDeleter
	interval time.Duration
}

// New creates a new Sweeper.
func New(items OrphanDeleter, interval time.Duration) *Sweeper {
	return &Sweeper{
		items:    items,
		interval: interval,
	}
}

// Start begins the sweep loop. It blocks until ctx is cancelled. A
// non-positive interval disables the loop.
func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		slog.Info("sweeper disabled")
		return
	}
	slog.Info("sweeper started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("sweeper: failed to delete orphaned items", "error", err)
			}
		}
	}
}

// SweepOnce deletes orphaned items once and returns how many were removed.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	n, err := s.items.DeleteOrphans(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("sweeper: removed orphaned items", "count", n)
	} else {
		slog.Debug("sweeper: no orphaned items")
	}
	return n, nil
}
