package sweeper_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeinformatica/vitrine/internal/sweeper"
)

// --- Mock OrphanDeleter ---

type mockItems struct {
	mu              sync.Mutex
	deleteOrphansFn func(ctx context.Context) (int64, error)
	calls           int
}

func (m *mockItems) DeleteOrphans(ctx context.Context) (int64, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.deleteOrphansFn != nil {
		return m.deleteOrphansFn(ctx)
	}
	return 0, nil
}

func (m *mockItems) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestSweepOnce_ReturnsCount(t *testing.T) {
	items := &mockItems{deleteOrphansFn: func(context.Context) (int64, error) { return 4, nil }}
	s := sweeper.New(items, time.Minute)

	n, err := s.SweepOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, 1, items.getCalls())
}

func TestSweepOnce_PropagatesError(t *testing.T) {
	boom := errors.New("db down")
	items := &mockItems{deleteOrphansFn: func(context.Context) (int64, error) { return 0, boom }}
	s := sweeper.New(items, time.Minute)

	n, err := s.SweepOnce(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, n)
}

func TestStart_SweepsOnEachTick(t *testing.T) {
	items := &mockItems{}
	s := sweeper.New(items, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return items.getCalls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}

func TestStart_KeepsRunningAfterError(t *testing.T) {
	items := &mockItems{deleteOrphansFn: func(context.Context) (int64, error) { return 0, errors.New("transient") }}
	s := sweeper.New(items, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	assert.Eventually(t, func() bool { return items.getCalls() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestStart_ZeroIntervalReturnsImmediately(t *testing.T) {
	items := &mockItems{}
	s := sweeper.New(items, 0)

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled sweeper should return at once")
	}
	assert.Zero(t, items.getCalls())
}
