// Package cache memoizes the admin statistics aggregate.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/metrics"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

const (
	StatsKey   = "admin_statistics"
	DefaultTTL = 5 * time.Minute
)

// ErrMiss is returned by a Backend when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Backend stores opaque values with a time to live.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ComputeFunc produces fresh statistics, normally store.Statistics.
type ComputeFunc func(ctx context.Context) (*models.Statistics, error)

// StatsCache serves statistics from the backend until the entry expires.
// There is no invalidation on writes; concurrent recomputations each store
// their result and the last one wins.
type StatsCache struct {
	backend Backend
	ttl     time.Duration
	compute ComputeFunc
}

func NewStatsCache(backend Backend, ttl time.Duration, compute ComputeFunc) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StatsCache{backend: backend, ttl: ttl, compute: compute}
}

func (c *StatsCache) Get(ctx context.Context) (*models.Statistics, error) {
	raw, err := c.backend.Get(ctx, StatsKey)
	switch {
	case err == nil:
		var stats models.Statistics
		if err := json.Unmarshal(raw, &stats); err == nil {
			metrics.RecordStatsCache(true)
			return &stats, nil
		}
		slog.Warn("Discarding unreadable cached statistics", "key", StatsKey)
	case !errors.Is(err, ErrMiss):
		slog.Warn("Statistics cache read failed", "key", StatsKey, "error", err)
	}
	metrics.RecordStatsCache(false)

	stats, err := c.compute(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}
	if err := c.backend.Set(ctx, StatsKey, payload, c.ttl); err != nil {
		slog.Warn("Statistics cache write failed", "key", StatsKey, "error", err)
	}
	return stats, nil
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process Backend.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory uses time.Now when now is nil.
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{entries: make(map[string]memoryEntry), now: now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, ErrMiss
	}
	return e.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expires: m.now().Add(ttl)}
	return nil
}
