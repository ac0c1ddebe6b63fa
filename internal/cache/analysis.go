package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/logging"
	"sentiment-pulse/internal/metrics"
)

// MaxRetention bounds how long any snapshot is kept, whatever maxAge a
// caller later asks for.
const MaxRetention = time.Hour

// AnalysisCache stores classified post snapshots. The freshness bound is a
// lookup parameter so one entry can serve callers with different TTLs.
type AnalysisCache interface {
	Get(ctx context.Context, key string, maxAge time.Duration) (*domain.PulseSnapshot, bool)
	Set(ctx context.Context, key string, snap *domain.PulseSnapshot)
}

// Key identifies a snapshot by the parameters that produced it.
func Key(ticker string, limit int) string {
	return fmt.Sprintf("pulse:%s:%d", ticker, limit)
}

func fresh(clock clockwork.Clock, snap *domain.PulseSnapshot, maxAge time.Duration) bool {
	return snap != nil && clock.Since(snap.FetchedAt) < maxAge
}

// MemoryAnalysisCache is a process-local AnalysisCache.
type MemoryAnalysisCache struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	entries map[string]*domain.PulseSnapshot
	metrics *metrics.Metrics
}

func NewMemoryAnalysisCache(clock clockwork.Clock, m *metrics.Metrics) *MemoryAnalysisCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryAnalysisCache{
		clock:   clock,
		entries: make(map[string]*domain.PulseSnapshot),
		metrics: m,
	}
}

func (c *MemoryAnalysisCache) Get(_ context.Context, key string, maxAge time.Duration) (*domain.PulseSnapshot, bool) {
	c.mu.RLock()
	snap := c.entries[key]
	c.mu.RUnlock()

	hit := fresh(c.clock, snap, maxAge)
	c.metrics.CacheLookup("memory", hit)
	if !hit {
		return nil, false
	}
	return snap, true
}

// Set stores snap and drops entries older than MaxRetention.
func (c *MemoryAnalysisCache) Set(_ context.Context, key string, snap *domain.PulseSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.entries {
		if !fresh(c.clock, v, MaxRetention) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = snap
}

func (c *MemoryAnalysisCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisAnalysisCache shares snapshots between processes. Read and write
// failures are logged and reported as misses.
type RedisAnalysisCache struct {
	rdb     RedisClient
	clock   clockwork.Clock
	metrics *metrics.Metrics
}

func NewRedisAnalysisCache(rdb RedisClient, clock clockwork.Clock, m *metrics.Metrics) *RedisAnalysisCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RedisAnalysisCache{rdb: rdb, clock: clock, metrics: m}
}

func (c *RedisAnalysisCache) Get(ctx context.Context, key string, maxAge time.Duration) (*domain.PulseSnapshot, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warnf("redis analysis cache get %s: %v", key, err)
		}
		c.metrics.CacheLookup("redis", false)
		return nil, false
	}

	var snap domain.PulseSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logging.Warnf("redis analysis cache decode %s: %v", key, err)
		c.metrics.CacheLookup("redis", false)
		return nil, false
	}

	hit := fresh(c.clock, &snap, maxAge)
	c.metrics.CacheLookup("redis", hit)
	if !hit {
		return nil, false
	}
	return &snap, true
}

func (c *RedisAnalysisCache) Set(ctx context.Context, key string, snap *domain.PulseSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		logging.Warnf("redis analysis cache encode %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, MaxRetention).Err(); err != nil {
		logging.Warnf("redis analysis cache set %s: %v", key, err)
	}
}
