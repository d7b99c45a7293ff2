package source

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
	"github.com/LinFrancis/escuela-aucca/internal/survey"
)

// CacheStats is a snapshot of the cache counters
type CacheStats struct {
	Entries  int     `json:"entries"`
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
}

// Cache memoizes loaded tables by Source.Key for the lifetime of the process.
// Concurrent misses on the same key share one load, and failed loads are not
// stored.
type Cache struct {
	group   singleflight.Group
	mutex   sync.RWMutex
	entries map[string]*survey.Table
	hits    int64
	misses  int64
	logger  *slog.Logger
	metrics *infrastructure.DashboardMetrics
}

// NewCache creates an empty cache. metrics may be nil.
func NewCache(logger *slog.Logger, metrics *infrastructure.DashboardMetrics) *Cache {
	return &Cache{
		entries: make(map[string]*survey.Table),
		logger:  infrastructure.WithComponent(logger, "source_cache"),
		metrics: metrics,
	}
}

// Load returns the cached table of src, loading it on the first call.
func (c *Cache) Load(ctx context.Context, src Source) (*survey.Table, error) {
	key := src.Key()

	if table, ok := c.get(key); ok {
		c.metrics.RecordCacheLookup(ctx, true)
		c.logger.DebugContext(ctx, "cache hit", slog.String("key", key))
		return table, nil
	}
	c.metrics.RecordCacheLookup(ctx, false)

	// The load is shared between callers, so it must outlive the first
	// caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		if table, ok := c.peek(key); ok {
			return table, nil
		}
		return c.fetch(loadCtx, src)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*survey.Table), nil
	}
}

func (c *Cache) fetch(ctx context.Context, src Source) (*survey.Table, error) {
	key := src.Key()
	start := time.Now()

	c.logger.InfoContext(ctx, "loading survey source",
		slog.String("source", src.Kind()),
		slog.String("key", key))

	table, err := src.Load(ctx)
	duration := time.Since(start)
	c.metrics.RecordSourceFetch(ctx, src.Kind(), err, duration)

	if err != nil {
		c.logger.ErrorContext(ctx, "survey source failed",
			slog.String("source", src.Kind()),
			slog.String("key", key),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, err
	}

	c.mutex.Lock()
	c.entries[key] = table
	c.mutex.Unlock()

	c.logger.InfoContext(ctx, "survey source loaded",
		slog.String("source", src.Kind()),
		slog.String("key", key),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)),
		slog.Duration("duration", duration))

	return table, nil
}

func (c *Cache) get(key string) (*survey.Table, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	table, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return table, true
}

func (c *Cache) peek(key string) (*survey.Table, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	table, ok := c.entries[key]
	return table, ok
}

// Stats returns cache statistics
func (c *Cache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	total := c.hits + c.misses
	ratio := float64(0)
	if total > 0 {
		ratio = float64(c.hits) / float64(total)
	}
	return CacheStats{
		Entries:  len(c.entries),
		Hits:     c.hits,
		Misses:   c.misses,
		HitRatio: ratio,
	}
}
