// Package memo caches computed insight snapshots keyed by dataset version.
//
// The cache is not correctness-relevant: a miss just triggers a recompute.
// It exists so repeated reads between ingest batches reuse one computation
// pass instead of re-aggregating an unchanged dataset.
package memo

import (
	"sync"

	"github.com/okian/joblens/internal/domain/insights"
)

// Cache stores insight snapshots by version.
type Cache interface {
	// Get returns the snapshot for version, if cached.
	Get(version int64) (insights.Insights, bool)

	// Put stores the snapshot for version, evicting the oldest entries when
	// the cache is full.
	Put(version int64, snapshot insights.Insights)

	// Size returns the current number of cached snapshots.
	Size() int
}

// inMemoryCache implements Cache with oldest-version eviction. Versions are
// monotonic, so the smallest cached version is always the stalest entry.
type inMemoryCache struct {
	mu      sync.RWMutex
	entries map[int64]insights.Insights
	maxSize int
}

// NewInMemoryCache creates a cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: 4, // a handful of versions covers read bursts between batches
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[int64]insights.Insights, c.maxSize)
	return c
}

func (c *inMemoryCache) Get(version int64) (insights.Insights, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.entries[version]
	return snapshot, ok
}

func (c *inMemoryCache) Put(version int64, snapshot insights.Insights) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[version]; !exists && c.maxSize > 0 {
		for len(c.entries) >= c.maxSize {
			c.evictOldest()
		}
	}
	c.entries[version] = snapshot
}

func (c *inMemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldest removes the smallest cached version. Must hold c.mu.
func (c *inMemoryCache) evictOldest() {
	var oldest int64
	first := true
	for v := range c.entries {
		if first || v < oldest {
			oldest = v
			first = false
		}
	}
	if !first {
		delete(c.entries, oldest)
	}
}
