package pricecache

import (
	"context"
	"sort"
	"sync"
	"time"

	"RiskRadar/internal/model"
	"RiskRadar/internal/provider"
)

// Staleness is the fixed maximum age of a cached series before a refetch.
const Staleness = time.Hour

type entry struct {
	series    *model.PriceSeries
	fetchedAt time.Time
}

// Cache is a fetch-through store of price series keyed by (symbol, window).
//
// Expiry is time-based only. Concurrent callers hitting the same stale key
// may each trigger a provider fetch; the last write wins. Entries are small
// and fetches are idempotent reads, so the race is tolerated rather than
// serialized.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	source  provider.Provider
	now     func() time.Time
}

// New creates a cache backed by the given provider.
func New(source provider.Provider) *Cache {
	return NewWithClock(source, time.Now)
}

// NewWithClock substitutes the time source, for tests.
func NewWithClock(source provider.Provider, now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		source:  source,
		now:     now,
	}
}

func key(symbol string, window model.Window) string {
	return symbol + "|" + string(window)
}

// Get returns the cached series when younger than Staleness, otherwise
// fetches a fresh one, stores it and returns it. The provider call happens
// outside the lock.
func (c *Cache) Get(ctx context.Context, symbol string, window model.Window) (*model.PriceSeries, error) {
	k := key(symbol, window)

	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()
	if ok && c.now().Sub(e.fetchedAt) <= Staleness {
		return e.series, nil
	}

	series, err := c.source.Fetch(ctx, symbol, window)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[k] = entry{series: series, fetchedAt: c.now()}
	c.mu.Unlock()
	return series, nil
}

// Clear empties the entire cache immediately. Administrative; expiry alone
// keeps the data correct.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Stats describes the cache contents for observability.
type Stats struct {
	CacheSize      int      `json:"cacheSize"`
	CacheEntries   []string `json:"cacheEntries"`
	CacheTimeoutMs int64    `json:"cacheTimeoutMs"`
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return Stats{
		CacheSize:      len(keys),
		CacheEntries:   keys,
		CacheTimeoutMs: Staleness.Milliseconds(),
	}
}
