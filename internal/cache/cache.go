// Package cache provides a bounded in-process TTL cache with an explicit
// lifecycle: callers construct it, own it, and decide whether to run the
// background sweeper. Expired entries are also dropped lazily on access.
package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL applies when Set is called with a non-positive TTL.
const DefaultTTL = time.Hour

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a size-bounded TTL map. Safe for concurrent use.
type Cache[V any] struct {
	maxEntries int
	defaultTTL time.Duration

	mu      sync.Mutex
	entries map[string]entry[V]
}

// New creates a cache holding at most maxEntries values. When full, Set
// evicts the entry closest to expiry. maxEntries <= 0 means unbounded.
func New[V any](maxEntries int, defaultTTL time.Duration) *Cache[V] {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache[V]{
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		entries:    make(map[string]entry[V]),
	}
}

// Get returns the cached value if present and unexpired. An expired entry is
// deleted on the spot.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. A non-positive ttl uses the cache default.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictSoonestLocked()
	}
	c.entries[key] = entry[V]{value: value, expires: time.Now().Add(ttl)}
}

// evictSoonestLocked removes the entry closest to expiry. Expired entries
// sort first, so they are always reclaimed before live ones.
func (c *Cache[V]) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	first := true
	for key, e := range c.entries {
		if first || e.expires.Before(soonest) {
			victim = key
			soonest = e.expires
			first = false
		}
	}
	if !first {
		delete(c.entries, victim)
	}
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len reports the number of entries, expired ones included until swept.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeper removes expired entries every interval until ctx is
// cancelled. Run it in its own goroutine.
func (c *Cache[V]) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache[V]) sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, key)
		}
	}
}

// Key joins parts into a cache key.
func Key(parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ":"
		}
		out += p
	}
	return out
}
