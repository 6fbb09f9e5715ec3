// Package cache provides time-boxed caches for provider responses.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached provider response stays fresh.
const DefaultTTL = 30 * time.Minute

// Entry is a cached value together with the time it was captured.
type Entry[T any] struct {
	Value    T
	StoredAt time.Time
}

// MemoryCache is an in-process cache keyed by string. An entry is fresh while
// now - StoredAt < ttl; stale entries are never purged, only overwritten by the next Set.
type MemoryCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates an empty cache. If ttl is 0 or negative, DefaultTTL is used.
func NewMemoryCache[T any](ttl time.Duration) *MemoryCache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache[T]{
		entries: make(map[string]Entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *MemoryCache[T]) WithClock(now func() time.Time) *MemoryCache[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the cached value for key if it is still fresh.
func (c *MemoryCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.StoredAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.Value, true
}

// Set stores value under key, stamped with the current time.
func (c *MemoryCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry[T]{Value: value, StoredAt: c.now()}
}

// Entry returns the raw entry for key regardless of freshness.
func (c *MemoryCache[T]) Entry(key string) (Entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Len reports the number of stored entries, stale ones included.
func (c *MemoryCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
