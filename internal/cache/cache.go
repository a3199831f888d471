// Package cache provides a TTL map with lazy expiry eviction, used for
// name-resolution listings and the workspace metadata snapshot.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is applied to every entry at write time.
const DefaultTTL = 5 * time.Minute

type entry struct {
	payload any
	expiry  time.Time
}

// Cache maps string keys to payloads with a fixed TTL. A write always
// overwrites and resets the expiry; expired entries are evicted on the
// next lookup, never by a background sweep.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	now func() time.Time // swapped out in tests
}

// New creates a Cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the payload for key, or false when absent or expired.
// An expired entry is removed as a side effect.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiry) {
		delete(c.entries, key)
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key, overwriting any previous entry and
// resetting its expiry.
func (c *Cache) Set(key string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{payload: payload, expiry: c.now().Add(c.ttl)}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetAs returns the payload for key as a T. A payload of the wrong type
// counts as a miss.
func GetAs[T any](c *Cache, key string) (T, bool) {
	v, ok := c.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
