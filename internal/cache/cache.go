// Package cache provides a TTL'd in-memory cache for pricing artifacts. The
// analytics engine itself holds no process-wide state; callers that want
// memoized Greeks construct a cache here, key it with pricing.Inputs.Key()
// and own its lifetime.
package cache

import (
	"sync"
	"time"
)

// entry pairs a cached value with its expiry deadline.
type entry struct {
	value   interface{}
	expires time.Time
}

// TTLCache is a concurrency-safe cache with per-cache expiry.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a TTLCache whose entries expire after ttl.
func New(ttl time.Duration) *TTLCache {
	return &TTLCache{
		entries: make(map[uint64]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *TTLCache) Get(key uint64) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, resetting its expiry.
func (c *TTLCache) Set(key uint64, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Purge drops all expired entries.
func (c *TTLCache) Purge() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of stored entries, including any not yet purged.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
