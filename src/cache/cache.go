package cache

import (
	"sync"
	"time"
)

// entry stores one cached value with expiry.
type entry[V any] struct {
	expiresAt time.Time
	value     V
}

// TTL caches values per key for a fixed duration. A zero TTL disables caching.
type TTL[V any] struct {
	TTL      time.Duration
	MaxItems int
	Now      func() time.Time

	mu    sync.RWMutex
	items map[string]entry[V]
}

func NewTTL[V any](ttl time.Duration, maxItems int) *TTL[V] {
	return &TTL[V]{
		TTL:      ttl,
		MaxItems: maxItems,
		Now:      time.Now,
		items:    make(map[string]entry[V]),
	}
}

// Get returns the value for key if present and not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	if c.TTL <= 0 {
		return zero, false
	}

	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || !c.Now().Before(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, evicting expired and then arbitrary entries when
// the cache is over capacity.
func (c *TTL[V]) Set(key string, value V) {
	if c.TTL <= 0 {
		return
	}

	now := c.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[V]{expiresAt: now.Add(c.TTL), value: value}

	if c.MaxItems <= 0 || len(c.items) <= c.MaxItems {
		return
	}
	for k, v := range c.items {
		if !now.Before(v.expiresAt) {
			delete(c.items, k)
		}
	}
	for k := range c.items {
		if len(c.items) <= c.MaxItems {
			break
		}
		if k != key {
			delete(c.items, k)
		}
	}
}

// Delete removes key.
func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
