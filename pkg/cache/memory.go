// Package cache provides a generic in-memory cache with bounded size and
// TTL eviction, backed by an LRU.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is a thread-safe, bounded, TTL-evicting cache. It is a thin
// wrapper around an expirable LRU so callers get both a maximum entry
// count and a maximum entry age without composing two data structures.
type MemoryCache[K comparable, V any] struct {
	lru *lru.LRU[K, V]
}

// NewMemoryCache creates a cache holding at most size entries, each valid
// for ttl after it was last set. A size of 0 means unbounded.
func NewMemoryCache[K comparable, V any](size int, ttl time.Duration) *MemoryCache[K, V] {
	return &MemoryCache[K, V]{
		lru: lru.NewLRU[K, V](size, nil, ttl),
	}
}

// Get retrieves a value from the cache. ok is false if the key is absent or
// its entry has expired.
func (c *MemoryCache[K, V]) Get(key K) (value V, ok bool) {
	return c.lru.Get(key)
}

// Set stores a value in the cache, resetting its TTL.
func (c *MemoryCache[K, V]) Set(key K, value V) {
	c.lru.Add(key, value)
}

// Delete removes a value from the cache.
func (c *MemoryCache[K, V]) Delete(key K) {
	c.lru.Remove(key)
}

// Clear removes all entries from the cache.
func (c *MemoryCache[K, V]) Clear() {
	c.lru.Purge()
}

// Len returns the number of live entries currently in the cache.
func (c *MemoryCache[K, V]) Len() int {
	return c.lru.Len()
}

// Close releases the cache's background eviction resources. It satisfies
// io.Closer so caches can be registered with the shutdown manager's drain
// phase alongside other long-lived collaborators.
func (c *MemoryCache[K, V]) Close() error {
	c.lru.Purge()
	return nil
}
