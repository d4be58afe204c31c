// Package cache provides the small TTL-keyed caches used throughout the
// pipeline (SPEC_FULL.md §5, §9's "explicit Caches handle" design note).
// Caches are owned by the orchestrator, not process-wide globals, and are
// safe for concurrent use.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a generic, mutex-guarded cache with per-entry expiry.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// NewTTLCache creates a cache whose entries expire ttl after being set.
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with this cache's configured TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// InvalidateAll drops every cached entry.
func (c *TTLCache[V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len reports how many entries (expired or not) are currently stored; used
// only for diagnostics/tests.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// KeyFromParts builds a deterministic MD5-based cache key from an ordered
// list of string parts, matching the original source's
// `_generate_cache_key` convention (title/summary/country/sector, or
// concatenated batch entries).
func KeyFromParts(parts ...string) string {
	h := md5.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
