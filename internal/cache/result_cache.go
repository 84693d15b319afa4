package cache

import (
	"sync"
	"time"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// ResultCache stores generation responses under request fingerprints with
// a fixed time-to-live. A disabled cache misses on every read and drops
// every write.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]resultEntry
	ttl     time.Duration
	enabled bool

	// now is overridable in tests to exercise expiry without sleeping.
	now func() time.Time
}

type resultEntry struct {
	response  *domain.GenerationResponse
	expiresAt time.Time
}

// NewResultCache creates a ResultCache with the given TTL. A zero or
// negative TTL means entries never expire.
func NewResultCache(ttl time.Duration, enabled bool) *ResultCache {
	return &ResultCache{
		entries: make(map[string]resultEntry),
		ttl:     ttl,
		enabled: enabled,
		now:     time.Now,
	}
}

// Get returns the cached response for the fingerprint, if present and
// unexpired. Expired entries are removed lazily on read.
func (c *ResultCache) Get(fingerprint string) (*domain.GenerationResponse, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[fingerprint]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another writer may have
		// refreshed the entry.
		if current, still := c.entries[fingerprint]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, fingerprint)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.response, true
}

// Put stores the response under the fingerprint, replacing any previous
// entry. Concurrent writers for the same fingerprint race benignly; the
// last write wins.
func (c *ResultCache) Put(fingerprint string, response *domain.GenerationResponse) {
	if !c.enabled {
		return
	}

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[fingerprint] = resultEntry{response: response, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Invalidate removes one fingerprint's entry.
func (c *ResultCache) Invalidate(fingerprint string) {
	c.mu.Lock()
	delete(c.entries, fingerprint)
	c.mu.Unlock()
}

// Clear removes every entry. Best effort by design: writes racing the
// sweep may land after it and survive.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]resultEntry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, counting expired ones not
// yet swept.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
