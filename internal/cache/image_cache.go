package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// ImageCache stores image-search results keyed by (keyword, provider)
// with the same TTL policy as the result cache, independent of it.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]imageEntry
	ttl     time.Duration
	enabled bool

	now func() time.Time
}

type imageEntry struct {
	images    []domain.ImageResult
	expiresAt time.Time
}

// NewImageCache creates an ImageCache with the given TTL. A zero or
// negative TTL means entries never expire.
func NewImageCache(ttl time.Duration, enabled bool) *ImageCache {
	return &ImageCache{
		entries: make(map[string]imageEntry),
		ttl:     ttl,
		enabled: enabled,
		now:     time.Now,
	}
}

func imageKey(keyword, provider string) string {
	return strings.ToLower(keyword) + "|" + provider
}

// Get returns the cached results for (keyword, provider), if present and
// unexpired.
func (c *ImageCache) Get(keyword, provider string) ([]domain.ImageResult, bool) {
	if !c.enabled {
		return nil, false
	}

	key := imageKey(keyword, provider)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		if current, still := c.entries[key]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.images, true
}

// Put stores the results under (keyword, provider).
func (c *ImageCache) Put(keyword, provider string, images []domain.ImageResult) {
	if !c.enabled {
		return
	}

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[imageKey(keyword, provider)] = imageEntry{images: images, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]imageEntry)
	c.mu.Unlock()
}
