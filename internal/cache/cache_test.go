package cache

import (
	"testing"
	"time"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		FocusKeyword:    "standing desk",
		RelatedKeywords: []string{"ergonomics", "home office"},
		SearchIntent:    domain.IntentInformational,
		ContentType:     domain.ContentTypeHowTo,
		Locale:          domain.Locale{Code: "en_US"},
		Author:          domain.AuthorPersona{Name: "Dana Whitfield"},
		WordCountMin:    800,
		WordCountMax:    1200,
		ContactURL:      "https://uplift-labs.example/contact",
	}
}

func TestFingerprintStability(t *testing.T) {
	t.Parallel()

	a := sampleRequest()
	b := sampleRequest()
	assert.Equal(t, Fingerprint(a), Fingerprint(b), "identical requests must share a fingerprint")

	// Provider overrides are volatile and excluded.
	b.AIProvider = "openai"
	b.ImageProvider = "unsplash"
	assert.Equal(t, Fingerprint(a), Fingerprint(b), "provider overrides must not change the fingerprint")

	// Semantic fields are included.
	c := sampleRequest()
	c.FocusKeyword = "treadmill desk"
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))

	d := sampleRequest()
	d.WordCountMax = 1500
	assert.NotEqual(t, Fingerprint(a), Fingerprint(d))

	e := sampleRequest()
	e.Author.Name = "Someone Else"
	assert.NotEqual(t, Fingerprint(a), Fingerprint(e))
}

func TestResultCacheRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewResultCache(time.Hour, true)
	fp := Fingerprint(sampleRequest())
	resp := &domain.GenerationResponse{Title: "Standing Desk Guide", WordCount: 950}

	_, ok := c.Get(fp)
	assert.False(t, ok, "empty cache must miss")

	c.Put(fp, resp)

	got, ok := c.Get(fp)
	require.True(t, ok)
	assert.Equal(t, resp, got)

	c.Invalidate(fp)
	_, ok = c.Get(fp)
	assert.False(t, ok, "invalidated fingerprint must miss")
}

func TestResultCacheTTLExpiry(t *testing.T) {
	t.Parallel()

	c := NewResultCache(time.Minute, true)
	current := time.Unix(1700000000, 0)
	c.now = func() time.Time { return current }

	fp := "fp"
	c.Put(fp, &domain.GenerationResponse{Title: "t"})

	_, ok := c.Get(fp)
	assert.True(t, ok)

	// Just before expiry.
	current = current.Add(59 * time.Second)
	_, ok = c.Get(fp)
	assert.True(t, ok)

	// Past expiry the entry is gone and lazily removed.
	current = current.Add(2 * time.Second)
	_, ok = c.Get(fp)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestResultCacheDisabled(t *testing.T) {
	t.Parallel()

	c := NewResultCache(time.Hour, false)
	c.Put("fp", &domain.GenerationResponse{Title: "t"})

	_, ok := c.Get("fp")
	assert.False(t, ok, "disabled cache must always miss")
	assert.Zero(t, c.Len())
}

func TestResultCacheClear(t *testing.T) {
	t.Parallel()

	c := NewResultCache(time.Hour, true)
	c.Put("a", &domain.GenerationResponse{})
	c.Put("b", &domain.GenerationResponse{})
	require.Equal(t, 2, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestImageCacheKeying(t *testing.T) {
	t.Parallel()

	c := NewImageCache(time.Hour, true)
	images := []domain.ImageResult{{URL: "https://img.example/a.jpg", Relevance: 1}}

	c.Put("Standing Desk", "pexels", images)

	// Keyword lookup is case-insensitive; provider is part of the key.
	got, ok := c.Get("standing desk", "pexels")
	require.True(t, ok)
	assert.Equal(t, images, got)

	_, ok = c.Get("standing desk", "unsplash")
	assert.False(t, ok, "a different provider must have its own entry")

	c.Clear()
	_, ok = c.Get("standing desk", "pexels")
	assert.False(t, ok)
}

func TestImageCacheExpiry(t *testing.T) {
	t.Parallel()

	c := NewImageCache(time.Minute, true)
	current := time.Unix(1700000000, 0)
	c.now = func() time.Time { return current }

	c.Put("coffee", "pexels", []domain.ImageResult{{URL: "u"}})

	current = current.Add(2 * time.Minute)
	_, ok := c.Get("coffee", "pexels")
	assert.False(t, ok)
}
