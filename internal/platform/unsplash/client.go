// Package unsplash implements the image-search provider contract against
// the Unsplash photo API.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
)

// ProviderName is the registry key for this provider.
const ProviderName = "unsplash"

const defaultBaseURL = "https://api.unsplash.com"

// Client implements generation.ImageSearcher using the Unsplash search
// endpoint.
type Client struct {
	logger    *slog.Logger
	http      *http.Client
	baseURL   string
	accessKey string
}

// NewClient creates an Unsplash image client.
func NewClient(logger *slog.Logger, accessKey string) *Client {
	return &Client{
		logger: logger,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   defaultBaseURL,
		accessKey: accessKey,
	}
}

// WithBaseURL redirects API calls, primarily for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Name returns the registry key.
func (c *Client) Name() string {
	return ProviderName
}

// Available reports whether an access key is configured.
func (c *Client) Available() bool {
	return c.accessKey != ""
}

// searchResponse mirrors the fields of the Unsplash search payload that
// we consume. Unsplash scores are not exposed; rank order stands in.
type searchResponse struct {
	Results []struct {
		Width          int    `json:"width"`
		Height         int    `json:"height"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

// Search queries Unsplash for the keyword and maps the hits to
// ImageResults ordered descending by relevance.
func (c *Client) Search(ctx context.Context, keyword string, limit int) ([]domain.ImageResult, error) {
	if !c.Available() {
		return nil, generation.NewProviderError(ProviderName, generation.KindAuth,
			errors.New("unsplash access key not configured"))
	}
	if limit <= 0 {
		limit = 5
	}

	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=%d",
		c.baseURL, url.QueryEscape(keyword), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, generation.NewProviderError(ProviderName, generation.KindUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decoding
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, generation.NewProviderError(ProviderName, generation.KindAuth,
			fmt.Errorf("unsplash returned status %d", resp.StatusCode))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, generation.NewProviderError(ProviderName, generation.KindRateLimited,
			fmt.Errorf("unsplash returned status %d", resp.StatusCode))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, generation.NewProviderError(ProviderName, generation.KindClient,
			fmt.Errorf("unsplash returned status %d", resp.StatusCode))
	default:
		return nil, generation.NewProviderError(ProviderName, generation.KindUnavailable,
			fmt.Errorf("unsplash returned status %d", resp.StatusCode))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, generation.NewProviderError(ProviderName, generation.KindUnavailable,
			fmt.Errorf("failed to decode unsplash response: %w", err))
	}

	images := make([]domain.ImageResult, 0, len(payload.Results))
	for i, photo := range payload.Results {
		images = append(images, domain.ImageResult{
			URL:         photo.URLs.Regular,
			AltText:     photo.AltDescription,
			Attribution: fmt.Sprintf("Photo by %s on Unsplash", photo.User.Name),
			Relevance:   float64(len(payload.Results)-i) / float64(len(payload.Results)),
			Width:       photo.Width,
			Height:      photo.Height,
		})
	}
	domain.SortImagesByRelevance(images)

	c.logger.DebugContext(ctx, "unsplash search complete",
		"keyword", keyword,
		"results", len(images))

	return images, nil
}
