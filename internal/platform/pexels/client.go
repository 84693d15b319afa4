// Package pexels implements the image-search provider contract against
// the Pexels photo API.
package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
)

// ProviderName is the registry key for this provider.
const ProviderName = "pexels"

const defaultBaseURL = "https://api.pexels.com/v1"

// Client implements generation.ImageSearcher using the Pexels search
// endpoint.
type Client struct {
	logger  *slog.Logger
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Pexels image client.
func NewClient(logger *slog.Logger, apiKey string) *Client {
	return &Client{
		logger: logger,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
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

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// searchResponse mirrors the fields of the Pexels search payload that we
// consume.
type searchResponse struct {
	Photos []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		Photographer string `json:"photographer"`
		Alt          string `json:"alt"`
		Src          struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// Search queries Pexels for the keyword and maps the hits to ImageResults
// ordered descending by relevance. Pexels returns hits ranked best-first;
// the relevance score is derived from that rank.
func (c *Client) Search(ctx context.Context, keyword string, limit int) ([]domain.ImageResult, error) {
	if !c.Available() {
		return nil, generation.NewProviderError(ProviderName, generation.KindAuth,
			errors.New("pexels API key not configured"))
	}
	if limit <= 0 {
		limit = 5
	}

	endpoint := fmt.Sprintf("%s/search?query=%s&per_page=%d",
		c.baseURL, url.QueryEscape(keyword), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pexels request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, generation.NewProviderError(ProviderName, generation.KindUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp.StatusCode, resp.Header); err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, generation.NewProviderError(ProviderName, generation.KindUnavailable,
			fmt.Errorf("failed to decode pexels response: %w", err))
	}

	images := make([]domain.ImageResult, 0, len(payload.Photos))
	for i, photo := range payload.Photos {
		images = append(images, domain.ImageResult{
			URL:         photo.Src.Large,
			AltText:     photo.Alt,
			Attribution: fmt.Sprintf("Photo by %s on Pexels", photo.Photographer),
			Relevance:   rankRelevance(i, len(payload.Photos)),
			Width:       photo.Width,
			Height:      photo.Height,
		})
	}
	domain.SortImagesByRelevance(images)

	c.logger.DebugContext(ctx, "pexels search complete",
		"keyword", keyword,
		"results", len(images))

	return images, nil
}

// rankRelevance maps a zero-based rank among n results to (0, 1].
func rankRelevance(rank, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n-rank) / float64(n)
}

// classifyStatus maps a non-200 HTTP status to the shared error taxonomy.
func classifyStatus(status int, header http.Header) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return generation.NewProviderError(ProviderName, generation.KindAuth,
			fmt.Errorf("pexels returned status %d", status))
	case status == http.StatusTooManyRequests:
		provErr := generation.NewProviderError(ProviderName, generation.KindRateLimited,
			fmt.Errorf("pexels returned status %d", status))
		if seconds, err := strconv.Atoi(header.Get("Retry-After")); err == nil && seconds > 0 {
			provErr.RetryAfter = time.Duration(seconds) * time.Second
		}
		return provErr
	case status >= 400 && status < 500:
		return generation.NewProviderError(ProviderName, generation.KindClient,
			fmt.Errorf("pexels returned status %d", status))
	default:
		return generation.NewProviderError(ProviderName, generation.KindUnavailable,
			fmt.Errorf("pexels returned status %d", status))
	}
}
