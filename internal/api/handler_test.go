package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/draftforge/draftforge-api/internal/cache"
	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/prompt"
	"github.com/draftforge/draftforge-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequestBody() map[string]any {
	return map[string]any{
		"focus_keyword":    "coffee",
		"related_keywords": []string{"espresso"},
		"search_intent":    "informational",
		"content_type":     "how-to",
		"locale":           map[string]string{"code": "en_US", "name": "English (US)", "country": "United States", "currency": "USD"},
		"author":           map[string]string{"name": "Dana Whitfield"},
		"word_count_min":   200,
		"word_count_max":   400,
		"min_faq_count":    2,
		"contact_url":      "https://uplift-labs.example/contact",
	}
}

func passingContent() string {
	para := func(n int) string {
		return "<p>coffee " + strings.TrimSpace(strings.Repeat("word ", n-1)) + "</p>"
	}
	return para(100) +
		"<h2>Brewing Basics</h2>" + para(100) +
		"<h2>Conclusion</h2>" + para(97) +
		`<p>Questions? <a href="https://uplift-labs.example/contact" target="_blank" rel="nofollow">Contact us</a></p>`
}

func providerOutput(content string) string {
	payload := map[string]any{
		"title":            "The Coffee Guide",
		"meta_description": "Everything about brewing coffee.",
		"excerpt":          "A complete coffee brewing guide.",
		"content":          content,
		"faqs": []map[string]string{
			{"question": "How hot?", "answer": "93 degrees Celsius."},
			{"question": "How fine?", "answer": "Medium grind."},
		},
	}
	blob, _ := json.Marshal(payload)
	return string(blob)
}

// newTestServer wires a router around a real service backed by the stub.
func newTestServer(t *testing.T, text generation.TextGenerator) http.Handler {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	registry := generation.NewRegistry()
	selCfg := generation.SelectorConfig{}
	if text != nil {
		registry.RegisterText(text)
		selCfg.DefaultText = text.Name()
	}

	svc, err := service.NewGenerationService(service.Deps{
		Selector:    generation.NewSelector(registry, selCfg, logger),
		Invoker:     generation.NewInvoker(generation.InvokerConfig{MaxAttempts: 1}, logger),
		ResultCache: cache.NewResultCache(time.Hour, true),
		ImageCache:  cache.NewImageCache(time.Hour, true),
		Prompts:     &prompt.StaticBuilder{Prompt: "write the article"},
		Logger:      logger,
		Generation:  config.GenerationConfig{MaxRegenerations: 1},
	})
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		Generation: NewGenerationHandler(svc, logger),
		Logger:     logger,
	})
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	blob, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(blob))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGenerateEndpointSuccess(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &generation.StubTextGenerator{Output: providerOutput(passingContent())})

	rec := postJSON(t, srv, "/api/v1/generate", testRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.GenerationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "The Coffee Guide", resp.Title)
	assert.Equal(t, "coffee", resp.FocusKeyword)
	assert.Len(t, resp.FAQs, 2)
}

func TestGenerateEndpointBadBody(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &generation.StubTextGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateEndpointInvalidRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &generation.StubTextGenerator{})

	body := testRequestBody()
	body["focus_keyword"] = ""
	rec := postJSON(t, srv, "/api/v1/generate", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "focus keyword")
}

func TestGenerateEndpointValidationExhausted(t *testing.T) {
	t.Parallel()

	invalid := providerOutput("<h2>Only</h2><p>far too short</p>")
	srv := newTestServer(t, &generation.StubTextGenerator{Output: invalid})

	rec := postJSON(t, srv, "/api/v1/generate", testRequestBody())
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.NotEmpty(t, errResp.ValidationErrors)
	assert.Contains(t, errResp.ValidationErrors, "word_count")
	assert.NotEmpty(t, errResp.RequestID)
}

func TestGenerateEndpointProviderFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &generation.StubTextGenerator{
		Err: generation.NewProviderError("stub", generation.KindUnavailable, errors.New("down")),
	})

	rec := postJSON(t, srv, "/api/v1/generate", testRequestBody())
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGenerateEndpointNoProvider(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &generation.StubTextGenerator{Unavailable: true})

	rec := postJSON(t, srv, "/api/v1/generate", testRequestBody())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCacheEndpoints(t *testing.T) {
	t.Parallel()

	text := &generation.StubTextGenerator{Output: providerOutput(passingContent())}
	srv := newTestServer(t, text)

	rec := postJSON(t, srv, "/api/v1/generate", testRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, text.Calls())

	// Second identical request hits the cache.
	rec = postJSON(t, srv, "/api/v1/generate", testRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, text.Calls())

	// Evict the single entry, then regenerate.
	rec = postJSON(t, srv, "/api/v1/cache/clear", testRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, srv, "/api/v1/generate", testRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, text.Calls())

	// Full sweep.
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cache", nil)
	del := httptest.NewRecorder()
	srv.ServeHTTP(del, req)
	require.Equal(t, http.StatusOK, del.Code)

	rec = postJSON(t, srv, "/api/v1/generate", testRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, text.Calls())
}

func TestProviderOverrideEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &generation.StubTextGenerator{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/text",
		strings.NewReader(`{"provider":"stub"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/providers/audio",
		strings.NewReader(`{"provider":"stub"}`))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
