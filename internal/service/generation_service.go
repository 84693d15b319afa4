package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/draftforge/draftforge-api/internal/cache"
	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/metrics"
	"github.com/draftforge/draftforge-api/internal/prompt"
	"github.com/google/uuid"
)

// Capability names a provider slot that can carry a session override.
type Capability string

// Provider capabilities
const (
	CapabilityText  Capability = "text"
	CapabilityImage Capability = "image"
)

// Deps bundles the collaborators of the GenerationService.
type Deps struct {
	Selector    *generation.Selector
	Invoker     *generation.Invoker
	ResultCache *cache.ResultCache
	ImageCache  *cache.ImageCache
	Prompts     prompt.Builder
	Logger      *slog.Logger

	Generation config.GenerationConfig
	Validation config.ValidationConfig

	// ImageLimit bounds image-search result counts. Zero means 5.
	ImageLimit int
}

// GenerationService runs the full generate-validate-regenerate loop for
// one request at a time. The loop is synchronous: retries, regeneration
// attempts, and backoff delays all block the calling goroutine. Instances
// are safe for concurrent use; the caches and the registry are the only
// shared state.
type GenerationService struct {
	selector    *generation.Selector
	invoker     *generation.Invoker
	resultCache *cache.ResultCache
	imageCache  *cache.ImageCache
	prompts     prompt.Builder
	logger      *slog.Logger

	genCfg     config.GenerationConfig
	valCfg     config.ValidationConfig
	imageLimit int

	mu            sync.RWMutex
	textOverride  string
	imageOverride string

	// sleep blocks between regeneration attempts; overridable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGenerationService creates a GenerationService from its dependencies.
func NewGenerationService(deps Deps) (*GenerationService, error) {
	if deps.Selector == nil || deps.Invoker == nil || deps.Prompts == nil {
		return nil, errors.New("selector, invoker and prompt builder are required")
	}
	if deps.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if deps.ResultCache == nil {
		deps.ResultCache = cache.NewResultCache(0, false)
	}
	if deps.ImageCache == nil {
		deps.ImageCache = cache.NewImageCache(0, false)
	}
	if deps.Generation.MaxRegenerations < 1 {
		deps.Generation.MaxRegenerations = 3
	}
	if deps.Generation.RetryBaseDelay <= 0 {
		deps.Generation.RetryBaseDelay = time.Second
	}
	if deps.Generation.RetryMaxDelay <= 0 {
		deps.Generation.RetryMaxDelay = 30 * time.Second
	}
	if deps.ImageLimit <= 0 {
		deps.ImageLimit = 5
	}

	return &GenerationService{
		selector:    deps.Selector,
		invoker:     deps.Invoker,
		resultCache: deps.ResultCache,
		imageCache:  deps.ImageCache,
		prompts:     deps.Prompts,
		logger:      deps.Logger,
		genCfg:      deps.Generation,
		valCfg:      deps.Validation,
		imageLimit:  deps.ImageLimit,
		sleep:       sleepContext,
	}, nil
}

// SetProviderOverride pins a provider name for the capability on this
// session, taking precedence over request-level choices and configured
// defaults. An empty name clears the override.
func (s *GenerationService) SetProviderOverride(capability Capability, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch capability {
	case CapabilityText:
		s.textOverride = name
	case CapabilityImage:
		s.imageOverride = name
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCapability, capability)
	}
	return nil
}

// overrides returns the current session overrides.
func (s *GenerationService) overrides() (text, image string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.textOverride, s.imageOverride
}

// ClearCache removes the cached response for one request.
func (s *GenerationService) ClearCache(req *domain.GenerationRequest) {
	s.resultCache.Invalidate(cache.Fingerprint(req))
}

// ClearAllCache sweeps both caches. Best effort: concurrent writes may
// land after the sweep.
func (s *GenerationService) ClearAllCache() {
	s.resultCache.Clear()
	s.imageCache.Clear()
}

// Generate runs the full orchestration loop for one request and returns
// the validated response. On failure the caller receives exactly one
// terminal error: no partial document is ever returned.
func (s *GenerationService) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, NewGenerationError("generate", "invalid request", err)
	}

	requestID := uuid.New().String()
	log := s.logger.With("request_id", requestID, "focus_keyword", req.FocusKeyword)
	started := time.Now()

	log.InfoContext(ctx, "generation request started",
		"content_type", string(req.ContentType),
		"search_intent", string(req.SearchIntent))

	fingerprint := cache.Fingerprint(req)
	if cached, ok := s.resultCache.Get(fingerprint); ok {
		metrics.CacheHitsTotal.WithLabelValues("result", "hit").Inc()
		metrics.GenerationsTotal.WithLabelValues("cache_hit").Inc()
		log.InfoContext(ctx, "result cache hit", "fingerprint", fingerprint)
		return cached, nil
	}
	metrics.CacheHitsTotal.WithLabelValues("result", "miss").Inc()

	promptText, err := s.prompts.Build(req)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		return nil, NewGenerationError("generate", "prompt assembly failed", err)
	}

	textOverride, imageOverride := s.overrides()

	var lastErrs domain.ValidationErrors
	maxAttempts := s.genCfg.MaxRegenerations

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		log.InfoContext(ctx, "generation attempt started",
			"attempt", attempt,
			"max_attempts", maxAttempts)

		provider, err := s.selector.SelectText(textOverride, req.AIProvider)
		if err != nil {
			metrics.GenerationsTotal.WithLabelValues("no_provider").Inc()
			log.ErrorContext(ctx, "no text provider available", "error", err)
			return nil, NewGenerationError("generate", "provider selection failed", err)
		}

		raw, err := s.invoker.Invoke(ctx, provider, promptText, generation.GenerateOptions{}, requestID)
		if err != nil {
			// Selection and retry exhaustion are fatal for the whole
			// request; the regeneration budget only covers bad content.
			metrics.GenerationsTotal.WithLabelValues("provider_error").Inc()
			return nil, NewGenerationError("generate",
				fmt.Sprintf("provider %s failed on attempt %d", provider.Name(), attempt), err)
		}

		resp, errs := s.evaluateAttempt(ctx, log, raw, req, imageOverride)
		if errs.Valid() {
			s.resultCache.Put(fingerprint, resp)
			s.observeSuccess(attempt, started)
			log.InfoContext(ctx, "generation request completed",
				"attempt", attempt,
				"word_count", resp.WordCount,
				"images", len(resp.Images))
			return resp, nil
		}
		lastErrs = errs

		for checker := range lastErrs {
			metrics.ValidationFailuresTotal.WithLabelValues(checker).Inc()
		}
		log.WarnContext(ctx, "attempt produced invalid content",
			"attempt", attempt,
			"failed_checkers", len(lastErrs))

		if attempt == maxAttempts {
			break
		}

		delay := generation.Backoff(s.genCfg.RetryBaseDelay, attempt, s.genCfg.RetryMaxDelay)
		log.InfoContext(ctx, "regenerating after backoff",
			"attempt", attempt,
			"delay_ms", delay.Milliseconds())
		if err := s.sleep(ctx, delay); err != nil {
			metrics.GenerationsTotal.WithLabelValues("cancelled").Inc()
			return nil, NewGenerationError("generate", "cancelled during regeneration backoff", err)
		}
	}

	metrics.GenerationsTotal.WithLabelValues("validation_exhausted").Inc()
	log.ErrorContext(ctx, "generation failed after all attempts",
		"attempts", maxAttempts,
		"failed_checkers", len(lastErrs))

	return nil, NewGenerationError("generate",
		fmt.Sprintf("content invalid after %d attempts", maxAttempts),
		fmt.Errorf("%w: %w", ErrValidationExhausted, lastErrs))
}

func (s *GenerationService) observeSuccess(attempts int, started time.Time) {
	metrics.GenerationsTotal.WithLabelValues("success").Inc()
	metrics.GenerationAttempts.Observe(float64(attempts))
	metrics.GenerationDuration.Observe(time.Since(started).Seconds())
}

// sleepContext blocks for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
