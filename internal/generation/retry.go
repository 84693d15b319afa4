package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/draftforge/draftforge-api/internal/metrics"
)

// InvokerConfig bounds the retry loop around one provider call.
type InvokerConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the backoff delay before the second attempt; it
	// doubles for each later attempt.
	BaseDelay time.Duration

	// MaxDelay caps the computed backoff delay.
	MaxDelay time.Duration
}

// DefaultInvokerConfig returns an InvokerConfig with the standard bounds.
func DefaultInvokerConfig() InvokerConfig {
	return InvokerConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// Invoker wraps exactly one provider call with bounded retry and
// exponential backoff. Authentication and client-error failures abort
// immediately; rate-limit and unavailability failures retry until the
// attempt budget is spent, then surface as ErrProviderExhausted wrapping
// the last failure.
type Invoker struct {
	cfg    InvokerConfig
	logger *slog.Logger

	// sleep blocks for the given delay or until ctx is done. Overridable
	// in tests to avoid real waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewInvoker creates an Invoker. Zero or negative config fields fall back
// to the defaults.
func NewInvoker(cfg InvokerConfig, logger *slog.Logger) *Invoker {
	def := DefaultInvokerConfig()
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = def.BaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = def.MaxDelay
	}
	return &Invoker{
		cfg:    cfg,
		logger: logger,
		sleep:  sleepContext,
	}
}

// Backoff computes the delay after the given 1-based attempt:
// min(base * 2^(attempt-1), max).
func Backoff(base time.Duration, attempt int, max time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}

// Invoke calls the provider, retrying per the configured policy. requestID
// correlates all log events of one generation request.
func (iv *Invoker) Invoke(
	ctx context.Context,
	provider TextGenerator,
	prompt string,
	opts GenerateOptions,
	requestID string,
) (string, error) {
	log := iv.logger.With("request_id", requestID, "provider", provider.Name())

	var lastErr error
	for attempt := 1; attempt <= iv.cfg.MaxAttempts; attempt++ {
		log.InfoContext(ctx, "invoking text provider",
			"attempt", attempt,
			"max_attempts", iv.cfg.MaxAttempts)

		text, err := provider.Generate(ctx, prompt, opts)
		if err == nil {
			log.InfoContext(ctx, "provider call succeeded", "attempt", attempt)
			return text, nil
		}
		lastErr = err

		var provErr *ProviderError
		if !errors.As(err, &provErr) || !provErr.Retryable() {
			log.ErrorContext(ctx, "provider call failed permanently",
				"attempt", attempt,
				"error", err)
			return "", err
		}

		log.WarnContext(ctx, "provider call failed",
			"attempt", attempt,
			"error_kind", string(provErr.Kind),
			"error", err)

		if attempt == iv.cfg.MaxAttempts {
			break
		}

		delay := Backoff(iv.cfg.BaseDelay, attempt, iv.cfg.MaxDelay)
		if provErr.Kind == KindRateLimited && provErr.RetryAfter > delay {
			delay = provErr.RetryAfter
		}

		metrics.ProviderRetriesTotal.WithLabelValues(provider.Name()).Inc()
		log.InfoContext(ctx, "retrying after backoff",
			"attempt", attempt,
			"delay_ms", delay.Milliseconds())

		if err := iv.sleep(ctx, delay); err != nil {
			log.WarnContext(ctx, "retry wait cancelled", "error", err)
			return "", fmt.Errorf("%w: %v", ErrProviderExhausted, err)
		}
	}

	log.ErrorContext(ctx, "provider retry attempts exhausted",
		"attempts", iv.cfg.MaxAttempts,
		"error", lastErr)

	return "", fmt.Errorf("%w after %d attempts: %w",
		ErrProviderExhausted, iv.cfg.MaxAttempts, lastErr)
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
