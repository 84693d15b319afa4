package generation

import (
	"context"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// GenerateOptions tunes a single text-generation call.
type GenerateOptions struct {
	// MaxTokens caps the response length; zero means provider default.
	MaxTokens int

	// Temperature controls sampling randomness; zero means provider default.
	Temperature float64
}

// TextGenerator is the capability contract for "generate text from a prompt".
// This interface is the boundary between the orchestration core and external
// AI/LLM services; implementations must not be shared across packages by
// concrete type.
type TextGenerator interface {
	// Generate produces raw text from the given prompt. Failures are
	// reported as *ProviderError so the invoker can classify them.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Available reports whether the provider is configured for use.
	// It must be cheap and must not make network calls: credentials
	// present means available.
	Available() bool

	// Name returns the stable lowercase registry name of the provider.
	Name() string

	// ValidateCredentials makes one lightweight call to verify the
	// configured credentials actually work.
	ValidateCredentials(ctx context.Context) error
}

// ImageSearcher is the capability contract for "search stock images by
// keyword". Results are ordered descending by relevance.
type ImageSearcher interface {
	// Search returns up to limit images for the keyword.
	Search(ctx context.Context, keyword string, limit int) ([]domain.ImageResult, error)

	// Available reports whether the provider is configured for use.
	Available() bool

	// Name returns the stable lowercase registry name of the provider.
	Name() string
}
