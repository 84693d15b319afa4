// Package gemini implements the text-generation provider contract on top
// of Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/draftforge/draftforge-api/internal/generation"
	"google.golang.org/genai"
)

// ProviderName is the registry key for this provider.
const ProviderName = "gemini"

// Generator implements generation.TextGenerator using the Gemini API.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
	apiKey string
}

// NewGenerator creates a Gemini-backed text generator. The client is
// constructed even when the API key is missing so the instance can be
// registered and report itself unavailable.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiModel == "" {
		return nil, fmt.Errorf("%w: gemini model name cannot be empty", generation.ErrInvalidConfig)
	}

	g := &Generator{
		logger: logger,
		model:  cfg.GeminiModel,
		apiKey: cfg.GeminiAPIKey,
	}

	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
		}
		g.client = client
	}

	return g, nil
}

// Name returns the registry key.
func (g *Generator) Name() string {
	return ProviderName
}

// Available reports whether credentials are configured. No network call.
func (g *Generator) Available() bool {
	return g.apiKey != "" && g.client != nil
}

// Generate sends the prompt to the Gemini API and returns the raw text.
func (g *Generator) Generate(ctx context.Context, prompt string, opts generation.GenerateOptions) (string, error) {
	if !g.Available() {
		return "", generation.NewProviderError(ProviderName, generation.KindAuth,
			errors.New("gemini API key not configured"))
	}

	cfg := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(opts.Temperature))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", g.classify(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", generation.NewProviderError(ProviderName, generation.KindUnavailable,
			errors.New("empty response from Gemini"))
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", generation.NewProviderError(ProviderName, generation.KindClient,
			errors.New("content blocked by safety filters"))
	}

	text := resp.Text()
	g.logger.DebugContext(ctx, "gemini generation complete",
		"model", g.model,
		"response_length", len(text))

	return text, nil
}

// ValidateCredentials makes one minimal generation call to verify the key.
func (g *Generator) ValidateCredentials(ctx context.Context) error {
	if !g.Available() {
		return generation.NewProviderError(ProviderName, generation.KindAuth,
			errors.New("gemini API key not configured"))
	}

	_, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text("ping"),
		&genai.GenerateContentConfig{MaxOutputTokens: 1})
	if err != nil {
		return g.classify(err)
	}
	return nil
}

// classify maps a Gemini API failure onto the shared error taxonomy.
func (g *Generator) classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return generation.NewProviderError(ProviderName, generation.KindAuth, err)
		case http.StatusTooManyRequests:
			return generation.NewProviderError(ProviderName, generation.KindRateLimited, err)
		case http.StatusBadRequest, http.StatusNotFound:
			return generation.NewProviderError(ProviderName, generation.KindClient, err)
		default:
			return generation.NewProviderError(ProviderName, generation.KindUnavailable, err)
		}
	}

	// Non-API errors: context cancellations stay as-is, everything else
	// is treated as transient transport failure.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return generation.NewProviderError(ProviderName, generation.KindUnavailable, err)
}
