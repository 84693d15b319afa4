// Package openai implements the text-generation provider contract on top
// of the official openai-go SDK (chat completions).
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/draftforge/draftforge-api/internal/generation"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ProviderName is the registry key for this provider.
const ProviderName = "openai"

// Generator implements generation.TextGenerator using OpenAI chat
// completions.
type Generator struct {
	logger *slog.Logger
	client openai.Client
	model  string
	apiKey string
}

// NewGenerator creates an OpenAI-backed text generator.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.OpenAIModel == "" {
		return nil, fmt.Errorf("%w: openai model name cannot be empty", generation.ErrInvalidConfig)
	}

	return &Generator{
		logger: logger,
		client: openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
		model:  cfg.OpenAIModel,
		apiKey: cfg.OpenAIAPIKey,
	}, nil
}

// Name returns the registry key.
func (g *Generator) Name() string {
	return ProviderName
}

// Available reports whether credentials are configured. No network call.
func (g *Generator) Available() bool {
	return g.apiKey != ""
}

// Generate sends the prompt as a single user message and returns the raw
// completion text.
func (g *Generator) Generate(ctx context.Context, prompt string, opts generation.GenerateOptions) (string, error) {
	if !g.Available() {
		return "", generation.NewProviderError(ProviderName, generation.KindAuth,
			errors.New("openai API key not configured"))
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", g.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", generation.NewProviderError(ProviderName, generation.KindUnavailable,
			errors.New("empty choices in completion response"))
	}

	text := resp.Choices[0].Message.Content
	g.logger.DebugContext(ctx, "openai generation complete",
		"model", g.model,
		"response_length", len(text))

	return text, nil
}

// ValidateCredentials makes one minimal completion call to verify the key.
func (g *Generator) ValidateCredentials(ctx context.Context) error {
	if !g.Available() {
		return generation.NewProviderError(ProviderName, generation.KindAuth,
			errors.New("openai API key not configured"))
	}

	_, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(g.model),
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage("ping")},
		MaxTokens: openai.Int(1),
	})
	if err != nil {
		return g.classify(err)
	}
	return nil
}

// classify maps an OpenAI API failure onto the shared error taxonomy.
func (g *Generator) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return generation.NewProviderError(ProviderName, generation.KindAuth, err)
		case http.StatusTooManyRequests:
			provErr := generation.NewProviderError(ProviderName, generation.KindRateLimited, err)
			provErr.RetryAfter = retryAfterHint(apiErr)
			return provErr
		case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
			return generation.NewProviderError(ProviderName, generation.KindClient, err)
		default:
			return generation.NewProviderError(ProviderName, generation.KindUnavailable, err)
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return generation.NewProviderError(ProviderName, generation.KindUnavailable, err)
}

// retryAfterHint extracts the Retry-After header from a rate-limit
// rejection, if the provider sent one.
func retryAfterHint(apiErr *openai.Error) time.Duration {
	if apiErr.Response == nil {
		return 0
	}
	header := apiErr.Response.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
