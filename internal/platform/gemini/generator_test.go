package gemini

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNewGeneratorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(context.Background(), nil, config.LLMConfig{GeminiModel: "gemini-2.0-flash"})
	require.Error(t, err, "nil logger must be rejected")

	_, err = NewGenerator(context.Background(), testLogger(), config.LLMConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig), "missing model must be ErrInvalidConfig")
}

func TestGeneratorUnavailableWithoutKey(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(context.Background(), testLogger(), config.LLMConfig{GeminiModel: "gemini-2.0-flash"})
	require.NoError(t, err, "a keyless generator is constructible")

	assert.Equal(t, "gemini", g.Name())
	assert.False(t, g.Available())

	_, err = g.Generate(context.Background(), "prompt", generation.GenerateOptions{})
	require.Error(t, err)

	var provErr *generation.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, generation.KindAuth, provErr.Kind)

	err = g.ValidateCredentials(context.Background())
	require.Error(t, err)
}
