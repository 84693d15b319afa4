package openai

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

	_, err := NewGenerator(nil, config.LLMConfig{OpenAIModel: "gpt-4o"})
	require.Error(t, err, "nil logger must be rejected")

	_, err = NewGenerator(testLogger(), config.LLMConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig), "missing model must be ErrInvalidConfig")
}

func TestGeneratorUnavailableWithoutKey(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(testLogger(), config.LLMConfig{OpenAIModel: "gpt-4o"})
	require.NoError(t, err)

	assert.Equal(t, "openai", g.Name())
	assert.False(t, g.Available())

	_, err = g.Generate(context.Background(), "prompt", generation.GenerateOptions{})
	require.Error(t, err)

	var provErr *generation.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, generation.KindAuth, provErr.Kind)
}
