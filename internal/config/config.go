package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Image      ImageConfig      `mapstructure:"image"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Validation ValidationConfig `mapstructure:"validation"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains the text-generation provider settings.
type LLMConfig struct {
	// DefaultProvider is the system-wide default text provider name.
	DefaultProvider string `mapstructure:"default_provider" validate:"required"`

	// FallbackOrder lists provider names tried, in order, when the
	// primary choice reports itself unavailable.
	FallbackOrder []string `mapstructure:"fallback_order"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"`
}

// ImageConfig contains the stock-image provider settings.
type ImageConfig struct {
	DefaultProvider string   `mapstructure:"default_provider"`
	FallbackOrder   []string `mapstructure:"fallback_order"`
	SearchLimit     int      `mapstructure:"search_limit" validate:"gte=0"`

	PexelsAPIKey      string `mapstructure:"pexels_api_key"`
	UnsplashAccessKey string `mapstructure:"unsplash_access_key"`
}

// GenerationConfig bounds the retry and regeneration loops.
type GenerationConfig struct {
	// MaxRetries caps attempts of a single provider call.
	MaxRetries int `mapstructure:"max_retries" validate:"required,gte=1"`

	// MaxRegenerations caps full generate-validate cycles per request.
	MaxRegenerations int `mapstructure:"max_regenerations" validate:"required,gte=1"`

	// RetryBaseDelay is the first backoff delay; it doubles per attempt.
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"required"`

	// RetryMaxDelay caps the computed backoff delay.
	RetryMaxDelay time.Duration `mapstructure:"retry_max_delay" validate:"required"`
}

// CacheConfig controls the result and image-search caches.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// ValidationConfig selects which rule checkers run.
type ValidationConfig struct {
	// EnabledCheckers lists checker names to run, in pipeline order.
	// Empty means all registered checkers.
	EnabledCheckers []string `mapstructure:"enabled_checkers"`
}
