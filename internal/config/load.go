package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// DRAFTFORGE_ prefix with underscores for nesting (e.g.
// DRAFTFORGE_LLM_DEFAULT_PROVIDER) and take precedence over file values.
// Returns a populated Config struct or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults cover everything.
	}

	v.SetEnvPrefix("DRAFTFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.default_provider", "gemini")
	v.SetDefault("llm.fallback_order", []string{"gemini", "openai"})
	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.openai_model", "gpt-4o")

	// Empty defaults register the keys so AutomaticEnv can fill them
	// during Unmarshal.
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("image.pexels_api_key", "")
	v.SetDefault("image.unsplash_access_key", "")

	v.SetDefault("image.default_provider", "pexels")
	v.SetDefault("image.fallback_order", []string{"pexels", "unsplash"})
	v.SetDefault("image.search_limit", 5)

	v.SetDefault("generation.max_retries", 3)
	v.SetDefault("generation.max_regenerations", 3)
	v.SetDefault("generation.retry_base_delay", time.Second)
	v.SetDefault("generation.retry_max_delay", 30*time.Second)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("validation.enabled_checkers", []string{})
}
