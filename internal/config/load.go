package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults applied when neither the environment nor a config file overrides
// them. The API key deliberately has none.
const (
	DefaultModelName    = "gemini-2.5-flash"
	DefaultMaxRetries   = 3
	DefaultRetryDelayMs = 2000

	DefaultTheoryBudget    = 200000
	DefaultPracticalBudget = 150000
	DefaultReferenceBudget = 100000
)

// Load reads configuration from environment variables and optionally a
// vesalius.yaml file in the working directory. Environment variables take
// precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// 1. Set default values. Every key except the API key has one, which
	// also makes the keys visible to Unmarshal when they arrive via env.
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.max_retries", DefaultMaxRetries)
	v.SetDefault("llm.retry_delay_ms", DefaultRetryDelayMs)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("budget.theory_chars", DefaultTheoryBudget)
	v.SetDefault("budget.practical_chars", DefaultPracticalBudget)
	v.SetDefault("budget.reference_chars", DefaultReferenceBudget)

	// 2. Read an optional config file; its absence is fine.
	v.SetConfigName("vesalius")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 3. Read environment variables with the VESALIUS_ prefix, e.g.
	// VESALIUS_LLM_GEMINI_API_KEY.
	v.SetEnvPrefix("VESALIUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The bare GEMINI_API_KEY that Google tooling conventionally sets is
	// accepted as a fallback; the prefixed variable wins when both exist.
	if err := v.BindEnv("llm.gemini_api_key", "VESALIUS_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment variables: %w", err)
	}

	// 4. Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate config
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
