package config

import "time"

// Config holds all settings of the LLM integration layer.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	Budget  BudgetConfig  `mapstructure:"budget" validate:"required"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// LLMConfig contains all Gemini integration settings. The API key is the
// only value without a default; loading fails fast when it is absent.
type LLMConfig struct {
	GeminiAPIKey string  `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string  `mapstructure:"model_name" validate:"required"`
	MaxRetries   int     `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelayMs int     `mapstructure:"retry_delay_ms" validate:"gt=0"`
	Temperature  float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// InitialDelay returns the configured first backoff wait as a duration.
func (c LLMConfig) InitialDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// BudgetConfig contains the per-category character ceilings applied when
// study material is packed into a prompt.
type BudgetConfig struct {
	TheoryChars    int `mapstructure:"theory_chars" validate:"gt=0"`
	PracticalChars int `mapstructure:"practical_chars" validate:"gt=0"`
	ReferenceChars int `mapstructure:"reference_chars" validate:"gt=0"`
}
