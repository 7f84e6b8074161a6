package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		// Restore original environment
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that the Load function sets the expected default
// values when only the API key is provided. Viper treats empty environment
// variables as unset, so the explicit empty strings neutralize anything the
// host machine exports.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"VESALIUS_LLM_GEMINI_API_KEY": "test-api-key",
		"GEMINI_API_KEY":              "",
		"VESALIUS_LOGGING_LEVEL":      "",
		"VESALIUS_LOGGING_FORMAT":     "",
		"VESALIUS_LLM_MODEL_NAME":     "",
		"VESALIUS_LLM_MAX_RETRIES":    "",
		"VESALIUS_LLM_RETRY_DELAY_MS": "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, "info", cfg.Logging.Level, "Default log level should be 'info'")
	assert.Equal(t, "json", cfg.Logging.Format, "Default log format should be 'json'")
	assert.Equal(t, DefaultModelName, cfg.LLM.ModelName)
	assert.Equal(t, DefaultMaxRetries, cfg.LLM.MaxRetries)
	assert.Equal(t, DefaultRetryDelayMs, cfg.LLM.RetryDelayMs)
	assert.Equal(t, 2*time.Second, cfg.LLM.InitialDelay())
	assert.Equal(t, float32(0.7), cfg.LLM.Temperature)
	assert.Equal(t, DefaultTheoryBudget, cfg.Budget.TheoryChars)
	assert.Equal(t, DefaultPracticalBudget, cfg.Budget.PracticalChars)
	assert.Equal(t, DefaultReferenceBudget, cfg.Budget.ReferenceChars)
}

// TestLoadFromEnv verifies that the Load function correctly reads values
// from environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"VESALIUS_LOGGING_LEVEL":          "debug",
		"VESALIUS_LOGGING_FORMAT":         "text",
		"VESALIUS_LLM_GEMINI_API_KEY":     "env-api-key",
		"VESALIUS_LLM_MODEL_NAME":         "gemini-2.5-pro",
		"VESALIUS_LLM_MAX_RETRIES":        "5",
		"VESALIUS_LLM_RETRY_DELAY_MS":     "500",
		"VESALIUS_LLM_TEMPERATURE":        "0.2",
		"VESALIUS_BUDGET_THEORY_CHARS":    "1000",
		"VESALIUS_BUDGET_REFERENCE_CHARS": "2000",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "env-api-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.ModelName)
	assert.Equal(t, 5, cfg.LLM.MaxRetries)
	assert.Equal(t, 500, cfg.LLM.RetryDelayMs)
	assert.Equal(t, 500*time.Millisecond, cfg.LLM.InitialDelay())
	assert.Equal(t, float32(0.2), cfg.LLM.Temperature)
	assert.Equal(t, 1000, cfg.Budget.TheoryChars)
	assert.Equal(t, DefaultPracticalBudget, cfg.Budget.PracticalChars, "untouched budget keeps its default")
	assert.Equal(t, 2000, cfg.Budget.ReferenceChars)
}

// TestLoadGeminiKeyFallback verifies the bare GEMINI_API_KEY works when the
// prefixed variable is absent, and loses when both are set.
func TestLoadGeminiKeyFallback(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"VESALIUS_LLM_GEMINI_API_KEY": "",
		"GEMINI_API_KEY":              "bare-key",
	})
	defer cleanup()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bare-key", cfg.LLM.GeminiAPIKey)

	cleanup2 := setupEnv(t, map[string]string{
		"VESALIUS_LLM_GEMINI_API_KEY": "prefixed-key",
	})
	defer cleanup2()

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "prefixed-key", cfg.LLM.GeminiAPIKey, "prefixed variable should win over the bare fallback")
}

// TestLoadValidationErrors verifies that the Load function correctly
// validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		envVars        map[string]string
		errorSubstring string
	}{
		{
			name: "Missing API key",
			envVars: map[string]string{
				"VESALIUS_LLM_GEMINI_API_KEY": "",
				"GEMINI_API_KEY":              "",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"VESALIUS_LLM_GEMINI_API_KEY": "test-api-key",
				"GEMINI_API_KEY":              "",
				"VESALIUS_LOGGING_LEVEL":      "verbose",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid log format",
			envVars: map[string]string{
				"VESALIUS_LLM_GEMINI_API_KEY": "test-api-key",
				"GEMINI_API_KEY":              "",
				"VESALIUS_LOGGING_FORMAT":     "xml",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Zero retry delay",
			envVars: map[string]string{
				"VESALIUS_LLM_GEMINI_API_KEY": "test-api-key",
				"GEMINI_API_KEY":              "",
				"VESALIUS_LLM_RETRY_DELAY_MS": "0",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Negative max retries",
			envVars: map[string]string{
				"VESALIUS_LLM_GEMINI_API_KEY": "test-api-key",
				"GEMINI_API_KEY":              "",
				"VESALIUS_LLM_MAX_RETRIES":    "-2",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Temperature out of range",
			envVars: map[string]string{
				"VESALIUS_LLM_GEMINI_API_KEY": "test-api-key",
				"GEMINI_API_KEY":              "",
				"VESALIUS_LLM_TEMPERATURE":    "3.5",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Non-positive budget",
			envVars: map[string]string{
				"VESALIUS_LLM_GEMINI_API_KEY":  "test-api-key",
				"GEMINI_API_KEY":               "",
				"VESALIUS_BUDGET_THEORY_CHARS": "0",
			},
			errorSubstring: "validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			assert.Error(t, err, "Load() should return an error with invalid configuration")
			if err != nil {
				assert.Contains(t, err.Error(), tc.errorSubstring, "Error message should contain expected substring")
			}
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
