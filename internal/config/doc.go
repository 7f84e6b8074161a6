// Package config loads, parses, and validates the integration layer's
// settings from environment variables (VESALIUS_ prefix) and an optional
// config file. The Gemini credential is read from the environment exactly
// once, at load time; a missing credential fails Load before any network
// call can happen.
package config
