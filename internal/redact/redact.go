// Package redact scrubs credentials from strings before they are logged or
// surfaced in error messages. Provider errors can echo request URLs or header
// values, and anything resembling an API key must not reach the log stream.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
)

// replacement pairs a pattern with the text that stands in for its matches.
type replacement struct {
	pattern *regexp.Regexp
	with    string
}

// Precompiled patterns, most specific first. The url pattern keeps the
// parameter name so redacted URLs stay readable.
var replacements = []replacement{
	// Google API keys have a fixed, recognizable shape.
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), RedactedKeyPlaceholder},

	// Authorization header values
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]{8,}`), RedactedCredentialPlaceholder},

	// key=... credentials embedded in request URLs
	{regexp.MustCompile(`(?i)([?&]key=)[^&\s]+`), "${1}" + RedactedKeyPlaceholder},

	// key/token/secret assignments in message text
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|credential)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
}

// String redacts credentials from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.with)
	}

	return result
}

// Error redacts credentials from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
