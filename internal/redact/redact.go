// Package redact scrubs sensitive information from strings before they are
// logged. Error text in this application can carry share-recipient email
// addresses, database connection strings, and API keys; none of those
// belong in log output.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`)

	// API keys and tokens following a key-ish label
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Email addresses (share recipients travel through error messages)
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	out := dbConnRegex.ReplaceAllString(input, RedactedCredentialPlaceholder)
	out = apiKeyRegex.ReplaceAllString(out, "${1}${2}"+RedactedKeyPlaceholder)
	out = emailRegex.ReplaceAllString(out, RedactedEmailPlaceholder)
	return out
}

// Error redacts sensitive information from an error's message.
// A nil error yields an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
