// Package redact strips sensitive material from strings before they reach
// logs. Error values in this codebase can carry bearer tokens, passwords
// from failed validations, connection strings and email addresses; none of
// those belong in log output.
package redact

import "regexp"

// Redaction placeholders.
const (
	redactedCredential = "[REDACTED_CREDENTIAL]"
	redactedToken      = "[REDACTED_TOKEN]"
	redactedEmail      = "[REDACTED_EMAIL]"
)

var (
	// Database connection strings with inline credentials.
	dbConnRegex = regexp.MustCompile(`(?i)postgres(?:ql)?://[^@\s]+@`)

	// password=..., password: ... fragments from validation or driver errors.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Signed bearer tokens: the standard three-part base64url JWT shape.
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// API keys and secrets following a key-ish label.
	apiKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key|secret|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Email addresses.
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := dbConnRegex.ReplaceAllString(input, redactedCredential)
	result = jwtTokenRegex.ReplaceAllString(result, redactedToken)
	result = passwordRegex.ReplaceAllString(result, "$1$2"+redactedCredential)
	result = apiKeyRegex.ReplaceAllString(result, "$1$2"+redactedToken)
	result = emailRegex.ReplaceAllString(result, redactedEmail)

	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
