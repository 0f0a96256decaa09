// Package redact strips secrets and identifying values from strings bound
// for logs. Handlers pass raw errors through Error before logging so a
// driver or library message cannot leak credentials, addresses, or row
// identifiers.
package redact

import "regexp"

// Placeholders substituted for matched values.
const (
	Credential = "[REDACTED_CREDENTIAL]"
	Key        = "[REDACTED_KEY]"
	JWT        = "[REDACTED_JWT]"
	ID         = "[REDACTED_ID]"
	Email      = "[REDACTED_EMAIL]"
	SQL        = "[REDACTED_SQL]"
	Path       = "[REDACTED_PATH]"
	Host       = "[REDACTED_HOST]"
	StackTrace = "[REDACTED_STACK]"
)

// rules run in order and each rule sees the output of the one before it.
// Broad multi-line patterns come first; address-shaped patterns run last so
// they cannot break up a more specific match.
var rules = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	// Panics and goroutine dumps
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*`), StackTrace},

	// Connection URLs carrying credentials
	{regexp.MustCompile(`(?i)\b(?:postgres|postgresql|redis|rediss|mysql|amqp|https?)://[^@\s]+@`), Credential},

	// Password assignments
	{regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)['"]?[=:\s]['"]?[^'"&\s]+`), Credential},

	// SendGrid and AWS key shapes
	{regexp.MustCompile(`\bSG\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`), Key},
	{regexp.MustCompile(`\bAKIA[A-Z0-9]{8,}\b`), Key},

	// Signed JWTs, before the generic token rule so the whole token is
	// replaced rather than the "token <value>" fragment
	{regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), JWT},

	// Generic secret assignments
	{regexp.MustCompile(`(?i)\b(?:api[_-]?key|token|secret|bearer|authorization|key|access|auth)\b['"\s:=]+[A-Za-z0-9_\-.~+/]{8,}`), Key},

	// SQL statements, to the end of the line, values included. Keywords
	// match uppercase only: drivers quote statements verbatim, while prose
	// like "insert failed" must survive for the error to stay readable.
	{regexp.MustCompile(`\b(?:SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|GRANT|TRUNCATE)\b[^\n]*`), SQL},

	// Row identifiers
	{regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`), ID},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), Email},

	// Filesystem paths with at least two segments
	{regexp.MustCompile(`(?:/[\w.-]+){2,}`), Path},

	// Dotted hostnames with an optional port
	{regexp.MustCompile(`\b(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,}(?::\d{1,5})?\b`), Host},
}

// String replaces every sensitive value in the input with its placeholder.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts an error's message. A nil error yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
