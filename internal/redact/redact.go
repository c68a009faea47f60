// Package redact scrubs sensitive fragments from error text before it is
// logged: connection strings, credentials, bearer tokens, commenter email
// addresses, SQL and file paths.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedBcryptPlaceholder     = "[REDACTED_HASH]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; earlier rules consume text later ones would also match.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres|postgresql|redis|db|database)://[^@\s]+@`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedJWTPlaceholder},
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), RedactedBcryptPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), RedactedStackPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
	{regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()$]+(?:FROM|INTO|SET|TABLE|WHERE)(?:[\s\w,*()='"$]+)?`,
	), RedactedSQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`), RedactedHostPlaceholder},
}

// String redacts sensitive information from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from err.Error().
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
