package httpclient

import (
	"net/url"
	"strings"
)

// sensitiveParams contains query parameter names that should be redacted from logs.
// These are matched case-insensitively.
var sensitiveParams = []string{
	"password",
	"passwd",
	"token",
	"auth",
	"secret",
	"credential",
	"api_key",
	"apikey",
}

// sanitizeURL removes sensitive query parameters from URLs before logging.
// This prevents leaking credentials and tokens in logs.
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	q := u.Query()

	for param := range q {
		if isSensitiveParam(param) {
			q.Set(param, "[REDACTED]")
		}
	}

	safe := *u
	safe.RawQuery = q.Encode()
	return safe.String()
}

// isSensitiveParam checks if a parameter name matches the sensitive list.
// Comparison is case-insensitive to catch variants like "PASSWORD", "Password", etc.
func isSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, sensitive := range sensitiveParams {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
