package httpclient

import (
	"net/url"
	"strings"
	"testing"
)

func TestSanitizeURL_RedactsSensitiveParams(t *testing.T) {
	u, err := url.Parse("https://ambari.example.com/api/v1/clusters?password=hunter2&fields=Clusters/version")
	if err != nil {
		t.Fatalf("failed to parse URL: %v", err)
	}

	got := sanitizeURL(u)

	if strings.Contains(got, "hunter2") {
		t.Errorf("expected password to be redacted, got %q", got)
	}
	if !strings.Contains(got, "%5BREDACTED%5D") && !strings.Contains(got, "[REDACTED]") {
		t.Errorf("expected redaction marker in %q", got)
	}
	if !strings.Contains(got, "fields=Clusters%2Fversion") {
		t.Errorf("expected non-sensitive param to survive, got %q", got)
	}
}

func TestSanitizeURL_NilURL(t *testing.T) {
	if got := sanitizeURL(nil); got != "" {
		t.Errorf("expected empty string for nil URL, got %q", got)
	}
}

func TestIsSensitiveParam(t *testing.T) {
	tests := []struct {
		param string
		want  bool
	}{
		{"password", true},
		{"PASSWORD", true},
		{"user_token", true},
		{"api_key", true},
		{"fields", false},
		{"page_size", false},
		{"sortBy", false},
	}

	for _, tt := range tests {
		if got := isSensitiveParam(tt.param); got != tt.want {
			t.Errorf("isSensitiveParam(%q) = %v, want %v", tt.param, got, tt.want)
		}
	}
}

func TestShouldRetryStatus(t *testing.T) {
	retryable := []int{500, 502, 503, 408, 429}
	for _, code := range retryable {
		if !shouldRetryStatus(code) {
			t.Errorf("expected status %d to be retryable", code)
		}
	}

	notRetryable := []int{200, 201, 400, 401, 403, 404}
	for _, code := range notRetryable {
		if shouldRetryStatus(code) {
			t.Errorf("expected status %d to not be retryable", code)
		}
	}
}
