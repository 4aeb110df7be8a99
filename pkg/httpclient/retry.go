package httpclient

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// retryTransport wraps an http.RoundTripper to add retry logic with
// exponential backoff. Only idempotent methods (GET, HEAD, OPTIONS) are
// retried; everything else executes exactly once.
type retryTransport struct {
	base        http.RoundTripper
	maxAttempts int
	baseBackoff time.Duration
	maxBackoff  time.Duration
}

// newRetryTransport creates a new retry transport that wraps the base transport.
func newRetryTransport(base http.RoundTripper, cfg Config) *retryTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &retryTransport{
		base:        base,
		maxAttempts: cfg.RetryAttempts + 1, // attempts include the initial try
		baseBackoff: cfg.RetryBackoff,
		maxBackoff:  cfg.MaxBackoff,
	}
}

// RoundTrip implements http.RoundTripper with retry logic.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !isIdempotentMethod(req.Method) {
		return t.base.RoundTrip(req)
	}

	var lastErr error
	var lastResp *http.Response

	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := t.calculateBackoff(attempt - 1)

			// Honor an upstream Retry-After if it asks for less.
			if lastResp != nil {
				if retryAfter := parseRetryAfter(lastResp); retryAfter > 0 && retryAfter < delay {
					delay = retryAfter
				}
			}

			select {
			case <-time.After(delay):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		}

		resp, err := t.base.RoundTrip(req)

		if err == nil && !shouldRetryStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = err
		lastResp = resp

		if err != nil && !isRetryableError(err) {
			return nil, err
		}

		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}

		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return lastResp, nil
}

// isIdempotentMethod reports whether an HTTP method is safe to retry blindly.
func isIdempotentMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// shouldRetryStatus determines if an HTTP status code should trigger a retry.
func shouldRetryStatus(statusCode int) bool {
	switch {
	case statusCode >= 500 && statusCode < 600:
		return true
	case statusCode == http.StatusRequestTimeout:
		return true
	case statusCode == http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// isRetryableError determines if an error should trigger a retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return isRetryableError(urlErr.Err)
	}

	errMsg := strings.ToLower(err.Error())
	transientKeywords := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network unreachable",
		"temporary failure in name resolution",
		"eof",
	}

	for _, keyword := range transientKeywords {
		if strings.Contains(errMsg, keyword) {
			return true
		}
	}

	return false
}

// calculateBackoff computes the delay for a given attempt with exponential backoff and jitter.
func (t *retryTransport) calculateBackoff(attempt int) time.Duration {
	backoff := float64(t.baseBackoff) * math.Pow(2.0, float64(attempt-1))

	if backoff > float64(t.maxBackoff) {
		backoff = float64(t.maxBackoff)
	}

	// Jitter: 0-20% of backoff.
	jitter := rand.Float64() * backoff * 0.2

	return time.Duration(backoff + jitter)
}

// parseRetryAfter extracts the Retry-After header value.
// Supports both seconds (integer) and HTTP-date formats.
// Returns 0 if header is missing or invalid.
func parseRetryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if retryTime, err := http.ParseTime(header); err == nil {
		if delay := time.Until(retryTime); delay > 0 {
			return delay
		}
	}

	return 0
}
