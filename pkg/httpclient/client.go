package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// New creates a new HTTP client with the given configuration.
// The client includes:
//   - Retry logic with exponential backoff (when enabled)
//   - Request logging with sanitized URLs
//   - User-Agent header injection
//   - Correlation ID propagation
//   - TLS 1.2 minimum, TLS 1.3 preferred
//   - Connection pooling with sensible defaults
//
// Returns an error if the configuration is invalid.
func New(cfg Config) (*http.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseTransport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	// Logging transport is the innermost custom layer: logs requests, sets
	// User-Agent, injects the correlation ID.
	var finalTransport http.RoundTripper = newLoggingTransport(baseTransport, cfg.UserAgent)

	// Retry transport wraps the logging layer when retries are enabled.
	if cfg.RetryAttempts > 0 {
		finalTransport = newRetryTransport(finalTransport, cfg)
	}

	return &http.Client{
		Transport: finalTransport,
		Timeout:   cfg.Timeout,
	}, nil
}
