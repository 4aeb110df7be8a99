// Package httpclient provides a unified HTTP client factory with consistent
// timeout, retry, and observability behavior.
//
// The client factory composes transport layers to provide:
//   - Optional retries with exponential backoff and jitter (idempotent methods only)
//   - Request logging with sanitized URLs (sensitive params redacted)
//   - User-Agent header injection
//   - Correlation ID propagation
//   - TLS 1.2+ with secure defaults
//   - Connection pooling for performance
//
// Example usage:
//
//	cfg := httpclient.DefaultConfig()
//	cfg.UserAgent = "my-service/1.0"
//	client, err := httpclient.New(cfg)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := client.Get("https://api.example.com/resource")
package httpclient
