// Copyright 2025 The ambari-mcp-server Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ambari

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"syscall"
)

// Diagnostics captures everything known about a failed upstream call. It is
// attached to every RequestError so callers can emit a machine-readable
// payload next to the human-readable summary.
type Diagnostics struct {
	URL        string            `json:"url"`
	Method     string            `json:"method"`
	Params     map[string]string `json:"params,omitempty"`
	TimeoutMS  int64             `json:"timeout_ms"`
	Code       string            `json:"code,omitempty"`
	Status     int               `json:"status,omitempty"`
	StatusText string            `json:"status_text,omitempty"`
	TimedOut   bool              `json:"timed_out,omitempty"`
	Body       any               `json:"body,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// RequestError is the single error type raised by the gateway for any
// upstream failure: non-2xx status, transport error, or timeout.
//
// Summary is always of the form "METHOD URL failed: <cause>" where the cause
// is the HTTP status if present, else the connection code, else Timeout, else
// "No response".
type RequestError struct {
	Summary     string
	Diagnostics Diagnostics
	Cause       error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Summary
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// timeoutPattern matches error messages that indicate a timeout. Some
// transports report timeouts only via message text, so classification cannot
// rely on typed errors alone.
var timeoutPattern = regexp.MustCompile(`(?i)timeout|timed out|deadline exceeded`)

// connectionCode maps transport-level failures to the short codes surfaced in
// diagnostics. Returns empty when no known code applies.
func connectionCode(err error) string {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return "ECONNREFUSED"
	case errors.Is(err, syscall.ECONNRESET):
		return "ECONNRESET"
	case errors.Is(err, syscall.ETIMEDOUT):
		return "ETIMEDOUT"
	case errors.Is(err, syscall.EHOSTUNREACH):
		return "EHOSTUNREACH"
	case errors.Is(err, syscall.ENETUNREACH):
		return "ENETUNREACH"
	case errors.Is(err, syscall.EPIPE):
		return "EPIPE"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "ENOTFOUND"
	}

	return ""
}

// isTimeout reports whether err represents a timeout. The explicit checks run
// first; the message pattern is the fallback for transports that only encode
// the timeout in text.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return timeoutPattern.MatchString(err.Error())
}

// newTransportError classifies a transport-level failure (no HTTP response
// was received) into a RequestError.
func newTransportError(err error, diag Diagnostics) *RequestError {
	diag.Code = connectionCode(err)
	diag.TimedOut = isTimeout(err)
	diag.Message = err.Error()

	var cause string
	switch {
	case diag.Code != "":
		cause = "Code " + diag.Code
	case diag.TimedOut:
		cause = "Timeout"
	default:
		cause = "No response"
	}

	return &RequestError{
		Summary:     fmt.Sprintf("%s %s failed: %s", diag.Method, diag.URL, cause),
		Diagnostics: diag,
		Cause:       err,
	}
}

// newStatusError classifies a non-2xx upstream response into a RequestError.
func newStatusError(status int, statusText string, body any, diag Diagnostics) *RequestError {
	diag.Status = status
	diag.StatusText = statusText
	diag.Body = body

	return &RequestError{
		Summary:     fmt.Sprintf("%s %s failed: HTTP %d %s", diag.Method, diag.URL, status, statusText),
		Diagnostics: diag,
	}
}
