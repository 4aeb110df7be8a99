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
	"errors"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func opError(errno syscall.Errno) error {
	return &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: os.NewSyscallError("connect", errno),
	}
}

func baseDiag() Diagnostics {
	return Diagnostics{URL: "http://ambari:8080/api/v1/clusters", Method: "GET", TimeoutMS: 30000}
}

func TestConnectionCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"refused", opError(syscall.ECONNREFUSED), "ECONNREFUSED"},
		{"reset", opError(syscall.ECONNRESET), "ECONNRESET"},
		{"timed out", opError(syscall.ETIMEDOUT), "ETIMEDOUT"},
		{"host unreachable", opError(syscall.EHOSTUNREACH), "EHOSTUNREACH"},
		{"dns", &net.DNSError{Err: "no such host", Name: "ambari.invalid"}, "ENOTFOUND"},
		{"plain", errors.New("something broke"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, connectionCode(tt.err))
		})
	}
}

func TestIsTimeout_ByCode(t *testing.T) {
	// A timeout-category connection code classifies as a timeout even though
	// no message pattern matches.
	assert.True(t, isTimeout(opError(syscall.ETIMEDOUT)))
}

func TestIsTimeout_ByMessageOnly(t *testing.T) {
	// No typed error and no code, only the message text indicates a timeout.
	assert.True(t, isTimeout(errors.New("read tcp 10.0.0.1:443: i/o timeout")))
	assert.True(t, isTimeout(errors.New("operation timed out waiting for response")))
	assert.True(t, isTimeout(errors.New("context deadline exceeded")))
}

func TestIsTimeout_Negative(t *testing.T) {
	assert.False(t, isTimeout(nil))
	assert.False(t, isTimeout(errors.New("connection refused")))
	assert.False(t, isTimeout(opError(syscall.ECONNREFUSED)))
}

func TestNewTransportError_CodeWins(t *testing.T) {
	err := newTransportError(opError(syscall.ECONNREFUSED), baseDiag())

	assert.Equal(t, "GET http://ambari:8080/api/v1/clusters failed: Code ECONNREFUSED", err.Summary)
	assert.Equal(t, "ECONNREFUSED", err.Diagnostics.Code)
	assert.False(t, err.Diagnostics.TimedOut)
	assert.NotEmpty(t, err.Diagnostics.Message)
}

func TestNewTransportError_TimeoutCode(t *testing.T) {
	err := newTransportError(opError(syscall.ETIMEDOUT), baseDiag())

	assert.Equal(t, "GET http://ambari:8080/api/v1/clusters failed: Code ETIMEDOUT", err.Summary)
	assert.True(t, err.Diagnostics.TimedOut)
}

func TestNewTransportError_TimeoutByMessage(t *testing.T) {
	err := newTransportError(errors.New("request timed out"), baseDiag())

	assert.Equal(t, "GET http://ambari:8080/api/v1/clusters failed: Timeout", err.Summary)
	assert.Empty(t, err.Diagnostics.Code)
	assert.True(t, err.Diagnostics.TimedOut)
}

func TestNewTransportError_NoResponse(t *testing.T) {
	err := newTransportError(errors.New("something broke"), baseDiag())

	assert.Equal(t, "GET http://ambari:8080/api/v1/clusters failed: No response", err.Summary)
}

func TestNewStatusError(t *testing.T) {
	err := newStatusError(503, "Service Unavailable", map[string]any{"message": "maintenance"}, baseDiag())

	assert.Equal(t, "GET http://ambari:8080/api/v1/clusters failed: HTTP 503 Service Unavailable", err.Summary)
	assert.Equal(t, 503, err.Diagnostics.Status)
	assert.Equal(t, "Service Unavailable", err.Diagnostics.StatusText)
}

func TestRequestError_Unwrap(t *testing.T) {
	cause := opError(syscall.ECONNRESET)
	err := newTransportError(cause, baseDiag())

	assert.True(t, errors.Is(err, syscall.ECONNRESET))
}
