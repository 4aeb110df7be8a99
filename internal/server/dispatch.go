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

package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nikita15p/ambari-mcp-server/internal/ambari"
	"github.com/nikita15p/ambari-mcp-server/internal/tracing"
)

// executorFunc performs one tool's work against the Ambari API and returns
// the payload to wrap in a response envelope.
type executorFunc func(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error)

// toolDefinition pairs an MCP tool declaration with its executor. Mutating
// tools draw from the tighter rate-limit bucket.
type toolDefinition struct {
	tool     mcp.Tool
	run      executorFunc
	mutating bool
}

// UnknownToolError reports a dispatch to a tool name that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// RateLimitError reports a call rejected by the token-bucket limiter.
type RateLimitError struct {
	Mutation bool
}

func (e *RateLimitError) Error() string {
	if e.Mutation {
		return "rate limit exceeded for mutating operations, retry later"
	}
	return "rate limit exceeded, retry later"
}

// Envelope is the uniform response wrapper for every tool and resource
// payload. Exactly one of Tool or URI is set.
type Envelope struct {
	Tool      string `json:"tool,omitempty"`
	URI       string `json:"uri,omitempty"`
	Timestamp string `json:"timestamp"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Result    any    `json:"result"`
}

// Dispatcher routes tool invocations to their executors, applying rate
// limits, correlation IDs, metrics, and envelope wrapping uniformly.
type Dispatcher struct {
	client  *ambari.Client
	defs    map[string]*toolDefinition
	order   []string
	logger  *slog.Logger
	limiter *rateLimiter
	metrics *serverMetrics
}

// newDispatcher indexes the tool catalog and validates it: every tool must
// have a unique, non-empty name and a registered executor. A catalog entry
// with no executor is a programming fault surfaced at startup, not at call
// time.
func newDispatcher(client *ambari.Client, logger *slog.Logger, limiter *rateLimiter, metrics *serverMetrics, defs []toolDefinition) (*Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		client:  client,
		defs:    make(map[string]*toolDefinition, len(defs)),
		order:   make([]string, 0, len(defs)),
		logger:  logger.With("component", "dispatcher"),
		limiter: limiter,
		metrics: metrics,
	}

	for i := range defs {
		def := &defs[i]
		name := def.tool.Name
		if name == "" {
			return nil, fmt.Errorf("tool catalog entry %d has no name", i)
		}
		if def.run == nil {
			return nil, fmt.Errorf("tool %q is declared without an executor", name)
		}
		if _, exists := d.defs[name]; exists {
			return nil, fmt.Errorf("tool %q is declared twice", name)
		}
		d.defs[name] = def
		d.order = append(d.order, name)
	}
	return d, nil
}

// ToolNames returns the registered tool names in catalog order.
func (d *Dispatcher) ToolNames() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// Invoke runs the named tool and wraps its result in an envelope. Errors are
// returned unwrapped so callers can render diagnostics from typed errors.
func (d *Dispatcher) Invoke(ctx context.Context, name string, req mcp.CallToolRequest) (*Envelope, error) {
	def, ok := d.defs[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}

	if !d.limiter.allowCall() {
		return nil, &RateLimitError{}
	}
	if def.mutating && !d.limiter.allowMutation() {
		return nil, &RateLimitError{Mutation: true}
	}

	correlationID := tracing.NewCorrelationID()
	ctx = tracing.ToContext(ctx, correlationID)
	logger := d.logger.With("tool", name, "correlation_id", correlationID.String())

	logger.Debug("invoking tool")
	start := time.Now()
	result, err := def.run(ctx, d.client, req)
	elapsed := time.Since(start)
	d.metrics.observe(name, err, elapsed)

	if err != nil {
		logger.Error("tool invocation failed", "error", err, "elapsed_ms", elapsed.Milliseconds())
		return nil, err
	}

	logger.Info("tool invocation succeeded", "elapsed_ms", elapsed.Milliseconds())
	return &Envelope{
		Tool:      name,
		Timestamp: start.UTC().Format(time.RFC3339),
		ElapsedMS: elapsed.Milliseconds(),
		Result:    result,
	}, nil
}
