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

// Package server wires the Ambari tool catalog and resource handlers into an
// MCP server, served over stdio or streamable HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikita15p/ambari-mcp-server/internal/ambari"
	"github.com/nikita15p/ambari-mcp-server/internal/config"
)

const (
	defaultCallsPerMinute     = 120
	defaultMutationsPerMinute = 30
)

// Options configures server construction.
type Options struct {
	Name    string
	Version string

	Ambari *config.Config
	Logger *slog.Logger

	// Per-minute rate-limit budgets; zero means the default.
	CallsPerMinute     int
	MutationsPerMinute int
}

// Server hosts the Ambari MCP tool and resource surface.
type Server struct {
	mcpServer  *mcpserver.MCPServer
	dispatcher *Dispatcher
	client     *ambari.Client
	logger     *slog.Logger
	registry   *prometheus.Registry
}

// New builds the server: Ambari client, rate limiter, metrics, dispatcher,
// and the MCP tool/resource registrations. A malformed tool catalog fails
// construction.
func New(opts Options) (*Server, error) {
	if opts.Ambari == nil {
		return nil, errors.New("server: ambari configuration is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := ambari.New(opts.Ambari, logger)
	if err != nil {
		return nil, fmt.Errorf("server: creating ambari client: %w", err)
	}

	calls := opts.CallsPerMinute
	if calls <= 0 {
		calls = defaultCallsPerMinute
	}
	mutations := opts.MutationsPerMinute
	if mutations <= 0 {
		mutations = defaultMutationsPerMinute
	}

	registry := prometheus.NewRegistry()
	metrics := newServerMetrics(registry)

	dispatcher, err := newDispatcher(client, logger, newRateLimiter(calls, mutations), metrics, catalog())
	if err != nil {
		return nil, fmt.Errorf("server: building tool catalog: %w", err)
	}

	s := &Server{
		dispatcher: dispatcher,
		client:     client,
		logger:     logger.With("component", "server"),
		registry:   registry,
	}

	s.mcpServer = mcpserver.NewMCPServer(
		opts.Name,
		opts.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true),
		mcpserver.WithLogging(),
		mcpserver.WithRecovery(),
	)

	for _, def := range catalog() {
		s.mcpServer.AddTool(def.tool, s.toolHandler(def.tool.Name))
	}
	s.registerResources()

	s.logger.Info("server initialized",
		"tools", len(dispatcher.ToolNames()),
		"ambari_url", client.BaseURL(),
	)
	return s, nil
}

// toolHandler adapts the dispatcher to the MCP handler contract. Failures
// become tool-level error results so the protocol layer stays healthy.
func (s *Server) toolHandler(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		envelope, err := s.dispatcher.Invoke(ctx, name, req)
		if err != nil {
			return errorResult(err), nil
		}

		data, err := json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding response for %s: %v", name, err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// errorResult renders an error for the MCP client. Gateway failures carry
// their summary line plus the full diagnostics object.
func errorResult(err error) *mcp.CallToolResult {
	var reqErr *ambari.RequestError
	if errors.As(err, &reqErr) {
		if diag, mErr := json.MarshalIndent(reqErr.Diagnostics, "", "  "); mErr == nil {
			return mcp.NewToolResultError(reqErr.Summary + "\n" + string(diag))
		}
	}
	return mcp.NewToolResultError(err.Error())
}

// ServeStdio blocks, serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving over stdio")
	return mcpserver.ServeStdio(s.mcpServer)
}

// ServeHTTP blocks, serving MCP over streamable HTTP on addr.
func (s *Server) ServeHTTP(addr string) error {
	s.logger.Info("serving over streamable http", "addr", addr)
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcpServer)
	return httpServer.Start(addr)
}

// MetricsHandler exposes the invocation metrics in Prometheus text format.
func (s *Server) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
