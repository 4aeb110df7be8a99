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

// Package ambari implements the HTTP gateway to the Ambari REST API.
//
// Every call is a fresh, stateless request: basic auth from configuration, a
// fixed timeout, no retries and no caching. Success returns the upstream JSON
// verbatim; every failure is normalized into a RequestError carrying a
// one-line summary and a diagnostics payload.
package ambari

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikita15p/ambari-mcp-server/internal/config"
	"github.com/nikita15p/ambari-mcp-server/pkg/httpclient"
)

// Response is the success envelope for one upstream call. Data is the parsed
// JSON body exactly as Ambari returned it.
type Response struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	Data       any    `json:"data"`
}

// Client issues authenticated requests against a single Ambari endpoint.
// It is safe for concurrent use; all fields are set at construction and never
// mutated.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a gateway client from the loaded configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	hcCfg := httpclient.DefaultConfig()
	hcCfg.Timeout = cfg.Timeout()
	hcCfg.UserAgent = "ambari-mcp-server/" + Version

	hc, err := httpclient.New(hcCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		timeout:    cfg.Timeout(),
		logger:     logger,
	}, nil
}

// BaseURL returns the configured Ambari endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Execute performs one upstream call.
//
// path is appended verbatim to the base URL and must start with "/". Query
// parameters with empty values are stripped before transmission. body, when
// non-nil, is JSON-encoded; bodyless methods pass nil.
func (c *Client) Execute(ctx context.Context, method, path string, query map[string]string, body any) (*Response, error) {
	params := stripEmpty(query)
	fullURL := c.buildURL(path, params)

	diag := Diagnostics{
		URL:       fullURL,
		Method:    method,
		Params:    params,
		TimeoutMS: c.timeout.Milliseconds(),
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	// Ambari rejects non-browser write requests without this header.
	req.Header.Set("X-Requested-By", "ambari-mcp-server")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := newTransportError(err, diag)
		c.logger.Warn("ambari call failed",
			"method", method, "path", path, "summary", reqErr.Summary,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, reqErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		reqErr := newTransportError(err, diag)
		c.logger.Warn("ambari call failed",
			"method", method, "path", path, "summary", reqErr.Summary,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, reqErr
	}

	data := parseBody(raw)
	statusText := http.StatusText(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := newStatusError(resp.StatusCode, statusText, data, diag)
		c.logger.Warn("ambari call failed",
			"method", method, "path", path, "status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, reqErr
	}

	c.logger.Debug("ambari call completed",
		"method", method, "path", path, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	return &Response{
		Status:     resp.StatusCode,
		StatusText: statusText,
		Data:       data,
	}, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	return c.Execute(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, query map[string]string, body any) (*Response, error) {
	return c.Execute(ctx, http.MethodPost, path, query, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, query map[string]string, body any) (*Response, error) {
	return c.Execute(ctx, http.MethodPut, path, query, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Execute(ctx, http.MethodDelete, path, nil, nil)
}

// buildURL joins the base URL, path, and encoded query string.
func (c *Client) buildURL(path string, params map[string]string) string {
	full := c.baseURL + path
	if len(params) == 0 {
		return full
	}

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return full + "?" + values.Encode()
}

// stripEmpty removes query parameters with empty values. Keys with present
// values survive unchanged.
func stripEmpty(query map[string]string) map[string]string {
	if len(query) == 0 {
		return nil
	}

	out := make(map[string]string, len(query))
	for k, v := range query {
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseBody decodes the upstream body as JSON, falling back to the raw string
// for non-JSON payloads. Empty bodies decode to nil.
func parseBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	var data any
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return string(trimmed)
	}
	return data
}
