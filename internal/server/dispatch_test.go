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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita15p/ambari-mcp-server/internal/ambari"
	"github.com/nikita15p/ambari-mcp-server/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ambari.Client {
	t.Helper()

	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	client, err := ambari.New(&config.Config{
		BaseURL:   upstream.URL,
		Username:  "admin",
		Password:  "admin",
		TimeoutMS: 5000,
	}, nil)
	require.NoError(t, err)
	return client
}

func newTestDispatcher(t *testing.T, handler http.HandlerFunc) *Dispatcher {
	t.Helper()

	d, err := newDispatcher(newTestClient(t, handler), nil, nil, nil, catalog())
	require.NoError(t, err)
	return d
}

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestInvoke_UnknownTool(t *testing.T) {
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := d.Invoke(context.Background(), "does_not_exist", callReq("does_not_exist", nil))
	require.Error(t, err)

	var unknownErr *UnknownToolError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "does_not_exist", unknownErr.Name)
}

func TestInvoke_GetClusterIssuesSingleBareRequest(t *testing.T) {
	var requests []string
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.String())
		fmt.Fprint(w, `{"Clusters":{"cluster_name":"prod","version":"HDP-3.1"}}`)
	})

	envelope, err := d.Invoke(context.Background(), "get_cluster",
		callReq("get_cluster", map[string]any{"clusterName": "prod"}))
	require.NoError(t, err)

	// Exactly one upstream request, no query string.
	require.Equal(t, []string{"GET /clusters/prod"}, requests)

	// The upstream body arrives verbatim inside the envelope.
	data, ok := envelope.Result.(map[string]any)
	require.True(t, ok)
	clusters, ok := data["Clusters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "prod", clusters["cluster_name"])
	assert.Equal(t, "HDP-3.1", clusters["version"])
}

func TestInvoke_EnvelopeFields(t *testing.T) {
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	})

	envelope, err := d.Invoke(context.Background(), "get_clusters", callReq("get_clusters", nil))
	require.NoError(t, err)

	assert.Equal(t, "get_clusters", envelope.Tool)
	assert.Empty(t, envelope.URI)
	assert.GreaterOrEqual(t, envelope.ElapsedMS, int64(0))
	assert.NotNil(t, envelope.Result)

	parsed, err := time.Parse(time.RFC3339, envelope.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestInvoke_UpstreamErrorPassesThrough(t *testing.T) {
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := d.Invoke(context.Background(), "get_clusters", callReq("get_clusters", nil))
	require.Error(t, err)

	var reqErr *ambari.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 403, reqErr.Diagnostics.Status)
}

func TestInvoke_CallRateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	d, err := newDispatcher(client, nil, newRateLimiter(0, 0), nil, catalog())
	require.NoError(t, err)

	_, err = d.Invoke(context.Background(), "get_clusters", callReq("get_clusters", nil))
	require.Error(t, err)

	var limitErr *RateLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.False(t, limitErr.Mutation)
}

func TestInvoke_MutationRateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	d, err := newDispatcher(client, nil, newRateLimiter(6000, 0), nil, catalog())
	require.NoError(t, err)

	// Read-only calls pass.
	_, err = d.Invoke(context.Background(), "get_clusters", callReq("get_clusters", nil))
	require.NoError(t, err)

	// Mutations hit the empty mutation bucket before the executor runs.
	_, err = d.Invoke(context.Background(), "start_service",
		callReq("start_service", map[string]any{"clusterName": "prod", "serviceName": "HDFS"}))
	require.Error(t, err)

	var limitErr *RateLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.True(t, limitErr.Mutation)
}

func TestNewDispatcher_RejectsMissingExecutor(t *testing.T) {
	defs := []toolDefinition{{tool: mcp.NewTool("broken", mcp.WithDescription("no executor"))}}

	_, err := newDispatcher(nil, nil, nil, nil, defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without an executor")
}

func TestNewDispatcher_RejectsDuplicateName(t *testing.T) {
	noop := func(ctx context.Context, c *ambari.Client, req mcp.CallToolRequest) (any, error) {
		return nil, nil
	}
	defs := []toolDefinition{
		{tool: mcp.NewTool("twin"), run: noop},
		{tool: mcp.NewTool("twin"), run: noop},
	}

	_, err := newDispatcher(nil, nil, nil, nil, defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared twice")
}
