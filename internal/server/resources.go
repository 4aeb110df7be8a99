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
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nikita15p/ambari-mcp-server/internal/resource"
	"github.com/nikita15p/ambari-mcp-server/internal/tracing"
)

// resourceTemplates enumerates every parameterized resource shape. The
// static cluster list is registered separately.
var resourceTemplates = []struct {
	uriTemplate string
	name        string
	description string
}{
	{"ambari://cluster/{clusterName}", "Cluster detail", "Details for a single cluster."},
	{"ambari://cluster/{clusterName}/services", "Cluster services", "Services in a cluster with state and maintenance state."},
	{"ambari://cluster/{clusterName}/service/{serviceName}", "Service detail", "State and details for a single service."},
	{"ambari://cluster/{clusterName}/service/{serviceName}/components", "Service components", "Components of a service with state and instance counts."},
	{"ambari://cluster/{clusterName}/hosts", "Cluster hosts", "Hosts in a cluster with status and maintenance state."},
	{"ambari://host/{hostName}", "Host detail", "Hardware and status details for a host."},
	{"ambari://cluster/{clusterName}/alerts", "Cluster alerts", "Current alerts in a cluster."},
	{"ambari://cluster/{clusterName}/alerts/summary", "Alert summary", "Current alerts bucketed by state."},
	{"ambari://cluster/{clusterName}/services/stale-configs", "Stale configurations", "Host components with stale configuration, grouped by service."},
	{"ambari://cluster/{clusterName}/requests/recent", "Recent requests", "The most recent asynchronous operation requests."},
	{"ambari://cluster/{clusterName}/configurations", "Cluster configurations", "All configuration types and tags in a cluster."},
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(
		"ambari://clusters",
		"Ambari clusters",
		mcp.WithResourceDescription("All clusters managed by this Ambari server."),
		mcp.WithMIMEType("application/json"),
	), s.readResource)

	for _, t := range resourceTemplates {
		s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(
			t.uriTemplate,
			t.name,
			mcp.WithTemplateDescription(t.description),
			mcp.WithTemplateMIMEType("application/json"),
		), s.readResource)
	}
}

// readResource is the single handler behind every resource registration:
// parse the URI, run the per-kind handler, wrap the payload in the standard
// envelope.
func (s *Server) readResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI

	descriptor, err := resource.Parse(uri)
	if err != nil {
		return nil, err
	}

	correlationID := tracing.NewCorrelationID()
	ctx = tracing.ToContext(ctx, correlationID)
	logger := s.logger.With("uri", uri, "correlation_id", correlationID.String())

	start := time.Now()
	result, err := resource.Handle(ctx, s.client, descriptor)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("resource read failed", "error", err, "elapsed_ms", elapsed.Milliseconds())
		return nil, err
	}
	logger.Info("resource read succeeded", "elapsed_ms", elapsed.Milliseconds())

	envelope := &Envelope{
		URI:       uri,
		Timestamp: start.UTC().Format(time.RFC3339),
		ElapsedMS: elapsed.Milliseconds(),
		Result:    result,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
