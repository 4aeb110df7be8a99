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
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nikita15p/ambari-mcp-server/internal/ambari"
)

// clusterTools covers cluster discovery, configurations, and the request
// (asynchronous operation) log.
func clusterTools() []toolDefinition {
	return []toolDefinition{
		{
			tool: mcp.NewTool("get_clusters",
				mcp.WithDescription("List all clusters managed by this Ambari server."),
			),
			run: runGetClusters,
		},
		{
			tool: mcp.NewTool("get_cluster",
				mcp.WithDescription("Get details for a single cluster."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("fields", mcp.Description("Optional Ambari partial-response fields expression.")),
			),
			run: runGetCluster,
		},
		{
			tool: mcp.NewTool("get_cluster_services",
				mcp.WithDescription("List services in a cluster with their state and maintenance state."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run: runGetClusterServices,
		},
		{
			tool: mcp.NewTool("get_cluster_hosts",
				mcp.WithDescription("List hosts in a cluster with status, IP, and maintenance state."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run: runGetClusterHosts,
		},
		{
			tool: mcp.NewTool("get_configurations",
				mcp.WithDescription("List all configuration types and tags in a cluster."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run: runGetConfigurations,
		},
		{
			tool: mcp.NewTool("get_configuration",
				mcp.WithDescription("Get a configuration by type. Uses the currently applied tag unless one is given."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("type", mcp.Required(), mcp.Description("Configuration type, for example core-site or cluster-env.")),
				mcp.WithString("tag", mcp.Description("Specific configuration version tag.")),
			),
			run: runGetConfiguration,
		},
		{
			tool: mcp.NewTool("get_recent_requests",
				mcp.WithDescription("List the most recent asynchronous operation requests in a cluster."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("count", mcp.Description("How many requests to return, newest first. Defaults to 10.")),
			),
			run: runGetRecentRequests,
		},
		{
			tool: mcp.NewTool("get_request_status",
				mcp.WithDescription("Get the status and progress of an asynchronous operation request."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("requestId", mcp.Required(), mcp.Description("Numeric request ID returned by a mutating operation.")),
			),
			run: runGetRequestStatus,
		},
	}
}

func runGetClusters(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	resp, err := client.Get(ctx, "/clusters", nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetCluster(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	var query map[string]string
	if fields := optionalString(req, "fields", ""); fields != "" {
		query = map[string]string{"fields": fields}
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster, query)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetClusterServices(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/services", map[string]string{
		"fields": "ServiceInfo/state,ServiceInfo/maintenance_state",
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetClusterHosts(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/hosts", map[string]string{
		"fields": "Hosts/host_status,Hosts/ip,Hosts/os_type,Hosts/maintenance_state",
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetConfigurations(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/configurations", nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetConfiguration(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	configType, err := requireString(req, "type")
	if err != nil {
		return nil, err
	}

	tag := optionalString(req, "tag", "")
	if tag == "" {
		tag, err = desiredConfigTag(ctx, client, cluster, configType)
		if err != nil {
			return nil, err
		}
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/configurations", map[string]string{
		"type": configType,
		"tag":  tag,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetRecentRequests(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	count, err := optionalInt(req, "count", 10)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, &ArgumentError{Name: "count", Reason: "must be positive"}
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/requests", map[string]string{
		"fields":    "Requests/id,Requests/request_context,Requests/request_status,Requests/progress_percent,Requests/start_time,Requests/end_time",
		"sortBy":    "Requests/id.desc",
		"page_size": strconv.FormatInt(count, 10),
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetRequestStatus(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	requestID, err := requireInt(req, "requestId")
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/clusters/%s/requests/%d", cluster, requestID)
	resp, err := client.Get(ctx, path, map[string]string{"fields": "Requests"})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// desiredConfigTag resolves the tag of the currently applied configuration
// version for one type.
func desiredConfigTag(ctx context.Context, client *ambari.Client, cluster, configType string) (string, error) {
	resp, err := client.Get(ctx, "/clusters/"+cluster, map[string]string{
		"fields": "Clusters/desired_configs/" + configType,
	})
	if err != nil {
		return "", err
	}

	tag := digString(resp.Data, "Clusters", "desired_configs", configType, "tag")
	if tag == "" {
		return "", fmt.Errorf("configuration type %q has no applied version in cluster %s", configType, cluster)
	}
	return tag, nil
}

// digString walks nested maps by key and returns the string leaf, or "".
func digString(data any, keys ...string) string {
	current := data
	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = obj[key]
	}
	s, _ := current.(string)
	return s
}
