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

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nikita15p/ambari-mcp-server/internal/ambari"
)

// hostTools covers hosts, host components, and component lifecycle.
func hostTools() []toolDefinition {
	return []toolDefinition{
		{
			tool: mcp.NewTool("get_component",
				mcp.WithDescription("Get details for a single service component."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("serviceName", mcp.Required(), mcp.Description("Service name, for example HDFS.")),
				mcp.WithString("componentName", mcp.Required(), mcp.Description("Component name, for example NAMENODE.")),
			),
			run: runGetComponent,
		},
		{
			tool: mcp.NewTool("start_component",
				mcp.WithDescription("Start a component on a specific host."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("hostName", mcp.Required(), mcp.Description("Fully qualified host name.")),
				mcp.WithString("componentName", mcp.Required(), mcp.Description("Component name, for example DATANODE.")),
			),
			run:      runStartComponent,
			mutating: true,
		},
		{
			tool: mcp.NewTool("stop_component",
				mcp.WithDescription("Stop a component on a specific host."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("hostName", mcp.Required(), mcp.Description("Fully qualified host name.")),
				mcp.WithString("componentName", mcp.Required(), mcp.Description("Component name, for example DATANODE.")),
			),
			run:      runStopComponent,
			mutating: true,
		},
		{
			tool: mcp.NewTool("get_host",
				mcp.WithDescription("Get hardware and status details for a host."),
				mcp.WithString("hostName", mcp.Required(), mcp.Description("Fully qualified host name.")),
			),
			run: runGetHost,
		},
		{
			tool: mcp.NewTool("get_host_components",
				mcp.WithDescription("List components placed on a host with their state."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("hostName", mcp.Required(), mcp.Description("Fully qualified host name.")),
			),
			run: runGetHostComponents,
		},
		{
			tool: mcp.NewTool("set_host_maintenance",
				mcp.WithDescription("Turn maintenance mode on or off for a host."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("hostName", mcp.Required(), mcp.Description("Fully qualified host name.")),
				mcp.WithBoolean("on", mcp.Required(), mcp.Description("True to enable maintenance mode, false to disable it.")),
			),
			run:      runSetHostMaintenance,
			mutating: true,
		},
		{
			tool: mcp.NewTool("restart_stale_components",
				mcp.WithDescription("Restart every host component whose configuration is stale."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run:      runRestartStaleComponents,
			mutating: true,
		},
	}
}

func runGetComponent(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	service, err := requireString(req, "serviceName")
	if err != nil {
		return nil, err
	}
	component, err := requireString(req, "componentName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/services/"+service+"/components/"+component, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// setHostComponentState transitions one host component to STARTED or
// INSTALLED.
func setHostComponentState(ctx context.Context, client *ambari.Client, cluster, host, component, state, reason string) (any, error) {
	body := map[string]any{
		"RequestInfo": map[string]any{"context": reason},
		"Body":        map[string]any{"HostRoles": map[string]any{"state": state}},
	}

	path := "/clusters/" + cluster + "/hosts/" + host + "/host_components/" + component
	resp, err := client.Put(ctx, path, nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runStartComponent(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	host, err := requireString(req, "hostName")
	if err != nil {
		return nil, err
	}
	component, err := requireString(req, "componentName")
	if err != nil {
		return nil, err
	}
	return setHostComponentState(ctx, client, cluster, host, component, "STARTED", "Start "+component+" on "+host)
}

func runStopComponent(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	host, err := requireString(req, "hostName")
	if err != nil {
		return nil, err
	}
	component, err := requireString(req, "componentName")
	if err != nil {
		return nil, err
	}
	return setHostComponentState(ctx, client, cluster, host, component, "INSTALLED", "Stop "+component+" on "+host)
}

func runGetHost(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	host, err := requireString(req, "hostName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/hosts/"+host, map[string]string{"fields": "Hosts"})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetHostComponents(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	host, err := requireString(req, "hostName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/hosts/"+host+"/host_components", map[string]string{
		"fields": "HostRoles/state,HostRoles/service_name,HostRoles/maintenance_state,HostRoles/stale_configs",
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runSetHostMaintenance(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	host, err := requireString(req, "hostName")
	if err != nil {
		return nil, err
	}
	on, err := requireBool(req, "on")
	if err != nil {
		return nil, err
	}
	state := maintenanceState(on)

	body := map[string]any{
		"RequestInfo": map[string]any{"context": "Set maintenance mode " + state + " for " + host},
		"Body":        map[string]any{"Hosts": map[string]any{"maintenance_state": state}},
	}

	resp, err := client.Put(ctx, "/clusters/"+cluster+"/hosts/"+host, nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runRestartStaleComponents(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"RequestInfo": map[string]any{
			"command":         "RESTART",
			"context":         "Restart components with stale configs",
			"operation_level": "host_component",
		},
		"Requests/resource_filters": []any{
			map[string]any{"hosts_predicate": "HostRoles/stale_configs=true"},
		},
	}

	resp, err := client.Post(ctx, "/clusters/"+cluster+"/requests", nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
