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
	"github.com/nikita15p/ambari-mcp-server/internal/resource"
)

// quorumCheckServices run a dedicated quorum health command instead of the
// standard {SERVICE}_SERVICE_CHECK.
var quorumCheckServices = map[string]bool{
	"ZOOKEEPER": true,
}

// clientOnlyServices have no daemon components, so their checks must be
// scoped to the cluster operation level.
var clientOnlyServices = map[string]bool{
	"PIG":   true,
	"TEZ":   true,
	"SQOOP": true,
}

// serviceTools covers service lifecycle, maintenance mode, health checks,
// and stale configuration reporting.
func serviceTools() []toolDefinition {
	return []toolDefinition{
		{
			tool: mcp.NewTool("get_service",
				mcp.WithDescription("Get state and details for a single service."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("serviceName", mcp.Required(), mcp.Description("Service name, for example HDFS.")),
			),
			run: runGetService,
		},
		{
			tool: mcp.NewTool("get_service_components",
				mcp.WithDescription("List components of a service with their state and instance counts."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("serviceName", mcp.Required(), mcp.Description("Service name, for example HDFS.")),
			),
			run: runGetServiceComponents,
		},
		{
			tool: mcp.NewTool("start_service",
				mcp.WithDescription("Start a stopped service. Returns the asynchronous request that tracks progress."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("serviceName", mcp.Required(), mcp.Description("Service name, for example HDFS.")),
			),
			run:      runStartService,
			mutating: true,
		},
		{
			tool: mcp.NewTool("stop_service",
				mcp.WithDescription("Stop a running service. Returns the asynchronous request that tracks progress."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("serviceName", mcp.Required(), mcp.Description("Service name, for example HDFS.")),
			),
			run:      runStopService,
			mutating: true,
		},
		{
			tool: mcp.NewTool("restart_service",
				mcp.WithDescription("Restart every component of a service."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("serviceName", mcp.Required(), mcp.Description("Service name, for example HDFS.")),
			),
			run:      runRestartService,
			mutating: true,
		},
		{
			tool: mcp.NewTool("start_all_services",
				mcp.WithDescription("Start all services in a cluster."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run:      runStartAllServices,
			mutating: true,
		},
		{
			tool: mcp.NewTool("stop_all_services",
				mcp.WithDescription("Stop all services in a cluster."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run:      runStopAllServices,
			mutating: true,
		},
		{
			tool: mcp.NewTool("run_service_check",
				mcp.WithDescription("Run the health check command for a service."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("serviceName", mcp.Required(), mcp.Description("Service name, for example HDFS.")),
			),
			run:      runRunServiceCheck,
			mutating: true,
		},
		{
			tool: mcp.NewTool("set_service_maintenance",
				mcp.WithDescription("Turn maintenance mode on or off for a service."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("serviceName", mcp.Required(), mcp.Description("Service name, for example HDFS.")),
				mcp.WithBoolean("on", mcp.Required(), mcp.Description("True to enable maintenance mode, false to disable it.")),
			),
			run:      runSetServiceMaintenance,
			mutating: true,
		},
		{
			tool: mcp.NewTool("get_stale_configs",
				mcp.WithDescription("List host components whose configuration is stale, grouped by service."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run: runGetStaleConfigs,
		},
	}
}

func runGetService(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	service, err := requireString(req, "serviceName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/services/"+service, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetServiceComponents(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	service, err := requireString(req, "serviceName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/services/"+service+"/components", map[string]string{
		"fields": "ServiceComponentInfo/state,ServiceComponentInfo/total_count,ServiceComponentInfo/started_count",
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// setServiceState transitions one service to STARTED or INSTALLED.
func setServiceState(ctx context.Context, client *ambari.Client, cluster, service, state, reason string) (any, error) {
	body := map[string]any{
		"RequestInfo": map[string]any{"context": reason},
		"Body":        map[string]any{"ServiceInfo": map[string]any{"state": state}},
	}

	resp, err := client.Put(ctx, "/clusters/"+cluster+"/services/"+service, nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runStartService(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	service, err := requireString(req, "serviceName")
	if err != nil {
		return nil, err
	}
	return setServiceState(ctx, client, cluster, service, "STARTED", "Start "+service)
}

func runStopService(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	service, err := requireString(req, "serviceName")
	if err != nil {
		return nil, err
	}
	return setServiceState(ctx, client, cluster, service, "INSTALLED", "Stop "+service)
}

func runRestartService(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	service, err := requireString(req, "serviceName")
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"RequestInfo": map[string]any{
			"command":         "RESTART",
			"context":         "Restart " + service,
			"operation_level": "host_component",
		},
		"Requests/resource_filters": []any{
			map[string]any{
				"service_name":    service,
				"hosts_predicate": "HostRoles/service_name=" + service,
			},
		},
	}

	resp, err := client.Post(ctx, "/clusters/"+cluster+"/requests", nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// setAllServicesState transitions every service in the cluster at once.
func setAllServicesState(ctx context.Context, client *ambari.Client, cluster, state, reason string) (any, error) {
	body := map[string]any{
		"RequestInfo": map[string]any{
			"context": reason,
			"operation_level": map[string]any{
				"level":        "CLUSTER",
				"cluster_name": cluster,
			},
		},
		"Body": map[string]any{"ServiceInfo": map[string]any{"state": state}},
	}

	resp, err := client.Put(ctx, "/clusters/"+cluster+"/services", nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runStartAllServices(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	return setAllServicesState(ctx, client, cluster, "STARTED", "Start All Services")
}

func runStopAllServices(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	return setAllServicesState(ctx, client, cluster, "INSTALLED", "Stop All Services")
}

// serviceCheckBody builds the request payload for a service health check.
// ZooKeeper uses its quorum command; client-only services need a cluster
// operation level because they have no daemons to target.
func serviceCheckBody(cluster, service string) map[string]any {
	requestInfo := map[string]any{
		"context": service + " Service Check",
		"command": service + "_SERVICE_CHECK",
	}

	switch {
	case quorumCheckServices[service]:
		requestInfo["command"] = service + "_QUORUM_SERVICE_CHECK"
	case clientOnlyServices[service]:
		requestInfo["operation_level"] = map[string]any{
			"level":        "CLUSTER",
			"cluster_name": cluster,
		}
	}

	return map[string]any{
		"RequestInfo": requestInfo,
		"Requests/resource_filters": []any{
			map[string]any{"service_name": service},
		},
	}
}

func runRunServiceCheck(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	service, err := requireString(req, "serviceName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(ctx, "/clusters/"+cluster+"/requests", nil, serviceCheckBody(cluster, service))
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// maintenanceState maps the boolean toggle onto Ambari's ON/OFF values.
func maintenanceState(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func runSetServiceMaintenance(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	service, err := requireString(req, "serviceName")
	if err != nil {
		return nil, err
	}
	on, err := requireBool(req, "on")
	if err != nil {
		return nil, err
	}
	state := maintenanceState(on)

	body := map[string]any{
		"RequestInfo": map[string]any{"context": "Set maintenance mode " + state + " for " + service},
		"Body":        map[string]any{"ServiceInfo": map[string]any{"maintenance_state": state}},
	}

	resp, err := client.Put(ctx, "/clusters/"+cluster+"/services/"+service, nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetStaleConfigs(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/host_components", map[string]string{
		"HostRoles/stale_configs": "true",
		"fields":                  "HostRoles/service_name,HostRoles/component_name,HostRoles/host_name",
	})
	if err != nil {
		return nil, err
	}
	return resource.GroupStaleConfigs(resource.Items(resp.Data)), nil
}
