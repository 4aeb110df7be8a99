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

package resource

import (
	"context"
	"fmt"

	"github.com/nikita15p/ambari-mcp-server/internal/ambari"
)

// Result is the payload of one resource read: a type tag, the identifying
// context for the view, and the data itself.
type Result struct {
	Type    string `json:"type"`
	Cluster string `json:"cluster,omitempty"`
	Service string `json:"service,omitempty"`
	Host    string `json:"host,omitempty"`
	Data    any    `json:"data"`
}

// Handle serves the view addressed by a parsed descriptor. Most kinds are a
// single gateway call passed through verbatim; alert-summary and
// stale-config-list aggregate locally.
func Handle(ctx context.Context, client *ambari.Client, d Descriptor) (*Result, error) {
	result := &Result{
		Type:    string(d.Kind),
		Cluster: d.ClusterName,
		Service: d.ServiceName,
		Host:    d.HostName,
	}

	switch d.Kind {
	case KindClusterList:
		resp, err := client.Get(ctx, "/clusters", nil)
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindClusterDetail:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName, nil)
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindServiceList:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/services", map[string]string{
			"fields": "ServiceInfo/state,ServiceInfo/maintenance_state",
		})
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindServiceDetail:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/services/"+d.ServiceName, nil)
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindServiceComponents:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/services/"+d.ServiceName+"/components", map[string]string{
			"fields": "ServiceComponentInfo/category,ServiceComponentInfo/state,host_components/HostRoles/host_name,host_components/HostRoles/state",
		})
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindHostList:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/hosts", map[string]string{
			"fields": "Hosts/host_status,Hosts/maintenance_state,Hosts/cpu_count,Hosts/total_mem,Hosts/os_type",
		})
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindHostDetail:
		resp, err := client.Get(ctx, "/hosts/"+d.HostName, nil)
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindAlertList:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/alerts", map[string]string{
			"fields": "*",
		})
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindAlertSummary:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/alerts", map[string]string{
			"fields": "Alert/state,Alert/definition_name,Alert/host_name,Alert/label,Alert/text",
		})
		if err != nil {
			return nil, err
		}
		result.Data = BucketAlerts(Items(resp.Data))

	case KindStaleConfigList:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/host_components", map[string]string{
			"HostRoles/stale_configs": "true",
			"fields":                  "HostRoles/service_name,HostRoles/component_name,HostRoles/host_name,HostRoles/state",
		})
		if err != nil {
			return nil, err
		}
		result.Data = GroupStaleConfigs(Items(resp.Data))

	case KindRecentRequests:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/requests", map[string]string{
			"sortBy":    "Requests/id.desc",
			"page_size": "10",
			"fields":    "Requests/request_context,Requests/request_status,Requests/progress_percent,Requests/start_time,Requests/end_time",
		})
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	case KindConfigurations:
		resp, err := client.Get(ctx, "/clusters/"+d.ClusterName+"/configurations", nil)
		if err != nil {
			return nil, err
		}
		result.Data = resp.Data

	default:
		// Unreachable for descriptors produced by Parse; guards hand-built ones.
		return nil, fmt.Errorf("no handler for resource kind %q", d.Kind)
	}

	return result, nil
}
