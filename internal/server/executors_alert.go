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
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nikita15p/ambari-mcp-server/internal/ambari"
	"github.com/nikita15p/ambari-mcp-server/internal/resource"
)

// alertTools covers alert browsing, definitions, groups, notification
// targets, and cluster-wide alert settings.
func alertTools() []toolDefinition {
	return []toolDefinition{
		{
			tool: mcp.NewTool("get_alerts",
				mcp.WithDescription("List current alerts in a cluster, optionally filtered by state."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("state", mcp.Description("Filter by alert state: CRITICAL, WARNING, OK, or UNKNOWN.")),
			),
			run: runGetAlerts,
		},
		{
			tool: mcp.NewTool("get_alerts_by_host",
				mcp.WithDescription("List current alerts raised on a specific host."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("hostName", mcp.Required(), mcp.Description("Fully qualified host name.")),
			),
			run: runGetAlertsByHost,
		},
		{
			tool: mcp.NewTool("get_alert_history",
				mcp.WithDescription("List historical alert state changes, newest first."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("definitionName", mcp.Description("Filter by alert definition name.")),
				mcp.WithNumber("count", mcp.Description("How many entries to return. Defaults to 50.")),
			),
			run: runGetAlertHistory,
		},
		{
			tool: mcp.NewTool("get_alert_definitions",
				mcp.WithDescription("List alert definitions in a cluster."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run: runGetAlertDefinitions,
		},
		{
			tool: mcp.NewTool("get_alert_definition",
				mcp.WithDescription("Get a single alert definition."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("definitionId", mcp.Required(), mcp.Description("Numeric alert definition ID.")),
			),
			run: runGetAlertDefinition,
		},
		{
			tool: mcp.NewTool("toggle_alert_definition",
				mcp.WithDescription("Enable or disable an alert definition."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("definitionId", mcp.Required(), mcp.Description("Numeric alert definition ID.")),
				mcp.WithBoolean("enabled", mcp.Required(), mcp.Description("True to enable the definition, false to disable it.")),
			),
			run:      runToggleAlertDefinition,
			mutating: true,
		},
		{
			tool: mcp.NewTool("get_alert_groups",
				mcp.WithDescription("List alert groups in a cluster."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run: runGetAlertGroups,
		},
		{
			tool: mcp.NewTool("get_alert_group",
				mcp.WithDescription("Get a single alert group with its member definitions and targets."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("groupId", mcp.Required(), mcp.Description("Numeric alert group ID.")),
			),
			run: runGetAlertGroup,
		},
		{
			tool: mcp.NewTool("create_alert_group",
				mcp.WithDescription("Create an alert group from a list of definition IDs."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithString("name", mcp.Required(), mcp.Description("Name for the new group.")),
				mcp.WithString("definitionIds", mcp.Required(), mcp.Description("JSON array of alert definition IDs, for example [1,2,3].")),
			),
			run:      runCreateAlertGroup,
			mutating: true,
		},
		{
			tool: mcp.NewTool("update_alert_group",
				mcp.WithDescription("Update an alert group's name or member definitions."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("groupId", mcp.Required(), mcp.Description("Numeric alert group ID.")),
				mcp.WithString("name", mcp.Description("New name for the group.")),
				mcp.WithString("definitionIds", mcp.Description("JSON array of alert definition IDs replacing the current members.")),
			),
			run:      runUpdateAlertGroup,
			mutating: true,
		},
		{
			tool: mcp.NewTool("delete_alert_group",
				mcp.WithDescription("Delete an alert group."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("groupId", mcp.Required(), mcp.Description("Numeric alert group ID.")),
			),
			run:      runDeleteAlertGroup,
			mutating: true,
		},
		{
			tool: mcp.NewTool("duplicate_alert_group",
				mcp.WithDescription("Copy an alert group, creating a new group with the same member definitions."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("groupId", mcp.Required(), mcp.Description("ID of the group to copy.")),
				mcp.WithString("newName", mcp.Required(), mcp.Description("Name for the copy.")),
			),
			run:      runDuplicateAlertGroup,
			mutating: true,
		},
		{
			tool: mcp.NewTool("get_notification_targets",
				mcp.WithDescription("List alert notification targets on this Ambari server."),
			),
			run: runGetNotificationTargets,
		},
		{
			tool: mcp.NewTool("create_notification_target",
				mcp.WithDescription("Create an alert notification target."),
				mcp.WithString("name", mcp.Required(), mcp.Description("Name for the new target.")),
				mcp.WithString("notificationType", mcp.Required(), mcp.Description("Delivery mechanism: EMAIL or SNMP.")),
				mcp.WithString("description", mcp.Description("Human-readable description.")),
				mcp.WithBoolean("global", mcp.Description("Whether the target applies to all alert groups. Defaults to true.")),
				mcp.WithObject("properties", mcp.Description("Type-specific delivery properties, for example SMTP settings.")),
			),
			run:      runCreateNotificationTarget,
			mutating: true,
		},
		{
			tool: mcp.NewTool("update_notification_target",
				mcp.WithDescription("Update an alert notification target. Only the given fields change."),
				mcp.WithNumber("targetId", mcp.Required(), mcp.Description("Numeric notification target ID.")),
				mcp.WithString("name", mcp.Description("New name.")),
				mcp.WithString("description", mcp.Description("New description.")),
				mcp.WithObject("properties", mcp.Description("Replacement delivery properties.")),
			),
			run:      runUpdateNotificationTarget,
			mutating: true,
		},
		{
			tool: mcp.NewTool("delete_notification_target",
				mcp.WithDescription("Delete an alert notification target."),
				mcp.WithNumber("targetId", mcp.Required(), mcp.Description("Numeric notification target ID.")),
			),
			run:      runDeleteNotificationTarget,
			mutating: true,
		},
		{
			tool: mcp.NewTool("get_alert_settings",
				mcp.WithDescription("Get cluster-wide alert settings such as the repeat tolerance."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
			),
			run: runGetAlertSettings,
		},
		{
			tool: mcp.NewTool("save_alert_settings",
				mcp.WithDescription("Set the cluster-wide alert repeat tolerance, preserving all other cluster-env properties."),
				mcp.WithString("clusterName", mcp.Required(), mcp.Description("Name of the cluster.")),
				mcp.WithNumber("repeatTolerance", mcp.Required(), mcp.Description("How many consecutive checks must agree before an alert changes state.")),
			),
			run:      runSaveAlertSettings,
			mutating: true,
		},
	}
}

func runGetAlerts(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	query := map[string]string{"fields": "Alert/*"}
	if state := optionalString(req, "state", ""); state != "" {
		query["Alert/state"] = state
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/alerts", query)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetAlertsByHost(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	host, err := requireString(req, "hostName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/alerts", map[string]string{
		"fields":          "Alert/*",
		"Alert/host_name": host,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetAlertHistory(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	count, err := optionalInt(req, "count", 50)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, &ArgumentError{Name: "count", Reason: "must be positive"}
	}

	query := map[string]string{
		"fields":    "AlertHistory/*",
		"sortBy":    "AlertHistory/timestamp.desc",
		"page_size": strconv.FormatInt(count, 10),
	}
	if definition := optionalString(req, "definitionName", ""); definition != "" {
		query["AlertHistory/definition_name"] = definition
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/alert_history", query)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetAlertDefinitions(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/alert_definitions", map[string]string{
		"fields": "AlertDefinition/name,AlertDefinition/label,AlertDefinition/enabled,AlertDefinition/service_name,AlertDefinition/interval",
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetAlertDefinition(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	definitionID, err := requireInt(req, "definitionId")
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/clusters/%s/alert_definitions/%d", cluster, definitionID)
	resp, err := client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runToggleAlertDefinition(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	definitionID, err := requireInt(req, "definitionId")
	if err != nil {
		return nil, err
	}
	enabled, err := requireBool(req, "enabled")
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/clusters/%s/alert_definitions/%d", cluster, definitionID)
	body := map[string]any{"AlertDefinition": map[string]any{"enabled": enabled}}

	resp, err := client.Put(ctx, path, nil, body)
	if err != nil {
		return nil, err
	}
	return map[string]any{"definition_id": definitionID, "enabled": enabled, "response": resp.Data}, nil
}

func runGetAlertGroups(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/alert_groups", map[string]string{"fields": "*"})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runGetAlertGroup(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	groupID, err := requireInt(req, "groupId")
	if err != nil {
		return nil, err
	}

	resp, err := getAlertGroup(ctx, client, cluster, groupID)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func getAlertGroup(ctx context.Context, client *ambari.Client, cluster string, groupID int64) (*ambari.Response, error) {
	path := fmt.Sprintf("/clusters/%s/alert_groups/%d", cluster, groupID)
	return client.Get(ctx, path, map[string]string{"fields": "*"})
}

func runCreateAlertGroup(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	name, err := requireString(req, "name")
	if err != nil {
		return nil, err
	}
	definitionIDs, err := requireIntList(req, "definitionIds")
	if err != nil {
		return nil, err
	}

	return createAlertGroup(ctx, client, cluster, name, definitionIDs)
}

func createAlertGroup(ctx context.Context, client *ambari.Client, cluster, name string, definitionIDs []int64) (any, error) {
	body := map[string]any{
		"AlertGroup": map[string]any{
			"name":        name,
			"definitions": definitionIDs,
		},
	}

	resp, err := client.Post(ctx, "/clusters/"+cluster+"/alert_groups", nil, body)
	if err != nil {
		return nil, err
	}
	return map[string]any{"name": name, "definitions": definitionIDs, "response": resp.Data}, nil
}

func runUpdateAlertGroup(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	groupID, err := requireInt(req, "groupId")
	if err != nil {
		return nil, err
	}

	group := map[string]any{}
	if name := optionalString(req, "name", ""); name != "" {
		group["name"] = name
	}
	if _, ok := req.GetArguments()["definitionIds"]; ok {
		definitionIDs, err := requireIntList(req, "definitionIds")
		if err != nil {
			return nil, err
		}
		group["definitions"] = definitionIDs
	}
	if len(group) == 0 {
		return nil, &ArgumentError{Name: "name", Reason: "at least one of name or definitionIds must be given"}
	}

	path := fmt.Sprintf("/clusters/%s/alert_groups/%d", cluster, groupID)
	resp, err := client.Put(ctx, path, nil, map[string]any{"AlertGroup": group})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runDeleteAlertGroup(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	groupID, err := requireInt(req, "groupId")
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/clusters/%s/alert_groups/%d", cluster, groupID)
	resp, err := client.Delete(ctx, path)
	if err != nil {
		return nil, err
	}
	return map[string]any{"deleted_group_id": groupID, "response": resp.Data}, nil
}

// extractDefinitionIDs normalizes a group's member definitions, which Ambari
// may return as raw numeric IDs or as objects exposing an "id" field.
// Unrecognized entries are skipped.
func extractDefinitionIDs(definitions []any) []int64 {
	ids := make([]int64, 0, len(definitions))
	for _, def := range definitions {
		switch v := def.(type) {
		case float64:
			ids = append(ids, int64(v))
		case int:
			ids = append(ids, int64(v))
		case int64:
			ids = append(ids, v)
		case map[string]any:
			if id, ok := v["id"].(float64); ok {
				ids = append(ids, int64(id))
			}
		}
	}
	return ids
}

// runDuplicateAlertGroup reads the source group, extracts its member
// definition IDs, and creates a new group with those members. The two steps
// are not atomic; a creation failure surfaces as-is.
func runDuplicateAlertGroup(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	groupID, err := requireInt(req, "groupId")
	if err != nil {
		return nil, err
	}
	newName, err := requireString(req, "newName")
	if err != nil {
		return nil, err
	}

	source, err := getAlertGroup(ctx, client, cluster, groupID)
	if err != nil {
		return nil, err
	}

	var definitions []any
	if group, ok := source.Data.(map[string]any); ok {
		if ag, ok := group["AlertGroup"].(map[string]any); ok {
			definitions, _ = ag["definitions"].([]any)
		}
	}
	ids := extractDefinitionIDs(definitions)

	created, err := createAlertGroup(ctx, client, cluster, newName, ids)
	if err != nil {
		return nil, err
	}
	return map[string]any{"source_group_id": groupID, "copy": created}, nil
}

func runGetNotificationTargets(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	resp, err := client.Get(ctx, "/alert_targets", map[string]string{"fields": "*"})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runCreateNotificationTarget(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	name, err := requireString(req, "name")
	if err != nil {
		return nil, err
	}
	notificationType, err := requireString(req, "notificationType")
	if err != nil {
		return nil, err
	}
	properties, err := optionalObject(req, "properties")
	if err != nil {
		return nil, err
	}

	target := map[string]any{
		"name":              name,
		"notification_type": notificationType,
		"global":            optionalBool(req, "global", true),
	}
	if description := optionalString(req, "description", ""); description != "" {
		target["description"] = description
	}
	if properties != nil {
		target["properties"] = properties
	}

	resp, err := client.Post(ctx, "/alert_targets", nil, map[string]any{"AlertTarget": target})
	if err != nil {
		return nil, err
	}
	return map[string]any{"name": name, "response": resp.Data}, nil
}

func runUpdateNotificationTarget(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	targetID, err := requireInt(req, "targetId")
	if err != nil {
		return nil, err
	}
	properties, err := optionalObject(req, "properties")
	if err != nil {
		return nil, err
	}

	target := map[string]any{}
	if name := optionalString(req, "name", ""); name != "" {
		target["name"] = name
	}
	if description := optionalString(req, "description", ""); description != "" {
		target["description"] = description
	}
	if properties != nil {
		target["properties"] = properties
	}
	if len(target) == 0 {
		return nil, &ArgumentError{Name: "name", Reason: "at least one field to update must be given"}
	}

	path := fmt.Sprintf("/alert_targets/%d", targetID)
	resp, err := client.Put(ctx, path, nil, map[string]any{"AlertTarget": target})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func runDeleteNotificationTarget(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	targetID, err := requireInt(req, "targetId")
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/alert_targets/%d", targetID)
	resp, err := client.Delete(ctx, path)
	if err != nil {
		return nil, err
	}
	return map[string]any{"deleted_target_id": targetID, "response": resp.Data}, nil
}

// fetchClusterEnv reads the currently applied cluster-env configuration and
// returns its tag and full property map.
func fetchClusterEnv(ctx context.Context, client *ambari.Client, cluster string) (string, map[string]any, error) {
	tag, err := desiredConfigTag(ctx, client, cluster, "cluster-env")
	if err != nil {
		return "", nil, err
	}

	resp, err := client.Get(ctx, "/clusters/"+cluster+"/configurations", map[string]string{
		"type": "cluster-env",
		"tag":  tag,
	})
	if err != nil {
		return "", nil, err
	}

	items := resource.Items(resp.Data)
	if len(items) == 0 {
		return "", nil, fmt.Errorf("cluster-env configuration with tag %q not found in cluster %s", tag, cluster)
	}
	item, ok := items[0].(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("cluster-env configuration for cluster %s has an unexpected shape", cluster)
	}
	properties, _ := item["properties"].(map[string]any)
	return tag, properties, nil
}

// mergeRepeatTolerance returns a copy of props with the alert repeat
// tolerance set, leaving every pre-existing property untouched.
func mergeRepeatTolerance(props map[string]any, tolerance int64) map[string]any {
	merged := make(map[string]any, len(props)+1)
	for k, v := range props {
		merged[k] = v
	}
	merged["alerts_repeat_tolerance"] = strconv.FormatInt(tolerance, 10)
	return merged
}

func runGetAlertSettings(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}

	tag, properties, err := fetchClusterEnv(ctx, client, cluster)
	if err != nil {
		return nil, err
	}

	tolerance, ok := properties["alerts_repeat_tolerance"]
	if !ok {
		tolerance = "1" // Ambari's built-in default when the property is unset
	}
	return map[string]any{
		"cluster":                 cluster,
		"config_tag":              tag,
		"alerts_repeat_tolerance": tolerance,
	}, nil
}

// runSaveAlertSettings rewrites cluster-env with the new repeat tolerance.
// Read and write are not atomic; a concurrent config change between them is
// last-write-wins.
func runSaveAlertSettings(ctx context.Context, client *ambari.Client, req mcp.CallToolRequest) (any, error) {
	cluster, err := requireString(req, "clusterName")
	if err != nil {
		return nil, err
	}
	tolerance, err := requireInt(req, "repeatTolerance")
	if err != nil {
		return nil, err
	}
	if tolerance < 1 {
		return nil, &ArgumentError{Name: "repeatTolerance", Reason: "must be positive"}
	}

	_, properties, err := fetchClusterEnv(ctx, client, cluster)
	if err != nil {
		return nil, err
	}

	newTag := fmt.Sprintf("version%d", time.Now().UnixMilli())
	body := map[string]any{
		"Clusters": map[string]any{
			"desired_config": map[string]any{
				"type":       "cluster-env",
				"tag":        newTag,
				"properties": mergeRepeatTolerance(properties, tolerance),
			},
		},
	}

	resp, err := client.Put(ctx, "/clusters/"+cluster, nil, body)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"cluster":                 cluster,
		"config_tag":              newTag,
		"alerts_repeat_tolerance": tolerance,
		"response":                resp.Data,
	}, nil
}
