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

// Alert states recognized by the summary bucketing. Anything else, including
// a missing state, lands in UNKNOWN.
var alertStates = []string{"CRITICAL", "WARNING", "OK", "UNKNOWN"}

// AlertSummary buckets a cluster's current alerts by state.
type AlertSummary struct {
	Counts  map[string]int   `json:"counts"`
	Buckets map[string][]any `json:"buckets"`
}

// BucketAlerts partitions alert items into the four fixed state buckets.
// The function is total: every input item lands in exactly one bucket, and
// items with a missing or unrecognized state count as UNKNOWN.
func BucketAlerts(items []any) *AlertSummary {
	summary := &AlertSummary{
		Counts:  make(map[string]int, len(alertStates)),
		Buckets: make(map[string][]any, len(alertStates)),
	}
	for _, state := range alertStates {
		summary.Counts[state] = 0
		summary.Buckets[state] = []any{}
	}

	for _, item := range items {
		state := alertState(item)
		summary.Counts[state]++
		summary.Buckets[state] = append(summary.Buckets[state], item)
	}

	return summary
}

// alertState extracts the state of one alert item, tolerating both the
// wrapped Ambari shape ({"Alert": {"state": ...}}) and a flat one.
func alertState(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return "UNKNOWN"
	}

	if wrapped, ok := obj["Alert"].(map[string]any); ok {
		obj = wrapped
	}

	state, ok := obj["state"].(string)
	if !ok {
		return "UNKNOWN"
	}
	for _, known := range alertStates {
		if state == known {
			return state
		}
	}
	return "UNKNOWN"
}

// StaleConfigSummary groups host components with stale configurations by the
// service that owns them.
type StaleConfigSummary struct {
	ServicesAffected     int              `json:"services_affected"`
	TotalStaleComponents int              `json:"total_stale_components"`
	Services             map[string][]any `json:"services"`
}

// GroupStaleConfigs groups stale host-components by service name. Items
// without a declared service name are excluded from every group and do not
// affect the counts.
func GroupStaleConfigs(items []any) *StaleConfigSummary {
	summary := &StaleConfigSummary{
		Services: make(map[string][]any),
	}

	for _, item := range items {
		service := staleConfigService(item)
		if service == "" {
			continue
		}
		summary.Services[service] = append(summary.Services[service], item)
		summary.TotalStaleComponents++
	}

	summary.ServicesAffected = len(summary.Services)
	return summary
}

// staleConfigService extracts the owning service name of one host-component
// item, tolerating both the wrapped Ambari shape ({"HostRoles": {...}}) and a
// flat one. Returns empty when no service name is declared.
func staleConfigService(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return ""
	}

	if wrapped, ok := obj["HostRoles"].(map[string]any); ok {
		obj = wrapped
	}

	service, _ := obj["service_name"].(string)
	return service
}

// Items extracts the "items" array from an Ambari collection response.
// Missing or malformed collections yield an empty slice, never an error:
// aggregation is total over whatever the upstream returned.
func Items(data any) []any {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	items, ok := obj["items"].([]any)
	if !ok {
		return nil
	}
	return items
}
