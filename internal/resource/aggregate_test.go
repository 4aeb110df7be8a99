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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertItem(state string) map[string]any {
	return map[string]any{"Alert": map[string]any{"state": state, "definition_name": "x"}}
}

func TestBucketAlerts_Partition(t *testing.T) {
	items := []any{
		alertItem("CRITICAL"),
		alertItem("CRITICAL"),
		alertItem("WARNING"),
		alertItem("OK"),
		alertItem("UNKNOWN"),
		alertItem("WEIRD"),                                 // unrecognized state
		map[string]any{"Alert": map[string]any{}},          // missing state
		map[string]any{"state": "OK"},                      // flat shape
		"not even an object",                               // malformed item
	}

	summary := BucketAlerts(items)

	assert.Equal(t, 2, summary.Counts["CRITICAL"])
	assert.Equal(t, 1, summary.Counts["WARNING"])
	assert.Equal(t, 2, summary.Counts["OK"])
	assert.Equal(t, 4, summary.Counts["UNKNOWN"])

	// The buckets are a partition: disjoint, totals equal the input length.
	total := 0
	for _, state := range alertStates {
		assert.Len(t, summary.Buckets[state], summary.Counts[state])
		total += summary.Counts[state]
	}
	assert.Equal(t, len(items), total)
}

func TestBucketAlerts_Empty(t *testing.T) {
	summary := BucketAlerts(nil)

	for _, state := range alertStates {
		assert.Equal(t, 0, summary.Counts[state])
		assert.Empty(t, summary.Buckets[state])
	}
}

func staleItem(service, component string) map[string]any {
	hr := map[string]any{"component_name": component}
	if service != "" {
		hr["service_name"] = service
	}
	return map[string]any{"HostRoles": hr}
}

func TestGroupStaleConfigs(t *testing.T) {
	items := []any{
		staleItem("HDFS", "DATANODE"),
		staleItem("HDFS", "NAMENODE"),
		staleItem("YARN", "NODEMANAGER"),
		staleItem("", "ORPHAN"), // no service name: excluded everywhere
		"garbage",               // malformed item: excluded everywhere
	}

	summary := GroupStaleConfigs(items)

	assert.Equal(t, 2, summary.ServicesAffected)
	assert.Equal(t, 3, summary.TotalStaleComponents)
	assert.Len(t, summary.Services["HDFS"], 2)
	assert.Len(t, summary.Services["YARN"], 1)
	assert.NotContains(t, summary.Services, "")

	// The union of all groups is exactly the items that declare a service.
	grouped := 0
	for _, group := range summary.Services {
		grouped += len(group)
	}
	assert.Equal(t, summary.TotalStaleComponents, grouped)
}

func TestGroupStaleConfigs_Empty(t *testing.T) {
	summary := GroupStaleConfigs(nil)

	assert.Zero(t, summary.ServicesAffected)
	assert.Zero(t, summary.TotalStaleComponents)
	assert.Empty(t, summary.Services)
}

func TestItems(t *testing.T) {
	data := map[string]any{"items": []any{1.0, 2.0}}
	require.Len(t, Items(data), 2)

	assert.Nil(t, Items(nil))
	assert.Nil(t, Items("string"))
	assert.Nil(t, Items(map[string]any{"items": "not-a-list"}))
	assert.Nil(t, Items(map[string]any{}))
}
