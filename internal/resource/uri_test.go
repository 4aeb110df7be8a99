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

func TestParse_ValidURIs(t *testing.T) {
	tests := []struct {
		uri  string
		want Descriptor
	}{
		{"ambari://clusters", Descriptor{Kind: KindClusterList}},
		{"ambari://cluster/prod", Descriptor{Kind: KindClusterDetail, ClusterName: "prod"}},
		{"ambari://cluster/prod/services", Descriptor{Kind: KindServiceList, ClusterName: "prod"}},
		{"ambari://cluster/prod/hosts", Descriptor{Kind: KindHostList, ClusterName: "prod"}},
		{"ambari://cluster/prod/alerts", Descriptor{Kind: KindAlertList, ClusterName: "prod"}},
		{"ambari://cluster/prod/alerts/summary", Descriptor{Kind: KindAlertSummary, ClusterName: "prod"}},
		{"ambari://cluster/prod/services/stale-configs", Descriptor{Kind: KindStaleConfigList, ClusterName: "prod"}},
		{"ambari://cluster/prod/requests/recent", Descriptor{Kind: KindRecentRequests, ClusterName: "prod"}},
		{"ambari://cluster/prod/configurations", Descriptor{Kind: KindConfigurations, ClusterName: "prod"}},
		{"ambari://cluster/prod/service/HDFS", Descriptor{Kind: KindServiceDetail, ClusterName: "prod", ServiceName: "HDFS"}},
		{"ambari://cluster/prod/service/HDFS/components", Descriptor{Kind: KindServiceComponents, ClusterName: "prod", ServiceName: "HDFS"}},
		{"ambari://host/worker-01.example.com", Descriptor{Kind: KindHostDetail, HostName: "worker-01.example.com"}},
		// A service literally named "summary" is still a service detail.
		{"ambari://cluster/prod/service/summary", Descriptor{Kind: KindServiceDetail, ClusterName: "prod", ServiceName: "summary"}},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := Parse(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_InvalidURIs(t *testing.T) {
	uris := []string{
		"",
		"clusters",
		"http://cluster/prod",
		"ambari://",
		"ambari:///clusters",
		"ambari://cluster",
		"ambari://cluster/",
		"ambari://cluster//services",
		"ambari://cluster/prod/",
		"ambari://cluster/prod/nonsense",
		"ambari://cluster/prod/alerts/summary/extra",
		"ambari://cluster/prod/alerts/detail",
		"ambari://cluster/prod/services/stale",
		"ambari://cluster/prod/service",
		"ambari://cluster/prod/service/HDFS/nonsense",
		"ambari://cluster/prod/service/HDFS/components/extra",
		"ambari://clusters/prod",
		"ambari://host",
		"ambari://host/a/b",
		"ambari://hosts/a",
	}

	for _, uri := range uris {
		t.Run(uri, func(t *testing.T) {
			got, err := Parse(uri)
			require.Error(t, err)

			var invalidErr *InvalidURIError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, uri, invalidErr.URI)

			// Never a partially-filled descriptor.
			assert.Equal(t, Descriptor{}, got)
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	first, err := Parse("ambari://cluster/prod/alerts/summary")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := Parse("ambari://cluster/prod/alerts/summary")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}
