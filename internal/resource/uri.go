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

// Package resource resolves ambari:// URIs into typed descriptors and serves
// read-only views of the managed cluster behind them.
package resource

import (
	"fmt"
	"strings"
)

// Scheme is the URI scheme for all addressable views.
const Scheme = "ambari"

// Kind identifies one addressable view. The set is closed: parsing never
// produces a kind outside this list.
type Kind string

const (
	KindClusterList       Kind = "cluster-list"
	KindClusterDetail     Kind = "cluster-detail"
	KindServiceList       Kind = "service-list"
	KindServiceDetail     Kind = "service-detail"
	KindServiceComponents Kind = "service-components"
	KindHostList          Kind = "host-list"
	KindHostDetail        Kind = "host-detail"
	KindAlertList         Kind = "alert-list"
	KindAlertSummary      Kind = "alert-summary"
	KindStaleConfigList   Kind = "stale-config-list"
	KindRecentRequests    Kind = "recent-requests"
	KindConfigurations    Kind = "configurations"
)

// Descriptor is the parsed form of a resource URI: a kind plus the path
// parameters that kind requires. A descriptor is only ever constructed fully
// populated; Parse never returns a partial one.
type Descriptor struct {
	Kind        Kind
	ClusterName string
	ServiceName string
	HostName    string
}

// InvalidURIError reports a URI that does not address any known view.
type InvalidURIError struct {
	// URI is the offending input, verbatim.
	URI string

	// Reason explains which rule the URI violated.
	Reason string
}

// Error implements the error interface.
func (e *InvalidURIError) Error() string {
	return fmt.Sprintf("invalid resource URI %q: %s", e.URI, e.Reason)
}

// Parse resolves a resource URI into a Descriptor.
//
// The grammar, after stripping the ambari:// prefix:
//
//	clusters
//	cluster/<name>
//	cluster/<name>/services
//	cluster/<name>/hosts
//	cluster/<name>/alerts
//	cluster/<name>/alerts/summary
//	cluster/<name>/services/stale-configs
//	cluster/<name>/requests/recent
//	cluster/<name>/configurations
//	cluster/<name>/service/<name>
//	cluster/<name>/service/<name>/components
//	host/<name>
//
// The longest literal match wins, so cluster/X/alerts/summary resolves to the
// summary kind and never falls through to a shorter shape. Anything else,
// including empty path segments, is an InvalidURIError.
func Parse(uri string) (Descriptor, error) {
	rest, ok := strings.CutPrefix(uri, Scheme+"://")
	if !ok {
		return Descriptor{}, &InvalidURIError{URI: uri, Reason: "missing " + Scheme + ":// scheme"}
	}
	if rest == "" {
		return Descriptor{}, &InvalidURIError{URI: uri, Reason: "empty path"}
	}

	segments := strings.Split(rest, "/")
	for _, s := range segments {
		if s == "" {
			return Descriptor{}, &InvalidURIError{URI: uri, Reason: "empty path segment"}
		}
	}

	switch segments[0] {
	case "clusters":
		if len(segments) == 1 {
			return Descriptor{Kind: KindClusterList}, nil
		}

	case "host":
		if len(segments) == 2 {
			return Descriptor{Kind: KindHostDetail, HostName: segments[1]}, nil
		}

	case "cluster":
		if len(segments) >= 2 {
			if d, ok := parseClusterPath(segments[1], segments[2:]); ok {
				return d, nil
			}
		}
	}

	return Descriptor{}, &InvalidURIError{URI: uri, Reason: "unrecognized resource path"}
}

// parseClusterPath matches everything under cluster/<name>. tail holds the
// segments after the cluster name.
func parseClusterPath(cluster string, tail []string) (Descriptor, bool) {
	d := Descriptor{ClusterName: cluster}

	switch len(tail) {
	case 0:
		d.Kind = KindClusterDetail
		return d, true

	case 1:
		switch tail[0] {
		case "services":
			d.Kind = KindServiceList
		case "hosts":
			d.Kind = KindHostList
		case "alerts":
			d.Kind = KindAlertList
		case "configurations":
			d.Kind = KindConfigurations
		default:
			return Descriptor{}, false
		}
		return d, true

	case 2:
		switch tail[0] + "/" + tail[1] {
		case "alerts/summary":
			d.Kind = KindAlertSummary
			return d, true
		case "services/stale-configs":
			d.Kind = KindStaleConfigList
			return d, true
		case "requests/recent":
			d.Kind = KindRecentRequests
			return d, true
		}
		if tail[0] == "service" {
			d.Kind = KindServiceDetail
			d.ServiceName = tail[1]
			return d, true
		}

	case 3:
		if tail[0] == "service" && tail[2] == "components" {
			d.Kind = KindServiceComponents
			d.ServiceName = tail[1]
			return d, true
		}
	}

	return Descriptor{}, false
}
