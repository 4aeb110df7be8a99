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
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// serverMetrics tracks tool invocation counts and latency.
type serverMetrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// newServerMetrics creates and registers the invocation metrics.
func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	m := &serverMetrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ambari_mcp",
			Name:      "tool_invocations_total",
			Help:      "Total tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ambari_mcp",
			Name:      "tool_duration_seconds",
			Help:      "Wall-clock duration of tool invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
	}

	reg.MustRegister(m.invocations, m.duration)
	return m
}

// observe records one invocation outcome. Safe to call on a nil receiver so
// the dispatcher works without metrics wired.
func (m *serverMetrics) observe(tool string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.invocations.WithLabelValues(tool, outcome).Inc()
	m.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
