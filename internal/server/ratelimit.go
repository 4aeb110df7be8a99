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

import "golang.org/x/time/rate"

// rateLimiter applies token-bucket limits to MCP tool calls. Mutating tools
// (anything that starts, stops, writes, or deletes upstream state) draw from
// a separate, tighter bucket than read-only calls.
type rateLimiter struct {
	calls     *rate.Limiter
	mutations *rate.Limiter
}

// newRateLimiter creates a limiter with per-minute budgets for total calls
// and for mutating calls.
func newRateLimiter(callsPerMinute, mutationsPerMinute int) *rateLimiter {
	return &rateLimiter{
		calls:     rate.NewLimiter(rate.Limit(float64(callsPerMinute)/60.0), callsPerMinute),
		mutations: rate.NewLimiter(rate.Limit(float64(mutationsPerMinute)/60.0), mutationsPerMinute),
	}
}

// allowCall checks if any tool call is allowed.
func (l *rateLimiter) allowCall() bool {
	if l == nil {
		return true
	}
	return l.calls.Allow()
}

// allowMutation checks if a mutating tool call is allowed.
func (l *rateLimiter) allowMutation() bool {
	if l == nil {
		return true
	}
	return l.mutations.Allow()
}
