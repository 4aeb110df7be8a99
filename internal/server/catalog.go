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

// catalog assembles the full tool table. Registration and dispatch are
// driven entirely by this slice; adding a tool means adding one entry to the
// relevant domain file.
func catalog() []toolDefinition {
	var defs []toolDefinition
	defs = append(defs, clusterTools()...)
	defs = append(defs, serviceTools()...)
	defs = append(defs, hostTools()...)
	defs = append(defs, alertTools()...)
	return defs
}
