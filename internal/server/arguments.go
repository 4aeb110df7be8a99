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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ArgumentError reports an invalid or missing tool argument.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}

// requireString extracts a required, non-blank string argument.
func requireString(req mcp.CallToolRequest, name string) (string, error) {
	value, err := req.RequireString(name)
	if err != nil {
		return "", &ArgumentError{Name: name, Reason: "required string argument is missing"}
	}
	if strings.TrimSpace(value) == "" {
		return "", &ArgumentError{Name: name, Reason: "must not be blank"}
	}
	return value, nil
}

// optionalString extracts a string argument, returning def when absent.
func optionalString(req mcp.CallToolRequest, name, def string) string {
	return req.GetString(name, def)
}

// optionalBool extracts a boolean argument, returning def when absent.
func optionalBool(req mcp.CallToolRequest, name string, def bool) bool {
	return req.GetBool(name, def)
}

// requireBool extracts a required boolean argument. An absent value is an
// argument error, never a silent default; a mutation must not run on a flag
// the caller did not send. Boolean-looking strings are tolerated because
// some MCP clients stringify every parameter.
func requireBool(req mcp.CallToolRequest, name string) (bool, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return false, &ArgumentError{Name: name, Reason: "required boolean argument is missing"}
	}

	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, &ArgumentError{Name: name, Reason: "not a valid boolean"}
		}
		return b, nil
	default:
		return false, &ArgumentError{Name: name, Reason: "must be a boolean"}
	}
}

// requireInt extracts a required integer argument. JSON numbers arrive as
// float64; numeric strings are tolerated because some MCP clients stringify
// every parameter.
func requireInt(req mcp.CallToolRequest, name string) (int64, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return 0, &ArgumentError{Name: name, Reason: "required integer argument is missing"}
	}
	return coerceInt(name, raw)
}

// optionalInt extracts an integer argument, returning def when absent.
func optionalInt(req mcp.CallToolRequest, name string, def int64) (int64, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return def, nil
	}
	return coerceInt(name, raw)
}

func coerceInt(name string, raw any) (int64, error) {
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, &ArgumentError{Name: name, Reason: "not a valid integer"}
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, &ArgumentError{Name: name, Reason: "not a valid integer"}
		}
		return n, nil
	default:
		return 0, &ArgumentError{Name: name, Reason: "must be an integer"}
	}
}

// requireIntList extracts a required list of integers. The value may arrive
// as a JSON array or as a string containing a JSON array; the string form is
// decoded exactly once and a decode failure is an argument error, never a
// silent empty list.
func requireIntList(req mcp.CallToolRequest, name string) ([]int64, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return nil, &ArgumentError{Name: name, Reason: "required list argument is missing"}
	}

	list, err := coerceList(name, raw)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(list))
	for _, item := range list {
		id, err := coerceInt(name, item)
		if err != nil {
			return nil, &ArgumentError{Name: name, Reason: "list elements must be integers"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func coerceList(name string, raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case string:
		var list []any
		if err := json.Unmarshal([]byte(v), &list); err != nil {
			return nil, &ArgumentError{Name: name, Reason: "string value is not a JSON array"}
		}
		return list, nil
	default:
		return nil, &ArgumentError{Name: name, Reason: "must be a JSON array"}
	}
}

// optionalObject extracts an object argument. The value may arrive as a JSON
// object or as a string containing one. Absent arguments yield nil.
func optionalObject(req mcp.CallToolRequest, name string) (map[string]any, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case string:
		var obj map[string]any
		if err := json.Unmarshal([]byte(v), &obj); err != nil {
			return nil, &ArgumentError{Name: name, Reason: "string value is not a JSON object"}
		}
		return obj, nil
	default:
		return nil, &ArgumentError{Name: name, Reason: "must be a JSON object"}
	}
}
