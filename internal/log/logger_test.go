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

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatJSON, Output: &buf})

	logger.Info("hello", slog.String("tool", "get_clusters"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "get_clusters", entry["tool"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatText, Output: &buf})

	logger.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "warn", Format: FormatJSON, Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	logger := New(nil)
	require.NotNil(t, logger)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestFromEnv_Debug(t *testing.T) {
	t.Setenv("AMBARI_MCP_DEBUG", "1")
	t.Setenv("LOG_LEVEL", "error")

	cfg := FromEnv()

	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.AddSource)
}

func TestFromEnv_LevelAndFormat(t *testing.T) {
	t.Setenv("AMBARI_MCP_DEBUG", "")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg := FromEnv()

	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatJSON, Output: &buf})

	WithComponent(logger, "gateway").Info("hi")

	assert.True(t, strings.Contains(buf.String(), `"component":"gateway"`))
}

func TestSanitizeSecret(t *testing.T) {
	assert.Equal(t, "[REDACTED]", SanitizeSecret("hunter2"))
	assert.Equal(t, "[REDACTED]", SanitizeSecret(""))
}
