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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBaseURL, EnvUsername, EnvPassword, EnvTimeoutMS} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultUsername, cfg.Username)
	assert.Equal(t, DefaultPassword, cfg.Password)
	assert.Equal(t, 30*time.Second, cfg.Timeout())

	// Both fallbacks produce startup warnings.
	require.Len(t, cfg.Warnings(), 2)
	assert.Contains(t, cfg.Warnings()[0], "development default")
	assert.Contains(t, cfg.Warnings()[1], "placeholder")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://ambari.example.com:8443/api/v1")
	t.Setenv(EnvUsername, "ops")
	t.Setenv(EnvPassword, "s3cret")
	t.Setenv(EnvTimeoutMS, "5000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://ambari.example.com:8443/api/v1", cfg.BaseURL)
	assert.Equal(t, "ops", cfg.Username)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_HalfConfiguredCredentialsWarn(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://ambari.example.com/api/v1")
	t.Setenv(EnvUsername, "ops")

	cfg, err := Load("")
	require.NoError(t, err)

	// The given half survives untouched; no placeholder fills the gap.
	assert.Equal(t, "ops", cfg.Username)
	assert.Empty(t, cfg.Password)

	require.Len(t, cfg.Warnings(), 1)
	assert.Contains(t, cfg.Warnings()[0], EnvPassword)
	assert.Contains(t, cfg.Warnings()[0], "authentication will likely fail")
}

func TestLoad_PasswordWithoutUsernameWarns(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://ambari.example.com/api/v1")
	t.Setenv(EnvPassword, "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.Username)
	assert.Equal(t, "s3cret", cfg.Password)

	require.Len(t, cfg.Warnings(), 1)
	assert.Contains(t, cfg.Warnings()[0], EnvUsername)
}

func TestLoad_FileThenEnvWins(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"base_url: http://file.example.com/api/v1\nusername: fileuser\npassword: filepass\ntimeout_ms: 1000\n",
	), 0o600))

	t.Setenv(EnvUsername, "envuser")
	t.Setenv(EnvPassword, "envpass")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://file.example.com/api/v1", cfg.BaseURL)
	assert.Equal(t, "envuser", cfg.Username)
	assert.Equal(t, "envpass", cfg.Password)
	assert.Equal(t, 1000, cfg.TimeoutMS)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "file", cfgErr.Key)
}

func TestLoad_BadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTimeoutMS, "not-a-number")

	_, err := Load("")
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, EnvTimeoutMS, cfgErr.Key)
}

func TestValidate_BadScheme(t *testing.T) {
	cfg := &Config{BaseURL: "ftp://ambari", TimeoutMS: 1000}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme")
}
