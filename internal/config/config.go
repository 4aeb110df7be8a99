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

// Package config loads the static configuration for the Ambari MCP server.
//
// Configuration is read once at startup and never changes afterwards. Values
// come from an optional YAML file overlaid by environment variables; the
// environment always wins. Missing values fall back to development defaults
// that are reported as startup warnings.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Development defaults. These are only suitable for a local Ambari sandbox
// and every fallback to them is surfaced via Warnings.
const (
	DefaultBaseURL   = "http://localhost:8080/api/v1"
	DefaultUsername  = "admin"
	DefaultPassword  = "admin"
	DefaultTimeoutMS = 30000
)

// Environment variable names.
const (
	EnvBaseURL   = "AMBARI_BASE_URL"
	EnvUsername  = "AMBARI_USERNAME"
	EnvPassword  = "AMBARI_PASSWORD"
	EnvTimeoutMS = "AMBARI_TIMEOUT_MS"
)

// ConfigError represents a configuration problem.
type ConfigError struct {
	// Key is the configuration key that has the problem.
	Key string

	// Reason explains what's wrong with the configuration.
	Reason string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Config holds the static configuration shared by every invocation.
type Config struct {
	// BaseURL is the root of the Ambari REST API, e.g.
	// https://ambari.example.com:8443/api/v1.
	BaseURL string `yaml:"base_url"`

	// Username and Password are the HTTP Basic credentials for every
	// upstream call.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// TimeoutMS is the per-call network timeout in milliseconds.
	TimeoutMS int `yaml:"timeout_ms"`

	// warnings collected while resolving defaults.
	warnings []string
}

// Timeout returns the per-call network timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Warnings returns startup warnings produced while loading, such as
// placeholder credentials being in effect. Each should be logged as a
// first-class startup event.
func (c *Config) Warnings() []string {
	return c.warnings
}

// Load builds the configuration from the optional YAML file at path (empty
// means no file) overlaid by environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Key: "file", Reason: fmt.Sprintf("cannot read %s", path), Cause: err}
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigError{Key: "file", Reason: fmt.Sprintf("cannot parse %s", path), Cause: err}
		}
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(EnvTimeoutMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, &ConfigError{Key: EnvTimeoutMS, Reason: fmt.Sprintf("must be a positive integer, got %q", v), Cause: err}
		}
		cfg.TimeoutMS = ms
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills unset values with development defaults, recording a
// warning for each credential or endpoint fallback.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
		c.warnings = append(c.warnings,
			fmt.Sprintf("%s not set, using development default %s", EnvBaseURL, DefaultBaseURL))
	}
	switch {
	case c.Username == "" && c.Password == "":
		c.Username = DefaultUsername
		c.Password = DefaultPassword
		c.warnings = append(c.warnings,
			"no Ambari credentials configured, using placeholder admin/admin; do not use in production")
	case c.Password == "":
		// Half-configured pair: keep it as given, upstream auth will
		// almost certainly fail.
		c.warnings = append(c.warnings,
			fmt.Sprintf("%s is set but %s is empty; upstream authentication will likely fail", EnvUsername, EnvPassword))
	case c.Username == "":
		c.warnings = append(c.warnings,
			fmt.Sprintf("%s is set but %s is empty; upstream authentication will likely fail", EnvPassword, EnvUsername))
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = DefaultTimeoutMS
	}
}

// Validate checks the configuration for values that can never work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return &ConfigError{Key: "base_url", Reason: fmt.Sprintf("invalid URL %q", c.BaseURL), Cause: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Key: "base_url", Reason: fmt.Sprintf("URL scheme must be http or https, got %q", u.Scheme)}
	}
	if c.TimeoutMS <= 0 {
		return &ConfigError{Key: "timeout_ms", Reason: fmt.Sprintf("must be > 0, got %d", c.TimeoutMS)}
	}
	return nil
}
