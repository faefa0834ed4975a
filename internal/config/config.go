// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the yapi-mcp configuration from .yapi/config.yaml and
// the environment.
//
// Precedence, highest first: environment variables, the config file, and
// built-in defaults. A missing config file is not an error; BASE_URL alone
// is enough to run the server.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-project configuration directory.
	DirName = ".yapi"
	// FileName is the configuration file inside DirName.
	FileName = "config.yaml"

	DefaultProjectID = "810"
	DefaultPageSize  = 20
	DefaultTimeout   = 10 * time.Second
)

// Environment variables that override the file.
const (
	EnvBaseURL   = "BASE_URL"
	EnvToken     = "YAPI_TOKEN"
	EnvCookie    = "YAPI_COOKIE"
	EnvProjectID = "YAPI_PROJECT_ID"
	EnvTimeout   = "YAPI_TIMEOUT"
)

// Config is the on-disk configuration.
type Config struct {
	YApi      YApiConfig      `yaml:"yapi"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// YApiConfig describes how to reach the YApi server.
type YApiConfig struct {
	BaseURL   string `yaml:"base_url"`
	Token     string `yaml:"token,omitempty"`
	Cookie    string `yaml:"cookie,omitempty"`
	ProjectID string `yaml:"project_id"`
	PageSize  int    `yaml:"page_size"`
	// Timeout is a Go duration string such as "10s".
	Timeout        Duration          `yaml:"timeout"`
	BrowserHeaders *bool             `yaml:"browser_headers,omitempty"`
	Headers        map[string]string `yaml:"headers,omitempty"`
}

// TelemetryConfig enables the optional metrics and tracing exporters.
type TelemetryConfig struct {
	MetricsAddr  string `yaml:"metrics_addr,omitempty"`
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}

// Duration is a time.Duration that reads and writes as "10s" in YAML.
type Duration time.Duration

// UnmarshalYAML accepts a duration string or a bare number of seconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: timeout must be a scalar", node.Line)
	}
	v, err := parseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// DefaultConfig returns a configuration with every default filled in and no
// base URL.
func DefaultConfig() *Config {
	browser := true
	return &Config{
		YApi: YApiConfig{
			ProjectID:      DefaultProjectID,
			PageSize:       DefaultPageSize,
			Timeout:        Duration(DefaultTimeout),
			BrowserHeaders: &browser,
		},
	}
}

// ConfigDir returns the configuration directory for a project root.
func ConfigDir(root string) string {
	return filepath.Join(root, DirName)
}

// ConfigPath returns the configuration file path for a project root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), FileName)
}

// Load reads path (or ./.yapi/config.yaml when path is empty), applies
// defaults and the environment overrides found through getenv (os.Getenv in
// production). It does not validate; call Validate.
func Load(path string, getenv func(string) string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigPath(".")
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path) //nolint:gosec // user supplied config path
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		c.YApi.BaseURL = v
	}
	if v := getenv(EnvToken); v != "" {
		c.YApi.Token = v
	}
	if v := getenv(EnvCookie); v != "" {
		c.YApi.Cookie = v
	}
	if v := strings.TrimSpace(getenv(EnvProjectID)); v != "" {
		c.YApi.ProjectID = v
	}
	if v := strings.TrimSpace(getenv(EnvTimeout)); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.YApi.Timeout = Duration(d)
	}
	return nil
}

// applyDefaults fills fields the file left out.
func (c *Config) applyDefaults() {
	c.YApi.BaseURL = strings.TrimRight(strings.TrimSpace(c.YApi.BaseURL), "/")
	if c.YApi.ProjectID == "" {
		c.YApi.ProjectID = DefaultProjectID
	}
	if c.YApi.BrowserHeaders == nil {
		browser := true
		c.YApi.BrowserHeaders = &browser
	}
}

// Validate reports the first problem that would prevent the server from
// reaching YApi.
func (c *Config) Validate() error {
	if c.YApi.BaseURL == "" {
		return fmt.Errorf("base URL is not set (yapi.base_url or %s)", EnvBaseURL)
	}
	u, err := url.Parse(c.YApi.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.YApi.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.YApi.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", c.YApi.BaseURL)
	}
	if c.YApi.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.YApi.PageSize)
	}
	if c.YApi.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", time.Duration(c.YApi.Timeout))
	}
	return nil
}

// UseBrowserHeaders reports whether browser emulation headers are sent.
func (c *Config) UseBrowserHeaders() bool {
	return c.YApi.BrowserHeaders == nil || *c.YApi.BrowserHeaders
}

// SaveConfig writes cfg to path, creating its directory.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := "# yapi-mcp configuration. Environment variables " +
		strings.Join([]string{EnvBaseURL, EnvToken, EnvCookie, EnvProjectID, EnvTimeout}, ", ") +
		" take precedence.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
