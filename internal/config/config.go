// Package config loads the server configuration from YAML or TOML files,
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "SPECDOCK_"

// Config is the top-level service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server" json:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit" json:"rate_limit"`
}

// ServerConfig configures the HTTP listener and spec discovery.
type ServerConfig struct {
	// Address is the listen address, e.g. ":8001".
	Address string `yaml:"address" toml:"address" json:"address"`

	// BaseURL is the public base URL advertised in collection responses.
	BaseURL string `yaml:"base_url" toml:"base_url" json:"base_url"`

	// SpecsDir is the directory scanned for OpenAPI documents.
	SpecsDir string `yaml:"specs_dir" toml:"specs_dir" json:"specs_dir"`

	LogLevel  string `yaml:"log_level" toml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format" json:"log_format"`
}

// RateLimitConfig configures optional per-client request limiting.
type RateLimitConfig struct {
	Enabled       bool `yaml:"enabled" toml:"enabled" json:"enabled"`
	Requests      int  `yaml:"requests" toml:"requests" json:"requests"`
	WindowSeconds int  `yaml:"window_seconds" toml:"window_seconds" json:"window_seconds"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:   ":8001",
			BaseURL:   "http://0.0.0.0:8001",
			SpecsDir:  "specs",
			LogLevel:  "info",
			LogFormat: "text",
		},
		RateLimit: RateLimitConfig{
			Enabled:       false,
			Requests:      300,
			WindowSeconds: 60,
		},
	}
}

// File returns the config file path: $SPECDOCK_CONFIG if set, otherwise
// specdock.yaml in the working directory.
func File() string {
	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		return path
	}
	return "specdock.yaml"
}

// Load reads the config file at path, fills unset fields with defaults, and
// applies environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.fillDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// fillDefaults restores defaults for fields the file left empty.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	if c.Server.SpecsDir == "" {
		c.Server.SpecsDir = def.Server.SpecsDir
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Server.LogFormat == "" {
		c.Server.LogFormat = def.Server.LogFormat
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = def.RateLimit.Requests
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = def.RateLimit.WindowSeconds
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPrefix + "ADDRESS"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvPrefix + "BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv(EnvPrefix + "SPECS_DIR"); v != "" {
		c.Server.SpecsDir = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		c.Server.LogFormat = v
	}
	if v := os.Getenv(EnvPrefix + "RATE_LIMIT"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.RateLimit.Enabled = enabled
		}
	}
}
