// Package config handles configuration loading from YAML files and environment variables.
// Both binaries share one file; each reads the sections it needs.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "1s", "500ms", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds the configuration of the agent and the dashboard.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Agent     AgentConfig     `yaml:"agent"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig points at the monitoring backend.
type ServerConfig struct {
	URL string `yaml:"url"`
}

// AgentConfig holds metric collection and delivery settings.
type AgentConfig struct {
	// HostID overrides the hostname reported with every sample.
	HostID   string   `yaml:"host_id"`
	Interval Duration `yaml:"interval"`
	// Baseline is the pause before the first sample so CPU deltas are meaningful.
	Baseline Duration    `yaml:"baseline"`
	Retry    RetryConfig `yaml:"retry"`
}

// RetryConfig bounds the exponential backoff used when posting a sample.
type RetryConfig struct {
	InitialInterval Duration `yaml:"initial_interval"`
	MaxInterval     Duration `yaml:"max_interval"`
	MaxElapsed      Duration `yaml:"max_elapsed"`
}

// DashboardConfig holds the endpoints and stream settings of the dashboard.
type DashboardConfig struct {
	EventsPath     string   `yaml:"events_path"`
	ChatPath       string   `yaml:"chat_path"`
	ReconnectDelay Duration `yaml:"reconnect_delay"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:3000",
		},
		Agent: AgentConfig{
			Interval: Duration{1 * time.Second},
			Baseline: Duration{1 * time.Second},
			Retry: RetryConfig{
				InitialInterval: Duration{200 * time.Millisecond},
				MaxInterval:     Duration{500 * time.Millisecond},
				MaxElapsed:      Duration{900 * time.Millisecond},
			},
		},
		Dashboard: DashboardConfig{
			EventsPath:     "/events",
			ChatPath:       "/chat",
			ReconnectDelay: Duration{3 * time.Second},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with defaults.
// Environment variables take highest precedence and override values from the byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults.
// If path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// CLIOverrides holds values from command-line flags.
// Empty strings are treated as "not set" and skipped.
type CLIOverrides struct {
	URL      string
	LogLevel string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value → use that path ("" means no external file)
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", filePath, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if cli.URL != "" {
		cfg.Server.URL = cli.URL
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if u := os.Getenv("VL_SERVER_URL"); u != "" {
		cfg.Server.URL = u
	}
	if level := os.Getenv("VL_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if host := os.Getenv("VL_HOST_ID"); host != "" {
		cfg.Agent.HostID = host
	}
}

// Endpoint joins the server URL with an absolute path such as "/events".
func (c *Config) Endpoint(path string) string {
	return strings.TrimRight(c.Server.URL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Validate checks that the configuration can be used by either binary.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("%w: server URL is required", ErrInvalid)
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("%w: server URL: %v", ErrInvalid, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: server URL must use http or https (got: %s)", ErrInvalid, c.Server.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: server URL has no host (got: %s)", ErrInvalid, c.Server.URL)
	}
	if c.Agent.Interval.Duration <= 0 {
		return fmt.Errorf("%w: agent interval must be positive", ErrInvalid)
	}
	if c.Dashboard.ReconnectDelay.Duration < 0 {
		return fmt.Errorf("%w: reconnect delay must not be negative", ErrInvalid)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
