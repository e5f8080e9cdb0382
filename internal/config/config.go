package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/window-controls"
	DefaultConfigFile = "config.yaml"
)

// Config is the root configuration structure
type Config struct {
	// Server holds window server connection settings.
	Server ServerConfig `yaml:"server" json:"server"`

	// Displays optionally pins display roles to specific screen ids,
	// overriding the built-in classification heuristics.
	Displays DisplayConfig `yaml:"displays" json:"displays"`

	// UnknownAppLabel is the display name used when no application
	// identity resolves.
	UnknownAppLabel string `yaml:"unknownAppLabel" json:"unknownAppLabel"`
}

// ServerConfig holds window server connection settings
type ServerConfig struct {
	Socket         string `yaml:"socket" json:"socket"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" json:"timeoutSeconds"`
}

// DisplayConfig pins display roles by screen id. Empty values leave the
// heuristic classification in charge.
type DisplayConfig struct {
	BuiltInID  string `yaml:"builtinId" json:"builtinId"`
	ExternalID string `yaml:"externalId" json:"externalId"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Socket:         "/tmp/window-controls.sock",
			TimeoutSeconds: 30,
		},
		UnknownAppLabel: "Unknown App",
	}
}

// Timeout returns the server request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/window-controls/config.yaml; a missing
// default file yields Default() rather than an error.
// Supports both .yaml and .json extensions.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return LoadConfigFromBytes(data, "yaml")
	case ".json":
		return LoadConfigFromBytes(data, "json")
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// LoadConfigFromBytes loads configuration from raw bytes.
// format should be "yaml" or "json". Unset fields take their defaults.
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Server.Socket == "" {
		return fmt.Errorf("server.socket must not be empty")
	}
	if c.Server.TimeoutSeconds < 0 {
		return fmt.Errorf("server.timeoutSeconds must not be negative")
	}
	if c.UnknownAppLabel == "" {
		return fmt.Errorf("unknownAppLabel must not be empty")
	}
	if c.Displays.BuiltInID != "" && c.Displays.BuiltInID == c.Displays.ExternalID {
		return fmt.Errorf("displays.builtinId and displays.externalId must differ")
	}
	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}
