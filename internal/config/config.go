package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultDataDir     = "data"
	defaultOutputDir   = "output"
	defaultTopicPrefix = "campus_energy"
)

// Config holds the application configuration
type Config struct {
	DataDir   string     `yaml:"data_dir,omitempty"`   // Directory holding per-building CSV exports
	OutputDir string     `yaml:"output_dir,omitempty"` // Root of the generated reports
	SortFiles *bool      `yaml:"sort_files,omitempty"` // Process exports in file name order (default: true)
	LogLevel  string     `yaml:"log_level,omitempty"`  // debug, info, warn or error
	MQTT      MQTTConfig `yaml:"mqtt,omitempty"`
}

// MQTTConfig holds the broker settings used by the publish command
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`                 // e.g., "localhost:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // e.g., "campus_energy"
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDataDir returns the input directory, defaulting to ./data
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir
	}
	return c.DataDir
}

// GetOutputDir returns the report directory, defaulting to ./output
func (c *Config) GetOutputDir() string {
	if c.OutputDir == "" {
		return defaultOutputDir
	}
	return c.OutputDir
}

// GetSortFiles reports whether exports are processed in file name order
// rather than directory listing order
func (c *Config) GetSortFiles() bool {
	if c.SortFiles == nil {
		return true
	}
	return *c.SortFiles
}

// GetLogLevel returns the configured log level, lowercased, defaulting to info
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return strings.ToLower(c.LogLevel)
}

// GetTopicPrefix returns the MQTT topic prefix with a default
func (m MQTTConfig) GetTopicPrefix() string {
	if m.TopicPrefix == "" {
		return defaultTopicPrefix
	}
	return strings.TrimSuffix(m.TopicPrefix, "/")
}

// Validate checks the MQTT settings when publishing is enabled
func (m MQTTConfig) Validate() error {
	if !m.Enabled {
		return fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if m.Broker == "" {
		return fmt.Errorf("MQTT broker address is required when enabled")
	}
	return nil
}
