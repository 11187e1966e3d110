// Package config provides configuration loading and structs for the fsaptvis server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Service  ServiceConfig  `yaml:"service"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                  string   `yaml:"host"`
	Port                  int      `yaml:"port"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
}

// ServiceConfig holds the identity reported by the health endpoint.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// AnalysisConfig holds analysis defaults.
type AnalysisConfig struct {
	// DefaultThreshold applies when a request omits threshold. Zero is a valid value (no filtering).
	DefaultThreshold *float64 `yaml:"default_threshold"`
}

// ThresholdOrDefault returns the configured default threshold, or 0.5 when unset.
func (a *AnalysisConfig) ThresholdOrDefault() float64 {
	if a.DefaultThreshold != nil {
		return *a.DefaultThreshold
	}
	return defaultThreshold
}

// DatasetConfig points at an optional YAML dataset replacing the built-in sample table.
type DatasetConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   *bool  `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// EnabledOrDefault returns whether /metrics is served; defaults to true when unset.
func (m *MetricsConfig) EnabledOrDefault() bool {
	if m.Enabled != nil {
		return *m.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if cfg.Dataset.Path != "" {
		cfg.Dataset.Path = expandPath(cfg.Dataset.Path, filepath.Dir(path))
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
