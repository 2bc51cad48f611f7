// Package config holds the SPC report generator configuration, loaded from a
// YAML file with environment overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all SPC report generator configuration.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig configures the remote inspection service.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// AnalysisConfig holds the default analysis parameters; CLI flags override
// them per run.
type AnalysisConfig struct {
	SubgroupSize int     `yaml:"subgroup_size"`
	LSL          float64 `yaml:"lsl"`
	USL          float64 `yaml:"usl"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "30s",
		},
		Analysis: AnalysisConfig{
			SubgroupSize: 5,
		},
	}
}

// Load reads configuration from path, starting from the defaults. A missing
// file is not an error; the defaults (plus env overrides) apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ServiceTimeout parses the configured timeout, falling back to 30s when the
// value is empty or malformed.
func (c *Config) ServiceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("SPC_SERVICE_URL"); url != "" {
		c.Service.BaseURL = url
	}
	if timeout := os.Getenv("SPC_SERVICE_TIMEOUT"); timeout != "" {
		c.Service.Timeout = timeout
	}
}
