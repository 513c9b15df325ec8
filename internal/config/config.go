// Package config loads collector configuration from YAML with
// environment variable expansion.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level collector configuration.
type Config struct {
	Entsoe    EntsoeConfig    `yaml:"entsoe"`
	Database  DatabaseConfig  `yaml:"database"`
	Collector CollectorConfig `yaml:"collector"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// EntsoeConfig holds the transparency platform endpoint and credential.
type EntsoeConfig struct {
	BaseURL       string `yaml:"base_url"`
	SecurityToken string `yaml:"security_token"`
}

// DatabaseConfig holds storage connection strings. ClickHouse is
// optional; without it the revision audit log is disabled.
type DatabaseConfig struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickhouseDSN string `yaml:"clickhouse_dsn"`
}

// CollectorConfig holds fetch policy and scheduling.
type CollectorConfig struct {
	// ForceRefetch re-fetches and upserts even when rows already exist
	// for the target date. Named explicitly: skipping is a policy
	// choice, not inferred from row presence.
	ForceRefetch *bool  `yaml:"force_refetch"`
	RunAt        string `yaml:"run_at"`
	RunAtStart   bool   `yaml:"run_at_start"`
	Timezone     string `yaml:"timezone"` // scheduler clock, defaults to system local
}

// MetricsConfig holds the Prometheus endpoint address.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// Load reads a YAML config file and expands ${VAR} environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
