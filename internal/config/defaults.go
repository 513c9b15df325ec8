package config

import "entsoe-collector/internal/entsoe"

// Default values for optional configuration fields.
const (
	// DefaultRunAt leaves a margin after the roughly 13:00 CET day-ahead
	// publication; the batch targets yesterday, so any morning hour works.
	DefaultRunAt = "06:30"

	DefaultMetricsAddr = ":9090"
)

func (c *Config) applyDefaults() {
	if c.Entsoe.BaseURL == "" {
		c.Entsoe.BaseURL = entsoe.DefaultBaseURL
	}
	if c.Collector.ForceRefetch == nil {
		forceRefetch := true
		c.Collector.ForceRefetch = &forceRefetch
	}
	if c.Collector.RunAt == "" {
		c.Collector.RunAt = DefaultRunAt
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = DefaultMetricsAddr
	}
}
