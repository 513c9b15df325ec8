package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Entsoe.SecurityToken == "" {
		return errors.New("entsoe.security_token is required")
	}
	if c.Database.PostgresDSN == "" {
		return errors.New("database.postgres_dsn is required")
	}
	if c.Collector.Timezone != "" {
		if _, err := time.LoadLocation(c.Collector.Timezone); err != nil {
			return fmt.Errorf("collector.timezone: %w", err)
		}
	}
	return nil
}
