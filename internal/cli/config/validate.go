package config

import (
	"fmt"

	sharedcfg "github.com/leapstack-labs/unitconv/internal/config"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := sharedcfg.ValidateOutput(c.OutputFormat); err != nil {
		return err
	}
	if err := sharedcfg.ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := sharedcfg.ValidatePrecision(c.Precision); err != nil {
		return err
	}
	if err := sharedcfg.ValidateQuantity(c.DefaultQuantity); err != nil {
		return fmt.Errorf("default_quantity: %w", err)
	}
	if err := sharedcfg.ValidatePort(c.Server.Port); err != nil {
		return fmt.Errorf("server.port: %w", err)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative (0 keeps every entry)")
	}
	if c.HistoryEnabled && c.HistoryPath == "" {
		return fmt.Errorf("history_path is required when history is enabled")
	}
	return nil
}
