package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDiscID(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDiscID() error {
	if c.DiscID.Provider == ProviderAuto || slices.Contains(ProviderNames, c.DiscID.Provider) {
		return nil
	}
	return fmt.Errorf("discid.provider: unsupported value %q (expected %s or %s)",
		c.DiscID.Provider, ProviderAuto, strings.Join(ProviderNames, ", "))
}

func (c *Config) validateWatch() error {
	if c.Watch.DebounceSeconds < 0 {
		return errors.New("watch.debounce_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected auto, console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (expected debug, info, warn or error)", c.Logging.Level)
	}
	return nil
}
