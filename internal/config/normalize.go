package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDiscID()
	if err := c.normalizeWatch(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDiscID() {
	if value, ok := os.LookupEnv(providerEnvVar); ok && strings.TrimSpace(value) != "" {
		c.DiscID.Provider = value
	}
	c.DiscID.Provider = strings.ToLower(strings.TrimSpace(c.DiscID.Provider))
	if c.DiscID.Provider == "" {
		c.DiscID.Provider = defaultProvider
	}
	c.DiscID.CDDiscIDBinary = strings.TrimSpace(c.DiscID.CDDiscIDBinary)
	if c.DiscID.CDDiscIDBinary == "" {
		c.DiscID.CDDiscIDBinary = defaultCDDiscIDBinary
	}
}

func (c *Config) normalizeWatch() error {
	if strings.TrimSpace(c.Watch.LockDir) == "" {
		c.Watch.LockDir = defaultLockDir()
	}
	var err error
	if c.Watch.LockDir, err = expandPath(c.Watch.LockDir); err != nil {
		return fmt.Errorf("watch.lock_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
