package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.LockTimeoutSeconds < 0 {
		return errors.New("library.lock_timeout_seconds must be zero or positive")
	}
	if filepath.Ext(c.Library.DatabaseFile) == "" {
		return fmt.Errorf("library.database_file %q: expected a file name such as questions.db", c.Library.DatabaseFile)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q: expected console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q: expected debug, info, warn or error", c.Logging.Level)
	}
	return nil
}
