package config

import (
	"errors"
	"fmt"
	"strings"
)

var validComparisons = map[string]struct{}{
	"more-equal": {},
	"less-equal": {},
	"equal":      {},
}

var validDecoders = map[string]struct{}{
	"scan":     {},
	"exiftool": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSelection(); err != nil {
		return err
	}
	if err := c.validateRating(); err != nil {
		return err
	}
	if err := c.validateRun(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSelection() error {
	if _, ok := validComparisons[c.Selection.Comparison]; !ok {
		return fmt.Errorf("selection.comparison must be one of more-equal, less-equal, or equal, got %q", c.Selection.Comparison)
	}
	return nil
}

func (c *Config) validateRating() error {
	if _, ok := validDecoders[c.Rating.Decoder]; !ok {
		return fmt.Errorf("rating.decoder must be scan or exiftool, got %q", c.Rating.Decoder)
	}
	if c.Rating.Decoder == "exiftool" && strings.TrimSpace(c.Rating.ExifToolBinary) == "" {
		return errors.New("rating.exiftool_binary must be set when rating.decoder is exiftool")
	}
	if c.Rating.ExifToolTimeoutSeconds <= 0 {
		return fmt.Errorf("rating.exiftool_timeout_seconds must be positive, got %d", c.Rating.ExifToolTimeoutSeconds)
	}
	return nil
}

func (c *Config) validateRun() error {
	if strings.TrimSpace(c.Run.StateDir) == "" {
		return errors.New("run.state_dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
