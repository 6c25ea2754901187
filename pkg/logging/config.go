package logging

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

// Env maps environment variable names for logging configuration.
type Env struct {
	Level      string
	Format     string
	File       string
	MaxSize    string
	MaxBackups string
	MaxAgeDays string
}

// Config holds logging configuration settings.
type Config struct {
	Level      Level  `toml:"level"`
	Format     Format `toml:"format"`
	File       string `toml:"file"`
	MaxSize    string `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`

	maxSizeVal int64
}

// MaxSizeMB returns the rotation threshold in megabytes, the unit lumberjack expects.
// Sizes below one megabyte round up to one.
func (c *Config) MaxSizeMB() int {
	mb := c.maxSizeVal / units.MiB
	if c.maxSizeVal%units.MiB != 0 {
		mb++
	}
	return int(mb)
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	c.loadEnv(env)
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.File != "" {
		c.File = overlay.File
	}
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
	if overlay.MaxBackups != 0 {
		c.MaxBackups = overlay.MaxBackups
	}
	if overlay.MaxAgeDays != 0 {
		c.MaxAgeDays = overlay.MaxAgeDays
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.MaxSize == "" {
		c.MaxSize = "100MB"
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 3
	}
	if c.MaxAgeDays == 0 {
		c.MaxAgeDays = 28
	}
}

func (c *Config) loadEnv(env *Env) {
	if env == nil {
		return
	}
	if v := os.Getenv(env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := os.Getenv(env.Format); v != "" {
		c.Format = Format(v)
	}
	if v := os.Getenv(env.File); v != "" {
		c.File = v
	}
	if v := os.Getenv(env.MaxSize); v != "" {
		c.MaxSize = v
	}
	if v := os.Getenv(env.MaxBackups); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxBackups = n
		}
	}
	if v := os.Getenv(env.MaxAgeDays); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxAgeDays = n
		}
	}
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	if err := c.Format.Validate(); err != nil {
		return err
	}

	size, err := units.RAMInBytes(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	c.maxSizeVal = size

	if c.MaxBackups < 0 {
		return fmt.Errorf("max_backups must not be negative")
	}
	if c.MaxAgeDays < 0 {
		return fmt.Errorf("max_age_days must not be negative")
	}
	return nil
}
