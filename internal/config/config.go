// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/JaimeStill/monotile/pkg/logging"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"
)

var loggingEnv = &logging.Env{
	Level:      "LOGGING_LEVEL",
	Format:     "LOGGING_FORMAT",
	File:       "LOGGING_FILE",
	MaxSize:    "LOGGING_MAX_SIZE",
	MaxBackups: "LOGGING_MAX_BACKUPS",
	MaxAgeDays: "LOGGING_MAX_AGE_DAYS",
}

// Config represents the root service configuration.
type Config struct {
	Server  ServerConfig   `toml:"server"`
	App     AppConfig      `toml:"app"`
	Logging logging.Config `toml:"logging"`
	Version string         `toml:"-"`
}

// Load reads the base configuration file at path and applies the overlay
// selected by SERVICE_ENV, looked up next to the base file. A missing base
// file yields an empty configuration so defaults apply.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
	} else if err != nil {
		return nil, err
	}

	if overlay := overlayPath(path); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
// Debug mode forces debug-level logging.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.App.Finalize(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.App.Debug {
		c.Logging.Level = logging.LevelDebug
	}
	return nil
}

// Override holds command-line values. Nil fields are left unchanged.
type Override struct {
	Host    *string
	Port    *int
	Variant *string
	Debug   *bool
}

// Override applies command-line values on top of a finalized configuration,
// so they take precedence over both file and environment, then revalidates.
func (c *Config) Override(o *Override) error {
	if o.Host != nil {
		c.Server.Host = *o.Host
	}
	if o.Port != nil {
		c.Server.Port = *o.Port
	}
	if o.Variant != nil {
		c.App.Variant = *o.Variant
	}
	if o.Debug != nil {
		c.App.Debug = *o.Debug
	}

	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.App.validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if c.App.Debug {
		c.Logging.Level = logging.LevelDebug
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.App.Merge(&overlay.App)
	c.Logging.Merge(&overlay.Logging)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
