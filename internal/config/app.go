package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// EnvAppVariant overrides the route table variant.
	EnvAppVariant = "APP_VARIANT"

	// EnvAppDebug overrides the debug flag.
	EnvAppDebug = "APP_DEBUG"

	// EnvAppTemplatesDir overrides the on-disk template directory used in debug mode.
	EnvAppTemplatesDir = "APP_TEMPLATES_DIR"

	// DefaultVariant is the route table used when none is configured.
	DefaultVariant = "tiles"
)

// AppConfig selects the route table and template source.
type AppConfig struct {
	Variant string `toml:"variant"`

	// Debug reads templates from TemplatesDir and re-parses them on every request.
	Debug        bool   `toml:"debug"`
	TemplatesDir string `toml:"templates_dir"`
}

// Finalize applies defaults, loads environment overrides, and validates the app configuration.
func (c *AppConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration. Debug is only ever switched on.
func (c *AppConfig) Merge(overlay *AppConfig) {
	if overlay.Variant != "" {
		c.Variant = overlay.Variant
	}
	if overlay.Debug {
		c.Debug = true
	}
	if overlay.TemplatesDir != "" {
		c.TemplatesDir = overlay.TemplatesDir
	}
}

func (c *AppConfig) loadDefaults() {
	if c.Variant == "" {
		c.Variant = DefaultVariant
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = "web/app/server"
	}
}

func (c *AppConfig) loadEnv() {
	if v := os.Getenv(EnvAppVariant); v != "" {
		c.Variant = v
	}
	if v := os.Getenv(EnvAppDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Debug = debug
		}
	}
	if v := os.Getenv(EnvAppTemplatesDir); v != "" {
		c.TemplatesDir = v
	}
}

func (c *AppConfig) validate() error {
	if !c.Debug {
		return nil
	}
	info, err := os.Stat(c.TemplatesDir)
	if err != nil {
		return fmt.Errorf("templates_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("templates_dir %s is not a directory", c.TemplatesDir)
	}
	return nil
}
