package app

import (
	"errors"
	"fmt"

	"github.com/WilliamC07/graphics-mdl/internal/mdl"
	"github.com/WilliamC07/graphics-mdl/internal/publish"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	MDLPath string // model description file

	LogFormat string
	LogLevel  string

	Strict       bool
	ScreenWidth  float64
	ScreenHeight float64

	// Publish is nil when the result is only written to stdout.
	Publish *publish.Options
}

// DefaultConfig returns the built-in settings that a settings file and
// command-line flags are layered on top of.
func DefaultConfig() Config {
	return Config{
		LogFormat:    "text",
		LogLevel:     "warn",
		ScreenWidth:  mdl.DefaultScreenSize,
		ScreenHeight: mdl.DefaultScreenSize,
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.MDLPath == "" {
		return nil, errors.New("MDLPath is a required configuration field and cannot be empty")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		return nil, errors.New("screen width and height must be positive")
	}
	if cfg.Publish != nil {
		opts := cfg.Publish.WithDefaults()
		if err := opts.Validate(); err != nil {
			return nil, err
		}
		cfg.Publish = &opts
	}
	return &cfg, nil
}

// ParserOptions returns the options the MDL parser should run with.
func (c *Config) ParserOptions() mdl.Options {
	return mdl.Options{
		Strict:       c.Strict,
		ScreenWidth:  c.ScreenWidth,
		ScreenHeight: c.ScreenHeight,
	}
}
