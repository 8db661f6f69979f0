package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dvloznov/finance-utils/internal/logger"
	"github.com/rs/zerolog"
)

// Environment variables read by Load.
const (
	EnvLogLevel  = "FINUTIL_LOG_LEVEL"
	EnvLogFormat = "FINUTIL_LOG_FORMAT"
	EnvEnableGCS = "FINUTIL_ENABLE_GCS"
)

// Config holds runtime settings for the finutil CLI.
type Config struct {
	LogLevel  string
	LogFormat string
	EnableGCS bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: logger.FormatConsole,
	}
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from a lookup function shaped like os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && strings.TrimSpace(v) != "" {
		cfg.LogFormat = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvEnableGCS); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("config: %s=%q is not a boolean", EnvEnableGCS, v)
		}
		cfg.EnableGCS = b
	}

	return cfg, cfg.Validate()
}

// Validate checks that every field holds a supported value.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("config: unsupported log format %q", c.LogFormat)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("config: unsupported log level %q: %w", c.LogLevel, err)
	}

	return nil
}

// LoggerOptions converts the log settings for logger.NewFromConfig.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat}
}
