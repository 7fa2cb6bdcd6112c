// Package config loads checker settings from a TOML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/report"
)

// Environment variables read by ApplyEnv
const (
	EnvConfig     = "CTE_CHECKER_CONFIG"
	EnvAddress    = "CTE_CHECKER_ADDRESS"
	EnvLogLevel   = "CTE_CHECKER_LOG_LEVEL"
	EnvFormat     = "CTE_CHECKER_FORMAT"
	EnvCargoCheck = "CTE_CHECKER_CARGO_CHECK"
)

type ServerConfig struct {
	Address      string `toml:"address"`
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
	Debug        bool   `toml:"debug"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

type ChecksConfig struct {
	CargoValue bool `toml:"cargo_value"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Checks ChecksConfig `toml:"checks"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  "30s",
			WriteTimeout: "1m",
		},
		Log:    LogConfig{Level: "warn"},
		Output: OutputConfig{Format: string(report.FormatText)},
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables already set. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file '%s': %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from CTE_CHECKER_* variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvAddress); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv(EnvCargoCheck); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return model.NewValidationError(EnvCargoCheck, v, "bool", "must be true or false")
		}
		c.Checks.CargoValue = enabled
	}
	return nil
}

// Validate checks that every setting can be used
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return model.NewValidationError("server.address", nil, "required", "listen address is required")
	}
	if _, err := c.ReadTimeout(); err != nil {
		return model.NewValidationError("server.read_timeout", c.Server.ReadTimeout, "duration", err.Error())
	}
	if _, err := c.WriteTimeout(); err != nil {
		return model.NewValidationError("server.write_timeout", c.Server.WriteTimeout, "duration", err.Error())
	}
	if _, err := c.SlogLevel(); err != nil {
		return model.NewValidationError("log.level", c.Log.Level, "level", "must be debug, info, warn or error")
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return model.NewValidationError("output.format", c.Output.Format, "format", "must be text, json or yaml")
	}
	return nil
}

// ReadTimeout returns the parsed HTTP read timeout
func (c *Config) ReadTimeout() (time.Duration, error) {
	return parseDuration(c.Server.ReadTimeout)
}

// WriteTimeout returns the parsed HTTP write timeout
func (c *Config) WriteTimeout() (time.Duration, error) {
	return parseDuration(c.Server.WriteTimeout)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// SlogLevel maps the configured level name to a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level)))
	return level, err
}
