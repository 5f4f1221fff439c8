// Package config loads envoic's user configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds user defaults for the scanning commands. Command-line flags
// override every field.
type Config struct {
	Depth     int      `mapstructure:"depth"`
	StaleDays int      `mapstructure:"stale_days"`
	Exclude   []string `mapstructure:"exclude"`
	History   bool     `mapstructure:"history"`  // record deletions in the history database
	Database  string   `mapstructure:"database"` // history database path, defaults to Dir()/history.db
}

const (
	DefaultDepth     = 5
	DefaultStaleDays = 90
)

// Dir returns the envoic config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/envoic if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "envoic"), nil
}

// Load reads configuration from file, or from config.yaml in Dir() when
// file is empty, then applies ENVOIC_* environment overrides. A missing
// default config file is not an error; a missing explicit one is.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("depth", DefaultDepth)
	v.SetDefault("stale_days", DefaultStaleDays)
	v.SetDefault("exclude", []string{})
	v.SetDefault("history", true)
	v.SetDefault("database", "")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config directory: %w", err)
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ENVOIC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabasePath returns the configured history database path or the default
// location inside Dir().
func (c *Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

func (c *Config) validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("config: depth must be a positive integer, got %d", c.Depth)
	}
	if c.StaleDays < 1 {
		return fmt.Errorf("config: stale_days must be a positive integer, got %d", c.StaleDays)
	}
	return nil
}
