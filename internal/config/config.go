// Package config loads moving-items settings.
//
// Precedence, lowest first: built-in defaults, the optional YAML file,
// a .env file in the working directory, process environment, then command
// line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ethan-wit/moving-items/internal/auth"
)

// Environment variable names.
const (
	EnvDBPath          = "MOVING_ITEMS_DB"
	EnvLogLevel        = "LOG_LEVEL"
	EnvHasher          = "MOVING_ITEMS_HASHER"
	EnvMetricsTextfile = "MOVING_ITEMS_METRICS_TEXTFILE"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath          string `yaml:"db_path"`
	LogLevel        string `yaml:"log_level"`
	Hasher          string `yaml:"hasher"`
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DBPath:   "moving-items.db",
		LogLevel: "warn",
		Hasher:   auth.HasherSHA256,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), .env, and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.DBPath = getEnvOrDefault(EnvDBPath, cfg.DBPath)
	cfg.LogLevel = getEnvOrDefault(EnvLogLevel, cfg.LogLevel)
	cfg.Hasher = getEnvOrDefault(EnvHasher, cfg.Hasher)
	cfg.MetricsTextfile = getEnvOrDefault(EnvMetricsTextfile, cfg.MetricsTextfile)

	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	if _, err := auth.NewHasher(c.Hasher); err != nil {
		return err
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
