// Package config loads server settings from an optional YAML file and the environment.
//
// Precedence, lowest to highest: built-in defaults, the file named by
// CONFIG_FILE, environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a setting is missing or malformed.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all server settings.
type Config struct {
	Port     int    `yaml:"port"`
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`

	JWTSecret string `yaml:"jwt_secret"`
	// TokenTTL is a Go duration string, e.g. "24h".
	TokenTTL string `yaml:"token_ttl"`

	// DrawMaxAttempts bounds the permutations tried per draw.
	DrawMaxAttempts int `yaml:"draw_max_attempts"`

	MetricsEnabled bool `yaml:"metrics_enabled"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:            8080,
		DBPath:          "./data/santa.db",
		LogLevel:        "info",
		JWTSecret:       "dev-secret-change-me",
		TokenTTL:        "24h",
		DrawMaxAttempts: 100,
		MetricsEnabled:  true,
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.TokenTTL = getEnv("TOKEN_TTL", c.TokenTTL)

	var err error
	if c.Port, err = getEnvInt("PORT", c.Port); err != nil {
		return err
	}
	if c.DrawMaxAttempts, err = getEnvInt("DRAW_MAX_ATTEMPTS", c.DrawMaxAttempts); err != nil {
		return err
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: METRICS_ENABLED=%q", ErrInvalidConfig, v)
		}
		c.MetricsEnabled = b
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: jwt_secret is required", ErrInvalidConfig)
	}
	if _, err := c.TokenDuration(); err != nil {
		return err
	}
	if c.DrawMaxAttempts <= 0 {
		return fmt.Errorf("%w: draw_max_attempts must be positive", ErrInvalidConfig)
	}
	return nil
}

// TokenDuration parses TokenTTL.
func (c *Config) TokenDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: token_ttl %q", ErrInvalidConfig, c.TokenTTL)
	}
	return d, nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, value)
	}
	return n, nil
}
