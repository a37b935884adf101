// Package common provides shared utilities for the xirr service
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the xirr service
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Solver      SolverConfig  `toml:"solver"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables limiting
	Burst     int     `toml:"burst"`
}

// StorageConfig holds the saved-schedule store location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// SolverConfig holds XIRR solver defaults. Per-request options override these.
type SolverConfig struct {
	Guess             float64 `toml:"guess" json:"guess"`
	MaxIterations     int     `toml:"max_iterations" json:"max_iterations"`
	Tolerance         float64 `toml:"tolerance" json:"tolerance"`
	DayCount          string  `toml:"day_count" json:"day_count"` // ACT/365F, ACT/360 or ACT/365.25
	BisectionFallback bool    `toml:"bisection_fallback" json:"bisection_fallback"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			RateLimit: 50,
			Burst:     100,
		},
		Storage: StorageConfig{
			Path: "data/schedules",
		},
		Solver: SolverConfig{
			Guess:         0.1,
			MaxIterations: 100,
			Tolerance:     1e-10,
			DayCount:      "ACT/365F",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("XIRR_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("XIRR_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("XIRR_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if rl := os.Getenv("XIRR_RATE_LIMIT"); rl != "" {
		if v, err := strconv.ParseFloat(rl, 64); err == nil && v >= 0 {
			config.Server.RateLimit = v
		}
	}

	if level := os.Getenv("XIRR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("XIRR_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if dc := os.Getenv("XIRR_DAY_COUNT"); dc != "" {
		config.Solver.DayCount = strings.ToUpper(dc)
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
