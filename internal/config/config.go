package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"steeldesk/internal/logger"
)

// Config holds every runtime setting of the CLI. Values come from the
// environment (optionally via a .env file loaded in main).
type Config struct {
	// Backend API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Session persistence
	SessionFile string

	// Interactive search
	DebounceInterval time.Duration

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:       getEnv("STEELDESK_API_URL", "http://localhost:9090"),
		HTTPTimeout:      getDuration("STEELDESK_HTTP_TIMEOUT", 30*time.Second),
		SessionFile:      getEnv("STEELDESK_SESSION_FILE", defaultSessionFile()),
		DebounceInterval: getDuration("STEELDESK_DEBOUNCE_MS", 400*time.Millisecond),
		LogLevel:         getEnv("LOG_LEVEL", "warn"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:        getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("STEELDESK_API_URL is required")
	}
	if c.SessionFile == "" {
		return fmt.Errorf("STEELDESK_SESSION_FILE is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("STEELDESK_HTTP_TIMEOUT must be positive")
	}
	return nil
}

// LoggerConfig returns the logging subset of the configuration.
func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// defaultSessionFile places the session next to other user configuration,
// falling back to the working directory when no home is available.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".steeldesk-session.json"
	}
	return filepath.Join(home, ".config", "steeldesk", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration either as a Go duration string ("30s") or,
// for *_MS keys, as a bare millisecond count.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
