package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all runtime settings. Values come from an optional TOML file
// overridden by environment variables.
type Config struct {
	AppEnv         string        `toml:"app_env"`
	Port           string        `toml:"port"`
	LogLevel       string        `toml:"log_level"`
	LogFormat      string        `toml:"log_format"`
	HistoryBackend string        `toml:"history_backend"`
	SQLitePath     string        `toml:"sqlite_path"`
	RedisURL       string        `toml:"redis_url"`
	CacheTTL       time.Duration `toml:"cache_ttl"`
	RateLimit      float64       `toml:"rate_limit"`
	RateBurst      int           `toml:"rate_burst"`
	ExportDir      string        `toml:"export_dir"`
}

const (
	// BackendMemory keeps conversation history in process memory.
	BackendMemory = "memory"
	// BackendSQLite persists conversation history to a local SQLite file.
	BackendSQLite = "sqlite"
	// BackendRedis keeps conversation history in Redis with a TTL.
	BackendRedis = "redis"
)

func defaults() *Config {
	return &Config{
		AppEnv:         "development",
		Port:           "8080",
		LogLevel:       "info",
		LogFormat:      "text",
		HistoryBackend: BackendMemory,
		SQLitePath:     "moodlens.db",
		CacheTTL:       5 * time.Minute,
		RateLimit:      20,
		RateBurst:      40,
		ExportDir:      ".",
	}
}

// Load builds the configuration from an optional TOML file named by
// MOODLENS_CONFIG, then applies environment variable overrides and
// validates the result.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("MOODLENS_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.HistoryBackend = getEnv("HISTORY_BACKEND", cfg.HistoryBackend)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.ExportDir = getEnv("EXPORT_DIR", cfg.ExportDir)

	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL must be a duration: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT must be a number: %w", err)
		}
		cfg.RateLimit = limit
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RATE_BURST must be an integer: %w", err)
		}
		cfg.RateBurst = burst
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.HistoryBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("HISTORY_BACKEND must be one of memory, sqlite, redis; got %q", c.HistoryBackend)
	}
	if c.HistoryBackend == BackendRedis && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when HISTORY_BACKEND is redis")
	}
	if c.HistoryBackend == BackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required when HISTORY_BACKEND is sqlite")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive")
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("RATE_BURST must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
