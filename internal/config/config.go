// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath string
	YahooBaseURL string
	LogLevel     string
	Port         int
	DevMode      bool

	// Risk engine constants (process-wide, fixed at startup)
	RiskFreeRate     float64
	DefaultNumPaths  int
	LookbackDays     int
	PriceMaxStale    time.Duration
	WatchedSymbols   []string
	PriceSyncEnabled bool
	PriceSyncCron    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvAsInt("PORT", 8000),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/riskdata.db"),
		YahooBaseURL:     getEnv("YAHOO_BASE_URL", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RiskFreeRate:     getEnvAsFloat("RISK_FREE_RATE", 0.02),
		DefaultNumPaths:  getEnvAsInt("MC_DEFAULT_PATHS", 10000),
		LookbackDays:     getEnvAsInt("LOOKBACK_DAYS", 252),
		PriceMaxStale:    time.Duration(getEnvAsInt("PRICE_MAX_STALE_HOURS", 24)) * time.Hour,
		WatchedSymbols:   getEnvAsList("WATCHED_SYMBOLS", []string{"AAPL", "MSFT", "GOOGL", "TSLA", "NVDA", "SPY", "BTC-USD", "ETH-USD"}),
		PriceSyncEnabled: getEnvAsBool("PRICE_SYNC_ENABLED", true),
		PriceSyncCron:    getEnv("PRICE_SYNC_CRON", "0 30 22 * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.DefaultNumPaths < 1 {
		return fmt.Errorf("MC_DEFAULT_PATHS must be at least 1")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
