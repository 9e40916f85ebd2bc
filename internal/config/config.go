// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Source settings
	NewsAPIKey      string // empty disables the NewsAPI source
	FeedsConfigPath string
	MaxArticles     int // per-source item cap

	// Enrichment settings
	GeminiAPIKey string
	GeminiModel  string

	// Run settings
	NewsLimit      int // post-dedup items per run
	MaxConcurrency int // enrichment admission gate size
	RequestTimeout time.Duration
	ResultsPath    string

	// Cache settings
	CacheFilePath string // empty disables the processed-item cache
	CacheTTLHours int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		FeedsConfigPath: "configs/feeds.yaml",
		GeminiModel:     "gemini-1.5-flash",
		MaxArticles:     30,
		NewsLimit:       10,
		MaxConcurrency:  5,
		RequestTimeout:  15 * time.Second,
		ResultsPath:     "results.json",
		CacheTTLHours:   48,
	}

	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.ResultsPath = getEnvOrDefault("RESULTS_PATH", cfg.ResultsPath)
	cfg.CacheFilePath = os.Getenv("CACHE_FILE_PATH")
	cfg.CacheTTLHours = getEnvIntOrDefault("CACHE_TTL_HOURS", cfg.CacheTTLHours)

	if v := os.Getenv("MAX_ARTICLES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxArticles = val
		}
	}
	if v := os.Getenv("NEWS_LIMIT"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.NewsLimit = val
		}
	}
	if v := os.Getenv("MAX_CONCURRENCY"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxConcurrency = val
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.NewsLimit <= 0 {
		return fmt.Errorf("NEWS_LIMIT must be positive")
	}
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("MAX_CONCURRENCY must be positive")
	}
	return nil
}
