package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process settings, read once at startup. Everything has
// a default so the tool runs with no environment at all.
type Config struct {
	Tickers     []string
	OutputDir   string
	ChartWidth  int
	ChartHeight int
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
}

func Load() Config {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	return Config{
		Tickers:     []string{"VOO", "JEPI"},
		OutputDir:   envOr("CHARTPRO_OUTPUT_DIR", "charts"),
		ChartWidth:  envInt("CHARTPRO_WIDTH", 1200),
		ChartHeight: envInt("CHARTPRO_HEIGHT", 800),
		HTTPTimeout: envDuration("CHARTPRO_HTTP_TIMEOUT", 15*time.Second),
		CacheTTL:    envDuration("CHARTPRO_CACHE_TTL", 5*time.Minute),
	}
}

func envOr(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func envInt(k string, fallback int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(k string, fallback time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
