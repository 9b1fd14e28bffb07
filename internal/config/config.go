package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Upstream stock feed
	StockFeedURL string
	FetchTimeout time.Duration

	// NATS
	NATSURL string

	// Event scoping for the shared event bus
	EventTenant string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int
}

func Load() *Config {
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "50"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "200"))
	fetchTimeoutSec, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "120"))

	return &Config{
		// Server
		Port:        getEnv("PORT", "8089"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Upstream stock feed
		StockFeedURL: getEnv("STOCK_FEED_URL", ""),
		FetchTimeout: time.Duration(fetchTimeoutSec) * time.Second,

		// NATS
		NATSURL: getEnv("NATS_URL", ""),

		// Event scoping
		EventTenant: getEnv("EVENT_TENANT", "stockboard"),

		// Pagination
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
