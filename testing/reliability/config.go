package reliability

import (
	"os"
	"strconv"
	"time"
)

// ReliabilityConfig holds configuration for reliability testing
type ReliabilityConfig struct {
	Level        string        // "basic" or "stress"
	Duration     time.Duration // Test duration for stress tests
	MaxProducers int           // Maximum producer goroutines for concurrent tests
	Capacity     int           // Dispatcher queue capacity under test
}

// getReliabilityConfig reads configuration from environment variables
func getReliabilityConfig() ReliabilityConfig {
	return ReliabilityConfig{
		Level:        getEnv("DISPATCHZ_RELIABILITY_LEVEL", ""),
		Duration:     parseDuration(getEnv("DISPATCHZ_RELIABILITY_DURATION", "5s")),
		MaxProducers: parseInt(getEnv("DISPATCHZ_RELIABILITY_MAX_PRODUCERS", "100"), 100),
		Capacity:     parseInt(getEnv("DISPATCHZ_RELIABILITY_CAPACITY", "1000"), 1000),
	}
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt parses integer from string with default fallback
func parseInt(s string, fallback int) int {
	if value, err := strconv.Atoi(s); err == nil && value > 0 {
		return value
	}
	return fallback
}

// parseDuration parses duration from string with default fallback
func parseDuration(s string) time.Duration {
	if duration, err := time.ParseDuration(s); err == nil {
		return duration
	}
	return 5 * time.Second
}
