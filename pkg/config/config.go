package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	// Observations
	ObservationsURL string

	// Storage
	StorageEnabled bool
	DatabaseURL    string

	// Pricing
	PriceFeedURL     string
	PriceFeedTimeout time.Duration
	PriceCacheTTL    time.Duration

	// Engine
	EscalationThreshold float64
	DefaultAssumption   bool
	DefaultImprovement  float64

	// Brief
	BriefProviderURL string
	BriefTimeout     time.Duration

	// Alerts
	KafkaBrokers    []string
	KafkaAlertTopic string

	// Server
	HTTPPort int

	// Output
	OutputFormat string // text, json, csv, markdown
	Verbose      bool
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		ObservationsURL:     getEnv("OBSERVATIONS_URL", "http://localhost:9090"),
		StorageEnabled:      getEnvBool("STORAGE_ENABLED", true),
		DatabaseURL:         getEnv("DATABASE_URL", "host=localhost port=5432 user=drought password=devpassword dbname=droughtcost sslmode=disable"),
		PriceFeedURL:        getEnv("PRICE_FEED_URL", ""),
		PriceFeedTimeout:    time.Duration(getEnvInt("PRICE_FEED_TIMEOUT_SECONDS", 10)) * time.Second,
		PriceCacheTTL:       time.Duration(getEnvInt("PRICE_CACHE_TTL_HOURS", 6)) * time.Hour,
		EscalationThreshold: getEnvFloat("ESCALATION_THRESHOLD", 12.0),
		DefaultAssumption:   getEnvBool("DEFAULT_ASSUMPTION_ENABLED", true),
		DefaultImprovement:  getEnvFloat("DEFAULT_IMPROVEMENT", 0.3),
		BriefProviderURL:    getEnv("BRIEF_PROVIDER_URL", ""),
		BriefTimeout:        time.Duration(getEnvInt("BRIEF_TIMEOUT_SECONDS", 10)) * time.Second,
		KafkaBrokers:        splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaAlertTopic:     getEnv("KAFKA_ALERT_TOPIC", "drought-alerts"),
		HTTPPort:            getEnvInt("HTTP_PORT", 8080),
		OutputFormat:        getEnv("OUTPUT_FORMAT", "text"),
		Verbose:             getEnvBool("VERBOSE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.StorageEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when storage is enabled")
	}
	if c.PriceFeedTimeout < time.Second || c.PriceFeedTimeout > 30*time.Second {
		return fmt.Errorf("price feed timeout must be between 1s and 30s")
	}
	if c.EscalationThreshold <= 0 {
		return fmt.Errorf("escalation threshold must be positive")
	}
	if c.DefaultImprovement < 0 || c.DefaultImprovement > 1.0 {
		return fmt.Errorf("default improvement must be within [0, 1] SPI units")
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port %d out of range", c.HTTPPort)
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaAlertTopic == "" {
		return fmt.Errorf("KAFKA_ALERT_TOPIC must be set when brokers are configured")
	}
	switch c.OutputFormat {
	case "text", "json", "csv", "markdown":
	default:
		return fmt.Errorf("unknown output format %q", c.OutputFormat)
	}
	return nil
}
