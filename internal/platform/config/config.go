package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration so main stays lean.
type Config struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	EventTopic    string
	JWTSigningKey string
	JWTIssuer     string

	CommandTimeout time.Duration
}

// CatalogCacheTTL bounds staleness of cached catalog/field lookups.
var CatalogCacheTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables with dev defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:           getenv("CUSTODIA_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("CUSTODIA_DATABASE_URL"),
		RedisURL:       os.Getenv("CUSTODIA_REDIS_URL"),
		EventTopic:     getenv("CUSTODIA_EVENT_TOPIC", "custodia.customer.events"),
		JWTIssuer:      getenv("CUSTODIA_JWT_ISSUER", "custodia"),
		CommandTimeout: 30 * time.Second,
	}

	if brokers := os.Getenv("CUSTODIA_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	cfg.JWTSigningKey = os.Getenv("CUSTODIA_JWT_SIGNING_KEY")
	if cfg.JWTSigningKey == "" {
		// Dev default - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
