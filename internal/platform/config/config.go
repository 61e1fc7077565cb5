package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	DatabaseDSN string
	NATSURL     string

	EnableOutboxRelay      bool
	EnableIntegritySweeper bool
	SweeperInterval        time.Duration
	RelayInterval          time.Duration
	RelayBatchSize         int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "slot-service"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		NATSURL:     os.Getenv("NATS_URL"),

		EnableOutboxRelay:      envBool("ENABLE_OUTBOX_RELAY", true),
		EnableIntegritySweeper: envBool("ENABLE_INTEGRITY_SWEEPER", false),
		SweeperInterval:        envDuration("INTEGRITY_SWEEPER_INTERVAL", 15*time.Minute),
		RelayInterval:          envDuration("OUTBOX_RELAY_INTERVAL", 5*time.Second),
		RelayBatchSize:         envInt("OUTBOX_RELAY_BATCH_SIZE", 100),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
