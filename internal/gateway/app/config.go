package app

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	SigningSecret string // Required: HS256 signing secret, at least 32 bytes

	DatabaseFile            string        // Optional: path to SQLite database file (default: ./gateway.db)
	Port                    int           // HTTP server port (default: 8080)
	Env                     string        // Environment (dev, staging, prod) (default: dev)
	LogLevel                string        // Log level (debug, info, warn, error) (default: info)
	LogFormat               string        // Log format (json, text) (default: json)
	ShutdownGracePeriod     time.Duration // Graceful shutdown timeout (default: 10s)
	CredentialLookupTimeout time.Duration // Bound on the credential store lookup (default: 5s)

	StkPushFee decimal.Decimal // Per-push processing fee (default: 0)
	MaxAmount  decimal.Decimal // Single-transfer cap, 0 disables (default: 1000000)

	// Bootstrap seeding: when the credential store is empty and the key and
	// account are set, a first account + credential pair is created at
	// startup. An omitted secret is generated and logged once.
	BootstrapAPIKey     string
	BootstrapAPISecret  string
	BootstrapAccount    string
	BootstrapBusinessID string
	BootstrapBalance    decimal.Decimal // Initial KES balance for the seeded account
}

func LoadConfig() Config {
	return Config{
		SigningSecret: os.Getenv("GATEWAY_SIGNING_SECRET"),

		DatabaseFile:            getEnvOrDefault("GATEWAY_DATABASE_FILE", "gateway.db"),
		Port:                    getEnvIntOrDefault("PORT", 8080),
		Env:                     getEnvOrDefault("ENV", "dev"),
		LogLevel:                getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:               getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod:     getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		CredentialLookupTimeout: getEnvDurationOrDefault("CREDENTIAL_LOOKUP_TIMEOUT", 5*time.Second),

		StkPushFee: getEnvDecimalOrDefault("GATEWAY_STK_PUSH_FEE", decimal.Zero),
		MaxAmount:  getEnvDecimalOrDefault("GATEWAY_MAX_AMOUNT", decimal.NewFromInt(1_000_000)),

		BootstrapAPIKey:     os.Getenv("GATEWAY_BOOTSTRAP_API_KEY"),
		BootstrapAPISecret:  os.Getenv("GATEWAY_BOOTSTRAP_API_SECRET"),
		BootstrapAccount:    os.Getenv("GATEWAY_BOOTSTRAP_ACCOUNT"),
		BootstrapBusinessID: getEnvOrDefault("GATEWAY_BOOTSTRAP_BUSINESS_ID", "default"),
		BootstrapBalance:    getEnvDecimalOrDefault("GATEWAY_BOOTSTRAP_BALANCE", decimal.Zero),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}

func getEnvDecimalOrDefault(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, err := decimal.NewFromString(value); err == nil {
		return d
	}

	return defaultValue
}
