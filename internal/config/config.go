package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the application configuration. Loaded once at startup and
// never mutated afterwards; the JWT fields are the only copy of the signing
// material in the process.
type Config struct {
	ServerPort        int
	DatabasePath      string
	JWTSecret         string
	JWTIssuer         string
	JWTAudience       string
	JWTExpiryMinutes  int
	ReconcileSchedule string // cron expression for the orphaned-profile sweep
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	expiryStr := getEnv("JWT_EXPIRY_MINUTES", "60")
	expiry, err := strconv.Atoi(expiryStr)
	if err != nil {
		return nil, err
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:        port,
		DatabasePath:      getEnv("DATABASE_PATH", "./campus.db"),
		JWTSecret:         secret,
		JWTIssuer:         getEnv("JWT_ISSUER", "campus-api"),
		JWTAudience:       getEnv("JWT_AUDIENCE", "campus-clients"),
		JWTExpiryMinutes:  expiry,
		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "*/30 * * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
