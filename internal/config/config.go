package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Dataset
	DatasetPath string

	// ValuationYear is the fiscal year treated as the canonical valuation
	// snapshot by the screener.
	ValuationYear int

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Credentials maps dashboard usernames to their expected secret.
	// Entries starting with "$2" are bcrypt hashes; anything else is
	// compared as a plaintext shared password.
	Credentials map[string]string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Dataset
		DatasetPath: getEnv("DATASET_PATH", "data/stockfinder.db"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		Credentials: parseCredentials(getEnv("DASHBOARD_USERS", "")),
	}

	// Parse valuation year
	yearStr := getEnv("VALUATION_YEAR", "2023")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		log.Printf("Warning: invalid VALUATION_YEAR value '%s', falling back to 2023\n", yearStr)
		year = 2023
	}
	config.ValuationYear = year

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// parseCredentials parses a comma-separated list of user:secret pairs.
// Malformed entries are skipped. Secret values are never logged.
func parseCredentials(raw string) map[string]string {
	creds := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		user, secret, ok := strings.Cut(entry, ":")
		if !ok || user == "" || secret == "" {
			log.Printf("Warning: skipping malformed DASHBOARD_USERS entry %q\n", user)
			continue
		}
		creds[user] = secret
	}
	return creds
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
