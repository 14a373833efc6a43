package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds everything the process reads from the environment. It is built
// once in main and passed into the token service, storage client and handlers,
// so nothing else touches os.Getenv after startup.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret   string
	TokenExpiry time.Duration

	AWSRegion string
	AWSBucket string
}

// Load reads the configuration from environment variables. Missing required
// values are fatal: the server must not come up without a DB or signing secret.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),
		TokenExpiry: getHoursEnv("JWT_EXPIRY_HOURS", 24),
		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		AWSBucket:   getEnv("AWS_BUCKET_NAME", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		log.Fatalf("❌ Missing required environment variable: %s", key)
	}
	return value
}

func getHoursEnv(key string, defaultHours int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultHours) * time.Hour
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Invalid %s value %q, using default (%dh)", key, valueStr, defaultHours)
		return time.Duration(defaultHours) * time.Hour
	}
	return time.Duration(value) * time.Hour
}
