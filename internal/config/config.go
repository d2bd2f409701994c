package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration read from the environment.
type Config struct {
	Port    string
	GinMode string

	UpstreamBaseURL       string
	UpstreamAPIKey        string
	UpstreamTimeout       time.Duration
	UpstreamMaxAttempts   int
	UpstreamRetryBackoff  time.Duration
	UpstreamRateLimit     float64
	UpstreamRateBurst     int
	UpstreamProbeSchedule string
	UpstreamProbeEndpoint string

	JWTSecret string
	TokenTTL  time.Duration

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string
	DBLogLevel string

	NATSURL     string
	NATSSubject string
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Port:    getEnv("PORT", "3001"),
		GinMode: getEnv("GIN_MODE", "debug"),

		UpstreamBaseURL:       getEnv("UPSTREAM_BASE_URL", "https://api.servicem8.com/api_1.0"),
		UpstreamAPIKey:        getEnv("UPSTREAM_API_KEY", ""),
		UpstreamTimeout:       getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		UpstreamMaxAttempts:   getEnvInt("UPSTREAM_MAX_ATTEMPTS", 1),
		UpstreamRetryBackoff:  getEnvDuration("UPSTREAM_RETRY_BACKOFF", 500*time.Millisecond),
		UpstreamRateLimit:     getEnvFloat("UPSTREAM_RATE_LIMIT", 0),
		UpstreamRateBurst:     getEnvInt("UPSTREAM_RATE_BURST", 1),
		UpstreamProbeSchedule: getEnv("UPSTREAM_PROBE_SCHEDULE", "@every 5m"),
		UpstreamProbeEndpoint: getEnv("UPSTREAM_PROBE_ENDPOINT", "/job.json?$filter=active%20eq%201"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 7*24*time.Hour),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "admin"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "portal_db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		SQLitePath: getEnv("SQLITE_PATH", "portal.db"),
		DBLogLevel: getEnv("DB_LOG_LEVEL", "warn"),

		NATSURL:     getEnv("NATS_URL", ""),
		NATSSubject: getEnv("NATS_SUBJECT", "portal.messages.created"),
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using fallback: %s", key, fallback)
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s (%q), using fallback: %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid number for %s (%q), using fallback: %v", key, value, fallback)
		return fallback
	}
	return f
}

// getEnvDuration accepts Go duration strings ("30s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Invalid duration for %s (%q), using fallback: %s", key, value, fallback)
	return fallback
}
