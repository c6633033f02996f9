package core

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	Port            string
	LogLevel        string // debug, info, warn, error
	TokenKey        string // empty disables token auth
	RateLimitRPS    float64
	RateLimitBurst  int
	DefaultsFile    string // optional YAML overriding the materials registry
	TLSCert         string
	TLSKey          string
	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from an optional .env file and the environment.
func LoadConfig() (*Config, error) {
	// .env is optional; the real environment always wins
	_ = godotenv.Load()

	logLevel := getEnvOrDefault("LOG_LEVEL", "info")
	if os.Getenv("DEBUG") == "1" {
		logLevel = "debug"
	}

	rps, err := strconv.ParseFloat(getEnvOrDefault("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		return nil, Invalid("RATE_LIMIT_RPS", "must be a positive number")
	}
	burst, err := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_BURST", "10"))
	if err != nil || burst <= 0 {
		return nil, Invalid("RATE_LIMIT_BURST", "must be a positive integer")
	}
	timeout, err := strconv.Atoi(getEnvOrDefault("SHUTDOWN_TIMEOUT", "5"))
	if err != nil || timeout <= 0 {
		return nil, Invalid("SHUTDOWN_TIMEOUT", "must be a positive number of seconds")
	}

	return &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		LogLevel:        logLevel,
		TokenKey:        os.Getenv("TOKEN_KEY"),
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		DefaultsFile:    os.Getenv("DEFAULTS_FILE"),
		TLSCert:         os.Getenv("TLS_CERT"),
		TLSKey:          os.Getenv("TLS_KEY"),
		ShutdownTimeout: time.Duration(timeout) * time.Second,
	}, nil
}

// TLSEnabled reports whether both certificate and key were configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
