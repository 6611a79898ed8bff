package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the matching environment variable is unset.
const (
	DefaultPort            = "3000"
	DefaultDatabaseURL     = "mongodb://localhost:27017/eventify"
	DefaultDatabaseName    = "eventify"
	DefaultConnectTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// EmailConfig holds configuration for event announcement emails.
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	Recipients         []string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Config holds all configuration for the application
type Config struct {
	Environment     string
	Port            string
	DBUrl           string
	DBName          string
	ConnectTimeout  time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	Email           EmailConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on the process environment only.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:    env,
		Port:           os.Getenv("PORT"),
		DBUrl:          firstNonEmpty(os.Getenv("MONGODB_URI"), os.Getenv("MONGODB"), os.Getenv("DATABASE_URL")),
		DBName:         os.Getenv("DATABASE_NAME"),
		ConnectTimeout: DefaultConnectTimeout,
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Email: EmailConfig{
			Provider:           os.Getenv("EMAIL_PROVIDER"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			Recipients:         splitList(os.Getenv("ANNOUNCE_RECIPIENTS")),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.DBUrl == "" {
		cfg.DBUrl = DefaultDatabaseURL
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}

	var err error
	if cfg.RequestTimeout, err = durationFromEnv("REQUEST_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationFromEnv("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, s)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
