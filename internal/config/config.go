package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port            string
	Storage         string
	DBConn          string
	LogLevel        string
	JWTSecret       string
	SessionTTL      time.Duration
	TestingAPI      bool
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
	FeedTitle       string
	FeedLink        string
	FeedDescription string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "3001"),
		Storage:         getEnv("STORAGE", "memory"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5432 user=bloglist password=bloglist dbname=bloglist sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "no-reply@bloglist.local"),
		FeedTitle:       getEnv("FEED_TITLE", "Bloglist"),
		FeedLink:        getEnv("FEED_LINK", "http://localhost:3001/api/blogs"),
		FeedDescription: getEnv("FEED_DESCRIPTION", "Most liked blogs"),
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	testingAPI, err := strconv.ParseBool(getEnv("ENABLE_TESTING_API", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENABLE_TESTING_API: %w", err)
	}
	cfg.TestingAPI = testingAPI

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Storage != "memory" && cfg.Storage != "postgres" {
		return nil, fmt.Errorf("unknown STORAGE %q, want memory or postgres", cfg.Storage)
	}
	if cfg.Storage == "postgres" && cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required for postgres storage")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
