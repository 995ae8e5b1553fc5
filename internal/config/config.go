// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPPort string
	LogLevel string

	DatabaseURL string

	JWTSecret        string
	JWTExpiredTime   time.Duration
	JWTRememberTime  time.Duration
	PhoneCountryCode string

	RedisAddr     string
	RedisPassword string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	CORSAllowedOrigins []string

	LoginRateLimit  int
	LoginRateWindow time.Duration

	FileCleanupInterval time.Duration
}

// Load reads the environment. A .env file in the working directory is
// merged in first without overriding real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		PhoneCountryCode:   getEnv("PHONE_COUNTRY_CODE_DEFAULT", "+84"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		MinIOEndpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey:     os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:        getEnv("MINIO_BUCKET", "jp-order-uploads"),
		MinIOUseSSL:        getEnvBool("MINIO_USE_SSL", false),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LoginRateLimit:     getEnvInt("LOGIN_RATE_LIMIT", 10),
	}

	accessTTL, err := time.ParseDuration(getEnv("JWT_EXPIRED_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("parse JWT_EXPIRED_TIME: %w", err)
	}
	cfg.JWTExpiredTime = accessTTL

	rememberTTL, err := time.ParseDuration(getEnv("JWT_REMEMBER_EXPIRED_TIME", "720h"))
	if err != nil {
		return nil, fmt.Errorf("parse JWT_REMEMBER_EXPIRED_TIME: %w", err)
	}
	cfg.JWTRememberTime = rememberTTL

	window, err := time.ParseDuration(getEnv("LOGIN_RATE_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("parse LOGIN_RATE_WINDOW: %w", err)
	}
	cfg.LoginRateWindow = window

	cleanup, err := time.ParseDuration(getEnv("FILE_CLEANUP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("parse FILE_CLEANUP_INTERVAL: %w", err)
	}
	cfg.FileCleanupInterval = cleanup

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET must be at least 32 chars")
	}
	if !strings.HasPrefix(c.PhoneCountryCode, "+") {
		errs = append(errs, "PHONE_COUNTRY_CODE_DEFAULT must start with +")
	}
	if c.JWTExpiredTime <= 0 {
		errs = append(errs, "JWT_EXPIRED_TIME must be positive")
	}
	if c.JWTRememberTime < c.JWTExpiredTime {
		errs = append(errs, "JWT_REMEMBER_EXPIRED_TIME must be at least JWT_EXPIRED_TIME")
	}
	if c.LoginRateLimit <= 0 {
		errs = append(errs, "LOGIN_RATE_LIMIT must be > 0")
	}
	if c.LoginRateWindow <= 0 {
		errs = append(errs, "LOGIN_RATE_WINDOW must be positive")
	}
	if c.FileCleanupInterval <= 0 {
		errs = append(errs, "FILE_CLEANUP_INTERVAL must be positive")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.TrimSpace(p)
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
