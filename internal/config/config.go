// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// minSecretLen is the shortest JWT secret accepted.
const minSecretLen = 32

type Config struct {
	Server  ServerConfig
	DBPath  string
	Auth    AuthConfig
	Logging LoggingConfig

	// DefaultLanguage is used when a request names no supported language.
	DefaultLanguage string
}

type ServerConfig struct {
	Port            int
	StaticPath      string
	ShutdownTimeout time.Duration

	// TrustProxy honours X-Forwarded-For when keying rate limits.
	TrustProxy bool
}

type AuthConfig struct {
	JWTSecret          string
	TokenTTL           time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int
}

type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// Load reads .env (if present) and then the process environment.
// Variables already set in the environment win over .env.
func Load() (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	port, err := parseIntEnv("PORT", 8080)
	collect(err)
	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	collect(err)
	ttl, err := parseDurationEnv("JWT_TTL", 7*24*time.Hour)
	collect(err)
	perMinute, err := parseIntEnv("AUTH_RATE_LIMIT_PER_MINUTE", 20)
	collect(err)
	burst, err := parseIntEnv("AUTH_RATE_LIMIT_BURST", 5)
	collect(err)
	trustProxy, err := parseBoolEnv("TRUST_PROXY", false)
	collect(err)

	cfg = Config{
		Server: ServerConfig{
			Port:            port,
			StaticPath:      getEnv("STATIC_PATH", "./static"),
			ShutdownTimeout: shutdown,
			TrustProxy:      trustProxy,
		},
		DBPath: getEnv("DB_PATH", "./data/neondara.db"),
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			TokenTTL:           ttl,
			RateLimitPerMinute: perMinute,
			RateLimitBurst:     burst,
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
		DefaultLanguage: strings.ToLower(getEnv("DEFAULT_LANGUAGE", "en")),
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535"))
	}
	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("DB_PATH is required"))
	}
	if len(c.Auth.JWTSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLen))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be greater than 0"))
	}
	if c.Auth.RateLimitPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if c.Auth.RateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT_BURST must be greater than 0"))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error"))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json"))
	}
	switch c.DefaultLanguage {
	case "en", "ur":
	default:
		errs = append(errs, fmt.Errorf("DEFAULT_LANGUAGE must be en or ur"))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s must be true or false: %w", key, err)
	}
	return parsed, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return parsed, nil
}
