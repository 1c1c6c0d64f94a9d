package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	JWTSecret          string
	TokenStrategy      string
	TokenTTL           time.Duration
	Timezone           string
	Location           *time.Location
	CORSAllowedOrigins []string
	LogLevel           slog.Level
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenStrategy   = "jwt"
	defaultTokenTTL        = 24 * time.Hour
	defaultTimezone        = "UTC"
	defaultCORSOrigins     = "*"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from .env, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenStrategy:   getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		Timezone:        getString(lookup, "TIMEZONE", defaultTimezone),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	fs := flag.NewFlagSet("expensetracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		corsOrigins        = getString(lookup, "CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
		logLevel           = getString(lookup, "LOG_LEVEL", defaultLogLevel)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "Database DSN (postgres:// or sqlite://)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Token format: jwt or hmac")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued tokens")
	fs.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "Timezone defining the current day and month")
	fs.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma separated list of allowed CORS origins")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg.CORSAllowedOrigins = splitList(corsOrigins)

	switch cfg.TokenStrategy {
	case "jwt", "hmac":
	default:
		return nil, fmt.Errorf("unknown token strategy %q", cfg.TokenStrategy)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimRight(strings.TrimSpace(part), "/"); item != "" {
			out = append(out, item)
		}
	}
	return out
}
