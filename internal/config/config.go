package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	DatabaseName      string
	JWTSecret         string
	TokenTTL          time.Duration
	ShutdownTimeout   time.Duration
	NotifyWorkers     int
	NotifyQueueSize   int
	PostmarkToken     string
	SendGridKey       string
	EmailSender       string
	StrictTransitions bool
	SeedDefaults      bool
	LogLevel          string
	// FrontendOrigins are the browser origins allowed to call the API with
	// credentials.
	FrontendOrigins []string
}

const (
	defaultRunAddress      = ":5000"
	defaultDatabaseName    = "rype"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 7 * 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultNotifyWorkers   = 2
	defaultNotifyQueueSize = 64
	defaultEmailSender     = "orders@rype.com"
	defaultLogLevel        = "info"
	defaultFrontendURL     = "http://localhost:3000"
	envFile                = ".env"
)

// Load parses configuration from .env, flags and environment variables.
func Load() (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// loadEnvFile populates the process environment from path without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		DatabaseName:      getString(lookup, "DATABASE_NAME", defaultDatabaseName),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:          getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		NotifyWorkers:     getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize:   getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		PostmarkToken:     getString(lookup, "POSTMARK_SERVER_TOKEN", ""),
		SendGridKey:       getString(lookup, "SENDGRID_API_KEY", ""),
		EmailSender:       getString(lookup, "EMAIL_SENDER", defaultEmailSender),
		StrictTransitions: getBool(lookup, "STRICT_TRANSITIONS", false),
		SeedDefaults:      getBool(lookup, "SEED_DEFAULTS", true),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}
	frontendURL := getString(lookup, "FRONTEND_URL", defaultFrontendURL)

	fs := flag.NewFlagSet("rype", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "MongoDB or PostgreSQL connection URI")
	fs.StringVar(&cfg.DatabaseName, "db-name", cfg.DatabaseName, "MongoDB database name")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of concurrent notification workers")
	fs.IntVar(&cfg.NotifyQueueSize, "notify-queue", cfg.NotifyQueueSize, "Pending notification queue size")
	fs.BoolVar(&cfg.StrictTransitions, "strict-transitions", cfg.StrictTransitions, "Only allow forward order status transitions")
	fs.BoolVar(&cfg.SeedDefaults, "seed", cfg.SeedDefaults, "Seed default accounts and catalog on startup")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&frontendURL, "frontend-url", frontendURL, "Comma-separated storefront origins allowed by CORS")

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

	if cfg.FrontendOrigins, err = parseOrigins(frontendURL); err != nil {
		return nil, err
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseName == "" {
		cfg.DatabaseName = defaultDatabaseName
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

// parseOrigins splits a comma-separated origin list. Each origin must be an
// absolute http(s) URL; a trailing slash is dropped.
func parseOrigins(raw string) ([]string, error) {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		if origin == "" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("invalid frontend url %q: must start with http:// or https://", origin)
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		origins = []string{defaultFrontendURL}
	}
	return origins, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
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
