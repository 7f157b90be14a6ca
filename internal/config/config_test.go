package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func mapLookup(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	_, err := load(nil, func(string) (string, bool) { return "", false })
	if err == nil {
		t.Fatalf("expected error due to missing database uri, got nil")
	}

	cfg, err := load(nil, mapLookup(map[string]string{
		"DATABASE_URI": "mongodb://localhost:27017",
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Errorf("expected default run address %q, got %q", defaultRunAddress, cfg.RunAddress)
	}
	if cfg.DatabaseName != defaultDatabaseName {
		t.Errorf("expected default database name %q, got %q", defaultDatabaseName, cfg.DatabaseName)
	}
	if cfg.JWTSecret != defaultJWTSecret {
		t.Errorf("expected default jwt secret %q, got %q", defaultJWTSecret, cfg.JWTSecret)
	}
	if cfg.TokenTTL != defaultTokenTTL {
		t.Errorf("expected default token ttl %v, got %v", defaultTokenTTL, cfg.TokenTTL)
	}
	if cfg.NotifyWorkers != defaultNotifyWorkers {
		t.Errorf("expected default notify workers %d, got %d", defaultNotifyWorkers, cfg.NotifyWorkers)
	}
	if cfg.NotifyQueueSize != defaultNotifyQueueSize {
		t.Errorf("expected default queue size %d, got %d", defaultNotifyQueueSize, cfg.NotifyQueueSize)
	}
	if cfg.StrictTransitions {
		t.Errorf("expected permissive transitions by default")
	}
	if !cfg.SeedDefaults {
		t.Errorf("expected seeding enabled by default")
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("expected default log level %q, got %q", defaultLogLevel, cfg.LogLevel)
	}
	if len(cfg.FrontendOrigins) != 1 || cfg.FrontendOrigins[0] != defaultFrontendURL {
		t.Errorf("expected default frontend origin, got %v", cfg.FrontendOrigins)
	}
}

func TestLoadFrontendOrigins(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI": "mongodb://localhost:27017",
		"FRONTEND_URL": "https://shop.rype.com/, http://localhost:5173",
	}
	cfg, err := load(nil, mapLookup(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if len(cfg.FrontendOrigins) != 2 || cfg.FrontendOrigins[0] != "https://shop.rype.com" || cfg.FrontendOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected origins %v", cfg.FrontendOrigins)
	}

	cfg, err = load([]string{"-frontend-url", "https://admin.rype.com"}, mapLookup(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if len(cfg.FrontendOrigins) != 1 || cfg.FrontendOrigins[0] != "https://admin.rype.com" {
		t.Fatalf("flag should override env, got %v", cfg.FrontendOrigins)
	}

	env["FRONTEND_URL"] = "shop.rype.com"
	if _, err := load(nil, mapLookup(env)); err == nil || !strings.Contains(err.Error(), "invalid frontend url") {
		t.Fatalf("expected frontend url error, got %v", err)
	}
}

func TestLoadWithFlagOverrides(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI":       "mongodb://localhost:27017",
		"NOTIFY_WORKERS":     "3",
		"STRICT_TRANSITIONS": "false",
		"TOKEN_TTL":          "1h",
	}

	args := []string{
		"-a", ":9090",
		"-d", "postgres://override",
		"--db-name", "juices",
		"--token-ttl", "2h",
		"--shutdown-timeout", "20s",
		"--notify-workers", "9",
		"--notify-queue", "11",
		"--strict-transitions",
		"--seed=false",
		"--jwt-secret", "flag-secret",
		"--log-level", "debug",
	}

	cfg, err := load(args, mapLookup(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected run address :9090, got %q", cfg.RunAddress)
	}
	if cfg.DatabaseURI != "postgres://override" {
		t.Errorf("expected database uri override, got %q", cfg.DatabaseURI)
	}
	if cfg.DatabaseName != "juices" {
		t.Errorf("expected database name override, got %q", cfg.DatabaseName)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected token ttl 2h, got %v", cfg.TokenTTL)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("expected shutdown timeout 20s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.NotifyWorkers != 9 {
		t.Errorf("expected notify workers 9, got %d", cfg.NotifyWorkers)
	}
	if cfg.NotifyQueueSize != 11 {
		t.Errorf("expected queue size 11, got %d", cfg.NotifyQueueSize)
	}
	if !cfg.StrictTransitions {
		t.Errorf("expected strict transitions flag to win")
	}
	if cfg.SeedDefaults {
		t.Errorf("expected seeding disabled")
	}
	if cfg.JWTSecret != "flag-secret" {
		t.Errorf("expected jwt secret override, got %q", cfg.JWTSecret)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level override, got %q", cfg.LogLevel)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := map[string]string{"DATABASE_URI": "mongodb://localhost:27017"}

	_, err := load([]string{"--token-ttl", "bad"}, mapLookup(env))
	if err == nil || !strings.Contains(err.Error(), "invalid token ttl") {
		t.Fatalf("expected token ttl error, got %v", err)
	}

	_, err = load([]string{"--shutdown-timeout", "bad"}, mapLookup(env))
	if err == nil || !strings.Contains(err.Error(), "invalid shutdown timeout") {
		t.Fatalf("expected shutdown timeout error, got %v", err)
	}

	_, err = load([]string{"--unknown"}, mapLookup(env))
	if err == nil || !strings.Contains(err.Error(), "parse flags") {
		t.Fatalf("expected parse flags error, got %v", err)
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI":      "mongodb://localhost:27017",
		"NOTIFY_WORKERS":    "-1",
		"NOTIFY_QUEUE_SIZE": "0",
		"TOKEN_TTL":         "0",
		"SHUTDOWN_TIMEOUT":  "0",
	}

	cfg, err := load(nil, mapLookup(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.NotifyWorkers != defaultNotifyWorkers {
		t.Errorf("expected default notify workers %d, got %d", defaultNotifyWorkers, cfg.NotifyWorkers)
	}
	if cfg.NotifyQueueSize != defaultNotifyQueueSize {
		t.Errorf("expected default queue size %d, got %d", defaultNotifyQueueSize, cfg.NotifyQueueSize)
	}
	if cfg.TokenTTL != defaultTokenTTL {
		t.Errorf("expected default token ttl %v, got %v", defaultTokenTTL, cfg.TokenTTL)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Errorf("expected default shutdown timeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
	}
}

func TestLoadIgnoresMalformedEnvValues(t *testing.T) {
	cfg, err := load(nil, mapLookup(map[string]string{
		"DATABASE_URI":       "mongodb://localhost:27017",
		"NOTIFY_WORKERS":     "many",
		"STRICT_TRANSITIONS": "sometimes",
		"TOKEN_TTL":          "forever",
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.NotifyWorkers != defaultNotifyWorkers || cfg.StrictTransitions || cfg.TokenTTL != defaultTokenTTL {
		t.Fatalf("expected defaults for malformed values, got %+v", cfg)
	}
}

func TestLoadReadsSecretFromFile(t *testing.T) {
	dir := t.TempDir()
	secretFile := filepath.Join(dir, "secret")
	if err := os.WriteFile(secretFile, []byte("file-secret\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}

	cfg, err := load(nil, mapLookup(map[string]string{
		"DATABASE_URI":    "mongodb://localhost:27017",
		"JWT_SECRET_FILE": secretFile,
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.JWTSecret != "file-secret" {
		t.Errorf("expected secret from file, got %q", cfg.JWTSecret)
	}

	_, err = load(nil, mapLookup(map[string]string{
		"DATABASE_URI":    "mongodb://localhost:27017",
		"JWT_SECRET_FILE": filepath.Join(dir, "missing"),
	}))
	if err == nil || !strings.Contains(err.Error(), "read jwt secret file") {
		t.Fatalf("expected secret file error, got %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing env file should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("RYPE_CONFIG_TEST_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("RYPE_CONFIG_TEST_KEY") })

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	if got := os.Getenv("RYPE_CONFIG_TEST_KEY"); got != "from-dotenv" {
		t.Fatalf("expected value from env file, got %q", got)
	}
}
