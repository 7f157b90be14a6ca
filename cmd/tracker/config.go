package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/polkiloo/rype/internal/tracking"
)

type trackerConfig struct {
	APIURL    string
	Email     string
	Password  string
	OrderID   string
	StateFile string
	Tick      time.Duration
	Clear     bool
}

func defaultStateFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "rype", "tracking.json")
}

func loadConfig(args []string) (*trackerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parseConfig(args, os.LookupEnv)
}

func parseConfig(args []string, lookup func(string) (string, bool)) (*trackerConfig, error) {
	env := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := &trackerConfig{}
	tick := env("RYPE_TRACK_TICK", tracking.DefaultTickInterval.String())

	set := flag.NewFlagSet("tracker", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.StringVar(&cfg.APIURL, "api", env("RYPE_API_URL", "http://localhost:5000"), "Storefront API base URL")
	set.StringVar(&cfg.Email, "email", env("RYPE_EMAIL", ""), "Customer e-mail")
	set.StringVar(&cfg.Password, "password", env("RYPE_PASSWORD", ""), "Customer password")
	set.StringVar(&cfg.OrderID, "order", "", "Order to track; defaults to the latest recent order")
	set.StringVar(&cfg.StateFile, "state", env("RYPE_TRACK_STATE", defaultStateFile()), "Tracking state file")
	set.StringVar(&tick, "tick", tick, "Simulated minute length in whole seconds, at least 1s")
	set.BoolVar(&cfg.Clear, "clear", false, "Discard stored tracking state and exit")

	if err := set.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.Tick, err = time.ParseDuration(tick); err != nil {
		return nil, fmt.Errorf("invalid tick interval: %w", err)
	}
	if cfg.Tick <= 0 {
		cfg.Tick = tracking.DefaultTickInterval
	}
	// The tick schedule runs at whole-second resolution.
	if cfg.Tick < time.Second || cfg.Tick%time.Second != 0 {
		return nil, fmt.Errorf("invalid tick interval %s: must be whole seconds, at least 1s", cfg.Tick)
	}
	return cfg, nil
}
