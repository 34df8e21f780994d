package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config selects and configures a backend.
type Config struct {
	// Driver is detected from URL when empty or "auto".
	Driver     Driver
	URL        string
	SQLitePath string
	MaxConns   int
}

// Opener creates a connection for one driver. Driver packages register
// themselves from init so callers only import what they link.
type Opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]Opener{}

// Register makes a driver available to Open.
func Register(driver Driver, open Opener) {
	openers[driver] = open
}

// Open connects to the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" || driver == "auto" {
		driver = DetectDriver(cfg.URL)
	}
	if !driver.IsValid() {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	open, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("database driver %s is not linked into this binary", driver)
	}
	return open(ctx, cfg)
}

// DefaultSQLitePath is ~/.chronosync/chronosync.db.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".chronosync", "chronosync.db")
}
