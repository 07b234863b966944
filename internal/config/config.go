package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Config holds application configuration
type Config struct {
	WorkingDir   string
	AppDataDir   string
	DatabasePath string
	Logger       *slog.Logger
}

// New creates a new configuration instance
func New() *Config {
	cfg := &Config{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	cfg.setupDirectories()

	return cfg
}

func (c *Config) setupDirectories() {
	// Working directory holds per-entry temp copies and thumbnails
	c.WorkingDir = filepath.Join(os.TempDir(), "batchpix")
	os.MkdirAll(c.WorkingDir, 0755)

	// App data directory holds the preferences database
	c.AppDataDir = getAppDataDir()
	os.MkdirAll(c.AppDataDir, 0755)

	c.DatabasePath = filepath.Join(c.AppDataDir, "database.sqlite3")
}

func getAppDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "BatchPix")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".batchpix")
}
