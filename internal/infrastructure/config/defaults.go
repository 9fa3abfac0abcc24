package config

import (
	"os"
	"path/filepath"
	"time"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "stars.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "stars"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "stars"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.BusyTimeout == 0 {
		cfg.Database.BusyTimeout = 5 * time.Second
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Game defaults
	if cfg.Game.SnapshotCompression == "" {
		cfg.Game.SnapshotCompression = "zstd"
	}
	if cfg.Game.Workers == 0 {
		cfg.Game.Workers = 8
	}
	if cfg.Game.LockDir == "" {
		cfg.Game.LockDir = filepath.Join(os.TempDir(), "stars-locks")
	}

	// Orders defaults
	if cfg.Orders.SubmitRate == 0 {
		cfg.Orders.SubmitRate = 1
	}
	if cfg.Orders.SubmitBurst == 0 {
		cfg.Orders.SubmitBurst = 5
	}

	// Host defaults
	if cfg.Host.PollInterval == 0 {
		cfg.Host.PollInterval = 10 * time.Second
	}
	if cfg.Host.PIDFile == "" {
		cfg.Host.PIDFile = filepath.Join(os.TempDir(), "stars-host.pid")
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
