package config

import "time"

// GameConfig controls how turns are generated and stored
type GameConfig struct {
	// Optional YAML overrides for the rules and the tech catalog
	RulesPath string `mapstructure:"rules_path"`
	TechsPath string `mapstructure:"techs_path"`

	// Snapshot compression: zstd, lz4, none
	SnapshotCompression string `mapstructure:"snapshot_compression" validate:"required,oneof=zstd lz4 none"`

	// Workers bounds the per-phase fan-out over planets
	Workers int `mapstructure:"workers" validate:"min=1,max=256"`

	// LockDir holds the per-game turn lock files
	LockDir string `mapstructure:"lock_dir" validate:"required"`
}

// OrdersConfig throttles order submission per player
type OrdersConfig struct {
	SubmitRate  float64 `mapstructure:"submit_rate" validate:"gt=0"`
	SubmitBurst int     `mapstructure:"submit_burst" validate:"min=1"`
}

// HostConfig controls the hosting daemon
type HostConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"min=1ms"`
	PIDFile      string        `mapstructure:"pid_file" validate:"required"`

	// AlwaysGenerate generates a turn on every poll instead of waiting for
	// every human player
	AlwaysGenerate bool `mapstructure:"always_generate"`

	// TurnDeadline generates anyway once a year has waited this long; zero
	// waits forever
	TurnDeadline time.Duration `mapstructure:"turn_deadline"`
}
