package config

import (
	"fmt"
	"time"
)

// DatabaseConfig selects where games are stored. Type picks the driver; URL,
// when set, wins over the individual postgres fields.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	URL  string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Path is the sqlite file, or ":memory:".
	Path string `mapstructure:"path"`

	// BusyTimeout is how long sqlite waits on a lock held by another process
	// before failing. The host and the CLI share one file.
	BusyTimeout time.Duration `mapstructure:"busy_timeout" validate:"min=0"`

	// LogLevel is gorm's own query log: silent, error, warn or info.
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=silent error warn info"`

	Pool PoolConfig `mapstructure:"pool"`
}

type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN is the connection string handed to the driver.
func (c DatabaseConfig) DSN() string {
	switch c.Type {
	case "postgres":
		if c.URL != "" {
			return c.URL
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	case "sqlite":
		path := c.Path
		if c.URL != "" {
			path = c.URL
		}
		if path == "" || path == ":memory:" {
			return ":memory:"
		}
		return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on",
			path, c.BusyTimeout.Milliseconds())
	}
	return ""
}

// InMemory reports whether the database disappears with the process.
func (c DatabaseConfig) InMemory() bool {
	return c.Type == "sqlite" && c.DSN() == ":memory:"
}
