package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything the stars binaries read at startup.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Orders   OrdersConfig   `mapstructure:"orders"`
	Host     HostConfig     `mapstructure:"host"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// keys lists every setting by section. Each one can be set from the
// environment as STARS_<SECTION>_<KEY>.
var keys = map[string][]string{
	"database": {
		"type", "url", "path", "busy_timeout", "log_level",
		"host", "port", "user", "password", "name", "sslmode",
		"pool.max_open", "pool.max_idle", "pool.max_lifetime",
	},
	"logging": {"level", "format", "output", "file_path", "include_caller"},
	"game":    {"rules_path", "techs_path", "snapshot_compression", "workers", "lock_dir"},
	"orders":  {"submit_rate", "submit_burst"},
	"host":    {"poll_interval", "pid_file", "always_generate", "turn_deadline"},
	"metrics": {"enabled", "host", "port", "path"},
}

// LoadConfig reads configPath, or config.yaml from the working directory or
// ./configs when configPath is empty. Environment variables win over the
// file; defaults fill whatever neither sets.
func LoadConfig(configPath string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("STARS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for section, names := range keys {
		for _, name := range names {
			if err := v.BindEnv(section + "." + name); err != nil {
				return nil, fmt.Errorf("bind %s.%s: %w", section, name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	SetDefaults(&cfg)
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default is the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}
