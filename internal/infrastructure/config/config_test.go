package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_ReadsFileAndAppliesDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
database:
  type: sqlite
  path: /tmp/test-stars.db
game:
  snapshot_compression: lz4
  workers: 4
host:
  poll_interval: 30s
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/test-stars.db", cfg.Database.Path)
	assert.Equal(t, "lz4", cfg.Game.SnapshotCompression)
	assert.Equal(t, 4, cfg.Game.Workers)
	assert.Equal(t, 30*time.Second, cfg.Host.PollInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.Orders.SubmitBurst)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: info\n")
	t.Setenv("STARS_LOGGING_LEVEL", "debug")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_DatabaseURLFromEnvironment(t *testing.T) {
	// Arrange
	path := writeConfig(t, "database:\n  type: postgres\n")
	t.Setenv("STARS_DATABASE_URL", "postgresql://stars@localhost:5432/stars")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "postgresql://stars@localhost:5432/stars", cfg.Database.URL)
}

func TestLoadConfig_NestedKeysFromEnvironment(t *testing.T) {
	// Arrange
	path := writeConfig(t, "database:\n  type: sqlite\n")
	t.Setenv("STARS_DATABASE_POOL_MAX_OPEN", "3")
	t.Setenv("STARS_LOGGING_INCLUDE_CALLER", "true")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Database.Pool.MaxOpen)
	assert.True(t, cfg.Logging.IncludeCaller)
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()

	assert.NoError(t, config.ValidateConfig(cfg))
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	// Arrange
	path := writeConfig(t, "game:\n  snapshot_compression: brotli\n")

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.snapshot_compression")
}

func TestValidateConfig_FileOutputNeedsPath(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Logging.Output = "file"

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.file_path")
}

func TestSetDefaults_ProducesValidConfig(t *testing.T) {
	// Arrange
	cfg := &config.Config{}

	// Act
	config.SetDefaults(cfg)

	// Assert
	assert.NoError(t, config.ValidateConfig(cfg))
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "zstd", cfg.Game.SnapshotCompression)
	assert.False(t, cfg.Host.AlwaysGenerate)
}

func TestValidateConfig_DeadlineShorterThanPoll(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Host.PollInterval = time.Minute
	cfg.Host.TurnDeadline = time.Second

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host.turn_deadline")
}

func TestValidateConfig_SqliteNeedsPath(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Path = ""

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.path")
}

func TestLoadConfig_EnvironmentWithoutFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, "database:\n  type: sqlite\n")
	t.Setenv("STARS_HOST_TURN_DEADLINE", "24h")
	t.Setenv("STARS_METRICS_ENABLED", "true")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.Host.TurnDeadline)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{"sqlite memory", config.DatabaseConfig{Type: "sqlite", Path: ":memory:"}, ":memory:"},
		{"sqlite file", config.DatabaseConfig{Type: "sqlite", Path: "stars.db", BusyTimeout: 5 * time.Second},
			"file:stars.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"},
		{"postgres url", config.DatabaseConfig{Type: "postgres", URL: "postgresql://stars@db/stars"}, "postgresql://stars@db/stars"},
		{"postgres fields", config.DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "stars", SSLMode: "disable"},
			"host=db port=5432 user=u password=p dbname=stars sslmode=disable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
