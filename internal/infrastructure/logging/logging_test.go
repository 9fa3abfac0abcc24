package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/infrastructure/config"
	"github.com/andrescamacho/stars-go/internal/infrastructure/logging"
)

func TestNew_WritesJSONToFileAtLevel(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "stars.log")
	cfg := config.LoggingConfig{Level: "warn", Format: "json", Output: "file", FilePath: path}

	// Act
	logger, closer, err := logging.New(cfg)
	require.NoError(t, err)
	logger.Info().Msg("quiet")
	logger.Warn().Str("game_id", "g-1").Msg("loud")
	require.NoError(t, closer.Close())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), `"game_id":"g-1"`)
	assert.Contains(t, string(data), `"level":"warn"`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	// Act
	_, _, err := logging.New(config.LoggingConfig{Level: "chatty", Format: "json", Output: "stderr"})

	// Assert
	require.Error(t, err)
}
