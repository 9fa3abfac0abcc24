package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/infrastructure/pidfile"
)

func TestAcquire_WritesOwnPID(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "host.pid")
	pf := pidfile.New(path)

	// Act
	err := pf.Acquire()

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))
	require.NoError(t, pf.Release())
	assert.NoFileExists(t, path)
}

func TestAcquire_FailsWhileHeld(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "host.pid")
	first := pidfile.New(path)
	require.NoError(t, first.Acquire())
	defer func() { _ = first.Release() }()

	// Act
	err := pidfile.New(path).Acquire()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running process")
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "host.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	// Act
	err := pidfile.New(path).Acquire()

	// Assert
	require.NoError(t, err)
}

func TestLocks_OnePerGame(t *testing.T) {
	// Arrange
	locks, err := pidfile.NewLocks(filepath.Join(t.TempDir(), "locks"))
	require.NoError(t, err)

	// Act
	releaseA, errA := locks.Acquire("game-a")
	_, errAgain := locks.Acquire("game-a")
	releaseB, errB := locks.Acquire("game-b")

	// Assert
	require.NoError(t, errA)
	require.Error(t, errAgain)
	require.NoError(t, errB)
	require.NoError(t, releaseA())
	require.NoError(t, releaseB())
	_, errAfter := locks.Acquire("game-a")
	assert.NoError(t, errAfter)
}
