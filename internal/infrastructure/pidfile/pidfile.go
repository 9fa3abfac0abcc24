package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile manages a process ID file for single-instance enforcement
type PIDFile struct {
	path string
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

func (p *PIDFile) Path() string {
	return p.path
}

// Acquire creates the PID file. It fails while a live process holds it and
// takes over files left behind by dead ones.
func (p *PIDFile) Acquire() error {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, writeErr := fmt.Fprintf(f, "%d\n", os.Getpid())
			closeErr := f.Close()
			if writeErr != nil || closeErr != nil {
				_ = os.Remove(p.path)
				return fmt.Errorf("failed to write PID file: %w", errors.Join(writeErr, closeErr))
			}
			return nil
		}
		if !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed to create PID file: %w", err)
		}

		pid, err := p.readPID()
		if err == nil && isProcessRunning(pid) {
			return fmt.Errorf("%s is held by running process %d", p.path, pid)
		}
		// Stale or unreadable: remove it and retry
		if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale PID file: %w", err)
		}
	}
	return fmt.Errorf("%s was taken by another process", p.path)
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func (p *PIDFile) readPID() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// Locks hands out one lock file per game under a directory, so a turn is
// generated by at most one process at a time.
type Locks struct {
	dir string
}

func NewLocks(dir string) (*Locks, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}
	return &Locks{dir: dir}, nil
}

// ForGame returns the lock file of a game.
func (l *Locks) ForGame(gameID string) *PIDFile {
	return New(filepath.Join(l.dir, filepath.Base(gameID)+".lock"))
}

// Acquire takes a game's lock.
func (l *Locks) Acquire(gameID string) (func() error, error) {
	lock := l.ForGame(gameID)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	return lock.Release, nil
}

// isProcessRunning checks if a process with the given PID is running
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix systems, FindProcess always succeeds
	// Signal 0 only checks that the process exists
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	if errors.Is(err, syscall.EPERM) {
		// Process exists but we don't have permission (still running)
		return true
	}
	return false
}
