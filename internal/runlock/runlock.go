// Package runlock serializes triage runs across processes with an
// advisory file lock. Two concurrent runs over the same directories
// could race on destination-name conflicts, so only one run proceeds
// at a time.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld reports that another run currently holds the lock.
var ErrHeld = errors.New("another cull run is already in progress")

// Lock guards the state directory for the duration of one run.
type Lock struct {
	path string
	lock *flock.Flock
}

// New builds the run lock under stateDir, creating the directory when
// missing.
func New(stateDir string) (*Lock, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir %s: %w", stateDir, err)
	}
	path := filepath.Join(stateDir, "cull.lock")
	return &Lock{path: path, lock: flock.New(path)}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking.
func (l *Lock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrHeld, l.path)
	}
	return nil
}

// Release drops the lock. Safe to call when Acquire never succeeded.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}
