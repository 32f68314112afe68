package runlock_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cull/internal/runlock"
)

func TestNewCreatesStateDir(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), "nested", "state")

	lock, err := runlock.New(stateDir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := os.Stat(stateDir); err != nil {
		t.Fatalf("state dir missing: %v", err)
	}
	if lock.Path() != filepath.Join(stateDir, "cull.lock") {
		t.Fatalf("unexpected lock path: %s", lock.Path())
	}
}

func TestAcquireConflict(t *testing.T) {
	stateDir := t.TempDir()

	first, err := runlock.New(stateDir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := first.Acquire(); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer first.Release()

	second, err := runlock.New(stateDir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = second.Acquire()
	if !errors.Is(err, runlock.ErrHeld) {
		t.Fatalf("second acquire = %v, want ErrHeld", err)
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	stateDir := t.TempDir()

	first, err := runlock.New(stateDir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := first.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	second, err := runlock.New(stateDir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	second.Release()
}
