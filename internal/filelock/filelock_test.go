package filelock

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestTryLockReportsHeldLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")
	unlock, err := Lock(path)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	if _, err := TryLock(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("TryLock while held = %v, want ErrLocked", err)
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	unlock2, err := TryLock(path)
	if err != nil {
		t.Fatalf("TryLock after release: %v", err)
	}
	_ = unlock2()
}

func TestWithReleasesOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")
	boom := errors.New("boom")
	if err := With(path, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("With error = %v, want boom", err)
	}
	unlock, err := TryLock(path)
	if err != nil {
		t.Fatalf("lock still held after With: %v", err)
	}
	_ = unlock()
}
