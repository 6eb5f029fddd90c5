// Package filelock serializes access to a board's state file across
// processes with an advisory lock on a sidecar file.
package filelock

import (
	"errors"
	"os"
)

const lockFileMode = 0o600

// ErrLocked is returned by TryLock when another process holds the lock.
var ErrLocked = errors.New("state file is locked by another process")

// Lock acquires an exclusive advisory lock on the file at path, creating it
// if needed, and blocks until the lock is available. The returned function
// releases the lock.
func Lock(path string) (unlock func() error, err error) {
	return acquire(path, lockFile)
}

// TryLock is Lock without waiting. It returns ErrLocked when the lock is
// held elsewhere.
func TryLock(path string) (unlock func() error, err error) {
	return acquire(path, tryLockFile)
}

// With runs fn while holding the lock at path.
func With(path string, fn func() error) (err error) {
	unlock, err := Lock(path)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); err == nil {
			err = uerr
		}
	}()
	return fn()
}

func acquire(path string, lock func(*os.File) error) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from board dir
	if err != nil {
		return nil, err
	}

	if err := lock(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
