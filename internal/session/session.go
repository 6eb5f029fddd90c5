// Package session ties a board's config, state file, lock and activity log
// together for one command, shell or TUI run.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/config"
	"github.com/twiced-technology-gmbh/taskrank/internal/filelock"
	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/store"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// Session holds a loaded manager and the means to persist it.
type Session struct {
	Config  *config.Config
	Manager *manager.Manager
	Log     *activity.Log

	store  store.Store
	unlock func() error
	warn   io.Writer
}

// Options tune Open.
type Options struct {
	// Hold keeps the state lock from Open until Close, so a load/save pair
	// cannot interleave with another process. Interactive sessions leave it
	// unset and lock per load and save instead.
	Hold bool
	// Warn receives "Warning: ..." lines. Defaults to os.Stderr.
	Warn io.Writer
}

// Open loads the board's state. A missing state file gives an empty manager.
// A malformed one is copied aside to <state>.bak and also gives an empty
// manager, with a warning.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Session, error) {
	st, err := store.Open(cfg.StatePath())
	if err != nil {
		return nil, err
	}

	s := &Session{
		Config: cfg,
		store:  st,
		warn:   opts.Warn,
	}
	if s.warn == nil {
		s.warn = os.Stderr
	}
	s.Log = activity.New(cfg.LogPath(), cfg.MaxLogEntries())
	s.Log.Disabled = cfg.Activity.Disabled

	if opts.Hold {
		unlock, err := filelock.Lock(cfg.LockPath())
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("acquiring lock: %w", err)
		}
		s.unlock = unlock
		err = s.load(ctx)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	}

	if err := s.Reload(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return s, nil
}

// Reload replaces Manager with the current contents of the state file.
func (s *Session) Reload(ctx context.Context) error {
	if s.unlock != nil {
		return s.load(ctx)
	}
	return filelock.With(s.Config.LockPath(), func() error {
		return s.load(ctx)
	})
}

func (s *Session) load(ctx context.Context) error {
	m, err := s.store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		m = manager.New()
	case errors.Is(err, store.ErrMalformed):
		s.backup()
		fmt.Fprintf(s.warn, "Warning: %v; starting with an empty task list\n", err)
		m = manager.New()
	default:
		return fmt.Errorf("loading tasks: %w", err)
	}

	if s.Config.RecomputeOnLoad {
		m.TransformAll(task.Task.Rebuild)
	}
	s.Manager = m
	return nil
}

// backup copies the state file to <state>.bak. Failures only warn.
func (s *Session) backup() {
	path := s.Config.StatePath()
	data, err := os.ReadFile(path) //nolint:gosec // state path from config
	if err == nil {
		err = os.WriteFile(path+".bak", data, 0o600) //nolint:mnd // owner-only
	}
	if err != nil {
		fmt.Fprintf(s.warn, "Warning: could not back up %s: %v\n", path, err)
	}
}

// Save persists Manager.
func (s *Session) Save(ctx context.Context) error {
	if s.unlock != nil {
		return s.save(ctx)
	}
	return filelock.With(s.Config.LockPath(), func() error {
		return s.save(ctx)
	})
}

func (s *Session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.Manager); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// Record appends an activity entry. Errors are discarded.
func (s *Session) Record(action string, index int, detail string) {
	s.Log.Record(action, index, detail)
}

// Close releases the lock if held and closes the store.
func (s *Session) Close() error {
	var unlockErr error
	if s.unlock != nil {
		unlockErr = s.unlock()
		s.unlock = nil
	}
	closeErr := s.store.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
