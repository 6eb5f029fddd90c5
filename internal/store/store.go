// Package store persists a task manager to disk.
//
// The backend is chosen by the state file's extension: YAML (.yml, .yaml),
// JSON (.json) or SQLite (.db, .sqlite). Every backend restores the saved
// order verbatim.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
)

// DocumentVersion is the schema version written to state files.
const DocumentVersion = 1

// Sentinel errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported state file format")
	ErrMalformed         = errors.New("malformed state file")
)

// Store loads and saves a manager.
type Store interface {
	// Load returns the saved manager. A missing state file yields an error
	// wrapping fs.ErrNotExist; undecodable content wraps ErrMalformed.
	Load(ctx context.Context) (*manager.Manager, error)
	// Save replaces the stored state with m.
	Save(ctx context.Context, m *manager.Manager) error
	Close() error
}

// Open returns the Store for path based on its extension.
func Open(path string) (Store, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return &fileStore{path: path, codec: yamlCodec{}}, nil
	case ".json":
		return &fileStore{path: path, codec: jsonCodec{}}, nil
	case ".db", ".sqlite":
		return openSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
