package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

const fileMode = 0o600

// document is the on-disk layout of the YAML and JSON backends.
type document struct {
	Version int         `yaml:"version" json:"version"`
	Tasks   []task.Task `yaml:"tasks" json:"tasks"`
}

type codec interface {
	encode(doc document) ([]byte, error)
	decode(data []byte) (document, error)
}

// fileStore keeps the whole manager in a single document file.
type fileStore struct {
	path  string
	codec codec
}

func (s *fileStore) Load(ctx context.Context) (*manager.Manager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path) //nolint:gosec // state path from config
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return manager.New(), nil
	}

	doc, err := s.codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, filepath.Base(s.path), err)
	}
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("%w: %s: version %d is newer than supported version %d",
			ErrMalformed, filepath.Base(s.path), doc.Version, DocumentVersion)
	}
	return manager.Restore(doc.Tasks), nil
}

// Save writes to a temporary file in the same directory and renames it
// over the state file, so readers never observe a partial write.
func (s *fileStore) Save(ctx context.Context, m *manager.Manager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.codec.encode(document{Version: DocumentVersion, Tasks: m.Tasks()})
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

func (s *fileStore) Close() error { return nil }

type yamlCodec struct{}

func (yamlCodec) encode(doc document) ([]byte, error) {
	if doc.Tasks == nil {
		doc.Tasks = []task.Task{}
	}
	return yaml.Marshal(doc)
}

func (yamlCodec) decode(data []byte) (document, error) {
	var doc document
	err := yaml.Unmarshal(data, &doc)
	return doc, err
}

type jsonCodec struct{}

func (jsonCodec) encode(doc document) ([]byte, error) {
	if doc.Tasks == nil {
		doc.Tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decode also accepts the legacy layout with m_-prefixed field names.
// Legacy tasks carry a float32 priority sentinel instead of infinity, so
// their derived fields are rebuilt and the result sorted.
func (jsonCodec) decode(data []byte) (document, error) {
	var raw struct {
		document
		Legacy []legacyTask `json:"m_tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return document{}, err
	}
	if raw.Legacy == nil {
		return raw.document, nil
	}

	tasks := make([]task.Task, 0, len(raw.Legacy))
	for _, lt := range raw.Legacy {
		tasks = append(tasks, lt.build())
	}
	m := manager.New()
	m.AddMany(tasks)
	return document{Version: DocumentVersion, Tasks: m.Tasks()}, nil
}

type legacyTask struct {
	Context     string `json:"m_context"`
	Description string `json:"m_description"`
	DaysToStart uint   `json:"m_days_to_start"`
	DaysToEnd   uint   `json:"m_days_to_end"`
	Weight      string `json:"m_weight"`
}

func (lt legacyTask) build() task.Task {
	b := task.NewBuilder().
		WithContext(lt.Context).
		WithDescription(lt.Description).
		WithDaysToStart(lt.DaysToStart).
		WithDaysToEnd(lt.DaysToEnd)
	if w, err := task.ParseWeight(lt.Weight); err == nil {
		b = b.WithWeight(w)
	}
	return b.Build()
}
