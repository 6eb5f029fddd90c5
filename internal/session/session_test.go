package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/config"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

func newBoard(t *testing.T, stateFile string) *config.Config {
	t.Helper()
	cfg, err := config.Init(filepath.Join(t.TempDir(), config.DefaultDir), "test")
	if err != nil {
		t.Fatalf("init board: %v", err)
	}
	if stateFile != "" {
		cfg.StateFile = stateFile
	}
	return cfg
}

func TestOpenMissingStateIsEmpty(t *testing.T) {
	cfg := newBoard(t, "")
	var warn bytes.Buffer
	s, err := Open(context.Background(), cfg, Options{Warn: &warn})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if !s.Manager.IsEmpty() {
		t.Fatalf("expected empty manager, got %d tasks", s.Manager.Len())
	}
	if warn.Len() != 0 {
		t.Fatalf("unexpected warning: %s", warn.String())
	}
}

func TestOpenMalformedWarnsAndBacksUp(t *testing.T) {
	cfg := newBoard(t, "tasks.json")
	if err := os.WriteFile(cfg.StatePath(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	var warn bytes.Buffer
	s, err := Open(context.Background(), cfg, Options{Warn: &warn})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if !s.Manager.IsEmpty() {
		t.Fatal("expected empty manager for malformed state")
	}
	if !strings.HasPrefix(warn.String(), "Warning: ") {
		t.Fatalf("expected warning, got %q", warn.String())
	}
	data, err := os.ReadFile(cfg.StatePath() + ".bak")
	if err != nil || string(data) != "{not json" {
		t.Fatalf("backup = %q, %v", data, err)
	}
}

func TestSaveAndReopen(t *testing.T) {
	for _, name := range []string{"tasks.yml", "tasks.json", "tasks.db"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cfg := newBoard(t, name)

			s, err := Open(ctx, cfg, Options{Hold: true})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			s.Manager.Add(task.NewBuilder().WithContext("work").WithDaysToEnd(2).Build())
			s.Manager.Add(task.NewBuilder().WithContext("home").Build())
			if err := s.Save(ctx); err != nil {
				t.Fatalf("save: %v", err)
			}
			want := s.Manager.Tasks()
			if err := s.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			s2, err := Open(ctx, cfg, Options{})
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer s2.Close()
			got := s2.Manager.Tasks()
			if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
				t.Fatalf("reopened %v, want %v", got, want)
			}
		})
	}
}

func TestRecomputeOnLoad(t *testing.T) {
	ctx := context.Background()
	cfg := newBoard(t, "tasks.yml")
	stale := `version: 1
tasks:
  - context: stale
    description: ""
    days_to_start: 0
    days_to_end: 0
    days_to_finish: 7
    weight: High
    priority: 0.1
  - context: fresh
    description: ""
    days_to_start: 0
    days_to_end: 2
    days_to_finish: 2
    weight: Med
    priority: 1
`
	if err := os.WriteFile(cfg.StatePath(), []byte(stale), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	first, _ := s.Manager.Peek(0)
	if first.Context() != "stale" || first.IsDueNow() {
		t.Fatalf("verbatim load changed the task: %+v", first.Record())
	}
	_ = s.Close()

	cfg.RecomputeOnLoad = true
	s, err = Open(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	first, _ = s.Manager.Peek(0)
	if first.Context() != "stale" || !first.IsDueNow() || first.DaysToFinish() != 0 {
		t.Fatalf("recompute did not rebuild: %+v", first.Record())
	}
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	cfg := newBoard(t, "")
	s, err := Open(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	s.Record(activity.ActionCreate, 1, "work")
	entries, err := s.Log.Read(0)
	if err != nil || len(entries) != 1 || entries[0].Detail != "work" {
		t.Fatalf("log entries = %+v, %v", entries, err)
	}
}
