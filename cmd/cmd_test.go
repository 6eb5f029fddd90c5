package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/config"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/store"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

func init() {
	output.DisableColor()
}

// resetFlags restores every flag in the tree to its default so one
// invocation does not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return err
}

func mustExecute(t *testing.T, args ...string) {
	t.Helper()
	if err := execute(t, args...); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
}

func newBoard(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), config.DefaultDir)
	mustExecute(t, "init", "--dir", dir, "--name", "demo")
	return dir
}

func contextsOnDisk(t *testing.T, dir string) []string {
	t.Helper()
	st, err := store.Open(filepath.Join(dir, config.DefaultStateFile))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	m, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	var out []string
	for _, tk := range m.Tasks() {
		out = append(out, tk.Context())
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCommandsKeepRankOnDisk(t *testing.T) {
	dir := newBoard(t)

	mustExecute(t, "new", "work", "--dir", dir, "--weight", "high")
	mustExecute(t, "add", "--dir", dir, "--context", "home", "--end", "5")
	mustExecute(t, "create", "gym", "--dir", dir, "--start", "1", "--days-to-end", "3", "--weight", "low")

	// work is due now; gym 1/2 outranks home 2/5.
	if got := contextsOnDisk(t, dir); !equal(got, []string{"work", "gym", "home"}) {
		t.Fatalf("after new: %v", got)
	}

	mustExecute(t, "edit", "2", "--dir", dir, "--weight", "high")
	if got := contextsOnDisk(t, dir); !equal(got, []string{"work", "home", "gym"}) {
		t.Fatalf("after edit: %v", got)
	}

	// Everything is due after the tick; heavier first, then by context.
	mustExecute(t, "tick", "--dir", dir, "5")
	if got := contextsOnDisk(t, dir); !equal(got, []string{"home", "work", "gym"}) {
		t.Fatalf("after tick: %v", got)
	}

	mustExecute(t, "remove", "0,2", "--dir", dir, "--yes")
	if got := contextsOnDisk(t, dir); !equal(got, []string{"work"}) {
		t.Fatalf("after remove: %v", got)
	}

	mustExecute(t, "list", "--dir", dir, "--json")
	mustExecute(t, "show", "0", "--dir", dir, "--compact")
	mustExecute(t, "board", "--dir", dir)
	mustExecute(t, "log", "--dir", dir, "-n", "0")
}

func TestCommandErrors(t *testing.T) {
	dir := newBoard(t)
	mustExecute(t, "new", "only", "--dir", dir, "--end", "2")

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"bad weight", []string{"new", "x", "--weight", "huge"}, clierr.InvalidWeight},
		{"bad days", []string{"new", "x", "--end", "-1"}, clierr.InvalidDays},
		{"bad index", []string{"show", "abc"}, clierr.InvalidIndex},
		{"out of range", []string{"remove", "4", "--yes"}, clierr.IndexOutOfRange},
		{"batch needs yes", []string{"remove", "0,1"}, clierr.ConfirmationReq},
		{"edit without flags", []string{"edit", "0"}, clierr.NoChanges},
		{"edit bad flag", []string{"edit", "0", "--start", "soon"}, clierr.InvalidDays},
		{"tick bad days", []string{"tick", "many"}, clierr.InvalidDays},
		{"unknown config key", []string{"config", "get", "nope"}, clierr.InvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, append(tt.args, "--dir", dir)...)
			if !clierr.HasCode(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
		})
	}

	if got := contextsOnDisk(t, dir); !equal(got, []string{"only"}) {
		t.Fatalf("failed commands changed state: %v", got)
	}
}

func TestRemoveWithoutTerminalNeedsYes(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
		t.Skip("stdin is a terminal")
	}
	dir := newBoard(t)
	mustExecute(t, "new", "keep", "--dir", dir)

	if err := execute(t, "rm", "0", "--dir", dir); !clierr.HasCode(err, clierr.ConfirmationReq) {
		t.Fatalf("error = %v, want CONFIRMATION_REQUIRED", err)
	}
	if got := contextsOnDisk(t, dir); !equal(got, []string{"keep"}) {
		t.Fatalf("task removed without confirmation: %v", got)
	}
}

func TestConfigSetDefaultWeight(t *testing.T) {
	dir := newBoard(t)
	mustExecute(t, "config", "set", "defaults.weight", "high", "--dir", dir)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultWeight() != task.High {
		t.Fatalf("default weight = %v", cfg.DefaultWeight())
	}
	if err := execute(t, "config", "set", "state_file", "tasks.txt", "--dir", dir); !clierr.HasCode(err, clierr.InvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
}

func TestInitRejectsExistingBoard(t *testing.T) {
	dir := newBoard(t)
	if err := execute(t, "init", "--dir", dir); !clierr.HasCode(err, clierr.BoardAlreadyExists) {
		t.Fatalf("error = %v, want BOARD_ALREADY_EXISTS", err)
	}
}
