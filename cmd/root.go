// Package cmd implements the taskrank CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/config"
	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/session"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "taskrank",
	Short: "Rank tasks by how urgently they need finishing",
	Long: `taskrank keeps a list of tasks ordered by urgency. Each task has a start and
end offset in days and a weight; the shorter its finish window and the heavier
its weight, the higher it ranks. Tasks whose window has closed are due now.

Run taskrank with no arguments to open the TUI, or taskrank shell for a
line-based prompt.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to board directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	cliErr, coded := clierr.As(err)
	if outputFormat() == output.FormatJSON {
		if !coded {
			cliErr = clierr.New(clierr.InternalError, err.Error())
		}
		output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
		os.Exit(cliErr.ExitCode())
	}

	fmt.Fprintln(os.Stderr, err)
	if coded {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/taskrank.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "taskrank"), nil
}

// resolveDir returns the board directory: --dir, then the nearest .taskrank
// above the working directory, then ~/.config/taskrank.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the board config. The home board is created
// on first use.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		if flagDir != "" {
			return nil, clierr.Newf(clierr.BoardNotFound, "no taskrank board in %s (run 'taskrank init --dir %s')",
				flagDir, flagDir).WithDetails(map[string]any{"dir": flagDir})
		}
		return nil, err
	}

	return config.Init(homeDir, "taskrank")
}

// openSession loads the board's tasks and holds the state lock until the
// session is closed.
func openSession(ctx context.Context) (*session.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return session.Open(ctx, cfg, session.Options{Hold: true})
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// peekArg parses an index argument and looks the task up.
func peekArg(m *manager.Manager, arg string) (int, task.Task, error) {
	idx, err := task.ParseIndex(arg)
	if err != nil {
		return 0, task.Task{}, err
	}
	t, ok := m.Peek(idx)
	if !ok {
		return 0, task.Task{}, task.IndexOutOfRange(idx, m.Len())
	}
	return idx, t, nil
}

// writeRows renders rows in the selected format.
func writeRows(rows []output.Row) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.Views(rows))
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, rows)
	default:
		output.TaskTable(os.Stdout, rows)
	}
	return nil
}

// writeTask renders a single task in the selected format.
func writeTask(r output.Row) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.Views([]output.Row{r})[0])
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, r)
	default:
		output.TaskDetail(os.Stdout, r)
	}
	return nil
}
