package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/session"
	"github.com/twiced-technology-gmbh/taskrank/internal/watcher"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks by urgency",
	Long: `Lists tasks in rank order, most urgent first. Indexes shown are the ones
remove, edit and show accept, also when --due or --limit hide some tasks.

Use --watch to keep the list live-updating. It re-renders whenever the state
file changes on disk (e.g., from another terminal). Press Ctrl+C to stop.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("due", false, "show only tasks that are due now")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().BoolP("watch", "w", false, "live-update the list on state file changes")
	rootCmd.AddCommand(listCmd)
}

type listOptions struct {
	due   bool
	limit int
}

func runList(cmd *cobra.Command, _ []string) error {
	var opts listOptions
	opts.due, _ = cmd.Flags().GetBool("due")
	opts.limit, _ = cmd.Flags().GetInt("limit")
	if opts.limit < 0 {
		return clierr.Newf(clierr.InvalidInput, "invalid --limit %d: must be >= 0", opts.limit)
	}
	watch, _ := cmd.Flags().GetBool("watch")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := session.Open(ctx, cfg, session.Options{})
	if err != nil {
		return err
	}
	defer s.Close()

	if err := renderList(s.Manager, opts); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	w, err := watcher.New(cfg.StatePath(), func() {
		clearScreen()
		if loadErr := s.Reload(ctx); loadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading tasks: %v\n", loadErr)
			return
		}
		if renderErr := renderList(s.Manager, opts); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering list: %v\n", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})
	return nil
}

func renderList(m *manager.Manager, opts listOptions) error {
	rows := filterRows(output.Rows(m.Tasks()), opts)
	if len(rows) == 0 && outputFormat() != output.FormatJSON {
		if m.IsEmpty() {
			output.Messagef(os.Stdout, "No tasks.")
		} else {
			output.Messagef(os.Stdout, "No matching tasks.")
		}
		return nil
	}
	return writeRows(rows)
}

func filterRows(rows []output.Row, opts listOptions) []output.Row {
	if opts.due {
		var due []output.Row
		for _, r := range rows {
			if r.Task.IsDueNow() {
				due = append(due, r)
			}
		}
		rows = due
	}
	if opts.limit > 0 && len(rows) > opts.limit {
		rows = rows[:opts.limit]
	}
	if rows == nil {
		rows = []output.Row{}
	}
	return rows
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
