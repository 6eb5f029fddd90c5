package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/board"
	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/session"
	"github.com/twiced-technology-gmbh/taskrank/internal/watcher"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"summary"},
	Short:   "Show board summary",
	Long: `Displays a summary of the board: task counts per weight and per context,
how many tasks are due now, and which task is next in line.

Use --watch to keep the display live-updating. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().BoolP("watch", "w", false, "live-update the summary on state file changes")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	watch, _ := cmd.Flags().GetBool("watch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := session.Open(ctx, cfg, session.Options{})
	if err != nil {
		return err
	}
	defer s.Close()

	if err := renderBoard(cfg.Board.Name, s.Manager); err != nil {
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
		if renderErr := renderBoard(cfg.Board.Name, s.Manager); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering board: %v\n", renderErr)
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

func renderBoard(name string, m *manager.Manager) error {
	summary := board.Summary(name, m.Tasks())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, summary)
	case output.FormatCompact:
		output.OverviewCompact(os.Stdout, summary)
	default:
		output.OverviewTable(os.Stdout, summary)
	}
	return nil
}
