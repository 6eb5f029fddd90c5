package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent activity",
	Long:  `Shows the most recent task mutations recorded in the board's activity log.`,
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "number of entries to show (0 for all)") //nolint:mnd // default page
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return clierr.Newf(clierr.InvalidInput, "invalid --limit %d: must be >= 0", limit)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries, err := activity.New(cfg.LogPath(), cfg.MaxLogEntries()).Read(limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []activity.Entry{}
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.LogCompact(os.Stdout, entries)
	default:
		output.LogTable(os.Stdout, entries)
	}
	return nil
}
