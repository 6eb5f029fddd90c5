package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

var tickCmd = &cobra.Command{
	Use:   "tick [DAYS]",
	Short: "Advance time for every task",
	Long: `Reduces every task's start and end offsets by DAYS, stopping at zero, and
re-ranks the list. DAYS defaults to defaults.tick_days from the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTick,
}

func init() {
	rootCmd.AddCommand(tickCmd)
}

func runTick(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	days := s.Config.TickDays()
	if len(args) > 0 {
		days, err = task.ParseDays("days", args[0])
		if err != nil {
			return err
		}
	}

	s.Manager.Tick(days)
	if err := s.Save(ctx); err != nil {
		return err
	}

	result := output.TickResult{Days: days, Tasks: s.Manager.Len()}
	for _, t := range s.Manager.Tasks() {
		if t.IsDueNow() {
			result.Due++
		}
	}
	s.Record(activity.ActionTick, -1, output.Days(days))

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, result)
	}
	output.Messagef(os.Stdout, "Advanced %d tasks by %s; %d due now", result.Tasks, output.Days(days), result.Due)
	return nil
}
