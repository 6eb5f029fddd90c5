package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/session"
)

var showCmd = &cobra.Command{
	Use:   "show IDX",
	Short: "Show task details",
	Long:  `Displays every field of the task at the given index, derived ones included.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := session.Open(context.Background(), cfg, session.Options{})
	if err != nil {
		return err
	}
	defer s.Close()

	idx, t, err := peekArg(s.Manager, args[0])
	if err != nil {
		return err
	}
	return writeTask(output.Row{Index: idx, Task: t})
}
