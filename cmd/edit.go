package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit IDX",
	Short: "Edit a task",
	Long: `Takes the task at the given index, reopens it, applies the given field flags
and inserts the rebuilt task at its new rank. Only specified fields change;
the finish window and priority are recomputed.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	addTaskFlags(editCmd)
	rootCmd.AddCommand(editCmd)
}

// edited is the JSON shape of an edit result.
type edited struct {
	From int             `json:"from"`
	Task output.TaskView `json:"task"`
}

func runEdit(cmd *cobra.Command, args []string) error {
	idx, err := task.ParseIndex(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	original, ok := s.Manager.Take(idx)
	if !ok {
		return task.IndexOutOfRange(idx, s.Manager.Len())
	}

	b, changed, err := applyTaskFlags(cmd, original.Reopen())
	if err != nil || changed == 0 {
		s.Manager.Add(original)
		if err != nil {
			return err
		}
		return clierr.New(clierr.NoChanges, "no changes specified").
			WithDetails(map[string]any{"index": idx})
	}

	t := b.Build()
	s.Manager.Add(t)
	if err := s.Save(ctx); err != nil {
		return err
	}
	newIdx := s.Manager.IndexOf(t)
	s.Record(activity.ActionEdit, newIdx, t.Context())

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, edited{
			From: idx,
			Task: output.Views([]output.Row{{Index: newIdx, Task: t}})[0],
		})
	}
	if newIdx == idx {
		output.Messagef(os.Stdout, "Updated task %d: %s", newIdx, t.Context())
	} else {
		output.Messagef(os.Stdout, "Updated task %d: %s (now at %d)", idx, t.Context(), newIdx)
	}
	return nil
}
