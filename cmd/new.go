package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

var newCmd = &cobra.Command{
	Use:     "new [CONTEXT]",
	Aliases: []string{"create", "add"},
	Short:   "Add a task",
	Long: `Builds a task from the given fields and inserts it at its rank.

Context can be provided as a positional argument or via --context. Omitted
day offsets are 0; an omitted weight takes defaults.weight from the config.
A task whose start and end coincide is due now.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	addTaskFlags(newCmd)
	rootCmd.AddCommand(newCmd)
}

// addTaskFlags registers the builder field flags shared by new and edit.
func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String("context", "", "task context")
	cmd.Flags().String("description", "", "task description")
	cmd.Flags().String("start", "", "days until the task starts")
	cmd.Flags().String("end", "", "days until the task must be finished")
	cmd.Flags().String("weight", "", "weight (low, medium, high)")
	cmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "ctx":
			name = "context"
		case "desc":
			name = "description"
		case "days-to-start":
			name = "start"
		case "days-to-end":
			name = "end"
		}
		return pflag.NormalizedName(name)
	})
}

// applyTaskFlags sets every changed field flag on b and reports how many
// were set.
func applyTaskFlags(cmd *cobra.Command, b task.Builder) (task.Builder, int, error) {
	changed := 0
	flags := cmd.Flags()

	if flags.Changed("context") {
		v, _ := flags.GetString("context")
		b = b.WithContext(v)
		changed++
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		b = b.WithDescription(v)
		changed++
	}
	if flags.Changed("start") {
		v, _ := flags.GetString("start")
		days, err := task.ParseDays("days to start", v)
		if err != nil {
			return b, changed, err
		}
		b = b.WithDaysToStart(days)
		changed++
	}
	if flags.Changed("end") {
		v, _ := flags.GetString("end")
		days, err := task.ParseDays("days to end", v)
		if err != nil {
			return b, changed, err
		}
		b = b.WithDaysToEnd(days)
		changed++
	}
	if flags.Changed("weight") {
		v, _ := flags.GetString("weight")
		w, err := task.ParseWeight(v)
		if err != nil {
			return b, changed, err
		}
		b = b.WithWeight(w)
		changed++
	}
	return b, changed, nil
}

func runNew(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && cmd.Flags().Changed("context") {
		return clierr.New(clierr.InvalidInput, "provide context as argument or --context, not both")
	}

	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	b := task.NewBuilder().WithWeight(s.Config.DefaultWeight())
	if len(args) > 0 {
		b = b.WithContext(args[0])
	}
	b, _, err = applyTaskFlags(cmd, b)
	if err != nil {
		return err
	}

	t := b.Build()
	s.Manager.Add(t)
	if err := s.Save(ctx); err != nil {
		return err
	}
	idx := s.Manager.IndexOf(t)
	s.Record(activity.ActionCreate, idx, t.Context())

	r := output.Row{Index: idx, Task: t}
	if outputFormat() == output.FormatJSON {
		return writeTask(r)
	}
	output.Messagef(os.Stdout, "Added task %d: %s (priority %s)", idx, t.Context(), output.FormatPriority(t.Priority()))
	return nil
}
