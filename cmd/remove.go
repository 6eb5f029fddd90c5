package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

var removeCmd = &cobra.Command{
	Use:     "remove IDX[,IDX,...]",
	Aliases: []string{"rm", "take"},
	Short:   "Remove a task",
	Long: `Takes the task at the given 0-based index out of the list. Prompts for
confirmation in interactive mode. Multiple indexes can be given as a
comma-separated list (requires --yes); they all refer to the list as it is
before any removal.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

// removed is the JSON shape of a removed task.
type removed struct {
	Status string `json:"status"`
	output.TaskView
}

func runRemove(cmd *cobra.Command, args []string) error {
	indexes, err := parseIndexes(args[0])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if len(indexes) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch remove requires --yes")
	}

	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, idx := range indexes {
		if _, ok := s.Manager.Peek(idx); !ok {
			return task.IndexOutOfRange(idx, s.Manager.Len())
		}
	}

	if !yes {
		t, _ := s.Manager.Peek(indexes[0])
		ok, err := confirm(fmt.Sprintf("Remove task %d %q?", indexes[0], t.Context()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	// Highest index first so the remaining ones still point at the same tasks.
	slices.Sort(indexes)
	slices.Reverse(indexes)
	results := make([]removed, 0, len(indexes))
	for _, idx := range indexes {
		t, _ := s.Manager.Take(idx)
		results = append(results, removed{
			Status:   "removed",
			TaskView: output.Views([]output.Row{{Index: idx, Task: t}})[0],
		})
	}
	if err := s.Save(ctx); err != nil {
		return err
	}
	slices.Reverse(results)
	for _, r := range results {
		s.Record(activity.ActionRemove, r.Index, r.Context)
	}

	if outputFormat() == output.FormatJSON {
		if len(results) == 1 {
			return output.JSON(os.Stdout, results[0])
		}
		return output.JSON(os.Stdout, results)
	}
	for _, r := range results {
		output.Messagef(os.Stdout, "Removed %d: %s", r.Index, r.Context)
	}
	return nil
}

// parseIndexes splits a comma-separated index list, dropping duplicates.
func parseIndexes(arg string) ([]int, error) {
	var indexes []int
	for _, part := range strings.Split(arg, ",") {
		idx, err := task.ParseIndex(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(indexes, idx) {
			indexes = append(indexes, idx)
		}
	}
	return indexes, nil
}

// confirm asks a yes/no question on stderr. It refuses to guess when stdin
// is not a terminal.
func confirm(question string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
