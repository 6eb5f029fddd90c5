package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
)

// TaskCompact renders rows in one-line-per-record compact format.
func TaskCompact(w io.Writer, rows []Row) {
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, r := range rows {
		fmt.Fprintln(w, formatTaskLine(r))
	}
}

// TaskDetailCompact renders a single task with its day counts.
func TaskDetailCompact(w io.Writer, r Row) {
	fmt.Fprintln(w, formatTaskLine(r))
	t := r.Task
	fmt.Fprintf(w, "  start:%d end:%d finish:%d\n", t.DaysToStart(), t.DaysToEnd(), t.DaysToFinish())
	if t.Description() != "" {
		fmt.Fprintln(w, "  "+t.Description())
	}
}

// LogCompact renders activity entries one per line.
func LogCompact(w io.Writer, entries []activity.Entry) {
	for _, e := range entries {
		line := e.Timestamp.Local().Format("2006-01-02T15:04") + " " + e.Action
		if e.Index >= 0 {
			line += " #" + strconv.Itoa(e.Index)
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(r Row) string {
	t := r.Task
	line := "#" + strconv.Itoa(r.Index) + " [" + t.Weight().String() + "/" + FormatPriority(t.Priority()) + "] " + t.Context()
	if t.Description() != "" {
		line += ": " + t.Description()
	}
	if !t.IsDueNow() {
		line += " (" + strconv.FormatUint(uint64(t.DaysToFinish()), 10) + "d)"
	}
	return line
}
