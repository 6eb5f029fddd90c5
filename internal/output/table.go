package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// Weight colors matching the TUI palette.
	weightStyles = map[task.Weight]lipgloss.Style{
		task.High: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		task.Med:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.Low:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
)

// DisableColor strips all styling from table output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	dueStyle = lipgloss.NewStyle()
	weightStyles = map[task.Weight]lipgloss.Style{}
	contextStyle = lipgloss.NewStyle()
}

// TaskTable renders rows as a formatted table.
func TaskTable(w io.Writer, rows []Row) {
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idxW, ctxW, descW := 5, 9, 13
	for _, r := range rows {
		idxW = max(idxW, len(strconv.Itoa(r.Index))+pad)
		ctxW = max(ctxW, min(len(r.Task.Context())+pad, 24))      //nolint:mnd // max context column width
		descW = max(descW, min(len(r.Task.Description())+pad, 50)) //nolint:mnd // max description column width
	}
	const numW, weightW, prioW = 7, 8, 9

	header := fmt.Sprintf("%-*s %-*s %-*s %*s %*s %*s %-*s %*s",
		idxW, "IDX", ctxW, "CONTEXT", descW, "DESCRIPTION",
		numW, "START", numW, "END", numW, "FINISH", weightW, "WEIGHT", prioW, "PRIORITY")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, r := range rows {
		t := r.Task
		row := fmt.Sprintf("%-*d %s %s %*d %*d %*d %s %s",
			idxW, r.Index,
			padRight(contextStyle.Render(truncate(t.Context(), ctxW-pad)), ctxW),
			padRight(orDash(truncate(t.Description(), descW-pad)), descW),
			numW, t.DaysToStart(),
			numW, t.DaysToEnd(),
			numW, t.DaysToFinish(),
			padRight(styledWeight(t.Weight()), weightW),
			padLeft(styledPriority(t.Priority()), prioW))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, r Row) {
	t := r.Task
	titleLine := fmt.Sprintf("Task %d: %s", r.Index, t.Context())
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Context", orDash(t.Context()))
	printField(w, "Description", orDash(t.Description()))
	printField(w, "Starts in", Days(t.DaysToStart()))
	printField(w, "Ends in", Days(t.DaysToEnd()))
	printField(w, "Window", Days(t.DaysToFinish()))
	printField(w, "Weight", styledWeight(t.Weight()))
	printField(w, "Priority", styledPriority(t.Priority()))
}

// LogTable renders activity entries, oldest first.
func LogTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}

	header := fmt.Sprintf("%-16s %-8s %5s  %s", "TIME", "ACTION", "IDX", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		idx := dimStyle.Render("--")
		if e.Index >= 0 {
			idx = strconv.Itoa(e.Index)
		}
		line := fmt.Sprintf("%-16s %-8s %s  %s",
			e.Timestamp.Local().Format("2006-01-02 15:04"), e.Action, padLeft(idx, 5), e.Detail) //nolint:mnd // column width
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// Days renders a day count, "1 day" or "N days".
func Days(n uint) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.FormatUint(uint64(n), 10) + " days"
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func padLeft(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return strings.Repeat(" ", width-visible) + s
}

func truncate(s string, limit int) string {
	if len(s) <= limit || limit < 4 { //nolint:mnd // room for an ellipsis
		return s
	}
	return s[:limit-3] + "..."
}

func orDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

func styledWeight(w task.Weight) string {
	if st, ok := weightStyles[w]; ok {
		return st.Render(w.String())
	}
	return w.String()
}

func styledPriority(p float64) string {
	s := FormatPriority(p)
	if s == "due" {
		return dueStyle.Render(s)
	}
	return s
}
