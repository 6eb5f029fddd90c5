package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskrank/internal/board"
)

const overviewColW = 16

// OverviewTable renders a board overview with per-weight and per-context
// breakdowns.
func OverviewTable(w io.Writer, s board.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(s.BoardName))
	fmt.Fprintf(w, "Total: %d tasks, %s due now, %d started\n", s.TotalTasks, dueCount(s.DueNow), s.Starting)
	if s.Next >= 0 {
		fmt.Fprintf(w, "Next:  task %d\n", s.Next)
	}
	fmt.Fprintln(w)

	header := fmt.Sprintf("%-16s %6s %8s", "WEIGHT", "COUNT", "DUE")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, ws := range s.Weights {
		fmt.Fprintf(w, "%s %6d %8d\n", padRight(styledWeight(ws.Weight), overviewColW), ws.Count, ws.DueNow)
	}

	if len(s.Contexts) == 0 {
		return
	}
	fmt.Fprintln(w)
	ctxHeader := fmt.Sprintf("%-16s %6s %8s", "CONTEXT", "COUNT", "DUE")
	fmt.Fprintln(w, headerStyle.Render(ctxHeader))
	for _, cc := range s.Contexts {
		fmt.Fprintf(w, "%s %6d %8d\n",
			padRight(contextStyle.Render(truncate(cc.Context, overviewColW)), overviewColW), cc.Count, cc.DueNow)
	}
}

// OverviewCompact renders a board overview in a few lines.
func OverviewCompact(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "%s (%d tasks, %d due)\n", s.BoardName, s.TotalTasks, s.DueNow)

	parts := make([]string, 0, len(s.Weights))
	for _, ws := range s.Weights {
		parts = append(parts, ws.Weight.String()+"="+strconv.Itoa(ws.Count))
	}
	fmt.Fprintln(w, "Weight: "+strings.Join(parts, " "))

	if len(s.Contexts) > 0 {
		parts = parts[:0]
		for _, cc := range s.Contexts {
			parts = append(parts, cc.Context+"="+strconv.Itoa(cc.Count))
		}
		fmt.Fprintln(w, "Context: "+strings.Join(parts, " "))
	}
}

func dueCount(n int) string {
	s := strconv.Itoa(n)
	if n > 0 {
		return dueStyle.Render(s)
	}
	return s
}
