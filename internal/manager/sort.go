package manager

import (
	"cmp"
	"math"
	"slices"

	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// sortTasks orders tasks most urgent first. The sort is stable and the
// comparison falls back to field values, so equal tasks keep their relative
// order. Tasks with a NaN priority stay where they were encountered.
func sortTasks(tasks []task.Task) {
	slices.SortStableFunc(tasks, compareTasks)
}

// compareTasks returns a negative number when a ranks before b.
func compareTasks(a, b task.Task) int {
	// Two due-now tasks are ranked by weight alone.
	if a.IsDueNow() && b.IsDueNow() {
		if c := cmp.Compare(b.Weight(), a.Weight()); c != 0 {
			return c
		}
		return compareFields(a, b)
	}
	pa, pb := a.Priority(), b.Priority()
	// A NaN priority has no rank; such pairs keep their current order.
	if math.IsNaN(pa) || math.IsNaN(pb) {
		return 0
	}
	if c := comparePriority(pa, pb); c != 0 {
		return c
	}
	return compareFields(a, b)
}

// comparePriority orders higher priorities first.
func comparePriority(pa, pb float64) int {
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	default:
		return 0
	}
}

// compareFields breaks priority ties deterministically by field values.
func compareFields(a, b task.Task) int {
	if c := cmp.Compare(b.Weight(), a.Weight()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.DaysToStart(), b.DaysToStart()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.DaysToEnd(), b.DaysToEnd()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Context(), b.Context()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Description(), b.Description()); c != 0 {
		return c
	}
	return cmp.Compare(a.DaysToFinish(), b.DaysToFinish())
}
