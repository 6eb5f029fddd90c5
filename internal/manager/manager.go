// Package manager keeps an ordered collection of tasks sorted by urgency.
//
// Every mutating operation re-establishes the order before returning:
// descending priority, with due-now tasks ranked among themselves by
// descending weight. Tasks are addressed by their 0-based position in that
// order and have no other identity.
package manager

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// Manager owns an ordered sequence of tasks. It is not safe for concurrent use.
type Manager struct {
	tasks []task.Task
}

// New returns an empty manager.
func New() *Manager {
	return &Manager{}
}

// Restore returns a manager holding tasks in exactly the given order.
// Nothing is re-sorted or re-derived; loaders use this to bring back a
// saved sequence verbatim.
func Restore(tasks []task.Task) *Manager {
	return &Manager{tasks: slices.Clone(tasks)}
}

// Add inserts t and re-sorts.
func (m *Manager) Add(t task.Task) {
	m.tasks = append(m.tasks, t)
	sortTasks(m.tasks)
}

// AddMany inserts a batch and sorts once.
func (m *Manager) AddMany(tasks []task.Task) {
	if len(tasks) == 0 {
		return
	}
	m.tasks = append(m.tasks, tasks...)
	sortTasks(m.tasks)
}

// Peek returns the task at index. ok is false when index is out of range.
func (m *Manager) Peek(index int) (t task.Task, ok bool) {
	if index < 0 || index >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[index], true
}

// Take removes and returns the task at index, shifting later tasks up.
// When index is out of range ok is false and the manager is unchanged.
func (m *Manager) Take(index int) (t task.Task, ok bool) {
	if index < 0 || index >= len(m.tasks) {
		return task.Task{}, false
	}
	t = m.tasks[index]
	m.tasks = slices.Delete(m.tasks, index, index+1)
	return t, true
}

// IndexOf returns the position of the first task equal to t, or -1. A NaN
// priority matches another NaN priority.
func (m *Manager) IndexOf(t task.Task) int {
	return slices.IndexFunc(m.tasks, func(o task.Task) bool {
		return sameTask(o, t)
	})
}

func sameTask(a, b task.Task) bool {
	if a == b {
		return true
	}
	pa, pb := a.Priority(), b.Priority()
	return math.IsNaN(pa) && math.IsNaN(pb) &&
		a.Context() == b.Context() &&
		a.Description() == b.Description() &&
		a.DaysToStart() == b.DaysToStart() &&
		a.DaysToEnd() == b.DaysToEnd() &&
		a.DaysToFinish() == b.DaysToFinish() &&
		a.Weight() == b.Weight()
}

// TransformAll replaces every task with f(task) and re-sorts once.
func (m *Manager) TransformAll(f func(task.Task) task.Task) {
	for i, t := range m.tasks {
		m.tasks[i] = f(t)
	}
	sortTasks(m.tasks)
}

// Tick advances every task by days. See task.Task.Advance.
func (m *Manager) Tick(days uint) {
	m.TransformAll(func(t task.Task) task.Task {
		return t.Advance(days)
	})
}

// IsEmpty reports whether the manager holds no tasks.
func (m *Manager) IsEmpty() bool {
	return len(m.tasks) == 0
}

// Len returns the number of tasks.
func (m *Manager) Len() int {
	return len(m.tasks)
}

// Tasks returns a copy of the tasks in their current order.
func (m *Manager) Tasks() []task.Task {
	return slices.Clone(m.tasks)
}

// WriteTable writes a fixed-width table with one row per task in order.
func (m *Manager) WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "| %-3s | %-10s | %-25s | %6s | %6s | %6s | %-6s |\n",
		"Idx", "Context", "Description", "Start", "End", "Finish", "Weight"); err != nil {
		return err
	}
	for i, t := range m.tasks {
		if _, err := fmt.Fprintf(w, "| %3d | %-10s | %-25s | %6d | %6d | %6d | %-6s |\n",
			i, t.Context(), t.Description(),
			t.DaysToStart(), t.DaysToEnd(), t.DaysToFinish(), t.Weight()); err != nil {
			return err
		}
	}
	return nil
}

// String renders the same table as WriteTable.
func (m *Manager) String() string {
	var b strings.Builder
	_ = m.WriteTable(&b) // strings.Builder never fails
	return b.String()
}
