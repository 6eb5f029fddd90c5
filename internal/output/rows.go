package output

import (
	"math"
	"strconv"

	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// Row is a task with its position in the manager. Filtered listings keep
// the original positions so indexes stay valid for remove and edit.
type Row struct {
	Index int
	Task  task.Task
}

// Rows numbers tasks from 0 in the given order.
func Rows(tasks []task.Task) []Row {
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{Index: i, Task: t}
	}
	return rows
}

// FormatPriority renders a priority for humans. Due-now tasks read "due".
func FormatPriority(p float64) string {
	switch {
	case math.IsInf(p, 1):
		return "due"
	case math.IsNaN(p):
		return "?"
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}
