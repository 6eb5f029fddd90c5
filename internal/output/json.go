package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // best-effort; if writer fails, nothing we can do
}

// TaskView is the JSON shape of a listed task: its position plus the
// persisted fields.
type TaskView struct {
	Index  int  `json:"index"`
	DueNow bool `json:"due_now"`
	task.Record
}

// Views converts rows for JSON output.
func Views(rows []Row) []TaskView {
	views := make([]TaskView, 0, len(rows))
	for _, r := range rows {
		views = append(views, TaskView{Index: r.Index, DueNow: r.Task.IsDueNow(), Record: r.Task.Record()})
	}
	return views
}

// TickResult is the JSON shape of a tick.
type TickResult struct {
	Days  uint `json:"days"`
	Tasks int  `json:"tasks"`
	Due   int  `json:"due"`
}
