package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/board"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

func init() {
	DisableColor()
}

func sampleRows() []Row {
	return Rows([]task.Task{
		task.NewBuilder().WithContext("home").WithDescription("taxes").WithWeight(task.Low).Build(),
		task.NewBuilder().WithContext("work").WithDescription("ship release").
			WithWeight(task.High).WithDaysToStart(1).WithDaysToEnd(5).Build(),
	})
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name                 string
		env                  string
		json, table, compact bool
		want                 Format
	}{
		{"default", "", false, false, false, FormatTable},
		{"json flag wins", "compact", true, false, false, FormatJSON},
		{"compact flag", "", false, true, true, FormatCompact},
		{"env json", "json", false, false, false, FormatJSON},
		{"env oneline", "oneline", false, false, false, FormatCompact},
		{"env ignored garbage", "yaml", false, false, false, FormatTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvFormat, tt.env)
			if got := Detect(tt.json, tt.table, tt.compact); got != tt.want {
				t.Fatalf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"JSON": FormatJSON, " table ": FormatTable, "oneline": FormatCompact} {
		got, ok := ParseFormat(name)
		if !ok || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseFormat("yaml"); ok {
		t.Error("ParseFormat accepted yaml")
	}
	if FormatCompact.String() != "compact" || FormatAuto.String() != "auto" {
		t.Error("unexpected format names")
	}
}

func TestFormatPriority(t *testing.T) {
	if got := FormatPriority(math.Inf(1)); got != "due" {
		t.Fatalf("inf = %q", got)
	}
	if got := FormatPriority(0.75); got != "0.75" {
		t.Fatalf("0.75 = %q", got)
	}
	if got := FormatPriority(math.NaN()); got != "?" {
		t.Fatalf("nan = %q", got)
	}
}

func TestTaskTable(t *testing.T) {
	var buf bytes.Buffer
	TaskTable(&buf, sampleRows())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "IDX") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "due") || !strings.Contains(lines[1], "Low") {
		t.Fatalf("due row missing fields: %q", lines[1])
	}
	if !strings.Contains(lines[2], "ship release") || !strings.Contains(lines[2], "0.75") {
		t.Fatalf("work row missing fields: %q", lines[2])
	}
}

func TestTaskCompactKeepsIndexes(t *testing.T) {
	rows := sampleRows()[1:]
	var buf bytes.Buffer
	TaskCompact(&buf, rows)
	want := "#1 [High/0.75] work: ship release (4d)\n"
	if buf.String() != want {
		t.Fatalf("compact = %q, want %q", buf.String(), want)
	}
}

func TestTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	TaskDetail(&buf, sampleRows()[1])
	out := buf.String()
	for _, want := range []string{"Task 1: work", "Window:", "4 days", "Starts in:", "1 day\n", "High"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestViewsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, Views(sampleRows())); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(got) != 2 {
		t.Fatalf("got %d views", len(got))
	}
	if got[0]["priority"] != "inf" || got[0]["due_now"] != true || got[0]["weight"] != "Low" {
		t.Fatalf("unexpected first view: %v", got[0])
	}
	if got[1]["index"] != float64(1) || got[1]["days_to_finish"] != float64(4) {
		t.Fatalf("unexpected second view: %v", got[1])
	}
}

func TestLogCompact(t *testing.T) {
	ts := time.Date(2026, 2, 9, 12, 0, 0, 0, time.Local)
	var buf bytes.Buffer
	LogCompact(&buf, []activity.Entry{
		{Timestamp: ts, Action: activity.ActionCreate, Index: 0, Detail: "home"},
		{Timestamp: ts, Action: activity.ActionTick, Index: -1, Detail: "2 days"},
	})
	want := "2026-02-09T12:00 create #0 home\n2026-02-09T12:00 tick 2 days\n"
	if buf.String() != want {
		t.Fatalf("log = %q, want %q", buf.String(), want)
	}
}

func TestOverviewTableAndCompact(t *testing.T) {
	ov := board.Summary("demo", []task.Task{
		task.NewBuilder().WithContext("work").WithWeight(task.High).Build(),
		task.NewBuilder().WithContext("home").WithDaysToEnd(4).Build(),
	})

	var buf bytes.Buffer
	OverviewTable(&buf, ov)
	out := buf.String()
	for _, want := range []string{"demo", "Total: 2 tasks, 1 due now", "Next:  task 1", "WEIGHT", "CONTEXT", "work"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	OverviewCompact(&buf, ov)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != "demo (2 tasks, 1 due)" || lines[1] != "Weight: High=1 Med=1 Low=0" {
		t.Fatalf("compact overview = %q", lines)
	}
}
