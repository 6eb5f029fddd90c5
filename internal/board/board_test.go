package board

import (
	"testing"

	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

func TestSummaryCounts(t *testing.T) {
	m := manager.New()
	m.AddMany([]task.Task{
		task.NewBuilder().WithContext("work").WithWeight(task.High).Build(),
		task.NewBuilder().WithContext("work").WithWeight(task.Low).WithDaysToEnd(3).Build(),
		task.NewBuilder().WithContext("home").WithDaysToStart(2).WithDaysToEnd(9).Build(),
		task.NewBuilder().WithWeight(task.Low).WithDaysToEnd(1).Build(),
	})

	ov := Summary("demo", m.Tasks())

	if ov.BoardName != "demo" || ov.TotalTasks != 4 {
		t.Fatalf("header = %q/%d", ov.BoardName, ov.TotalTasks)
	}
	if ov.DueNow != 1 {
		t.Fatalf("DueNow = %d, want 1", ov.DueNow)
	}
	if ov.Starting != 2 {
		t.Fatalf("Starting = %d, want 2", ov.Starting)
	}
	if ov.Next != 1 {
		t.Fatalf("Next = %d, want 1", ov.Next)
	}

	wantWeights := map[task.Weight][2]int{
		task.High: {1, 1},
		task.Med:  {1, 0},
		task.Low:  {2, 0},
	}
	for _, ws := range ov.Weights {
		want := wantWeights[ws.Weight]
		if ws.Count != want[0] || ws.DueNow != want[1] {
			t.Errorf("weight %s = %d/%d, want %d/%d", ws.Weight, ws.Count, ws.DueNow, want[0], want[1])
		}
	}

	if len(ov.Contexts) != 3 {
		t.Fatalf("contexts = %+v", ov.Contexts)
	}
	first := ov.Contexts[0]
	if first.Context != "work" || first.Count != 2 || first.DueNow != 1 {
		t.Fatalf("first context = %+v", first)
	}
	if ov.Contexts[1].Context != NoContext || ov.Contexts[2].Context != "home" {
		t.Fatalf("ties not ordered by name: %+v", ov.Contexts)
	}
}

func TestSummaryEmpty(t *testing.T) {
	ov := Summary("empty", nil)
	if ov.TotalTasks != 0 || ov.DueNow != 0 || ov.Next != -1 {
		t.Fatalf("unexpected overview: %+v", ov)
	}
	if len(ov.Weights) != 3 {
		t.Fatalf("weights = %d, want every tier listed", len(ov.Weights))
	}
	if ov.Contexts == nil {
		t.Fatal("contexts should be empty, not nil")
	}
}
