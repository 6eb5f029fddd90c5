package manager

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

func build(context string, w task.Weight, start, end uint) task.Task {
	return task.NewBuilder().
		WithContext(context).
		WithWeight(w).
		WithDaysToStart(start).
		WithDaysToEnd(end).
		Build()
}

func contexts(m *Manager) []string {
	var out []string
	for _, t := range m.Tasks() {
		out = append(out, t.Context())
	}
	return out
}

func isSorted(tasks []task.Task) bool {
	return slices.IsSortedFunc(tasks, compareTasks)
}

// checkOrder verifies the observable ordering contract directly rather than
// through compareTasks.
func checkOrder(t *testing.T, m *Manager) {
	t.Helper()
	tasks := m.Tasks()
	for i := 1; i < len(tasks); i++ {
		prev, cur := tasks[i-1], tasks[i]
		if prev.IsDueNow() && cur.IsDueNow() {
			if prev.Weight() < cur.Weight() {
				t.Fatalf("due-now tasks out of weight order at %d: %s before %s", i, prev.Weight(), cur.Weight())
			}
			continue
		}
		if prev.Priority() < cur.Priority() {
			t.Fatalf("priority out of order at %d: %v before %v", i, prev.Priority(), cur.Priority())
		}
	}
}

func TestNewIsEmpty(t *testing.T) {
	m := New()
	if !m.IsEmpty() || m.Len() != 0 {
		t.Fatal("new manager is not empty")
	}
}

func TestDueNowTieBreakScenario(t *testing.T) {
	m := New()
	m.Add(build("0", task.Low, 0, 0))
	m.Add(build("1", task.High, 0, 0))
	m.Add(build("2", task.High, 0, 1))

	got := contexts(m)
	want := []string{"1", "0", "2"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	c, _ := m.Peek(2)
	if c.Priority() != 3.0 {
		t.Fatalf("C priority = %v, want 3", c.Priority())
	}
}

func TestAddManySortsBatch(t *testing.T) {
	m := New()
	m.AddMany([]task.Task{
		build("low-far", task.Low, 0, 10),
		build("med-soon", task.Med, 0, 1),
		build("due", task.Low, 3, 3),
		build("high-mid", task.High, 0, 6),
	})
	want := []string{"due", "med-soon", "high-mid", "low-far"}
	if got := contexts(m); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	m.AddMany(nil)
	if m.Len() != 4 {
		t.Fatalf("empty batch changed length to %d", m.Len())
	}
}

func TestPeekAndTakeOutOfRange(t *testing.T) {
	empty := New()
	for _, idx := range []int{0, 1, -1, 100} {
		if _, ok := empty.Peek(idx); ok {
			t.Fatalf("Peek(%d) on empty manager returned a task", idx)
		}
		if _, ok := empty.Take(idx); ok {
			t.Fatalf("Take(%d) on empty manager returned a task", idx)
		}
	}

	m := New()
	m.Add(build("a", task.Med, 0, 2))
	m.Add(build("b", task.High, 0, 2))
	before := m.Tasks()
	for _, idx := range []int{2, 3, -1} {
		if _, ok := m.Peek(idx); ok {
			t.Fatalf("Peek(%d) returned a task", idx)
		}
		if _, ok := m.Take(idx); ok {
			t.Fatalf("Take(%d) returned a task", idx)
		}
	}
	if !slices.Equal(m.Tasks(), before) {
		t.Fatal("out-of-range Take modified the manager")
	}
}

func TestTakeShiftsLaterTasks(t *testing.T) {
	m := New()
	m.AddMany([]task.Task{
		build("a", task.High, 0, 0),
		build("b", task.High, 0, 1),
		build("c", task.High, 0, 2),
	})
	got, ok := m.Take(1)
	if !ok || got.Context() != "b" {
		t.Fatalf("Take(1) = %q, %v", got.Context(), ok)
	}
	if want := []string{"a", "c"}; !slices.Equal(contexts(m), want) {
		t.Fatalf("order after take = %v, want %v", contexts(m), want)
	}
}

func TestTakeThenAddRestoresOrder(t *testing.T) {
	m := New()
	m.AddMany([]task.Task{
		build("x", task.Med, 0, 2),
		build("y", task.Med, 0, 2), // equal priority to x
		build("z", task.Low, 0, 1),  // equal priority to x and y
		build("d1", task.Low, 0, 0),
		build("d2", task.Low, 4, 1), // due now, same weight as d1
		build("far", task.High, 0, 30),
	})
	before := m.Tasks()
	for i := range before {
		got, ok := m.Take(i)
		if !ok {
			t.Fatalf("Take(%d) failed", i)
		}
		m.Add(got)
		if after := m.Tasks(); !slices.Equal(after, before) {
			t.Fatalf("take+add of index %d changed order:\n got %v\nwant %v", i, contexts(m), before)
		}
	}
}

func TestEditViaReopenResorts(t *testing.T) {
	m := New()
	m.AddMany([]task.Task{
		build("a", task.Low, 0, 10),
		build("b", task.Med, 0, 2),
	})
	orig, _ := m.Take(1) // "a", the least urgent
	m.Add(orig.Reopen().WithDaysToEnd(0).Build())
	if want := []string{"a", "b"}; !slices.Equal(contexts(m), want) {
		t.Fatalf("order = %v, want %v", contexts(m), want)
	}
}

func TestIndexOfFindsPosition(t *testing.T) {
	m := New()
	want := build("b", task.High, 0, 0)
	m.AddMany([]task.Task{build("a", task.Low, 0, 9), want})
	if idx := m.IndexOf(want); idx != 0 {
		t.Fatalf("IndexOf = %d, want 0", idx)
	}
	if idx := m.IndexOf(build("missing", task.Low, 0, 1)); idx != -1 {
		t.Fatalf("IndexOf missing = %d, want -1", idx)
	}
}

func TestTransformAllAppliesOncePerTaskAndSorts(t *testing.T) {
	m := New()
	m.AddMany([]task.Task{
		build("soon", task.Low, 0, 2),
		build("later", task.High, 5, 20),
		build("mid", task.Med, 2, 4),
	})
	calls := 0
	m.TransformAll(func(tk task.Task) task.Task {
		calls++
		if tk.Context() == "later" {
			return tk.Reopen().WithDaysToEnd(5).Build()
		}
		return tk
	})
	if calls != 3 {
		t.Fatalf("transform called %d times, want 3", calls)
	}
	if first, _ := m.Peek(0); first.Context() != "later" {
		t.Fatalf("expected due-now task first, got %q", first.Context())
	}
	checkOrder(t, m)
}

func TestTickSaturatesAndResorts(t *testing.T) {
	m := New()
	m.AddMany([]task.Task{
		build("a", task.High, 0, 9),
		build("b", task.Low, 2, 3),
		build("c", task.Med, 7, 12),
	})
	m.Tick(3)
	for _, tk := range m.Tasks() {
		switch tk.Context() {
		case "a":
			if tk.DaysToStart() != 0 || tk.DaysToEnd() != 6 || tk.Priority() != 0.5 {
				t.Fatalf("a after tick: %d/%d %v", tk.DaysToStart(), tk.DaysToEnd(), tk.Priority())
			}
		case "b":
			if tk.DaysToStart() != 0 || tk.DaysToEnd() != 0 || !tk.IsDueNow() {
				t.Fatalf("b after tick: %d/%d %v", tk.DaysToStart(), tk.DaysToEnd(), tk.Priority())
			}
		case "c":
			if tk.DaysToStart() != 4 || tk.DaysToEnd() != 9 {
				t.Fatalf("c after tick: %d/%d", tk.DaysToStart(), tk.DaysToEnd())
			}
		}
	}
	if want := []string{"b", "a", "c"}; !slices.Equal(contexts(m), want) {
		t.Fatalf("order = %v, want %v", contexts(m), want)
	}
}

func TestRandomOperationsKeepOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	weights := task.Weights
	m := New()
	for step := range 500 {
		switch rng.IntN(4) {
		case 0, 1:
			start := uint(rng.IntN(5))
			end := uint(rng.IntN(8))
			m.Add(build("t", weights[rng.IntN(len(weights))], start, end))
		case 2:
			n := m.Len()
			idx := rng.IntN(n + 2)
			got, ok := m.Take(idx)
			if ok != (idx < n) {
				t.Fatalf("step %d: Take(%d) ok=%v with len %d", step, idx, ok, n)
			}
			if ok && rng.IntN(2) == 0 {
				m.Add(got)
			}
		case 3:
			m.Tick(uint(rng.IntN(3)))
			for _, tk := range m.Tasks() {
				if tk.DaysToFinish() > tk.DaysToEnd() {
					t.Fatalf("step %d: finish %d exceeds end %d", step, tk.DaysToFinish(), tk.DaysToEnd())
				}
			}
		}
		checkOrder(t, m)
		if !isSorted(m.Tasks()) {
			t.Fatalf("step %d: comparator order violated", step)
		}
	}
}

func nanTask(context string, w task.Weight) task.Task {
	return task.FromRecord(task.Record{
		Context: context, Weight: w, DaysToEnd: 1, DaysToFinish: 1,
		Priority: task.Score(math.NaN()),
	})
}

func TestNaNPriorityKeepsEncounteredOrder(t *testing.T) {
	m := Restore([]task.Task{
		build("a", task.Low, 0, 1),
		nanTask("nan", task.High),
	})
	m.Add(build("c", task.Low, 0, 100))
	if want := []string{"a", "nan", "c"}; !slices.Equal(contexts(m), want) {
		t.Fatalf("order = %v, want %v", contexts(m), want)
	}

	m = Restore([]task.Task{nanTask("nan", task.Low), build("due", task.High, 0, 0)})
	m.Add(build("late", task.Low, 0, 50))
	if want := []string{"nan", "due", "late"}; !slices.Equal(contexts(m), want) {
		t.Fatalf("order with due-now = %v, want %v", contexts(m), want)
	}
}

func TestIndexOfMatchesNaNPriority(t *testing.T) {
	nan := nanTask("nan", task.Med)
	m := Restore([]task.Task{build("a", task.Low, 0, 1), nan})
	if idx := m.IndexOf(nan); idx != 1 {
		t.Fatalf("IndexOf = %d, want 1", idx)
	}
	if idx := m.IndexOf(nanTask("other", task.Med)); idx != -1 {
		t.Fatalf("IndexOf other = %d, want -1", idx)
	}
}

func TestRestoreKeepsOrderVerbatim(t *testing.T) {
	tasks := []task.Task{
		build("slow", task.Low, 0, 10),
		build("due", task.High, 0, 0),
	}
	m := Restore(tasks)
	if want := []string{"slow", "due"}; !slices.Equal(contexts(m), want) {
		t.Fatalf("Restore reordered tasks: %v", contexts(m))
	}
	tasks[0] = build("changed", task.Low, 0, 1)
	if first, _ := m.Peek(0); first.Context() != "slow" {
		t.Fatal("Restore aliased the caller's slice")
	}
}

func TestWriteTableOneRowPerTask(t *testing.T) {
	m := New()
	m.Add(build("work", task.High, 1, 3))
	m.Add(build("home", task.Low, 0, 0))

	out := m.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "home") || !strings.Contains(lines[2], "work") {
		t.Fatalf("rows not in manager order:\n%s", out)
	}
	if !strings.Contains(lines[2], "High") {
		t.Fatalf("weight missing from row: %q", lines[2])
	}
}
