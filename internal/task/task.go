// Package task holds the task value model: weights, the immutable Task and
// the Builder used to create and edit tasks.
package task

import "math"

// Task is an immutable task value. Derived fields (finish window and
// priority) are computed by Builder.Build and never change afterwards.
// Use Reopen to get a Builder for an edited copy.
type Task struct {
	context      string
	description  string
	daysToStart  uint
	daysToEnd    uint
	daysToFinish uint
	weight       Weight
	priority     float64
}

// Context returns the short label.
func (t Task) Context() string { return t.context }

// Description returns the longer label.
func (t Task) Description() string { return t.description }

// DaysToStart returns the days until the task may begin.
func (t Task) DaysToStart() uint { return t.daysToStart }

// DaysToEnd returns the days until the deadline.
func (t Task) DaysToEnd() uint { return t.daysToEnd }

// DaysToFinish returns the completion window, DaysToEnd minus DaysToStart
// floored at zero.
func (t Task) DaysToFinish() uint { return t.daysToFinish }

// Weight returns the declared importance.
func (t Task) Weight() Weight { return t.weight }

// Priority returns the urgency score. Higher is more urgent; +Inf means due now.
func (t Task) Priority() float64 { return t.priority }

// IsDueNow reports whether the task carries the due-now priority.
func (t Task) IsDueNow() bool { return math.IsInf(t.priority, 1) }

// Reopen returns a Builder holding every field except the priority, which
// is recomputed on the next Build.
func (t Task) Reopen() Builder {
	return Builder{
		context:     t.context,
		description: t.description,
		daysToStart: t.daysToStart,
		daysToEnd:   t.daysToEnd,
		weight:      t.weight,
	}
}

// Rebuild recomputes the derived fields from the stored inputs.
func (t Task) Rebuild() Task {
	return t.Reopen().Build()
}

// Advance moves the task days closer: start and end both shrink by days,
// stopping at zero, and the priority is recomputed for the new window.
func (t Task) Advance(days uint) Task {
	return t.Reopen().
		WithDaysToStart(saturatingSub(t.daysToStart, days)).
		WithDaysToEnd(saturatingSub(t.daysToEnd, days)).
		Build()
}

// priorityFor computes the urgency for a finish window. A zero window is
// checked explicitly rather than relying on float division by zero.
func priorityFor(w Weight, daysToFinish uint) float64 {
	if daysToFinish == 0 {
		return math.Inf(1)
	}
	return w.Multiplier() / float64(daysToFinish)
}

func saturatingSub(a, b uint) uint {
	if b >= a {
		return 0
	}
	return a - b
}
