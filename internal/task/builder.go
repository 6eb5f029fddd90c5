package task

// Builder stages field edits for a Task. Setters take and return the
// builder by value, so a partially configured builder can be reused
// without aliasing.
type Builder struct {
	context     string
	description string
	daysToStart uint
	daysToEnd   uint
	weight      Weight
}

// NewBuilder returns a builder with empty labels, zero offsets and Med weight.
func NewBuilder() Builder {
	return Builder{weight: Med}
}

// WithContext sets the short label.
func (b Builder) WithContext(context string) Builder {
	b.context = context
	return b
}

// WithDescription sets the longer label.
func (b Builder) WithDescription(description string) Builder {
	b.description = description
	return b
}

// WithDaysToStart sets the days until the task may begin.
func (b Builder) WithDaysToStart(days uint) Builder {
	b.daysToStart = days
	return b
}

// WithDaysToEnd sets the days until the deadline.
func (b Builder) WithDaysToEnd(days uint) Builder {
	b.daysToEnd = days
	return b
}

// WithWeight sets the importance.
func (b Builder) WithWeight(w Weight) Builder {
	b.weight = w
	return b
}

// Context returns the staged short label.
func (b Builder) Context() string { return b.context }

// Description returns the staged longer label.
func (b Builder) Description() string { return b.description }

// DaysToStart returns the staged start offset.
func (b Builder) DaysToStart() uint { return b.daysToStart }

// DaysToEnd returns the staged end offset.
func (b Builder) DaysToEnd() uint { return b.daysToEnd }

// Weight returns the staged weight.
func (b Builder) Weight() Weight { return b.weight }

// Build computes the finish window and priority and returns the Task.
// It never fails: a window of zero days yields the due-now priority.
func (b Builder) Build() Task {
	finish := saturatingSub(b.daysToEnd, b.daysToStart)
	return Task{
		context:      b.context,
		description:  b.description,
		daysToStart:  b.daysToStart,
		daysToEnd:    b.daysToEnd,
		daysToFinish: finish,
		weight:       b.weight,
		priority:     priorityFor(b.weight, finish),
	}
}
