// Package board computes aggregate views over a ranked task list.
package board

import (
	"cmp"
	"slices"

	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// WeightSummary holds metrics for a single weight tier.
type WeightSummary struct {
	Weight task.Weight `json:"weight"`
	Count  int         `json:"count"`
	DueNow int         `json:"due_now"`
}

// ContextCount holds a count for one context.
type ContextCount struct {
	Context string `json:"context"`
	Count   int    `json:"count"`
	DueNow  int    `json:"due_now"`
}

// Overview is the aggregate board overview.
type Overview struct {
	BoardName  string          `json:"board_name"`
	TotalTasks int             `json:"total_tasks"`
	DueNow     int             `json:"due_now"`
	Starting   int             `json:"starting"` // days_to_start == 0 but not yet due
	Weights    []WeightSummary `json:"weights"`
	Contexts   []ContextCount  `json:"contexts"`
	// Next is the index of the most urgent task that is not yet due, or -1.
	Next int `json:"next"`
}

// Summary computes an overview of tasks, which must be in manager order.
func Summary(name string, tasks []task.Task) Overview {
	ov := Overview{
		BoardName:  name,
		TotalTasks: len(tasks),
		Next:       -1,
		Weights: []WeightSummary{
			{Weight: task.High}, {Weight: task.Med}, {Weight: task.Low},
		},
	}

	byContext := make(map[string]*ContextCount)
	for i, t := range tasks {
		due := t.IsDueNow()
		if due {
			ov.DueNow++
		} else {
			if t.DaysToStart() == 0 {
				ov.Starting++
			}
			if ov.Next < 0 {
				ov.Next = i
			}
		}

		for j := range ov.Weights {
			if ov.Weights[j].Weight == t.Weight() {
				ov.Weights[j].Count++
				if due {
					ov.Weights[j].DueNow++
				}
			}
		}

		key := t.Context()
		if key == "" {
			key = NoContext
		}
		cc, ok := byContext[key]
		if !ok {
			cc = &ContextCount{Context: key}
			byContext[key] = cc
		}
		cc.Count++
		if due {
			cc.DueNow++
		}
	}

	ov.Contexts = make([]ContextCount, 0, len(byContext))
	for _, cc := range byContext {
		ov.Contexts = append(ov.Contexts, *cc)
	}
	slices.SortFunc(ov.Contexts, func(a, b ContextCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Context, b.Context)
	})
	return ov
}

// NoContext labels tasks with an empty context.
const NoContext = "(none)"
