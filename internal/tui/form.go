package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

const (
	fieldContext = iota
	fieldDescription
	fieldStart
	fieldEnd
	fieldWeight
	fieldCount
)

var fieldLabels = [fieldCount]string{"Context", "Description", "Days to start", "Days to end", "Weight"}

// form edits one task's fields. It starts from a builder, so a new task
// shows the defaults and an edit shows the current values.
type form struct {
	inputs [fieldCount]textinput.Model
	focus  int
	base   task.Builder
}

func newForm(b task.Builder) *form {
	f := &form{base: b}
	values := [fieldCount]string{
		b.Context(),
		b.Description(),
		strconv.FormatUint(uint64(b.DaysToStart()), 10),
		strconv.FormatUint(uint64(b.DaysToEnd()), 10),
		strings.ToLower(b.Weight().String()),
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120 //nolint:mnd // generous single-line limit
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[fieldWeight].Placeholder = "low | medium | high"
	f.inputs[fieldContext].Focus()
	return f
}

func (f *form) next() { f.setFocus((f.focus + 1) % fieldCount) }
func (f *form) prev() { f.setFocus((f.focus + fieldCount - 1) % fieldCount) }

func (f *form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// builder applies the inputs to the base builder. A blank field keeps the
// base value. Validation errors name the offending field and move focus
// to it.
func (f *form) builder() (task.Builder, error) {
	b := f.base
	if v := strings.TrimSpace(f.inputs[fieldContext].Value()); v != "" {
		b = b.WithContext(v)
	}
	if v := strings.TrimSpace(f.inputs[fieldDescription].Value()); v != "" {
		b = b.WithDescription(v)
	}
	if v := strings.TrimSpace(f.inputs[fieldStart].Value()); v != "" {
		days, err := task.ParseDays("days to start", v)
		if err != nil {
			f.setFocus(fieldStart)
			return b, err
		}
		b = b.WithDaysToStart(days)
	}
	if v := strings.TrimSpace(f.inputs[fieldEnd].Value()); v != "" {
		days, err := task.ParseDays("days to end", v)
		if err != nil {
			f.setFocus(fieldEnd)
			return b, err
		}
		b = b.WithDaysToEnd(days)
	}
	if v := strings.TrimSpace(f.inputs[fieldWeight].Value()); v != "" {
		w, err := task.ParseWeight(v)
		if err != nil {
			f.setFocus(fieldWeight)
			return b, err
		}
		b = b.WithWeight(w)
	}
	return b, nil
}

func (f *form) view() string {
	var sb strings.Builder
	for i, in := range f.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = labelStyle.Bold(true).Foreground(titleStyle.GetBackground()).Render(fieldLabels[i])
		}
		sb.WriteString(label + " " + in.View())
		if i < fieldCount-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
