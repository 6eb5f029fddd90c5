// Package tui implements the interactive terminal UI for a taskrank board.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewConfirmDelete
	viewForm
)

// Layout constants.
const (
	listChrome  = 4 // title, header, blank line, status bar
	errorChrome = 1
)

// Options wire a Model to its board.
type Options struct {
	Title         string
	DefaultWeight task.Weight
	TickDays      uint
	// Save persists the manager after every change.
	Save func(*manager.Manager) error
	// Reload returns the board's current state for a ReloadMsg.
	Reload func() (*manager.Manager, error)
	// Record is told about every mutation.
	Record func(action string, index int, detail string)
}

// Model is the top-level bubbletea model.
type Model struct {
	opts   Options
	m      *manager.Manager
	keys   keyMap
	help   help.Model
	cursor int
	offset int
	view   view
	width  int
	height int
	err    error
	notice string

	// Form state. editing holds the taken task while an edit is open.
	form    *form
	editing *task.Task

	// A reload that arrives while a dialog is open waits until it closes.
	pendingReload bool
	dirty         bool
}

// New creates a Model over m.
func New(m *manager.Manager, opts Options) *Model {
	if opts.TickDays == 0 {
		opts.TickDays = 1
	}
	return &Model{opts: opts, m: m, keys: defaultKeyMap(), help: help.New()}
}

// Manager returns the manager as currently edited.
func (m *Model) Manager() *manager.Manager { return m.m }

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a refresh.
type ReloadMsg struct{}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.view {
		case viewConfirmDelete:
			return m.handleDeleteKey(msg)
		case viewForm:
			return m.handleFormKey(msg)
		default:
			return m.handleListKey(msg)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case ReloadMsg:
		if m.view != viewList {
			m.pendingReload = true
			return m, nil
		}
		m.reload()
		return m, nil
	}

	if m.view == viewForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty {
			m.save()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.m.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.New):
		return m.openForm(task.NewBuilder().WithWeight(m.opts.DefaultWeight), nil)
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.m.Take(m.cursor)
		if !ok {
			return m, nil
		}
		return m.openForm(t.Reopen(), &t)
	case key.Matches(msg, m.keys.Delete):
		if !m.m.IsEmpty() {
			m.view = viewConfirmDelete
		}
	case key.Matches(msg, m.keys.Tick):
		m.m.Tick(m.opts.TickDays)
		m.changed(activity.ActionTick, -1, output.Days(m.opts.TickDays))
		m.notice = fmt.Sprintf("Advanced %d tasks by %s", m.m.Len(), output.Days(m.opts.TickDays))
	}
	return m, nil
}

func (m *Model) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		if t, ok := m.m.Take(m.cursor); ok {
			m.changed(activity.ActionRemove, m.cursor, t.Context())
			m.notice = "Removed " + t.Context()
		}
		m.closeDialog()
	case key.Matches(msg, m.keys.No):
		m.closeDialog()
	}
	return m, nil
}

func (m *Model) openForm(b task.Builder, editing *task.Task) (tea.Model, tea.Cmd) {
	m.form = newForm(b)
	m.editing = editing
	m.err = nil
	m.view = viewForm
	return m, textinput.Blink
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.editing != nil {
			m.m.Add(*m.editing)
			m.cursor = m.m.IndexOf(*m.editing)
		}
		m.closeDialog()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		b, err := m.form.builder()
		if err != nil {
			m.err = err
			return m, nil
		}
		t := b.Build()
		m.m.Add(t)
		m.cursor = m.m.IndexOf(t)
		action := activity.ActionCreate
		if m.editing != nil {
			action = activity.ActionEdit
		}
		m.changed(action, m.cursor, t.Context())
		m.closeDialog()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.form.prev()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *Model) closeDialog() {
	m.view = viewList
	m.form = nil
	m.editing = nil
	m.clampCursor()
	if m.pendingReload {
		m.pendingReload = false
		m.reload()
	}
}

// changed persists after a mutation and records it.
func (m *Model) changed(action string, index int, detail string) {
	m.dirty = true
	m.save()
	if m.opts.Record != nil {
		m.opts.Record(action, index, detail)
	}
	m.clampCursor()
}

func (m *Model) save() {
	if m.opts.Save == nil {
		m.dirty = false
		return
	}
	if err := m.opts.Save(m.m); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.dirty = false
}

func (m *Model) reload() {
	if m.opts.Reload == nil || m.dirty {
		return
	}
	fresh, err := m.opts.Reload()
	if err != nil {
		m.err = err
		return
	}
	m.m = fresh
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= m.m.Len() {
		m.cursor = m.m.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.view {
	case viewConfirmDelete:
		return m.viewDeleteConfirm()
	case viewForm:
		return m.viewForm()
	default:
		return m.viewList()
	}
}

func (m *Model) viewList() string {
	var sb strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "taskrank"
	}
	sb.WriteString(titleStyle.Render(title) + "\n")

	if m.m.IsEmpty() {
		sb.WriteString(dimStyle.Render("  No tasks. Press n to add one.") + "\n")
		sb.WriteString("\n" + m.renderStatusBar())
		return sb.String()
	}

	header := fmt.Sprintf("  %-4s %-8s %-6s %5s %5s  %s", "IDX", "PRIORITY", "WEIGHT", "START", "END", "TASK")
	sb.WriteString(headerStyle.Render(header) + "\n")

	tasks := m.m.Tasks()
	first, last := m.visibleRange(len(tasks))
	for i := first; i < last; i++ {
		sb.WriteString(m.renderRow(i, tasks[i]) + "\n")
	}
	sb.WriteString("\n" + m.renderStatusBar())
	return sb.String()
}

// visibleRange scrolls so the cursor stays on screen.
func (m *Model) visibleRange(n int) (int, int) {
	rows := n
	if m.height > 0 {
		rows = max(1, m.height-listChrome)
		if m.err != nil {
			rows = max(1, rows-errorChrome)
		}
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, max(0, n-rows)))
	return m.offset, min(n, m.offset+rows)
}

func (m *Model) renderRow(i int, t task.Task) string {
	prio := output.FormatPriority(t.Priority())
	prioCell := fmt.Sprintf("%-8s", prio)
	if t.IsDueNow() {
		prioCell = dueStyle.Render(prioCell)
	}
	weightCell := fmt.Sprintf("%-6s", t.Weight())
	if st, ok := weightStyles[t.Weight()]; ok {
		weightCell = st.Render(weightCell)
	}
	name := t.Context()
	if t.Description() != "" {
		name += dimStyle.Render(" · " + t.Description())
	}
	row := fmt.Sprintf("%-4d %s %s %5d %5d  %s", i, prioCell, weightCell, t.DaysToStart(), t.DaysToEnd(), name)
	if m.width > 0 {
		row = truncate(row, m.width-2) //nolint:mnd // cursor gutter
	}
	if i == m.cursor {
		return selectedStyle.Render("> " + row)
	}
	return "  " + row
}

func (m *Model) renderStatusBar() string {
	var status string
	if m.notice != "" {
		status = statusBarStyle.Render(" "+m.notice) + "\n"
	}
	status += m.help.View(m.keys)
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n" + status
	}
	return status
}

func (m *Model) viewDeleteConfirm() string {
	t, _ := m.m.Peek(m.cursor)
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  %d: %s", m.cursor, t.Context()) + "\n\n" +
		dimStyle.Render("y:yes  n:no")
	return dialogStyle.Render(content)
}

func (m *Model) viewForm() string {
	heading := "New task"
	if m.editing != nil {
		heading = "Edit task"
	}
	content := headerStyle.Render(heading) + "\n\n" + m.form.view()
	if m.err != nil {
		content += "\n\n" + errorStyle.Render("Error: "+m.err.Error())
	}
	content += "\n\n" + m.help.View(formHelp{keys: m.keys})
	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
