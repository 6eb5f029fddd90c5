// Package shell implements the interactive line-based task prompt.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour/styles"

	"github.com/twiced-technology-gmbh/taskrank/internal/activity"
	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

const defaultWrap = 80

// errEOF reports that input ended in the middle of a dialog.
var errEOF = errors.New("input ended")

// Options configure a Shell.
type Options struct {
	// DefaultWeight seeds the weight of new tasks.
	DefaultWeight task.Weight
	// TickDays is used by a bare tick. Zero means 1.
	TickDays uint
	// Save persists the manager on quit and at end of input.
	Save func() error
	// Record is told about every mutation.
	Record func(action string, index int, detail string)
	// HelpStyle is a glamour standard style name. Empty means auto.
	HelpStyle string
	// Banner prints the command menu before the first prompt.
	Banner bool
}

// Shell runs commands read line by line against a manager.
type Shell struct {
	m    *manager.Manager
	in   *bufio.Scanner
	out  io.Writer
	opts Options
}

// New returns a Shell reading from in and writing prompts and results to out.
func New(m *manager.Manager, in io.Reader, out io.Writer, opts Options) *Shell {
	if opts.TickDays == 0 {
		opts.TickDays = 1
	}
	if opts.HelpStyle == "" {
		opts.HelpStyle = styles.AutoStyle
	}
	return &Shell{m: m, in: bufio.NewScanner(in), out: out, opts: opts}
}

// Run loops until quit or end of input, then saves. Command errors are
// printed and the loop continues; only a failed save is returned.
func (s *Shell) Run() error {
	if s.opts.Banner {
		s.banner()
	}
	for {
		fmt.Fprint(s.out, "\n|> ")
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.save()
		}

		cmd, err := Parse(line)
		if err != nil {
			s.printError(err)
			continue
		}
		if cmd.Kind == KindQuit {
			return s.save()
		}
		if err := s.exec(cmd); err != nil {
			if errors.Is(err, errEOF) {
				fmt.Fprintln(s.out)
				return s.save()
			}
			s.printError(err)
		}
	}
}

func (s *Shell) exec(cmd Command) error {
	switch cmd.Kind {
	case KindNoOp:
		return nil
	case KindNew:
		return s.create()
	case KindRemove:
		return s.remove(cmd.Index)
	case KindEdit:
		return s.edit(cmd.Index)
	case KindTick:
		days := s.opts.TickDays
		if cmd.HasDays {
			days = cmd.Days
		}
		s.m.Tick(days)
		s.record(activity.ActionTick, -1, fmt.Sprintf("%d days", days))
		fmt.Fprintf(s.out, "   Advanced %d tasks by %d days\n", s.m.Len(), days)
		return nil
	case KindList:
		if s.m.IsEmpty() {
			return clierr.New(clierr.NoTasks, "no tasks to list")
		}
		return s.m.WriteTable(s.out)
	case KindHelp:
		fmt.Fprint(s.out, renderHelp(s.opts.HelpStyle, defaultWrap))
		return nil
	default:
		return clierr.Newf(clierr.UnknownCommand, "unknown command: %s", cmd.Kind)
	}
}

func (s *Shell) create() error {
	b, err := s.dialog(task.NewBuilder().WithWeight(s.opts.DefaultWeight))
	if err != nil {
		return err
	}
	t := b.Build()
	s.m.Add(t)
	s.record(activity.ActionCreate, s.m.IndexOf(t), t.Context())
	return nil
}

func (s *Shell) remove(idx int) error {
	t, ok := s.m.Take(idx)
	if !ok {
		return task.IndexOutOfRange(idx, s.m.Len())
	}
	s.record(activity.ActionRemove, idx, t.Context())
	fmt.Fprintf(s.out, "   Removed %d: %s\n", idx, t.Context())
	return nil
}

// edit takes the task out for the dialog and puts the original back if the
// dialog fails.
func (s *Shell) edit(idx int) error {
	orig, ok := s.m.Take(idx)
	if !ok {
		return task.IndexOutOfRange(idx, s.m.Len())
	}
	b, err := s.dialog(orig.Reopen())
	if err != nil {
		s.m.Add(orig)
		return err
	}
	t := b.Build()
	s.m.Add(t)
	s.record(activity.ActionEdit, s.m.IndexOf(t), t.Context())
	return nil
}

// dialog prompts for each field in turn. An empty answer keeps the
// builder's current value.
func (s *Shell) dialog(b task.Builder) (task.Builder, error) {
	text, err := s.ask("Context")
	if err != nil {
		return b, err
	}
	if text != "" {
		b = b.WithContext(text)
	}

	if text, err = s.ask("Description"); err != nil {
		return b, err
	}
	if text != "" {
		b = b.WithDescription(text)
	}

	if text, err = s.ask("Days to start"); err != nil {
		return b, err
	}
	if text != "" {
		days, err := task.ParseDays("days to start", text)
		if err != nil {
			return b, err
		}
		b = b.WithDaysToStart(days)
	}

	if text, err = s.ask("Days to end"); err != nil {
		return b, err
	}
	if text != "" {
		days, err := task.ParseDays("days to end", text)
		if err != nil {
			return b, err
		}
		b = b.WithDaysToEnd(days)
	}

	if text, err = s.ask("Weight"); err != nil {
		return b, err
	}
	if text != "" {
		w, err := task.ParseWeight(text)
		if err != nil {
			return b, err
		}
		b = b.WithWeight(w)
	}
	return b, nil
}

func (s *Shell) ask(label string) (string, error) {
	fmt.Fprintf(s.out, "-| %s: \n   |> ", label)
	line, ok := s.readLine()
	if !ok {
		return "", errEOF
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) save() error {
	if s.opts.Save == nil {
		return nil
	}
	return s.opts.Save()
}

func (s *Shell) record(action string, index int, detail string) {
	if s.opts.Record != nil {
		s.opts.Record(action, index, detail)
	}
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "   Error: %v\n", err)
}

func (s *Shell) banner() {
	fmt.Fprint(s.out, `|- --------------------- -|
|-        taskrank       -|
|- --------------------- -|
|- new                   -|
|- remove <idx>          -|
|- edit   <idx>          -|
|- tick   [days]         -|
|- list                  -|
|- help                  -|
|- quit                  -|
|- --------------------- -|
`)
}
