package shell

import (
	"strings"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

// Kind identifies a shell command.
type Kind string

const (
	KindNoOp   Kind = ""
	KindNew    Kind = "new"
	KindRemove Kind = "remove"
	KindEdit   Kind = "edit"
	KindTick   Kind = "tick"
	KindList   Kind = "list"
	KindHelp   Kind = "help"
	KindQuit   Kind = "quit"
)

var aliases = map[string]Kind{
	"create": KindNew,
	"add":    KindNew,
	"rm":     KindRemove,
	"ls":     KindList,
	"exit":   KindQuit,
	"?":      KindHelp,
}

// Command is one parsed input line.
type Command struct {
	Kind  Kind
	Index int
	// Days is set only for tick with an explicit argument.
	Days    uint
	HasDays bool
}

// Parse reads one line. Blank lines parse to KindNoOp. Command names are
// case-insensitive.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: KindNoOp}, nil
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	kind := Kind(name)
	if alias, ok := aliases[name]; ok {
		kind = alias
	}

	switch kind {
	case KindNew, KindList, KindHelp, KindQuit:
		if len(args) > 0 {
			return Command{}, clierr.Newf(clierr.InvalidInput, "%s command does not take arguments", name).
				WithDetails(map[string]any{"command": name, "args": args})
		}
		return Command{Kind: kind}, nil

	case KindRemove, KindEdit:
		if len(args) != 1 {
			return Command{}, clierr.Newf(clierr.InvalidInput, "%s command takes exactly one argument", name).
				WithDetails(map[string]any{"command": name, "args": args})
		}
		idx, err := task.ParseIndex(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: kind, Index: idx}, nil

	case KindTick:
		switch len(args) {
		case 0:
			return Command{Kind: KindTick}, nil
		case 1:
			days, err := task.ParseDays("days", args[0])
			if err != nil {
				return Command{}, err
			}
			return Command{Kind: KindTick, Days: days, HasDays: true}, nil
		default:
			return Command{}, clierr.New(clierr.InvalidInput, "tick command takes at most one argument").
				WithDetails(map[string]any{"command": name, "args": args})
		}

	default:
		return Command{}, clierr.Newf(clierr.UnknownCommand, "unknown command: %s", name).
			WithDetails(map[string]any{"command": name})
	}
}
