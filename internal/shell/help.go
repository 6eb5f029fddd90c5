package shell

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# taskrank shell

Tasks are listed most urgent first. Indexes are 0-based and shift after
every change, so run ` + "`list`" + ` before ` + "`edit`" + ` or ` + "`remove`" + `.

| Command | Effect |
|---|---|
| ` + "`new`" + ` | create a task (alias ` + "`create`" + `) |
| ` + "`remove <idx>`" + ` | delete the task at idx |
| ` + "`edit <idx>`" + ` | change the task at idx |
| ` + "`tick [days]`" + ` | move every task days closer |
| ` + "`list`" + ` | show all tasks |
| ` + "`help`" + ` | show this help |
| ` + "`quit`" + ` | save and exit (alias ` + "`exit`" + `) |

When creating or editing, press enter on an empty answer to keep the
current value. Weight is one of *low*, *medium* or *high*.
`

// renderHelp renders the help text with glamour, falling back to the raw
// markdown if rendering fails.
func renderHelp(style string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n") + "\n"
}
