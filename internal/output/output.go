// Package output renders tasks, overviews and activity as a table, JSON or
// compact lines.
package output

import (
	"os"
	"strings"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto uses the default format (table).
	FormatAuto Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatTable outputs a human-readable table.
	FormatTable
	// FormatCompact outputs one-line-per-record compact format.
	FormatCompact
)

// EnvFormat names the environment variable consulted when no format flag is set.
const EnvFormat = "TASKRANK_OUTPUT"

var formatNames = map[string]Format{
	"json":    FormatJSON,
	"table":   FormatTable,
	"compact": FormatCompact,
	"oneline": FormatCompact,
}

// ParseFormat maps a format name from EnvFormat to a Format.
func ParseFormat(name string) (Format, bool) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTable:
		return "table"
	case FormatCompact:
		return "compact"
	default:
		return "auto"
	}
}

// Detect picks the format from flags, then EnvFormat, then table.
// --json beats --compact beats --table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := ParseFormat(os.Getenv(EnvFormat)); ok {
		return f
	}
	return FormatTable
}
