package task

import (
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
)

// ParseIndex parses a 0-based task index.
func ParseIndex(input string) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || idx < 0 {
		return 0, ValidateIndex(input)
	}
	return idx, nil
}

// ParseDays parses a non-negative day count for the named field.
func ParseDays(field, input string) (uint, error) {
	days, err := strconv.ParseUint(strings.TrimSpace(input), 10, 0)
	if err != nil {
		return 0, ValidateDays(field, input)
	}
	return uint(days), nil
}

// ValidateIndex returns a CLIError for invalid index input.
func ValidateIndex(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidIndex, "invalid index %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateDays returns a CLIError for an invalid day count.
func ValidateDays(field, input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidDays, "invalid %s %q: expected a non-negative integer", field, input).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// IndexOutOfRange returns a CLIError for an index past the end of the list.
func IndexOutOfRange(index, length int) *clierr.Error {
	return clierr.Newf(clierr.IndexOutOfRange, "index out of bounds: %d (have %d tasks)", index, length).
		WithDetails(map[string]any{
			"index":  index,
			"length": length,
		})
}
