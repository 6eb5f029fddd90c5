// Package activity records task mutations in an append-only JSONL log.
package activity

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const logFileMode = 0o600

// Actions recorded by the CLI, shell and TUI.
const (
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionRemove = "remove"
	ActionTick   = "tick"
)

// Entry is a single activity log line. Index is the task's position after
// the mutation, or -1 when no single task is involved.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Index     int       `json:"index"`
	Detail    string    `json:"detail"`
}

// Log appends entries to a JSONL file, keeping at most MaxEntries lines.
type Log struct {
	Path       string
	MaxEntries int
	Disabled   bool

	now func() time.Time
}

// New returns a Log writing to path.
func New(path string, maxEntries int) *Log {
	return &Log{Path: path, MaxEntries: maxEntries, now: time.Now}
}

// Append writes entry, filling in ID and Timestamp when unset. When the
// log grows past MaxEntries the oldest lines are dropped.
func (l *Log) Append(entry Entry) error {
	if l.Disabled {
		return nil
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.clock()
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from board dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Best-effort; a failed truncation leaves a longer log behind.
	_ = l.truncate()
	return nil
}

// Record appends an entry for action and discards any error. Logging never
// fails a command.
func (l *Log) Record(action string, index int, detail string) {
	if l == nil {
		return
	}
	_ = l.Append(Entry{Action: action, Index: index, Detail: detail})
}

// Read returns the most recent entries, oldest first. limit <= 0 returns
// all of them. A missing log is empty.
func (l *Log) Read(limit int) ([]Entry, error) {
	lines, err := readLines(l.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("parsing log line %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *Log) clock() time.Time {
	if l.now == nil {
		return time.Now()
	}
	return l.now()
}

func (l *Log) truncate() error {
	if l.MaxEntries <= 0 {
		return nil
	}
	lines, err := readLines(l.Path)
	if err != nil {
		return err
	}
	if len(lines) <= l.MaxEntries {
		return nil
	}
	lines = lines[len(lines)-l.MaxEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(l.Path, []byte(buf.String()), logFileMode)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // log path from board dir
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
