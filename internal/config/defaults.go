// Package config handles taskrank board configuration.
package config

const (
	// DefaultDir is the default board directory name.
	DefaultDir = ".taskrank"
	// DefaultStateFile is the default state file, relative to the board directory.
	DefaultStateFile = "tasks.yml"
	// LegacyStateFile is the state file used by version 1 boards.
	LegacyStateFile = "task_manager.json"
	// DefaultWeight is the weight given to new tasks when none is specified.
	DefaultWeight = "medium"
	// DefaultTickDays is the number of days a bare tick advances.
	DefaultTickDays = 1
	// DefaultMaxLogEntries caps the activity log.
	DefaultMaxLogEntries = 10000

	// ConfigFileName is the name of the config file within the board directory.
	ConfigFileName = "config.yml"
	// LogFileName is the activity log within the board directory.
	LogFileName = "activity.jsonl"
	// LockFileName serializes access to the state file across processes.
	LockFileName = ".lock"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// SupportedStateExtensions lists the state file formats the store understands.
var SupportedStateExtensions = []string{".yml", ".yaml", ".json", ".db", ".sqlite"}
