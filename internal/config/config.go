package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no taskrank board found (run 'taskrank init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the board configuration.
type Config struct {
	Version         int            `yaml:"version"`
	Board           BoardConfig    `yaml:"board"`
	StateFile       string         `yaml:"state_file"`
	Defaults        DefaultsConfig `yaml:"defaults"`
	Activity        ActivityConfig `yaml:"activity,omitempty"`
	RecomputeOnLoad bool           `yaml:"recompute_on_load,omitempty"`

	// dir is the absolute path to the board directory (not serialized).
	dir string `yaml:"-"`
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DefaultsConfig holds default values for new tasks and ticks.
type DefaultsConfig struct {
	Weight   string `yaml:"weight"`
	TickDays uint   `yaml:"tick_days,omitempty"`
}

// ActivityConfig controls the activity log.
type ActivityConfig struct {
	Disabled   bool `yaml:"disabled,omitempty"`
	MaxEntries int  `yaml:"max_entries,omitempty"`
}

// Dir returns the absolute path to the board directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the board directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// StatePath returns the absolute path to the state file. Absolute
// state_file values are used as-is.
func (c *Config) StatePath() string {
	if filepath.IsAbs(c.StateFile) {
		return c.StateFile
	}
	return filepath.Join(c.dir, c.StateFile)
}

// LogPath returns the absolute path to the activity log.
func (c *Config) LogPath() string {
	return filepath.Join(c.dir, LogFileName)
}

// LockPath returns the absolute path to the state lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.dir, LockFileName)
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version:   CurrentVersion,
		Board:     BoardConfig{Name: name},
		StateFile: DefaultStateFile,
		Defaults: DefaultsConfig{
			Weight:   DefaultWeight,
			TickDays: DefaultTickDays,
		},
		Activity: ActivityConfig{MaxEntries: DefaultMaxLogEntries},
	}
}

// DefaultWeight returns the parsed default weight, falling back to Med
// when the configured value is invalid.
func (c *Config) DefaultWeight() task.Weight {
	w, err := task.ParseWeight(c.Defaults.Weight)
	if err != nil {
		return task.Med
	}
	return w
}

// TickDays returns the configured days for a bare tick.
// Returns DefaultTickDays if the value is unset (zero).
func (c *Config) TickDays() uint {
	if c.Defaults.TickDays == 0 {
		return DefaultTickDays
	}
	return c.Defaults.TickDays
}

// MaxLogEntries returns the activity log cap, DefaultMaxLogEntries when unset.
func (c *Config) MaxLogEntries() int {
	if c.Activity.MaxEntries == 0 {
		return DefaultMaxLogEntries
	}
	return c.Activity.MaxEntries
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if err := ValidateStateFile(c.StateFile); err != nil {
		return err
	}
	if _, err := task.ParseWeight(c.Defaults.Weight); err != nil {
		return fmt.Errorf("%w: defaults.weight: %w", ErrInvalid, err)
	}
	if c.Activity.MaxEntries < 0 {
		return fmt.Errorf("%w: activity.max_entries must be >= 0", ErrInvalid)
	}
	return nil
}

// ValidateStateFile checks that name has a supported extension.
func ValidateStateFile(name string) error {
	if name == "" {
		return fmt.Errorf("%w: state_file is required", ErrInvalid)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(SupportedStateExtensions, ext) {
		return fmt.Errorf("%w: state_file %q has unsupported extension (allowed: %s)",
			ErrInvalid, name, strings.Join(SupportedStateExtensions, ", "))
	}
	return nil
}

// Init creates a new board in dir with default settings and returns its
// config. It fails if the board already exists.
func Init(dir, name string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)

	if _, err := os.Stat(cfg.ConfigPath()); err == nil {
		return nil, clierr.Newf(clierr.BoardAlreadyExists, "board already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating board directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given board directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a board directory
// containing config.yml. Returns the absolute path to the board directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the board directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound,
				"no taskrank board found (run 'taskrank init' to create one)")
		}
		dir = parent
	}
}
