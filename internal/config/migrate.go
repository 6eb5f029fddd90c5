package config

import "fmt"

// migrate upgrades a config from its current version to CurrentVersion.
// Each migration function transforms the config one version forward.
// Returns an error if the config version is newer than what this binary supports.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade taskrank)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}

	return nil
}

// migrations maps each version to the function that migrates it to the next version.
// The migration function must increment cfg.Version after a successful migration.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
}

// migrateV1ToV2 adds defaults.tick_days and the activity section. Version 1
// boards kept their state in task_manager.json, which stays in place when
// state_file was never set.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.StateFile == "" {
		cfg.StateFile = LegacyStateFile
	}
	if cfg.Defaults.Weight == "" {
		cfg.Defaults.Weight = DefaultWeight
	}
	if cfg.Defaults.TickDays == 0 {
		cfg.Defaults.TickDays = DefaultTickDays
	}
	if cfg.Activity.MaxEntries == 0 {
		cfg.Activity.MaxEntries = DefaultMaxLogEntries
	}
	cfg.Version = 2
	return nil
}
