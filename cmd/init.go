package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
	"github.com/twiced-technology-gmbh/taskrank/internal/config"
	"github.com/twiced-technology-gmbh/taskrank/internal/output"
	"github.com/twiced-technology-gmbh/taskrank/internal/task"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new task board",
	Long: `Creates a .taskrank directory with config.yml. The task list itself is written
on the first change, to tasks.yml unless --state-file says otherwise (.yml,
.yaml, .json, .db or .sqlite).`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "board name (defaults to current directory name)")
	initCmd.Flags().String("state-file", config.DefaultStateFile, "state file, relative to the board directory")
	initCmd.Flags().String("weight", config.DefaultWeight, "default weight for new tasks")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		name = filepath.Base(cwd)
	}

	stateFile, _ := cmd.Flags().GetString("state-file")
	if err := config.ValidateStateFile(stateFile); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	weight, _ := cmd.Flags().GetString("weight")
	if _, err := task.ParseWeight(weight); err != nil {
		return err
	}

	cfg, err := config.Init(dir, name)
	if err != nil {
		return err
	}
	if stateFile != cfg.StateFile || weight != cfg.Defaults.Weight {
		cfg.StateFile = stateFile
		cfg.Defaults.Weight = weight
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    cfg.Dir(),
			"name":   name,
			"config": cfg.ConfigPath(),
			"state":  cfg.StatePath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized board %q in %s", name, cfg.Dir())
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  State:  %s", cfg.StatePath())
	return nil
}
