package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/taskrank/internal/session"
	"github.com/twiced-technology-gmbh/taskrank/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the line-based task prompt",
	Long: `Reads commands from stdin: new, remove IDX, edit IDX, tick [DAYS], list, help
and quit. The task list is saved on quit and at end of input, so a script can
be piped in.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().String("help-style", "", "glamour style for help (auto, dark, light, notty)")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	s, err := session.Open(ctx, cfg, session.Options{})
	if err != nil {
		return err
	}
	defer s.Close()

	helpStyle, _ := cmd.Flags().GetString("help-style")
	if flagNoColor || os.Getenv("NO_COLOR") != "" {
		helpStyle = styles.NoTTYStyle
	}

	sh := shell.New(s.Manager, os.Stdin, os.Stdout, shell.Options{
		DefaultWeight: cfg.DefaultWeight(),
		TickDays:      cfg.TickDays(),
		Save:          func() error { return s.Save(ctx) },
		Record:        s.Record,
		HelpStyle:     helpStyle,
		Banner:        term.IsTerminal(int(os.Stdin.Fd())), //nolint:gosec // fd fits in int
	})
	return sh.Run()
}
