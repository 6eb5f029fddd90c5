package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskrank/internal/manager"
	"github.com/twiced-technology-gmbh/taskrank/internal/session"
	"github.com/twiced-technology-gmbh/taskrank/internal/tui"
	"github.com/twiced-technology-gmbh/taskrank/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := session.Open(ctx, cfg, session.Options{})
	if err != nil {
		return err
	}
	defer s.Close()

	model := tui.New(s.Manager, tui.Options{
		Title:         cfg.Board.Name,
		DefaultWeight: cfg.DefaultWeight(),
		TickDays:      cfg.TickDays(),
		Save: func(m *manager.Manager) error {
			s.Manager = m
			return s.Save(ctx)
		},
		Reload: func() (*manager.Manager, error) {
			if err := s.Reload(ctx); err != nil {
				return nil, err
			}
			return s.Manager, nil
		},
		Record: s.Record,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	go startTUIWatcher(ctx, cfg.StatePath(), p)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, path string, p *tea.Program) {
	w, err := watcher.New(path, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
