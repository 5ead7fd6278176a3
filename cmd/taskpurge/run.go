package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/polar-ai/taskpurge/internal/monday"
	"github.com/polar-ai/taskpurge/internal/monitor"
	"github.com/polar-ai/taskpurge/internal/settings"
	"github.com/polar-ai/taskpurge/internal/speech"
	"github.com/polar-ai/taskpurge/internal/tui"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Launch the monitoring dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}
}

func runTUI(cmd *cobra.Command) error {
	userID, _ := cmd.Flags().GetString("user")
	cfg, store, err := loadSettings(userID)
	if err != nil {
		return err
	}

	rules := loadRules()
	player := speech.NewExecPlayer()

	// Settings watcher is best-effort; the dashboard works without it.
	watcher, err := settings.NewWatcher(store, userID)
	if err != nil {
		watcher = nil
	} else {
		defer watcher.Close()
	}

	deps := tui.Deps{
		UserID: userID,
		Store:  store,
		NewMonitor: func(cfg *settings.Settings) *monitor.Monitor {
			return buildMonitor(cfg, rules, player)
		},
		NewClient: monday.NewClient,
		Player:    player,
		Watcher:   watcher,
	}

	p := tea.NewProgram(
		tui.NewModel(cfg, deps),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
