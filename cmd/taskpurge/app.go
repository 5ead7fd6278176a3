package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/polar-ai/taskpurge/internal/classify"
	"github.com/polar-ai/taskpurge/internal/monday"
	"github.com/polar-ai/taskpurge/internal/monitor"
	"github.com/polar-ai/taskpurge/internal/notify"
	"github.com/polar-ai/taskpurge/internal/settings"
	"github.com/polar-ai/taskpurge/internal/source"
	"github.com/polar-ai/taskpurge/internal/speech"
)

// loadSettings opens the store and reads the user's document. A missing
// document returns nil settings, not an error: callers open the wizard.
func loadSettings(userID string) (*settings.Settings, settings.Store, error) {
	store, err := settings.NewFileStore()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load(userID)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return nil, store, nil
		}
		return nil, nil, err
	}
	return cfg, store, nil
}

// loadRules reads rules.yaml from the taskpurge home directory, falling
// back to the built-in defaults.
func loadRules() classify.Rules {
	dir, err := settings.HomeDir()
	if err != nil {
		return classify.DefaultRules()
	}
	rules, err := classify.LoadRules(filepath.Join(dir, "rules.yaml"))
	if err != nil {
		return classify.DefaultRules()
	}
	return rules
}

// classifyParams derives the classification parameters for the settings:
// single-board mode uses the explicitly configured columns and the strict
// same-day policy; watch-all mode uses the candidate lists and the
// inclusive (overdue-flagging) policy.
func classifyParams(cfg *settings.Settings, rules classify.Rules) classify.Params {
	p := classify.Params{
		Rules:         rules,
		WatchedUserID: cfg.WatchedUserID,
		Policy:        classify.DateInclusive,
	}
	if cfg.SingleBoard() {
		p.Rules = rules.WithConfiguredColumns(cfg.PriorityColumn, cfg.DateColumn, cfg.StatusColumn, cfg.PersonColumn)
		p.Policy = classify.DateStrictToday
	}
	return p
}

// buildAnnouncer wires the generation client (when a credential is
// configured) and the platform speech player.
func buildAnnouncer(cfg *settings.Settings, player speech.Player) *notify.Announcer {
	url := cfg.GenerationURL
	if url == "" {
		if v := os.Getenv("TASKPURGE_GEN_URL"); v != "" {
			url = v
		} else {
			url = notify.DefaultGenerationURL
		}
	}
	return notify.NewAnnouncer(notify.NewGenClient(url, cfg.GenerationAPIKey), player)
}

// buildMonitor assembles a monitor for the settings
func buildMonitor(cfg *settings.Settings, rules classify.Rules, player speech.Player) *monitor.Monitor {
	client := monday.NewClient(cfg.AccessToken)
	src := source.New(cfg, client, rules)
	return monitor.New(cfg, src, classifyParams(cfg, rules), buildAnnouncer(cfg, player))
}
