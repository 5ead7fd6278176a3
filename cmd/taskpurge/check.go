package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/polar-ai/taskpurge/internal/classify"
	"github.com/polar-ai/taskpurge/internal/model"
	"github.com/polar-ai/taskpurge/internal/monday"
	"github.com/polar-ai/taskpurge/internal/source"
	"github.com/polar-ai/taskpurge/internal/speech"
)

func checkCmd() *cobra.Command {
	var speak bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one fetch-and-classify cycle and print the urgent tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			cfg, _, err := loadSettings(userID)
			if err != nil {
				return err
			}
			if cfg == nil {
				return fmt.Errorf("設定が見つかりません。taskpurge run でセットアップしてください")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			rules := loadRules()
			client := monday.NewClient(cfg.AccessToken)
			src := source.New(cfg, client, rules)
			params := classifyParams(cfg, rules)

			ctx := cmd.Context()
			raw, err := src.Fetch(ctx)
			if err != nil {
				return err
			}

			var urgent []model.UrgentTask
			for _, task := range raw {
				if u := classify.Classify(task, params); u != nil {
					urgent = append(urgent, *u)
				}
			}

			printReport(src, len(raw), urgent)

			if speak && len(urgent) > 0 {
				announcer := buildAnnouncer(cfg, speech.NewExecPlayer())
				return announcer.AnnounceAll(ctx, urgent)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&speak, "speak", false, "announce the urgent tasks out loud")
	return cmd
}

func printReport(src source.Source, fetched int, urgent []model.UrgentTask) {
	fmt.Printf("%s: %d件のタスクを取得\n", src.Name(), fetched)

	if ab, ok := src.(*source.AllBoards); ok {
		for _, f := range ab.Failures() {
			color.Yellow("  スキップ: %s (%v)", f.Board, f.Err)
		}
	}

	if len(urgent) == 0 {
		color.Green("未完了の緊急・高優先度タスクはありません")
		return
	}

	for _, t := range urgent {
		c := color.New(color.FgRed, color.Bold)
		if t.Priority == model.PriorityHigh {
			c = color.New(color.FgYellow)
		}
		due := "今日"
		if t.Overdue {
			due = "超過"
		}
		name := t.Name
		if t.BoardName != "" {
			name = t.BoardName + " — " + name
		}
		c.Printf("[%s] %s (期限: %s)\n", t.Priority.Label(), name, due)
	}
}
