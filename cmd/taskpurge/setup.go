package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polar-ai/taskpurge/internal/settings"
)

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Print the settings file location and an example document",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			store, err := settings.NewFileStore()
			if err != nil {
				return err
			}

			example := settings.Settings{
				AccessToken:    "<monday.com API token>",
				WatchedUserID:  "<user id>",
				PollIntervalMs: int64(settings.DefaultPollInterval.Milliseconds()),
			}
			data, err := json.MarshalIndent(&example, "", "  ")
			if err != nil {
				return err
			}

			fmt.Printf("settings path: %s\n\n", store.Path(userID))
			fmt.Println("example document (the TUI wizard fills this in for you):")
			fmt.Println(string(data))
			return nil
		},
	}
}
