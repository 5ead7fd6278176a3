package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskpurge",
		Short: "Task Purge - spoken reminders for urgent board tasks",
		Long: `Task Purge polls monday.com boards, finds unresolved urgent tasks
assigned to a watched person and announces them out loud.`,
		// Bare invocation launches the dashboard.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}

	rootCmd.PersistentFlags().String("user", defaultUserID(), "settings document user id")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(genServerCmd())
	rootCmd.AddCommand(setupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultUserID stands in for the external identity provider: the stable
// user identifier comes from the environment, falling back to "default".
func defaultUserID() string {
	if v := os.Getenv("TASKPURGE_USER"); v != "" {
		return v
	}
	return "default"
}
