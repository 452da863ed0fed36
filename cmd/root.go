package cmd

import (
	"os"

	"github.com/trackgoals/trackgoals/internal/config"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "trackgoals",
	Short: "Track habits and time-boxed goals",
	Long: `
	TrackGoals is a habit- and goal-tracking backend. It serves a JSON API for
	signup, habit and goal CRUD, and dashboard aggregation, and can send daily
	email reminders for habits not yet completed.`,
}

// loadConfig is the PreRunE for commands that need a config file.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	return err
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
