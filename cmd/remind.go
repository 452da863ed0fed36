package cmd

import (
	"fmt"

	"github.com/trackgoals/trackgoals/internal/reminder"
	"github.com/trackgoals/trackgoals/internal/reminder/resend"
	"github.com/trackgoals/trackgoals/internal/storage/bolt"

	"github.com/spf13/cobra"
)

// remindCmd runs one sweep and exits; meant to be driven by cron. The server
// can also run the sweep itself when reminder.enabled is set.
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send one round of daily habit reminders",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd, args); err != nil {
			return err
		}
		if cfg.Reminder.ResendAPIKey == "" {
			return fmt.Errorf("no Resend API key: set reminder.resend_api_key or TRACKGOALS_RESEND_API_KEY")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := bolt.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		n := &resend.ResendNotifier{
			APIKey: cfg.Reminder.ResendAPIKey,
			From:   cfg.Reminder.FromAddress,
		}
		return reminder.Sweep(cmd.Context(), store, n)
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
