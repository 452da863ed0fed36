package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/trackgoals/trackgoals/internal/logger"
	"github.com/trackgoals/trackgoals/internal/reminder"
	"github.com/trackgoals/trackgoals/internal/reminder/resend"
	"github.com/trackgoals/trackgoals/internal/server"
	"github.com/trackgoals/trackgoals/internal/storage/bolt"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:     "server",
	Short:   "Start the HTTP server",
	PreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func startServer() error {
	logger.InitJSON(slog.LevelInfo)

	store, err := bolt.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.JWTSecret == "" {
		logger.Warn("No JWT secret configured; set jwt_secret or TRACKGOALS_JWT_SECRET")
	}

	if cfg.Reminder.Enabled {
		n := &resend.ResendNotifier{
			APIKey: cfg.Reminder.ResendAPIKey,
			From:   cfg.Reminder.FromAddress,
		}
		go reminder.RunDaily(context.Background(), store, n, cfg.Reminder.Hour)
		logger.Info("Reminder scheduler started", "hour", cfg.Reminder.Hour)
	}

	s := server.New(cfg, store)
	logger.Info("Starting HTTP server", "addr", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, s.Router())
}
