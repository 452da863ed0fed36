package cmd

import (
	"github.com/trackgoals/trackgoals/internal/apiclient"
	"github.com/trackgoals/trackgoals/internal/config"
	"github.com/trackgoals/trackgoals/pkg/versioninfo"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `The "version" command displays the current version info for both client
and server if available.`,
	Run: func(cmd *cobra.Command, args []string) {
		version(cmd)
	},
}

func version(cmd *cobra.Command) {
	cmd.Printf("Client Version: %s\n", versioninfo.Version)

	baseURL := "http://localhost:8080"
	if c, err := config.Load(); err == nil {
		baseURL = c.APIBaseURL
	}

	serverVersion, err := apiclient.New(baseURL, "").Version(cmd.Context())
	if err != nil {
		cmd.Println("Error fetching server version:", err)
		return
	}
	cmd.Printf("Server Version: %s\n", serverVersion.Version)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
