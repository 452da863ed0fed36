package cmd

import (
	"github.com/trackgoals/trackgoals/internal/apiclient"

	"github.com/spf13/cobra"
)

var (
	dashboardStart string
	dashboardEnd   string
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Short:   "Fetch your dashboard summary from the server",
	Long:    `The "dashboard" command fetches the aggregated habit and goal summary using the configured api_base_url and auth_token.`,
	PreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := apiclient.New(cfg.APIBaseURL, cfg.AuthToken)
		sum, err := client.Dashboard(cmd.Context(), dashboardStart, dashboardEnd)
		if err != nil {
			return err
		}

		cmd.Printf("Habits: %d  Goals: %d  Completions in range: %d\n",
			sum.TotalHabits, sum.TotalGoals, sum.HabitsCompletedInRange)
		for _, g := range sum.GoalsProgress {
			done := " "
			if g.Completed {
				done = "x"
			}
			cmd.Printf("[%s] %s (%d%%)\n", done, g.GoalName, g.Progress)
		}
		for _, d := range sum.HabitCompletionChart {
			cmd.Printf("%s  %d\n", d.Date, d.Completed)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardStart, "start", "", "window start (YYYY-MM-DD)")
	dashboardCmd.Flags().StringVar(&dashboardEnd, "end", "", "window end (YYYY-MM-DD)")
	rootCmd.AddCommand(dashboardCmd)
}
