package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the platform dashboard counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		ov, err := client.Overview(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Total users:     %d\n", ov.TotalUsers)
		fmt.Printf("Revenue:         $%s\n", ov.Revenue.StringFixed(2))
		fmt.Printf("Active sessions: %d\n", ov.ActiveSessions)
		if len(ov.RecentLogs) > 0 {
			fmt.Println("\nRecent actions:")
			for _, r := range ov.RecentLogs {
				fmt.Printf("  %-12s %-40s %s\n", r.Time, r.Action, r.Status)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}
