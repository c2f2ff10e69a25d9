package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fydblock/fydadmin/internal/domain"
)

var (
	logLevelFlag string
	logSearch    string
	logFollowBot string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show system logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		if logFollowBot != "" {
			lines, err := client.StreamBotLogs(cmd.Context(), logFollowBot)
			if err != nil {
				return err
			}
			for line := range lines {
				fmt.Println(line.Line)
			}
			return cmd.Context().Err()
		}

		logs, err := client.ListLogs(cmd.Context())
		if err != nil {
			return err
		}
		logs = domain.Filter(logs, logSearch, logLevelFlag)

		stats := domain.StatsFor(logs)
		fmt.Printf("%d entries, %d errors, %d warnings\n\n", stats.Total, stats.Errors, stats.Warnings)
		for _, l := range logs {
			fmt.Printf("%s  %-7s %-12s %s\n",
				l.Timestamp.Format("2006-01-02 15:04:05"), l.Level, l.Service, l.Message)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().StringVar(&logLevelFlag, "level", domain.FilterStatusAll, "Filter by level (ERROR, WARNING, INFO)")
	logsCmd.Flags().StringVar(&logSearch, "search", "", "Filter by message or service text")
	logsCmd.Flags().StringVar(&logFollowBot, "follow", "", "Stream live log lines for the given bot ID")
	rootCmd.AddCommand(logsCmd)
}
