package cli

import (
	"github.com/spf13/cobra"

	"github.com/fydblock/fydadmin/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the full-screen admin console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()
		return tui.Run(client)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
