package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fydblock/fydadmin/internal/devserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local development API server",
	Long: `serve starts a self-contained platform API backed by a local SQLite
database. It exposes the same endpoints the production API does, so the
console and scripts can be exercised without touching real accounts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := devserver.New(devserver.Config{
			Addr:              cfg.Server.Addr,
			DBPath:            cfg.Server.DBPath,
			JWTSecret:         cfg.Server.JWTSecret,
			SeedAdminEmail:    cfg.Server.SeedAdminEmail,
			SeedAdminPassword: cfg.Server.SeedAdminPassword,
		})
		if err != nil {
			return err
		}
		defer srv.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
