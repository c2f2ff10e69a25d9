package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fydblock/fydadmin/internal/api"
	"github.com/fydblock/fydadmin/internal/session"
	"github.com/fydblock/fydadmin/pkg/config"
	"github.com/fydblock/fydadmin/pkg/logger"
)

var (
	cfgPath string
	verbose bool

	cfg *config.Config

	version string = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "fydadmin",
	Short: "Admin console for the FydBlock trading platform",
	Long: `fydadmin manages the FydBlock trading platform from the terminal.

It talks to the platform REST API with the same bearer session the web
dashboard uses, and covers users, trading bots, system logs, and the
overview counters.

Quick Start:
  fydadmin login admin@example.com     # sign in and store the session
  fydadmin tui                         # full-screen console
  fydadmin bots list                   # or script individual calls`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		return logger.Init(cfg.Log)
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (default ~/.fydadmin/config.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newClient opens the session store and builds an API client against the
// configured base URL. The caller owns the returned closer.
func newClient() (*api.Client, func(), error) {
	opts := session.OpenOptions{Path: cfg.SessionPath}
	if cfg.SessionKey != "" {
		key, err := session.ParseKey(cfg.SessionKey)
		if err != nil {
			return nil, nil, fmt.Errorf("session key: %w", err)
		}
		opts.EncryptionKey = key
	}
	store, err := session.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}
	client := api.NewClient(cfg.APIBaseURL, store)
	return client, func() { _ = store.Close() }, nil
}
