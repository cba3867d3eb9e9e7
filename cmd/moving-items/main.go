// Command moving-items tracks how many of each item a user holds against how
// many they need for a move.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ethan-wit/moving-items/internal/cli"
	"github.com/ethan-wit/moving-items/internal/config"
	"github.com/ethan-wit/moving-items/internal/metrics"
	"github.com/ethan-wit/moving-items/pkg/logging"
)

var (
	configPath string
	dbPath     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "moving-items",
	Short: "Track the items you need for a move",
	Long: `moving-items keeps a per-user list of items with a desired quantity
and the quantity currently held. Sign up for a numeric username, log in, and
manage your list from the menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides "+config.EnvDBPath+")")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides "+config.EnvLogLevel+")")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Setup(cfg.LogLevel)
	logger.Debug("Configuration loaded", "database", cfg.DBPath, "hasher", cfg.Hasher)

	app := cli.NewApp(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), metrics.New(), logger)
	return app.Run(cmd.Context())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("moving-items failed", "error", err)
		os.Exit(1)
	}
}
