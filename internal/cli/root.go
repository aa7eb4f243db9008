package cli

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mcoot/wwfstate/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	app = nil

	rootCmd := &cobra.Command{
		Use:   "wwfstate",
		Short: "Reconstruct hidden word game state from a seed and move log",
		Long: `wwfstate rebuilds the parts of a game the server never sends: both racks,
the board, the scores and the order the bag will deal its remaining tiles.

Games are read from JSON files holding the server's metadata and move log.
Reconstructions are cached in memory or Redis, keyed by a fingerprint of the log.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			fc := cfg.FactoryConfig()
			fc.Logger = newLogger(cmd, cfg.Verbose)

			var err error
			app, err = factory.New(fc)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Snapshot cache: memory, redis (env: WWFSTATE_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: WWFSTATE_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: WWFSTATE_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newBagCmd())
	rootCmd.AddCommand(newReconstructCmd())
	rootCmd.AddCommand(newChecksumCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newCacheCmd())

	return rootCmd
}

// newLogger writes human-readable logs to the command's stderr
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:           level,
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
