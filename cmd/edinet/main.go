// Command edinet ingests EDINET quarterly reports into a local or
// PostgreSQL database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"edinet_ingest/pkg/core/config"
	"edinet_ingest/pkg/core/logger"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "edinet",
	Short: "EDINET quarterly report ingester",
	Long: `edinet downloads quarterly securities reports from the EDINET API,
extracts the income statement and balance sheet from their XBRL and stores
them in SQLite or PostgreSQL.

Examples:
  edinet migrate                                 # Create tables
  edinet ingest --start 2015-04-01 --days 5      # Ingest five listing days
  edinet extract report.zip --format markdown    # Inspect one archive offline`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		if err := logger.Initialize(cfg.Log.JSON); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath+")")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
