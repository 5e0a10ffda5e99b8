package main

import (
	"edinet_ingest/pkg/core/logger"
	"edinet_ingest/pkg/core/store"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the report tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := store.Open(ctx, cfg.StoreSettings())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}
		logger.Logger.Infow("Schema ready", "driver", cfg.Store.Driver)
		return nil
	},
}
