package main

import (
	"edinet_ingest/pkg/core/edinet"
	"edinet_ingest/pkg/core/logger"
	"edinet_ingest/pkg/core/pipeline"
	"edinet_ingest/pkg/core/store"
	"edinet_ingest/pkg/core/validate"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest quarterly reports listed over a date range",
	Long: `Lists the filings of each day from --start, downloads the XBRL archives of
quarterly reports (140) and their amendments (150), extracts both statements
and upserts them. Failures of single documents are logged and skipped.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("start", "", "first listing date, YYYY-MM-DD")
	ingestCmd.Flags().Int("days", 0, "number of listing days")
	ingestCmd.Flags().Int("workers", 0, "documents processed concurrently per day")
}

func runIngest(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.Ingest.Start, _ = flags.GetString("start")
	}
	if flags.Changed("days") {
		cfg.Ingest.Days, _ = flags.GetInt("days")
	}
	if flags.Changed("workers") {
		cfg.Ingest.Workers, _ = flags.GetInt("workers")
	}
	if err := cfg.ValidateIngest(); err != nil {
		return err
	}
	start, _ := cfg.StartDate()
	interval, _ := cfg.ThrottleInterval()

	ctx := cmd.Context()

	archives, err := edinet.NewArchiveCache(cfg.BaseDir)
	if err != nil {
		return err
	}
	client := edinet.NewClient(cfg.API.APIKey, archives,
		edinet.WithBaseURL(cfg.API.BaseURL),
		edinet.WithInterval(interval),
	)

	extractor, err := cfg.NewExtractor()
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.StoreSettings())
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	orch := pipeline.NewOrchestrator(client, st, extractor, pipeline.Config{
		BaseDir:   cfg.BaseDir,
		DocTypes:  cfg.Ingest.DocTypes,
		Workers:   cfg.Ingest.Workers,
		Tolerance: validate.DefaultTolerance,
	})

	run, err := orch.Run(ctx, start, cfg.Ingest.Days)
	if err != nil {
		return err
	}
	logger.Logger.Infow("Run recorded", logger.FieldRunID, run.ID, "extracted", run.Extracted, "failed", run.Failed)
	return nil
}
