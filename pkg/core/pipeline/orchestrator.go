// Package pipeline drives ingestion over a date range: list each day's
// filings, download the quarterly reports, extract their statements and
// store them.
package pipeline

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"edinet_ingest/pkg/core/edinet"
	"edinet_ingest/pkg/core/extract"
	"edinet_ingest/pkg/core/logger"
	"edinet_ingest/pkg/core/validate"
	"edinet_ingest/pkg/models"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DocumentSource lists filings and fetches their archives.
type DocumentSource interface {
	ListDocuments(ctx context.Context, date string) (*edinet.DocumentList, error)
	// DownloadArchive returns the archive path relative to the base directory.
	DownloadArchive(ctx context.Context, docID string) (string, error)
}

// ReportStore is the subset of store.ReportStore the loop writes to.
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.QuarterlyReport) error
	RecordRun(ctx context.Context, run *models.IngestRun) error
}

// ArchiveExtractor reads statements out of a downloaded archive.
type ArchiveExtractor interface {
	ExtractArchive(path string) (*extract.Result, extract.Source, error)
}

// Config tunes the loop.
type Config struct {
	// BaseDir resolves the relative archive paths returned by the source.
	BaseDir string
	// DocTypes selects filings by document type code.
	DocTypes []string
	// Workers bounds concurrent documents within one day.
	Workers int
	// Tolerance is the relative tolerance of the accounting cross-checks.
	Tolerance float64
}

// DefaultConfig processes quarterly reports and their amendments one at a
// time.
func DefaultConfig(baseDir string) Config {
	return Config{
		BaseDir:   baseDir,
		DocTypes:  []string{edinet.DocTypeQuarterlyReport, edinet.DocTypeAmendedQuarterlyReport},
		Workers:   1,
		Tolerance: validate.DefaultTolerance,
	}
}

// Orchestrator manages the end-to-end data flow:
// listing -> archive download -> extraction -> cross-checks -> storage.
type Orchestrator struct {
	source    DocumentSource
	store     ReportStore
	extractor ArchiveExtractor
	cfg       Config
	docTypes  map[string]bool
	now       func() time.Time
}

// NewOrchestrator wires the loop's collaborators.
func NewOrchestrator(source DocumentSource, st ReportStore, extractor ArchiveExtractor, cfg Config) *Orchestrator {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = validate.DefaultTolerance
	}
	types := make(map[string]bool, len(cfg.DocTypes))
	for _, t := range cfg.DocTypes {
		types[t] = true
	}
	return &Orchestrator{
		source:    source,
		store:     st,
		extractor: extractor,
		cfg:       cfg,
		docTypes:  types,
		now:       time.Now,
	}
}

// outcome classifies one processed document.
type outcome int

const (
	outcomeExtracted outcome = iota
	outcomeNoArchive
	outcomeFailed
)

// tally counts outcomes across workers.
type tally struct {
	extracted, noArchive, failed atomic.Int64
}

func (t *tally) add(o outcome) {
	switch o {
	case outcomeExtracted:
		t.extracted.Add(1)
	case outcomeNoArchive:
		t.noArchive.Add(1)
	default:
		t.failed.Add(1)
	}
}

// Run ingests days consecutive listing dates starting at start. Per-document
// failures are logged and counted, never returned. The run summary is
// recorded in the store even when ctx is canceled; a canceled run returns
// ctx.Err() together with the partial summary.
func (o *Orchestrator) Run(ctx context.Context, start time.Time, days int) (*models.IngestRun, error) {
	run := &models.IngestRun{
		ID:        uuid.NewString(),
		StartDate: start.Format(time.DateOnly),
		Days:      days,
		StartedAt: o.now(),
	}
	log := logger.Logger.With(logger.FieldRunID, run.ID)
	log.Infow("Ingestion started", logger.FieldDate, run.StartDate, "days", days, "workers", o.cfg.Workers)

	var counts tally
	for i := 0; i < days; i++ {
		if ctx.Err() != nil {
			break
		}
		date := start.AddDate(0, 0, i).Format(time.DateOnly)

		list, err := o.source.ListDocuments(ctx, date)
		if err != nil {
			log.Warnw("Document list failed, skipping date", logger.FieldDate, date, logger.FieldError, err)
			run.DatesSkipped++
			continue
		}
		if !list.OK() {
			log.Warnw("Document list rejected, skipping date",
				logger.FieldDate, date, logger.FieldStatus, list.Metadata.Status, "message", list.Metadata.Message)
			run.DatesSkipped++
			continue
		}
		run.DatesListed++

		selected := o.filter(list.Results)
		run.Documents += len(selected)
		log.Infow("Listed documents", logger.FieldDate, date, logger.FieldCount, len(list.Results), "selected", len(selected))

		o.processDay(ctx, date, selected, &counts)
	}

	run.Extracted = int(counts.extracted.Load())
	run.NoArchive = int(counts.noArchive.Load())
	run.Failed = int(counts.failed.Load())
	run.Canceled = ctx.Err() != nil
	run.FinishedAt = o.now()

	log.Infow("Ingestion finished",
		"dates_listed", run.DatesListed, "dates_skipped", run.DatesSkipped,
		"documents", run.Documents, "extracted", run.Extracted,
		"no_archive", run.NoArchive, "failed", run.Failed,
		"canceled", run.Canceled, logger.FieldDurationMS, run.Duration().Milliseconds())

	if err := o.store.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		return run, errors.Wrap(err, "record run")
	}
	if run.Canceled {
		return run, ctx.Err()
	}
	return run, nil
}

func (o *Orchestrator) filter(docs []edinet.DocumentInfo) []edinet.DocumentInfo {
	var out []edinet.DocumentInfo
	for _, d := range docs {
		if o.docTypes[d.TypeCode()] {
			out = append(out, d)
		}
	}
	return out
}

// processDay handles one day's documents with at most cfg.Workers in flight.
// No new document starts once ctx is canceled.
func (o *Orchestrator) processDay(ctx context.Context, date string, docs []edinet.DocumentInfo, counts *tally) {
	var g errgroup.Group
	g.SetLimit(o.cfg.Workers)
	for _, doc := range docs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			counts.add(o.processDocument(ctx, date, doc))
			return nil
		})
	}
	_ = g.Wait()
}

// processDocument downloads, extracts, checks and saves one filing. The
// metadata row is written whatever happens to the archive.
func (o *Orchestrator) processDocument(ctx context.Context, date string, doc edinet.DocumentInfo) outcome {
	log := logger.Logger.With(logger.FieldDocID, doc.DocID, logger.FieldDate, date)
	report := doc.Report(date)
	result := outcomeExtracted

	rel, err := o.source.DownloadArchive(ctx, doc.DocID)
	if err != nil {
		log.Warnw("Archive unavailable, saving metadata only", logger.FieldError, err)
		result = outcomeNoArchive
	} else {
		report.XBRLZipPath = &rel
		if !o.extractInto(report, log) {
			result = outcomeFailed
		}
	}

	if err := o.store.SaveReport(ctx, report); err != nil {
		log.Errorw("Failed to save report", logger.FieldError, err)
		return outcomeFailed
	}
	return result
}

func (o *Orchestrator) extractInto(report *models.QuarterlyReport, log *zap.SugaredLogger) bool {
	path := filepath.Join(o.cfg.BaseDir, *report.XBRLZipPath)
	res, src, err := o.extractor.ExtractArchive(path)
	if err != nil {
		log.Warnw("Extraction failed, saving metadata only", logger.FieldPath, path, logger.FieldError, err)
		return false
	}
	report.IncomeStatement = res.IncomeStatement
	report.BalanceSheet = res.BalanceSheet

	log.Debugw("Extracted statements", "source", src,
		"income_fields", res.IncomeStatement.Populated(), "balance_fields", res.BalanceSheet.Populated())

	for _, c := range validate.Failures(validate.Report(report, o.cfg.Tolerance)) {
		log.Warnw("Cross-check mismatch", logger.FieldCheck, c.Name,
			"reported", c.Reported, "computed", c.Computed, "difference", c.Difference)
	}
	return true
}
