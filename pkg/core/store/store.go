// Package store persists extracted reports. Every write is an idempotent
// upsert keyed by document id, and one report is written in one transaction.
package store

import (
	"context"

	"edinet_ingest/pkg/models"

	"github.com/cockroachdb/errors"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned by LoadReport for unknown documents.
var ErrNotFound = errors.New("store: report not found")

// ReportStore is the persistence boundary of the ingestion loop.
type ReportStore interface {
	// Migrate creates missing tables.
	Migrate(ctx context.Context) error
	// SaveReport upserts the report metadata and whichever statements are
	// present, atomically.
	SaveReport(ctx context.Context, report *models.QuarterlyReport) error
	// RecordRun upserts a run summary.
	RecordRun(ctx context.Context, run *models.IngestRun) error
	// LoadReport reads a report back with its statements.
	LoadReport(ctx context.Context, docID string) (*models.QuarterlyReport, error)
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver      string
	SQLitePath  string
	DatabaseURL string
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config) (ReportStore, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		if cfg.SQLitePath == "" {
			return nil, errors.New("store: sqlite path not set")
		}
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("store: DATABASE_URL not set")
		}
		s, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.Newf("store: unknown driver %q", cfg.Driver)
	}
}
