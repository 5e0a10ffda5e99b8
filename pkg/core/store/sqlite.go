package store

import (
	"context"
	"database/sql"
	"fmt"

	"edinet_ingest/pkg/core/logger"
	"edinet_ingest/pkg/models"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBusyTimeoutMS is how long a writer waits for a competing lock.
const SQLiteBusyTimeoutMS = 5000

// SQLiteStore keeps reports in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
	d  dialect
}

// OpenSQLite opens (creating if needed) the database at path with WAL
// journaling, foreign keys and a busy timeout.
func OpenSQLite(path string) (*SQLiteStore, error) {
	logger.Logger.Debugw("Opening database", logger.FieldPath, path)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// A single connection serialises writers and keeps :memory: databases
	// shared.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", SQLiteBusyTimeoutMS),
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to apply %q", p)
		}
	}

	logger.Logger.Infow("Database opened successfully",
		logger.FieldPath, path,
		"wal_mode", true,
		"foreign_keys", true,
	)
	return NewSQLiteStore(db), nil
}

// NewSQLiteStore wraps an already configured handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, d: sqliteDialect}
}

// Migrate creates missing tables.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin migration")
	}
	for _, ddl := range s.d.schema() {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "apply schema")
		}
	}
	return errors.Wrap(tx.Commit(), "commit migration")
}

// SaveReport writes one report in one transaction.
func (s *SQLiteStore) SaveReport(ctx context.Context, r *models.QuarterlyReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", r.DocID)
	}
	for _, st := range s.d.saveStatements(r) {
		if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "save %s", r.DocID)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit %s", r.DocID)
	}
	return nil
}

// RecordRun upserts a run summary.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *models.IngestRun) error {
	st := s.d.runStatement(run)
	if _, err := s.db.ExecContext(ctx, st.query, st.args...); err != nil {
		return errors.Wrapf(err, "record run %s", run.ID)
	}
	return nil
}

// LoadReport reads a report and its statements.
func (s *SQLiteStore) LoadReport(ctx context.Context, docID string) (*models.QuarterlyReport, error) {
	r := &models.QuarterlyReport{DocID: docID}
	err := s.db.QueryRowContext(ctx,
		`SELECT date, sec_code, doc_type_code, submit_date_time, edinet_code, filer_name, xbrl_zip_path
		FROM quarterly_reports WHERE doc_id = ?`, docID,
	).Scan(&r.Date, &r.SecCode, &r.DocTypeCode, &r.SubmitDateTime, &r.EdinetCode, &r.FilerName, &r.XBRLZipPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%s", docID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", docID)
	}

	var income models.IncomeStatement
	found, err := s.loadStatement(ctx, incomeTable, docID, models.IncomeStatementFields, &income)
	if err != nil {
		return nil, err
	}
	if found {
		r.IncomeStatement = &income
	}

	var balance models.BalanceSheet
	found, err = s.loadStatement(ctx, balanceTable, docID, models.BalanceSheetFields, &balance)
	if err != nil {
		return nil, err
	}
	if found {
		r.BalanceSheet = &balance
	}
	return r, nil
}

func (s *SQLiteStore) loadStatement(ctx context.Context, table, docID string, fields []models.Field, rec interface {
	Set(models.Field, float64) bool
}) (bool, error) {
	values := make([]*float64, len(fields))
	dest := make([]any, len(fields))
	for i := range values {
		dest[i] = &values[i]
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE doc_id = ?", selectColumns(fields), table)
	err := s.db.QueryRowContext(ctx, query, docID).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "load %s for %s", table, docID)
	}
	for i, v := range values {
		if v != nil {
			rec.Set(fields[i], *v)
		}
	}
	return true, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
