package store

import (
	"context"
	"fmt"

	"edinet_ingest/pkg/models"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps reports in PostgreSQL through a connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	d    dialect
}

// OpenPostgres connects using a DATABASE_URL style connection string.
func OpenPostgres(ctx context.Context, dbURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database config")
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pool")
	}
	return &PostgresStore{pool: pool, d: postgresDialect}, nil
}

// Migrate creates missing tables.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, ddl := range s.d.schema() {
			if _, err := tx.Exec(ctx, ddl); err != nil {
				return errors.Wrap(err, "apply schema")
			}
		}
		return nil
	})
}

// SaveReport writes one report in one transaction.
func (s *PostgresStore) SaveReport(ctx context.Context, r *models.QuarterlyReport) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, st := range s.d.saveStatements(r) {
			if _, err := tx.Exec(ctx, st.query, st.args...); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "save %s", r.DocID)
}

// RecordRun upserts a run summary.
func (s *PostgresStore) RecordRun(ctx context.Context, run *models.IngestRun) error {
	st := s.d.runStatement(run)
	_, err := s.pool.Exec(ctx, st.query, st.args...)
	return errors.Wrapf(err, "record run %s", run.ID)
}

// LoadReport reads a report and its statements.
func (s *PostgresStore) LoadReport(ctx context.Context, docID string) (*models.QuarterlyReport, error) {
	r := &models.QuarterlyReport{DocID: docID}
	err := s.pool.QueryRow(ctx,
		`SELECT date, sec_code, doc_type_code, submit_date_time, edinet_code, filer_name, xbrl_zip_path
		FROM quarterly_reports WHERE doc_id = $1`, docID,
	).Scan(&r.Date, &r.SecCode, &r.DocTypeCode, &r.SubmitDateTime, &r.EdinetCode, &r.FilerName, &r.XBRLZipPath)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%s", docID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", docID)
	}

	var income models.IncomeStatement
	if found, err := s.loadStatement(ctx, incomeTable, docID, models.IncomeStatementFields, &income); err != nil {
		return nil, err
	} else if found {
		r.IncomeStatement = &income
	}

	var balance models.BalanceSheet
	if found, err := s.loadStatement(ctx, balanceTable, docID, models.BalanceSheetFields, &balance); err != nil {
		return nil, err
	} else if found {
		r.BalanceSheet = &balance
	}
	return r, nil
}

func (s *PostgresStore) loadStatement(ctx context.Context, table, docID string, fields []models.Field, rec interface {
	Set(models.Field, float64) bool
}) (bool, error) {
	values := make([]*float64, len(fields))
	dest := make([]any, len(fields))
	for i := range values {
		dest[i] = &values[i]
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE doc_id = $1", selectColumns(fields), table)
	err := s.pool.QueryRow(ctx, query, docID).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
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

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
