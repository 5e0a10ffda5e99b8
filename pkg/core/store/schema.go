package store

import (
	"fmt"
	"strings"

	"edinet_ingest/pkg/models"
)

const (
	reportsTable   = "quarterly_reports"
	incomeTable    = "income_statements"
	balanceTable   = "balance_sheets"
	runsTable      = "ingest_runs"
	documentKeyCol = "doc_id"
)

// reportColumns are the metadata columns of quarterly_reports, after doc_id.
var reportColumns = []string{
	"date", "sec_code", "doc_type_code", "submit_date_time",
	"edinet_code", "filer_name", "xbrl_zip_path",
}

var runColumns = []string{
	"id", "start_date", "days", "started_at", "finished_at",
	"dates_listed", "dates_skipped", "documents", "extracted",
	"no_archive", "failed", "canceled",
}

// dialect captures the few places the two backends differ.
type dialect struct {
	name        string
	real        string
	timestamp   string
	placeholder func(n int) string
}

var (
	sqliteDialect = dialect{
		name:        "sqlite",
		real:        "REAL",
		timestamp:   "TIMESTAMP",
		placeholder: func(n int) string { return fmt.Sprintf("?%d", n) },
	}
	postgresDialect = dialect{
		name:        "postgres",
		real:        "DOUBLE PRECISION",
		timestamp:   "TIMESTAMPTZ",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

// schema returns the DDL statements. Statement tables get one nullable
// column per field, in field-list order.
func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS quarterly_reports (
    doc_id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    sec_code TEXT,
    doc_type_code TEXT NOT NULL,
    submit_date_time TEXT,
    edinet_code TEXT,
    filer_name TEXT,
    xbrl_zip_path TEXT
)`,
		d.statementTable(incomeTable, models.IncomeStatementFields),
		d.statementTable(balanceTable, models.BalanceSheetFields),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ingest_runs (
    id TEXT PRIMARY KEY,
    start_date TEXT NOT NULL,
    days INTEGER NOT NULL,
    started_at %[1]s NOT NULL,
    finished_at %[1]s NOT NULL,
    dates_listed INTEGER NOT NULL,
    dates_skipped INTEGER NOT NULL,
    documents INTEGER NOT NULL,
    extracted INTEGER NOT NULL,
    no_archive INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    canceled BOOLEAN NOT NULL
)`, d.timestamp),
	}
}

func (d dialect) statementTable(table string, fields []models.Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n    doc_id TEXT PRIMARY KEY", table)
	for _, f := range fields {
		fmt.Fprintf(&b, ",\n    %s %s", f, d.real)
	}
	b.WriteString(",\n    FOREIGN KEY(doc_id) REFERENCES quarterly_reports(doc_id)\n)")
	return b.String()
}

// upsert builds an insert keyed on the first column that overwrites every
// other column on conflict.
func (d dialect) upsert(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = d.placeholder(i + 1)
	}
	updates := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		columns[0],
		strings.Join(updates, ", "),
	)
}

// statement is one parameterised write.
type statement struct {
	query string
	args  []any
}

// saveStatements returns the writes for one report, in order: metadata first
// so the statement rows satisfy their foreign key.
func (d dialect) saveStatements(r *models.QuarterlyReport) []statement {
	stmts := []statement{{
		query: d.upsert(reportsTable, append([]string{documentKeyCol}, reportColumns...)),
		args: []any{
			r.DocID, r.Date, r.SecCode, r.DocTypeCode, r.SubmitDateTime,
			r.EdinetCode, r.FilerName, r.XBRLZipPath,
		},
	}}
	if r.IncomeStatement != nil {
		stmts = append(stmts, d.statementUpsert(incomeTable, r.DocID, models.IncomeStatementFields, r.IncomeStatement))
	}
	if r.BalanceSheet != nil {
		stmts = append(stmts, d.statementUpsert(balanceTable, r.DocID, models.BalanceSheetFields, r.BalanceSheet))
	}
	return stmts
}

func (d dialect) statementUpsert(table, docID string, fields []models.Field, rec interface{ Get(models.Field) *float64 }) statement {
	columns := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	columns = append(columns, documentKeyCol)
	args = append(args, docID)
	for _, f := range fields {
		columns = append(columns, string(f))
		args = append(args, rec.Get(f))
	}
	return statement{query: d.upsert(table, columns), args: args}
}

func (d dialect) runStatement(run *models.IngestRun) statement {
	return statement{
		query: d.upsert(runsTable, runColumns),
		args: []any{
			run.ID, run.StartDate, run.Days, run.StartedAt.UTC(), run.FinishedAt.UTC(),
			run.DatesListed, run.DatesSkipped, run.Documents, run.Extracted,
			run.NoArchive, run.Failed, run.Canceled,
		},
	}
}

func selectColumns(fields []models.Field) string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f)
	}
	return strings.Join(cols, ", ")
}
