package models

import "time"

// QuarterlyReport is one filed document with its metadata and, when the
// archive could be read, its extracted statements.
type QuarterlyReport struct {
	DocID          string  `json:"doc_id"`
	Date           string  `json:"date"` // listing date, YYYY-MM-DD
	SecCode        *string `json:"sec_code,omitempty"`
	DocTypeCode    string  `json:"doc_type_code"`
	SubmitDateTime *string `json:"submit_date_time,omitempty"`
	EdinetCode     *string `json:"edinet_code,omitempty"`
	FilerName      *string `json:"filer_name,omitempty"`

	// XBRLZipPath is relative to the ingest base directory; nil when the
	// archive could not be downloaded.
	XBRLZipPath *string `json:"xbrl_zip_path,omitempty"`

	IncomeStatement *IncomeStatement `json:"income_statement,omitempty"`
	BalanceSheet    *BalanceSheet    `json:"balance_sheet,omitempty"`
}

// IngestRun summarises one pass of the ingestion loop.
type IngestRun struct {
	ID         string    `json:"id"`
	StartDate  string    `json:"start_date"`
	Days       int       `json:"days"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	DatesListed  int  `json:"dates_listed"`
	DatesSkipped int  `json:"dates_skipped"`
	Documents    int  `json:"documents"` // documents matching the type filter
	Extracted    int  `json:"extracted"` // documents with statements saved
	NoArchive    int  `json:"no_archive"`
	Failed       int  `json:"failed"`
	Canceled     bool `json:"canceled"`
}

// Duration returns the wall time of the run.
func (r IngestRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
