// Package edinet talks to the EDINET API v2: daily document listings and
// XBRL archive downloads.
// API documentation: https://disclosure2dl.edinet-fsa.go.jp/guide/static/disclosure/WZEK0110.html
package edinet

import "edinet_ingest/pkg/models"

// Document type codes of interest.
const (
	DocTypeQuarterlyReport        = "140"
	DocTypeAmendedQuarterlyReport = "150"
)

// =============================================================================
// API RESPONSE TYPES
// =============================================================================

// DocumentList is the response of documents.json.
type DocumentList struct {
	Metadata Metadata       `json:"metadata"`
	Results  []DocumentInfo `json:"results"`
}

// OK reports whether the listing succeeded. The API signals this in the
// body, independently of the HTTP status.
func (l *DocumentList) OK() bool {
	return l != nil && l.Metadata.Status == "200"
}

// Metadata describes a listing response.
type Metadata struct {
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	Message         string    `json:"message"`
	ProcessDateTime string    `json:"processDateTime"`
	ResultSet       ResultSet `json:"resultset"`
}

// ResultSet carries the result count.
type ResultSet struct {
	Count int `json:"count"`
}

// DocumentInfo is one filed document. Most attributes are null for
// withdrawn or non-corporate filings.
type DocumentInfo struct {
	SeqNumber      int     `json:"seqNumber"`
	DocID          string  `json:"docID"`
	EdinetCode     *string `json:"edinetCode"`
	SecCode        *string `json:"secCode"`
	DocTypeCode    *string `json:"docTypeCode"`
	SubmitDateTime *string `json:"submitDateTime"`
	FilerName      *string `json:"filerName"`
}

// TypeCode returns the document type code, or "" when null.
func (d DocumentInfo) TypeCode() string {
	if d.DocTypeCode == nil {
		return ""
	}
	return *d.DocTypeCode
}

// Report converts the listing entry into a report without statements.
func (d DocumentInfo) Report(date string) *models.QuarterlyReport {
	return &models.QuarterlyReport{
		DocID:          d.DocID,
		Date:           date,
		SecCode:        d.SecCode,
		DocTypeCode:    d.TypeCode(),
		SubmitDateTime: d.SubmitDateTime,
		EdinetCode:     d.EdinetCode,
		FilerName:      d.FilerName,
	}
}

// apiError is the body EDINET returns for rejected requests.
type apiError struct {
	StatusCode int    `json:"StatusCode"`
	Message    string `json:"message"`
}
