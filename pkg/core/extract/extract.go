// Package extract turns one tagged document into its statement records.
package extract

import (
	"io"

	"edinet_ingest/pkg/core/facts"
	"edinet_ingest/pkg/core/mapping"
	"edinet_ingest/pkg/core/xbrl"
	"edinet_ingest/pkg/models"
)

const (
	// CurrentYTDDuration is the cumulative year-to-date context of a
	// quarterly filing.
	CurrentYTDDuration = "CurrentYTDDuration"
	// CurrentQuarterInstant is the quarter-end snapshot context.
	CurrentQuarterInstant = "CurrentQuarterInstant"
)

// Qualifiers selects the context each statement kind is resolved against.
type Qualifiers struct {
	Income  string `yaml:"income"`
	Balance string `yaml:"balance"`
}

// DefaultQualifiers returns the quarterly report contexts.
func DefaultQualifiers() Qualifiers {
	return Qualifiers{Income: CurrentYTDDuration, Balance: CurrentQuarterInstant}
}

// Result holds both statements of one document plus the tree they came from.
type Result struct {
	Document        *xbrl.Document
	IncomeStatement *models.IncomeStatement
	BalanceSheet    *models.BalanceSheet
}

// Empty reports whether neither statement received a value.
func (r *Result) Empty() bool {
	return r.IncomeStatement.Populated() == 0 && r.BalanceSheet.Populated() == 0
}

// Extractor parses documents and resolves both statements. It holds no
// per-document state and is safe for concurrent use.
type Extractor struct {
	qualifiers Qualifiers
	income     *mapping.Table
	balance    *mapping.Table
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithQualifiers overrides the contexts used for resolution. Empty values
// keep the defaults.
func WithQualifiers(q Qualifiers) Option {
	return func(e *Extractor) {
		if q.Income != "" {
			e.qualifiers.Income = q.Income
		}
		if q.Balance != "" {
			e.qualifiers.Balance = q.Balance
		}
	}
}

// WithTables overrides the mapping tables. Nil tables keep the defaults.
func WithTables(income, balance *mapping.Table) Option {
	return func(e *Extractor) {
		if income != nil {
			e.income = income
		}
		if balance != nil {
			e.balance = balance
		}
	}
}

// New returns an Extractor using the built-in tables and quarterly contexts
// unless overridden.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		qualifiers: DefaultQualifiers(),
		income:     mapping.IncomeStatement(),
		balance:    mapping.BalanceSheet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Qualifiers returns the active contexts.
func (e *Extractor) Qualifiers() Qualifiers { return e.qualifiers }

// Extract parses markup once and resolves both statements from the tree.
func (e *Extractor) Extract(markup string) (*Result, error) {
	doc, err := xbrl.ParseString(markup)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc), nil
}

// ExtractReader is Extract over a reader.
func (e *Extractor) ExtractReader(r io.Reader) (*Result, error) {
	doc, err := xbrl.Parse(r)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc), nil
}

// ExtractDocument resolves both statements from an already built tree.
func (e *Extractor) ExtractDocument(doc *xbrl.Document) *Result {
	return &Result{
		Document:        doc,
		IncomeStatement: facts.ResolveIncomeStatement(doc, e.qualifiers.Income, e.income),
		BalanceSheet:    facts.ResolveBalanceSheet(doc, e.qualifiers.Balance, e.balance),
	}
}
