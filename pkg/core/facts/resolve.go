// Package facts resolves context-qualified numeric facts from a parsed
// document into flat statement records.
package facts

import (
	"math"
	"regexp"
	"strconv"

	"edinet_ingest/pkg/core/mapping"
	"edinet_ingest/pkg/core/xbrl"
	"edinet_ingest/pkg/models"
)

// Record is a statement that accepts resolved values by field.
type Record interface {
	Set(f models.Field, v float64) bool
}

// Resolve visits every element of doc in document order and, for each one
// whose context reference equals qualifier, whose name is in table and whose
// text is a decimal number, stores the value in rec. A later match for the
// same field overwrites an earlier one. Anything else is skipped. It returns
// the number of values stored, counting overwrites.
func Resolve(doc *xbrl.Document, qualifier string, table *mapping.Table, rec Record) int {
	applied := 0
	doc.Walk(func(_ xbrl.ElementID, el *xbrl.Element, _ int) bool {
		if el.ContextRef == nil || *el.ContextRef != qualifier {
			return true
		}
		field, ok := table.Lookup(el.Name)
		if !ok {
			return true
		}
		text, ok := el.Text()
		if !ok {
			return true
		}
		v, ok := ParseNumber(text)
		if !ok {
			return true
		}
		if rec.Set(field, v) {
			applied++
		}
		return true
	})
	return applied
}

// ResolveIncomeStatement resolves an income statement with the given table.
func ResolveIncomeStatement(doc *xbrl.Document, qualifier string, table *mapping.Table) *models.IncomeStatement {
	var s models.IncomeStatement
	Resolve(doc, qualifier, table, &s)
	return &s
}

// ResolveBalanceSheet resolves a balance sheet with the given table.
func ResolveBalanceSheet(doc *xbrl.Document, qualifier string, table *mapping.Table) *models.BalanceSheet {
	var b models.BalanceSheet
	Resolve(doc, qualifier, table, &b)
	return &b
}

var decimalLiteral = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// ParseNumber accepts base-10 floating point literals only. Hexadecimal
// forms, digit separators, Inf, NaN and values outside the float64 range are
// rejected.
func ParseNumber(s string) (float64, bool) {
	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
