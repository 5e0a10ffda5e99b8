// Package report renders extracted reports for people: Markdown tables, and
// HTML converted from that Markdown.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"edinet_ingest/pkg/models"

	"github.com/cockroachdb/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Absent is shown for fields the filing did not report.
const Absent = "-"

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown renders the report metadata followed by one table per statement.
func Markdown(r *models.QuarterlyReport) string {
	var b strings.Builder

	name := r.DocID
	if r.FilerName != nil {
		name = *r.FilerName
	}
	fmt.Fprintf(&b, "# %s\n\n", escape(name))

	b.WriteString("| Item | Value |\n|---|---|\n")
	row(&b, "Document ID", r.DocID)
	row(&b, "Listed on", r.Date)
	row(&b, "Document type", r.DocTypeCode)
	row(&b, "Securities code", deref(r.SecCode))
	row(&b, "EDINET code", deref(r.EdinetCode))
	row(&b, "Submitted", deref(r.SubmitDateTime))
	row(&b, "Archive", deref(r.XBRLZipPath))

	b.WriteString("\n## Income statement (year to date)\n\n")
	if r.IncomeStatement == nil {
		b.WriteString("Not extracted.\n")
	} else {
		statement(&b, r.IncomeStatement, models.IncomeStatementFields)
	}

	b.WriteString("\n## Balance sheet (quarter end)\n\n")
	if r.BalanceSheet == nil {
		b.WriteString("Not extracted.\n")
	} else {
		statement(&b, r.BalanceSheet, models.BalanceSheetFields)
	}
	return b.String()
}

// HTML converts Markdown with table support.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	return buf.String(), nil
}

// Label turns a field identifier into a table caption: "net_sales" becomes
// "Net sales".
func Label(f models.Field) string {
	s := strings.ReplaceAll(string(f), "_", " ")
	for _, suffix := range []string{" noi", " noe", " ei"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix) + " (" + strings.ToUpper(strings.TrimSpace(suffix)) + ")"
		}
	}
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatAmount prints v with thousands separators, keeping any fraction.
func FormatAmount(v *float64) string {
	if v == nil {
		return Absent
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var grouped strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(c)
	}
	return sign + grouped.String() + frac
}

func statement(b *strings.Builder, rec interface{ Get(models.Field) *float64 }, fields []models.Field) {
	b.WriteString("| Field | Amount |\n|---|---:|\n")
	for _, f := range fields {
		fmt.Fprintf(b, "| %s | %s |\n", Label(f), FormatAmount(rec.Get(f)))
	}
}

func row(b *strings.Builder, label, value string) {
	if value == "" {
		value = Absent
	}
	fmt.Fprintf(b, "| %s | %s |\n", label, escape(value))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
