// Package validate cross-checks extracted statements against the accounting
// identities they should satisfy. Failures are findings for the log, not
// errors: filers restate, round and omit subtotals.
package validate

import (
	"fmt"
	"math"

	"edinet_ingest/pkg/models"
)

// DefaultTolerance is the relative difference accepted between a reported
// figure and the one computed from its components.
const DefaultTolerance = 0.001

// =============================================================================
// CHECK RESULT
// =============================================================================

// Check is the outcome of one identity.
type Check struct {
	Name       string  `json:"name"`
	Reported   float64 `json:"reported"`
	Computed   float64 `json:"computed"`
	Difference float64 `json:"difference"` // reported - computed
	IsBalanced bool    `json:"is_balanced"`
	Tolerance  float64 `json:"tolerance"`
}

func (c Check) String() string {
	status := "ok"
	if !c.IsBalanced {
		status = "MISMATCH"
	}
	return fmt.Sprintf("%s: reported %.0f, computed %.0f, diff %.0f (%s)",
		c.Name, c.Reported, c.Computed, c.Difference, status)
}

// newCheck compares reported with computed under a relative tolerance scaled
// by the larger magnitude of the two.
func newCheck(name string, reported, computed, tolerance float64) Check {
	diff := reported - computed
	scale := math.Max(math.Abs(reported), math.Abs(computed))
	return Check{
		Name:       name,
		Reported:   reported,
		Computed:   computed,
		Difference: diff,
		IsBalanced: math.Abs(diff) <= tolerance*math.Max(scale, 1),
		Tolerance:  tolerance,
	}
}

// identity is reported = sum(sign_i * term_i).
type identity struct {
	name     string
	reported models.Field
	terms    []term
}

type term struct {
	field models.Field
	sign  float64
}

func plus(f models.Field) term  { return term{field: f, sign: 1} }
func minus(f models.Field) term { return term{field: f, sign: -1} }

// evaluate runs the identity when every operand is present.
func (id identity) evaluate(rec interface{ Get(models.Field) *float64 }, tolerance float64) (Check, bool) {
	reported := rec.Get(id.reported)
	if reported == nil {
		return Check{}, false
	}
	computed := 0.0
	for _, t := range id.terms {
		v := rec.Get(t.field)
		if v == nil {
			return Check{}, false
		}
		computed += t.sign * *v
	}
	return newCheck(id.name, *reported, computed, tolerance), true
}

// =============================================================================
// INCOME STATEMENT
// =============================================================================

var incomeIdentities = []identity{
	{"gross_profit", models.GrossProfit, []term{plus(models.NetSales), minus(models.CostOfSales)}},
	{"operating_income", models.OperatingIncome, []term{plus(models.GrossProfit), minus(models.SellingGeneralAdmin)}},
	{"ordinary_income", models.OrdinaryIncome, []term{
		plus(models.OperatingIncome), plus(models.NonOperatingIncome), minus(models.NonOperatingExpenses),
	}},
	{"income_taxes", models.IncomeTaxes, []term{plus(models.IncomeTaxesCurrent), plus(models.IncomeTaxesDeferred)}},
	{"income_before_minority_interests", models.IncomeBeforeMinorityInterests, []term{
		plus(models.IncomeBeforeIncomeTaxes), minus(models.IncomeTaxes),
	}},
}

// CheckIncomeStatement evaluates the income statement identities whose
// operands are all present.
func CheckIncomeStatement(s *models.IncomeStatement, tolerance float64) []Check {
	if s == nil {
		return nil
	}
	return evaluateAll(incomeIdentities, s, tolerance)
}

// =============================================================================
// BALANCE SHEET
// =============================================================================

var balanceIdentities = []identity{
	{"total_liabilities", models.TotalLiabilities, []term{plus(models.CurrentLiabilities), plus(models.NoncurrentLiabilities)}},
}

// CheckBalanceSheet evaluates the balance sheet identities whose operands are
// all present.
func CheckBalanceSheet(b *models.BalanceSheet, tolerance float64) []Check {
	if b == nil {
		return nil
	}
	checks := evaluateAll(balanceIdentities, b, tolerance)
	a, l, e := b.Assets.TotalAssets, b.Liabilities.TotalLiabilities, b.Equity.TotalEquity
	if a != nil && l != nil && e != nil {
		checks = append(checks, CheckBalanceEquation(*a, *l, *e, tolerance))
	}
	return checks
}

// CheckBalanceEquation validates assets = liabilities + net assets.
func CheckBalanceEquation(assets, liabilities, netAssets, tolerance float64) Check {
	return newCheck("balance_equation", assets, liabilities+netAssets, tolerance)
}

// =============================================================================
// REPORT
// =============================================================================

// Report checks both statements of a report.
func Report(r *models.QuarterlyReport, tolerance float64) []Check {
	if r == nil {
		return nil
	}
	return append(CheckIncomeStatement(r.IncomeStatement, tolerance), CheckBalanceSheet(r.BalanceSheet, tolerance)...)
}

// Failures filters the checks that did not balance.
func Failures(checks []Check) []Check {
	var out []Check
	for _, c := range checks {
		if !c.IsBalanced {
			out = append(out, c)
		}
	}
	return out
}

func evaluateAll(ids []identity, rec interface{ Get(models.Field) *float64 }, tolerance float64) []Check {
	var checks []Check
	for _, id := range ids {
		if c, ok := id.evaluate(rec, tolerance); ok {
			checks = append(checks, c)
		}
	}
	return checks
}
