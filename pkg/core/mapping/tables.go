// Package mapping holds the declarative association of qualified tag names
// to statement fields. Recognising a new tag means adding an entry here (or
// in an overlay file); the resolver never changes.
package mapping

import (
	"sort"

	"edinet_ingest/pkg/models"

	"github.com/cockroachdb/errors"
)

var incomeStatementTags = map[string]models.Field{
	"jppfs_cor:NetSales":                                models.NetSales,
	"jppfs_cor:CostOfSales":                             models.CostOfSales,
	"jppfs_cor:GrossProfit":                             models.GrossProfit,
	"jppfs_cor:SellingGeneralAndAdministrativeExpenses": models.SellingGeneralAdmin,
	"jppfs_cor:OperatingIncome":                         models.OperatingIncome,
	"jppfs_cor:InterestIncomeNOI":                       models.InterestIncomeNOI,
	"jppfs_cor:DividendsIncomeNOI":                      models.DividendsIncomeNOI,
	"jppfs_cor:InterestAndDividendsIncomeNOI":           models.InterestAndDividendsIncomeNOI,
	"jppfs_cor:PurchaseDiscountsNOI":                    models.PurchaseDiscountsNOI,
	"jppfs_cor:RentIncomeNOI":                           models.RentIncomeNOI,
	"jppfs_cor:HouseRentIncomeNOI":                      models.HouseRentIncomeNOI,
	"jppfs_cor:OtherNOI":                                models.OtherNOI,
	"jppfs_cor:NonOperatingIncome":                      models.NonOperatingIncome,
	"jppfs_cor:SalesDiscountsNOE":                       models.SalesDiscountsNOE,
	"jppfs_cor:RentCostOfRealEstateNOE":                 models.RentCostRealEstateNOE,
	"jppfs_cor:OtherNOE":                                models.OtherNOE,
	"jppfs_cor:NonOperatingExpenses":                    models.NonOperatingExpenses,
	"jppfs_cor:OrdinaryIncome":                          models.OrdinaryIncome,
	"jppfs_cor:GainOnSalesOfNoncurrentAssetsEI":         models.GainOnSalesOfNoncurrentAssetsEI,
	"jppfs_cor:ExtraordinaryIncome":                     models.ExtraordinaryIncome,
	"jppfs_cor:IncomeBeforeIncomeTaxes":                 models.IncomeBeforeIncomeTaxes,
	"jppfs_cor:IncomeTaxesCurrent":                      models.IncomeTaxesCurrent,
	"jppfs_cor:IncomeTaxesDeferred":                     models.IncomeTaxesDeferred,
	"jppfs_cor:IncomeTaxes":                             models.IncomeTaxes,
	"jppfs_cor:IncomeBeforeMinorityInterests":           models.IncomeBeforeMinorityInterests,
	"jppfs_cor:NetIncome":                               models.NetIncome,
}

var balanceSheetTags = map[string]models.Field{
	// Assets
	"jppfs_cor:CashAndDeposits":                 models.CashAndDeposits,
	"jppfs_cor:NotesAndAccountsReceivableTrade": models.NotesAndAccountsReceivableTrade,
	"jppfs_cor:ShortTermInvestmentSecurities":   models.ShortTermInvestmentSecurities,
	"jppfs_cor:Merchandise":                     models.Merchandise,
	"jppfs_cor:PropertyPlantAndEquipment":       models.PropertyPlantAndEquipment,
	"jppfs_cor:IntangibleAssets":                models.IntangibleAssets,
	"jppfs_cor:InvestmentsAndOtherAssets":       models.InvestmentsAndOtherAssets,
	"jppfs_cor:Assets":                          models.TotalAssets,

	// Liabilities
	"jppfs_cor:CurrentLiabilities":    models.CurrentLiabilities,
	"jppfs_cor:NoncurrentLiabilities": models.NoncurrentLiabilities,
	"jppfs_cor:Liabilities":           models.TotalLiabilities,

	// Equity
	"jppfs_cor:ShareholdersEquity":                 models.ShareholdersEquity,
	"jppfs_cor:ValuationAndTranslationAdjustments": models.ValuationAndTranslationAdjustments,
	"jppfs_cor:NetAssets":                          models.TotalEquity,
}

var (
	incomeStatement = &Table{kind: models.IncomeStatementKind, entries: incomeStatementTags}
	balanceSheet    = &Table{kind: models.BalanceSheetKind, entries: balanceSheetTags}
)

// IncomeStatement returns the built-in income statement table.
func IncomeStatement() *Table { return incomeStatement }

// BalanceSheet returns the built-in balance sheet table.
func BalanceSheet() *Table { return balanceSheet }

// For returns the built-in table of a statement kind.
func For(kind models.StatementKind) (*Table, error) {
	switch kind {
	case models.IncomeStatementKind:
		return incomeStatement, nil
	case models.BalanceSheetKind:
		return balanceSheet, nil
	default:
		return nil, errors.Newf("mapping: unknown statement kind %q", kind)
	}
}

// Table maps qualified tag names to the fields of one statement kind. A Table
// is immutable and safe for concurrent use.
type Table struct {
	kind    models.StatementKind
	entries map[string]models.Field
}

// New builds a table, rejecting fields that do not belong to kind.
func New(kind models.StatementKind, entries map[string]models.Field) (*Table, error) {
	t := &Table{kind: kind, entries: make(map[string]models.Field, len(entries))}
	return t.merge(entries)
}

// Lookup returns the field a qualified tag name maps to.
func (t *Table) Lookup(name string) (models.Field, bool) {
	f, ok := t.entries[name]
	return f, ok
}

// Len returns the number of mapped tag names.
func (t *Table) Len() int { return len(t.entries) }

// Kind returns the statement kind the table fills.
func (t *Table) Kind() models.StatementKind { return t.kind }

// Names returns the mapped tag names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for n := range t.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// With returns a copy of t extended by entries. Entries for an existing tag
// name replace it. t itself is not modified.
func (t *Table) With(entries map[string]models.Field) (*Table, error) {
	out := &Table{kind: t.kind, entries: make(map[string]models.Field, len(t.entries)+len(entries))}
	for n, f := range t.entries {
		out.entries[n] = f
	}
	return out.merge(entries)
}

func (t *Table) merge(entries map[string]models.Field) (*Table, error) {
	for name, f := range entries {
		if name == "" {
			return nil, errors.Newf("mapping: empty tag name for field %q", f)
		}
		if !t.kind.Has(f) {
			return nil, errors.Newf("mapping: %s is not a %s field (tag %s)", f, t.kind, name)
		}
		t.entries[name] = f
	}
	return t, nil
}
