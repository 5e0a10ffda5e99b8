package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"edinet_ingest/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTables(t *testing.T) {
	income := IncomeStatement()
	assert.Equal(t, models.IncomeStatementKind, income.Kind())
	assert.Equal(t, 26, income.Len())

	balance := BalanceSheet()
	assert.Equal(t, models.BalanceSheetKind, balance.Kind())
	assert.Equal(t, 14, balance.Len())

	f, ok := income.Lookup("jppfs_cor:SellingGeneralAndAdministrativeExpenses")
	require.True(t, ok)
	assert.Equal(t, models.SellingGeneralAdmin, f)

	f, ok = balance.Lookup("jppfs_cor:NetAssets")
	require.True(t, ok)
	assert.Equal(t, models.TotalEquity, f)

	// Exact names only.
	_, ok = income.Lookup("NetSales")
	assert.False(t, ok)
	_, ok = income.Lookup("jppfs_cor:netsales")
	assert.False(t, ok)
}

func TestBuiltinTablesCoverEveryField(t *testing.T) {
	for _, kind := range []models.StatementKind{models.IncomeStatementKind, models.BalanceSheetKind} {
		table, err := For(kind)
		require.NoError(t, err)

		covered := make(map[models.Field]bool)
		for _, name := range table.Names() {
			f, _ := table.Lookup(name)
			assert.True(t, kind.Has(f), "%s maps to foreign field %s", name, f)
			covered[f] = true
		}
		for _, f := range kind.Fields() {
			assert.True(t, covered[f], "%s field %s has no tag", kind, f)
		}
	}

	_, err := For("cash_flow")
	assert.Error(t, err)
}

func TestTable_WithDoesNotMutate(t *testing.T) {
	base := IncomeStatement()
	ext, err := base.With(map[string]models.Field{
		"jpigp_cor:RevenueIFRS": models.NetSales,
		"jppfs_cor:NetSales":    models.GrossProfit,
	})
	require.NoError(t, err)

	assert.Equal(t, 27, ext.Len())
	f, _ := ext.Lookup("jppfs_cor:NetSales")
	assert.Equal(t, models.GrossProfit, f)

	assert.Equal(t, 26, base.Len())
	f, _ = base.Lookup("jppfs_cor:NetSales")
	assert.Equal(t, models.NetSales, f)
	_, ok := base.Lookup("jpigp_cor:RevenueIFRS")
	assert.False(t, ok)
}

func TestTable_RejectsForeignFields(t *testing.T) {
	_, err := BalanceSheet().With(map[string]models.Field{"x:Sales": models.NetSales})
	assert.Error(t, err)

	_, err = New(models.IncomeStatementKind, map[string]models.Field{"": models.NetSales})
	assert.Error(t, err)

	_, err = New(models.IncomeStatementKind, map[string]models.Field{"x:Y": "no_such_field"})
	assert.Error(t, err)
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
income_statement:
  jpigp_cor:RevenueIFRS: net_sales
  jpigp_cor:ProfitLossIFRS: net_income
balance_sheet:
  jpigp_cor:AssetsIFRS: total_assets
`), 0o644))

	o, err := LoadOverlay(path)
	require.NoError(t, err)

	income, balance, err := o.Apply(IncomeStatement(), BalanceSheet())
	require.NoError(t, err)
	assert.Equal(t, 28, income.Len())
	assert.Equal(t, 15, balance.Len())

	f, ok := balance.Lookup("jpigp_cor:AssetsIFRS")
	require.True(t, ok)
	assert.Equal(t, models.TotalAssets, f)
}

func TestParseOverlay_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown section", "cash_flow:\n  a:B: net_sales\n"},
		{"malformed", "income_statement: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverlay([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	o, err := ParseOverlay([]byte("balance_sheet:\n  a:B: net_sales\n"))
	require.NoError(t, err)
	_, _, err = o.Apply(IncomeStatement(), BalanceSheet())
	assert.Error(t, err, "income field in balance sheet section")

	_, err = LoadOverlay(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOverlay_NilApply(t *testing.T) {
	var o *Overlay
	income, balance, err := o.Apply(IncomeStatement(), BalanceSheet())
	require.NoError(t, err)
	assert.Same(t, IncomeStatement(), income)
	assert.Same(t, BalanceSheet(), balance)
}
