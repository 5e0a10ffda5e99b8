package validate

import (
	"testing"

	"edinet_ingest/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomeOf(values map[models.Field]float64) *models.IncomeStatement {
	s := &models.IncomeStatement{}
	for f, v := range values {
		s.Set(f, v)
	}
	return s
}

func balanceOf(values map[models.Field]float64) *models.BalanceSheet {
	b := &models.BalanceSheet{}
	for f, v := range values {
		b.Set(f, v)
	}
	return b
}

// =============================================================================
// INCOME STATEMENT
// =============================================================================

func TestCheckIncomeStatement(t *testing.T) {
	tests := []struct {
		name     string
		values   map[models.Field]float64
		want     []string
		balanced bool
	}{
		{
			name:     "gross profit ties",
			values:   map[models.Field]float64{models.NetSales: 1000, models.CostOfSales: 600, models.GrossProfit: 400},
			want:     []string{"gross_profit"},
			balanced: true,
		},
		{
			name:     "gross profit off",
			values:   map[models.Field]float64{models.NetSales: 1000, models.CostOfSales: 600, models.GrossProfit: 450},
			want:     []string{"gross_profit"},
			balanced: false,
		},
		{
			name: "operating and ordinary chain",
			values: map[models.Field]float64{
				models.GrossProfit: 400, models.SellingGeneralAdmin: 250, models.OperatingIncome: 150,
				models.NonOperatingIncome: 20, models.NonOperatingExpenses: 5, models.OrdinaryIncome: 165,
			},
			want:     []string{"operating_income", "ordinary_income"},
			balanced: true,
		},
		{
			name: "taxes and pre-minority income",
			values: map[models.Field]float64{
				models.IncomeTaxesCurrent: 30, models.IncomeTaxesDeferred: -2, models.IncomeTaxes: 28,
				models.IncomeBeforeIncomeTaxes: 100, models.IncomeBeforeMinorityInterests: 72,
			},
			want:     []string{"income_taxes", "income_before_minority_interests"},
			balanced: true,
		},
		{
			name:   "missing operand skips the check",
			values: map[models.Field]float64{models.NetSales: 1000, models.GrossProfit: 400},
			want:   nil,
		},
		{
			name:   "missing reported figure skips the check",
			values: map[models.Field]float64{models.NetSales: 1000, models.CostOfSales: 600},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := CheckIncomeStatement(incomeOf(tt.values), DefaultTolerance)
			var names []string
			for _, c := range checks {
				names = append(names, c.Name)
				assert.Equal(t, tt.balanced, c.IsBalanced, c.String())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCheckIncomeStatement_Nil(t *testing.T) {
	assert.Nil(t, CheckIncomeStatement(nil, DefaultTolerance))
}

// =============================================================================
// BALANCE SHEET
// =============================================================================

func TestCheckBalanceSheet(t *testing.T) {
	b := balanceOf(map[models.Field]float64{
		models.TotalAssets:           5000,
		models.CurrentLiabilities:    1200,
		models.NoncurrentLiabilities: 800,
		models.TotalLiabilities:      2000,
		models.TotalEquity:           3000,
	})

	checks := CheckBalanceSheet(b, DefaultTolerance)
	require.Len(t, checks, 2)
	assert.Equal(t, "total_liabilities", checks[0].Name)
	assert.Equal(t, "balance_equation", checks[1].Name)
	assert.Empty(t, Failures(checks))
}

func TestCheckBalanceEquation(t *testing.T) {
	tests := []struct {
		name        string
		assets      float64
		liabilities float64
		netAssets   float64
		want        bool
	}{
		{"exact", 5000, 2000, 3000, true},
		{"rounding within tolerance", 1_000_000, 400_000, 599_500, true},
		{"real gap", 5000, 2000, 2500, false},
		{"all zero", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CheckBalanceEquation(tt.assets, tt.liabilities, tt.netAssets, DefaultTolerance)
			assert.Equal(t, tt.want, c.IsBalanced, c.String())
			assert.Equal(t, tt.assets-(tt.liabilities+tt.netAssets), c.Difference)
		})
	}
}

// =============================================================================
// REPORT
// =============================================================================

func TestReport(t *testing.T) {
	r := &models.QuarterlyReport{
		DocID: "S1",
		IncomeStatement: incomeOf(map[models.Field]float64{
			models.NetSales: 1000, models.CostOfSales: 600, models.GrossProfit: 350,
		}),
		BalanceSheet: balanceOf(map[models.Field]float64{
			models.TotalAssets: 5000, models.TotalLiabilities: 2000, models.TotalEquity: 3000,
		}),
	}

	checks := Report(r, DefaultTolerance)
	require.Len(t, checks, 2)

	failed := Failures(checks)
	require.Len(t, failed, 1)
	assert.Equal(t, "gross_profit", failed[0].Name)
	assert.Equal(t, -50.0, failed[0].Difference)
	assert.Contains(t, failed[0].String(), "MISMATCH")

	assert.Nil(t, Report(nil, DefaultTolerance))
	assert.Empty(t, Report(&models.QuarterlyReport{DocID: "S2"}, DefaultTolerance))
}
