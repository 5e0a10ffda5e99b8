package models

// Field identifies one output field of a statement. Its value is also the
// storage column name.
type Field string

// StatementKind names a statement record type.
type StatementKind string

const (
	IncomeStatementKind StatementKind = "income_statement"
	BalanceSheetKind    StatementKind = "balance_sheet"
)

// Income statement fields.
const (
	NetSales                        Field = "net_sales"
	CostOfSales                     Field = "cost_of_sales"
	GrossProfit                     Field = "gross_profit"
	SellingGeneralAdmin             Field = "selling_general_admin"
	OperatingIncome                 Field = "operating_income"
	InterestIncomeNOI               Field = "interest_income_noi"
	DividendsIncomeNOI              Field = "dividends_income_noi"
	InterestAndDividendsIncomeNOI   Field = "interest_and_dividends_income_noi"
	PurchaseDiscountsNOI            Field = "purchase_discounts_noi"
	RentIncomeNOI                   Field = "rent_income_noi"
	HouseRentIncomeNOI              Field = "house_rent_income_noi"
	OtherNOI                        Field = "other_noi"
	NonOperatingIncome              Field = "non_operating_income"
	SalesDiscountsNOE               Field = "sales_discounts_noe"
	RentCostRealEstateNOE           Field = "rent_cost_real_estate_noe"
	OtherNOE                        Field = "other_noe"
	NonOperatingExpenses            Field = "non_operating_expenses"
	OrdinaryIncome                  Field = "ordinary_income"
	GainOnSalesOfNoncurrentAssetsEI Field = "gain_on_sales_of_noncurrent_assets_ei"
	ExtraordinaryIncome             Field = "extraordinary_income"
	IncomeBeforeIncomeTaxes         Field = "income_before_income_taxes"
	IncomeTaxesCurrent              Field = "income_taxes_current"
	IncomeTaxesDeferred             Field = "income_taxes_deferred"
	IncomeTaxes                     Field = "income_taxes"
	IncomeBeforeMinorityInterests   Field = "income_before_minority_interests"
	NetIncome                       Field = "net_income"
)

// Balance sheet fields.
const (
	CashAndDeposits                    Field = "cash_and_deposits"
	NotesAndAccountsReceivableTrade    Field = "notes_and_accounts_receivable_trade"
	ShortTermInvestmentSecurities      Field = "short_term_investment_securities"
	Merchandise                        Field = "merchandise"
	PropertyPlantAndEquipment          Field = "property_plant_and_equipment"
	IntangibleAssets                   Field = "intangible_assets"
	InvestmentsAndOtherAssets          Field = "investments_and_other_assets"
	TotalAssets                        Field = "total_assets"
	CurrentLiabilities                 Field = "current_liabilities"
	NoncurrentLiabilities              Field = "noncurrent_liabilities"
	TotalLiabilities                   Field = "total_liabilities"
	ShareholdersEquity                 Field = "shareholders_equity"
	ValuationAndTranslationAdjustments Field = "valuation_and_translation_adjustments"
	TotalEquity                        Field = "total_equity"
)

// IncomeStatementFields lists income statement fields in column order.
var IncomeStatementFields = []Field{
	NetSales, CostOfSales, GrossProfit, SellingGeneralAdmin, OperatingIncome,
	InterestIncomeNOI, DividendsIncomeNOI, InterestAndDividendsIncomeNOI,
	PurchaseDiscountsNOI, RentIncomeNOI, HouseRentIncomeNOI, OtherNOI,
	NonOperatingIncome, SalesDiscountsNOE, RentCostRealEstateNOE, OtherNOE,
	NonOperatingExpenses, OrdinaryIncome, GainOnSalesOfNoncurrentAssetsEI,
	ExtraordinaryIncome, IncomeBeforeIncomeTaxes, IncomeTaxesCurrent,
	IncomeTaxesDeferred, IncomeTaxes, IncomeBeforeMinorityInterests, NetIncome,
}

// BalanceSheetFields lists balance sheet fields in column order: assets,
// then liabilities, then equity.
var BalanceSheetFields = []Field{
	CashAndDeposits, NotesAndAccountsReceivableTrade, ShortTermInvestmentSecurities,
	Merchandise, PropertyPlantAndEquipment, IntangibleAssets,
	InvestmentsAndOtherAssets, TotalAssets,
	CurrentLiabilities, NoncurrentLiabilities, TotalLiabilities,
	ShareholdersEquity, ValuationAndTranslationAdjustments, TotalEquity,
}

// Fields returns the ordered field list of a statement kind.
func (k StatementKind) Fields() []Field {
	switch k {
	case IncomeStatementKind:
		return IncomeStatementFields
	case BalanceSheetKind:
		return BalanceSheetFields
	default:
		return nil
	}
}

// Has reports whether f belongs to the statement kind.
func (k StatementKind) Has(f Field) bool {
	switch k {
	case IncomeStatementKind:
		_, ok := incomeSlots[f]
		return ok
	case BalanceSheetKind:
		_, ok := balanceSlots[f]
		return ok
	default:
		return false
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// IncomeStatement holds cumulative year-to-date figures. A nil field was not
// reported; it is never the same as zero.
type IncomeStatement struct {
	NetSales                        *float64 `json:"net_sales,omitempty"`
	CostOfSales                     *float64 `json:"cost_of_sales,omitempty"`
	GrossProfit                     *float64 `json:"gross_profit,omitempty"`
	SellingGeneralAdmin             *float64 `json:"selling_general_admin,omitempty"`
	OperatingIncome                 *float64 `json:"operating_income,omitempty"`
	InterestIncomeNOI               *float64 `json:"interest_income_noi,omitempty"`
	DividendsIncomeNOI              *float64 `json:"dividends_income_noi,omitempty"`
	InterestAndDividendsIncomeNOI   *float64 `json:"interest_and_dividends_income_noi,omitempty"`
	PurchaseDiscountsNOI            *float64 `json:"purchase_discounts_noi,omitempty"`
	RentIncomeNOI                   *float64 `json:"rent_income_noi,omitempty"`
	HouseRentIncomeNOI              *float64 `json:"house_rent_income_noi,omitempty"`
	OtherNOI                        *float64 `json:"other_noi,omitempty"`
	NonOperatingIncome              *float64 `json:"non_operating_income,omitempty"`
	SalesDiscountsNOE               *float64 `json:"sales_discounts_noe,omitempty"`
	RentCostRealEstateNOE           *float64 `json:"rent_cost_real_estate_noe,omitempty"`
	OtherNOE                        *float64 `json:"other_noe,omitempty"`
	NonOperatingExpenses            *float64 `json:"non_operating_expenses,omitempty"`
	OrdinaryIncome                  *float64 `json:"ordinary_income,omitempty"`
	GainOnSalesOfNoncurrentAssetsEI *float64 `json:"gain_on_sales_of_noncurrent_assets_ei,omitempty"`
	ExtraordinaryIncome             *float64 `json:"extraordinary_income,omitempty"`
	IncomeBeforeIncomeTaxes         *float64 `json:"income_before_income_taxes,omitempty"`
	IncomeTaxesCurrent              *float64 `json:"income_taxes_current,omitempty"`
	IncomeTaxesDeferred             *float64 `json:"income_taxes_deferred,omitempty"`
	IncomeTaxes                     *float64 `json:"income_taxes,omitempty"`
	IncomeBeforeMinorityInterests   *float64 `json:"income_before_minority_interests,omitempty"`
	NetIncome                       *float64 `json:"net_income,omitempty"`
}

type incomeSlot func(*IncomeStatement) **float64

var incomeSlots = map[Field]incomeSlot{
	NetSales:                        func(s *IncomeStatement) **float64 { return &s.NetSales },
	CostOfSales:                     func(s *IncomeStatement) **float64 { return &s.CostOfSales },
	GrossProfit:                     func(s *IncomeStatement) **float64 { return &s.GrossProfit },
	SellingGeneralAdmin:             func(s *IncomeStatement) **float64 { return &s.SellingGeneralAdmin },
	OperatingIncome:                 func(s *IncomeStatement) **float64 { return &s.OperatingIncome },
	InterestIncomeNOI:               func(s *IncomeStatement) **float64 { return &s.InterestIncomeNOI },
	DividendsIncomeNOI:              func(s *IncomeStatement) **float64 { return &s.DividendsIncomeNOI },
	InterestAndDividendsIncomeNOI:   func(s *IncomeStatement) **float64 { return &s.InterestAndDividendsIncomeNOI },
	PurchaseDiscountsNOI:            func(s *IncomeStatement) **float64 { return &s.PurchaseDiscountsNOI },
	RentIncomeNOI:                   func(s *IncomeStatement) **float64 { return &s.RentIncomeNOI },
	HouseRentIncomeNOI:              func(s *IncomeStatement) **float64 { return &s.HouseRentIncomeNOI },
	OtherNOI:                        func(s *IncomeStatement) **float64 { return &s.OtherNOI },
	NonOperatingIncome:              func(s *IncomeStatement) **float64 { return &s.NonOperatingIncome },
	SalesDiscountsNOE:               func(s *IncomeStatement) **float64 { return &s.SalesDiscountsNOE },
	RentCostRealEstateNOE:           func(s *IncomeStatement) **float64 { return &s.RentCostRealEstateNOE },
	OtherNOE:                        func(s *IncomeStatement) **float64 { return &s.OtherNOE },
	NonOperatingExpenses:            func(s *IncomeStatement) **float64 { return &s.NonOperatingExpenses },
	OrdinaryIncome:                  func(s *IncomeStatement) **float64 { return &s.OrdinaryIncome },
	GainOnSalesOfNoncurrentAssetsEI: func(s *IncomeStatement) **float64 { return &s.GainOnSalesOfNoncurrentAssetsEI },
	ExtraordinaryIncome:             func(s *IncomeStatement) **float64 { return &s.ExtraordinaryIncome },
	IncomeBeforeIncomeTaxes:         func(s *IncomeStatement) **float64 { return &s.IncomeBeforeIncomeTaxes },
	IncomeTaxesCurrent:              func(s *IncomeStatement) **float64 { return &s.IncomeTaxesCurrent },
	IncomeTaxesDeferred:             func(s *IncomeStatement) **float64 { return &s.IncomeTaxesDeferred },
	IncomeTaxes:                     func(s *IncomeStatement) **float64 { return &s.IncomeTaxes },
	IncomeBeforeMinorityInterests:   func(s *IncomeStatement) **float64 { return &s.IncomeBeforeMinorityInterests },
	NetIncome:                       func(s *IncomeStatement) **float64 { return &s.NetIncome },
}

// Kind returns IncomeStatementKind.
func (s *IncomeStatement) Kind() StatementKind { return IncomeStatementKind }

// Set stores v in field f. It returns false when f is not an income
// statement field.
func (s *IncomeStatement) Set(f Field, v float64) bool {
	slot, ok := incomeSlots[f]
	if !ok {
		return false
	}
	*slot(s) = &v
	return true
}

// Get returns the value of field f, or nil when absent or unknown.
func (s *IncomeStatement) Get(f Field) *float64 {
	slot, ok := incomeSlots[f]
	if !ok || s == nil {
		return nil
	}
	return *slot(s)
}

// Populated counts the fields that carry a value.
func (s *IncomeStatement) Populated() int {
	return countPopulated(s, IncomeStatementFields)
}

// Assets groups the asset side of a balance sheet.
type Assets struct {
	CashAndDeposits                 *float64 `json:"cash_and_deposits,omitempty"`
	NotesAndAccountsReceivableTrade *float64 `json:"notes_and_accounts_receivable_trade,omitempty"`
	ShortTermInvestmentSecurities   *float64 `json:"short_term_investment_securities,omitempty"`
	Merchandise                     *float64 `json:"merchandise,omitempty"`
	PropertyPlantAndEquipment       *float64 `json:"property_plant_and_equipment,omitempty"`
	IntangibleAssets                *float64 `json:"intangible_assets,omitempty"`
	InvestmentsAndOtherAssets       *float64 `json:"investments_and_other_assets,omitempty"`
	TotalAssets                     *float64 `json:"total_assets,omitempty"`
}

// Liabilities groups the liability side of a balance sheet.
type Liabilities struct {
	CurrentLiabilities    *float64 `json:"current_liabilities,omitempty"`
	NoncurrentLiabilities *float64 `json:"noncurrent_liabilities,omitempty"`
	TotalLiabilities      *float64 `json:"total_liabilities,omitempty"`
}

// Equity groups net assets.
type Equity struct {
	ShareholdersEquity                 *float64 `json:"shareholders_equity,omitempty"`
	ValuationAndTranslationAdjustments *float64 `json:"valuation_and_translation_adjustments,omitempty"`
	TotalEquity                        *float64 `json:"total_equity,omitempty"`
}

// BalanceSheet holds quarter-end snapshot figures.
type BalanceSheet struct {
	Assets      Assets      `json:"assets"`
	Liabilities Liabilities `json:"liabilities"`
	Equity      Equity      `json:"equity"`
}

type balanceSlot func(*BalanceSheet) **float64

var balanceSlots = map[Field]balanceSlot{
	CashAndDeposits:                    func(b *BalanceSheet) **float64 { return &b.Assets.CashAndDeposits },
	NotesAndAccountsReceivableTrade:    func(b *BalanceSheet) **float64 { return &b.Assets.NotesAndAccountsReceivableTrade },
	ShortTermInvestmentSecurities:      func(b *BalanceSheet) **float64 { return &b.Assets.ShortTermInvestmentSecurities },
	Merchandise:                        func(b *BalanceSheet) **float64 { return &b.Assets.Merchandise },
	PropertyPlantAndEquipment:          func(b *BalanceSheet) **float64 { return &b.Assets.PropertyPlantAndEquipment },
	IntangibleAssets:                   func(b *BalanceSheet) **float64 { return &b.Assets.IntangibleAssets },
	InvestmentsAndOtherAssets:          func(b *BalanceSheet) **float64 { return &b.Assets.InvestmentsAndOtherAssets },
	TotalAssets:                        func(b *BalanceSheet) **float64 { return &b.Assets.TotalAssets },
	CurrentLiabilities:                 func(b *BalanceSheet) **float64 { return &b.Liabilities.CurrentLiabilities },
	NoncurrentLiabilities:              func(b *BalanceSheet) **float64 { return &b.Liabilities.NoncurrentLiabilities },
	TotalLiabilities:                   func(b *BalanceSheet) **float64 { return &b.Liabilities.TotalLiabilities },
	ShareholdersEquity:                 func(b *BalanceSheet) **float64 { return &b.Equity.ShareholdersEquity },
	ValuationAndTranslationAdjustments: func(b *BalanceSheet) **float64 { return &b.Equity.ValuationAndTranslationAdjustments },
	TotalEquity:                        func(b *BalanceSheet) **float64 { return &b.Equity.TotalEquity },
}

// Kind returns BalanceSheetKind.
func (b *BalanceSheet) Kind() StatementKind { return BalanceSheetKind }

// Set stores v in field f. It returns false when f is not a balance sheet
// field.
func (b *BalanceSheet) Set(f Field, v float64) bool {
	slot, ok := balanceSlots[f]
	if !ok {
		return false
	}
	*slot(b) = &v
	return true
}

// Get returns the value of field f, or nil when absent or unknown.
func (b *BalanceSheet) Get(f Field) *float64 {
	slot, ok := balanceSlots[f]
	if !ok || b == nil {
		return nil
	}
	return *slot(b)
}

// Populated counts the fields that carry a value.
func (b *BalanceSheet) Populated() int {
	return countPopulated(b, BalanceSheetFields)
}

func countPopulated(r interface{ Get(Field) *float64 }, fields []Field) int {
	n := 0
	for _, f := range fields {
		if r.Get(f) != nil {
			n++
		}
	}
	return n
}
