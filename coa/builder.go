package coa

import "fmt"

// Complexity is the chart's target size tier.
type Complexity string

const (
	ComplexitySmall  Complexity = "small"  // ~100 accounts
	ComplexityMedium Complexity = "medium" // ~400 accounts
	ComplexityLarge  Complexity = "large"  // ~2500 accounts
)

// targetSize returns the approximate account count for a complexity tier.
func targetSize(c Complexity) int {
	switch c {
	case ComplexitySmall:
		return 100
	case ComplexityMedium:
		return 400
	case ComplexityLarge:
		return 2500
	default:
		return 100
	}
}

// Industry tags the industry-specific type-weighting preset.
type Industry string

const (
	IndustryManufacturing Industry = "manufacturing"
	IndustryRetail        Industry = "retail"
	IndustryFinancial     Industry = "financial_services"
	IndustryTechnology    Industry = "technology"
	IndustryHealthcare    Industry = "healthcare"
)

// typeWeights gives each industry's relative emphasis across the five
// account types, used to decide how many non-canonical accounts of each
// type to synthesize once the canonical control accounts are seeded.
var typeWeights = map[Industry]map[AccountType]float64{
	IndustryManufacturing: {Asset: 0.34, Liability: 0.18, Equity: 0.06, Revenue: 0.14, Expense: 0.28},
	IndustryRetail:        {Asset: 0.30, Liability: 0.18, Equity: 0.06, Revenue: 0.20, Expense: 0.26},
	IndustryFinancial:     {Asset: 0.45, Liability: 0.30, Equity: 0.08, Revenue: 0.08, Expense: 0.09},
	IndustryTechnology:    {Asset: 0.26, Liability: 0.14, Equity: 0.10, Revenue: 0.24, Expense: 0.26},
	IndustryHealthcare:    {Asset: 0.28, Liability: 0.16, Equity: 0.06, Revenue: 0.22, Expense: 0.28},
}

// subtypesByIndustry biases each industry's generated subtype labels;
// manufacturing emphasizes inventory/fixed-asset subtypes, financial
// services emphasizes loan/investment subtypes, per spec.md 4.3.
var subtypesByIndustry = map[Industry]map[AccountType][]string{
	IndustryManufacturing: {
		Asset:     {"inventory_raw_materials", "inventory_wip", "inventory_finished_goods", "fixed_asset_equipment", "fixed_asset_building", "cash_and_equivalents"},
		Liability: {"accounts_payable_trade", "accrued_liabilities", "notes_payable"},
		Equity:    {"common_stock", "retained_earnings_reserve"},
		Revenue:   {"product_sales", "scrap_sales"},
		Expense:   {"cost_of_goods_sold", "factory_overhead", "freight_out"},
	},
	IndustryFinancial: {
		Asset:     {"loans_receivable", "investment_securities", "cash_and_equivalents"},
		Liability: {"customer_deposits", "notes_payable"},
		Equity:    {"common_stock", "retained_earnings_reserve"},
		Revenue:   {"interest_income", "fee_income"},
		Expense:   {"interest_expense", "loan_loss_provision"},
	},
}

var defaultSubtypes = map[AccountType][]string{
	Asset:     {"cash_and_equivalents", "accounts_receivable", "prepaid_expenses", "fixed_asset_equipment"},
	Liability: {"accounts_payable_trade", "accrued_liabilities", "deferred_revenue"},
	Equity:    {"common_stock", "retained_earnings_reserve", "additional_paid_in_capital"},
	Revenue:   {"product_sales", "service_revenue"},
	Expense:   {"cost_of_goods_sold", "operating_expense", "payroll_expense"},
}

// Options configures Build.
type Options struct {
	Industry   Industry
	Complexity Complexity
	MinDepth   int
	MaxDepth   int
}

// Build produces a new Chart for companyCode matching opts, guaranteeing
// that every canonical control account from §6 is present at its fixed
// code.
func Build(companyCode string, opts Options) (*Chart, error) {
	if opts.MinDepth < 1 {
		opts.MinDepth = 2
	}
	if opts.MaxDepth < opts.MinDepth {
		opts.MaxDepth = 5
	}

	c := &Chart{
		CompanyCode: companyCode,
		Accounts:    make(map[string]GLAccount),
		byType:      make(map[AccountType][]string),
	}

	seedCanonicalAccounts(c)

	weights := typeWeights[opts.Industry]
	if weights == nil {
		weights = typeWeights[IndustryManufacturing]
	}

	subtypes := subtypesByIndustry[opts.Industry]
	if subtypes == nil {
		subtypes = defaultSubtypes
	}

	target := targetSize(opts.Complexity)
	remaining := target - len(c.Accounts)
	if remaining < 0 {
		remaining = 0
	}

	nextCode := map[AccountType]int{
		Asset: 1010, Liability: 2010, Equity: 3010, Revenue: 4010, Expense: 5010,
	}

	order := []AccountType{Asset, Liability, Equity, Revenue, Expense}
	for _, t := range order {
		count := int(float64(remaining) * weights[t])
		st := subtypes[t]
		if len(st) == 0 {
			st = defaultSubtypes[t]
		}

		parentCode := rootCodeForType(t)
		for i := 0; i < count; i++ {
			code := fmt.Sprintf("%d", nextCode[t])
			nextCode[t] += 10
			for c.Exists(code) {
				// skip codes already claimed by a canonical control account
				code = fmt.Sprintf("%d", nextCode[t])
				nextCode[t] += 10
			}

			depth := 1
			parent := parentCode
			if opts.MaxDepth > 2 && i%5 == 0 && i > 0 {
				// occasionally nest under the previously created sibling,
				// building depth up to MaxDepth
				if prev, ok := c.Accounts[lastCodeOfType(c, t)]; ok && prev.Depth+1 <= opts.MaxDepth {
					parent = prev.Code
					depth = prev.Depth + 1
				}
			}

			acct := GLAccount{
				Code:       code,
				Name:       fmt.Sprintf("%s %d", st[i%len(st)], i+1),
				Type:       t,
				Subtype:    st[i%len(st)],
				ParentCode: parent,
				Depth:      depth,
			}
			c.Accounts[code] = acct
			c.byType[t] = append(c.byType[t], code)
		}
	}

	return c, nil
}

func lastCodeOfType(c *Chart, t AccountType) string {
	codes := c.byType[t]
	if len(codes) == 0 {
		return ""
	}
	return codes[len(codes)-1]
}

// rootCodeForType returns the canonical root account code that seeds the
// given type's hierarchy, so every non-canonical account of that type has
// an ancestor chain terminating at a canonical, always-present root.
func rootCodeForType(t AccountType) string {
	switch t {
	case Asset:
		return CodeCash
	case Liability:
		return CodeAccountsPayable
	case Equity:
		return CodeRetainedEarnings
	case Revenue:
		return CodeRevenue
	case Expense:
		return CodeCOGS
	default:
		return ""
	}
}

func seedCanonicalAccounts(c *Chart) {
	canonical := []GLAccount{
		{Code: CodeCash, Name: "Cash and Cash Equivalents", Type: Asset, Subtype: "cash_and_equivalents", Depth: 0},
		{Code: CodeAccountsReceivable, Name: "Accounts Receivable", Type: Asset, Subtype: "accounts_receivable", Depth: 0},
		{Code: CodeInventory, Name: "Inventory", Type: Asset, Subtype: "inventory", Depth: 0},
		{Code: CodeAccountsPayable, Name: "Accounts Payable", Type: Liability, Subtype: "accounts_payable_trade", Depth: 0},
		{Code: CodeIntercompany, Name: "Intercompany Clearing", Type: Liability, Subtype: "intercompany_control", Depth: 0},
		{Code: CodeRetainedEarnings, Name: "Retained Earnings", Type: Equity, Subtype: "retained_earnings", Depth: 0},
		{Code: CodeRevenue, Name: "Revenue", Type: Revenue, Subtype: "product_sales", Depth: 0},
		{Code: CodeCOGS, Name: "Cost of Goods Sold", Type: Expense, Subtype: "cost_of_goods_sold", Depth: 0},
	}

	for _, a := range canonical {
		c.Accounts[a.Code] = a
		c.byType[a.Type] = append(c.byType[a.Type], a.Code)
	}
}
