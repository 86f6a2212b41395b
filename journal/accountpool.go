package journal

import "github.com/synthgl/genengine/coa"

// ChartAccountPool is the default AccountPool: it biases candidates by
// business process per spec.md 4.6 step 6 (P2P lines bias toward expense +
// AP; O2C toward revenue + AR; R2R toward accrual accounts).
type ChartAccountPool struct {
	Chart *coa.Chart
}

// Candidates implements AccountPool.
func (p ChartAccountPool) Candidates(process Process, debitSide bool) []string {
	switch process {
	case ProcessP2P:
		if debitSide {
			return firstNonEmpty(p.Chart.CodesByType(coa.Expense), []string{coa.CodeCOGS})
		}
		return []string{coa.CodeAccountsPayable}
	case ProcessO2C:
		if debitSide {
			return []string{coa.CodeAccountsReceivable}
		}
		return firstNonEmpty(p.Chart.CodesByType(coa.Revenue), []string{coa.CodeRevenue})
	case ProcessR2R:
		if debitSide {
			return firstNonEmpty(p.Chart.CodesByType(coa.Expense), []string{coa.CodeCOGS})
		}
		return firstNonEmpty(p.Chart.CodesByType(coa.Liability), []string{coa.CodeAccountsPayable})
	default:
		if debitSide {
			return firstNonEmpty(p.Chart.CodesByType(coa.Asset), []string{coa.CodeCash})
		}
		return firstNonEmpty(p.Chart.CodesByType(coa.Liability), []string{coa.CodeAccountsPayable})
	}
}

func firstNonEmpty(primary, fallback []string) []string {
	if len(primary) > 0 {
		return primary
	}
	return fallback
}
