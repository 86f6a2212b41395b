// Package balance maintains running per-account, per-company balances as
// journal entries are emitted, produces trial balances at period
// boundaries, and matches intercompany transaction pairs for elimination.
package balance

import (
	"sort"
	"sync"

	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/types"
)

// AccountBalance is one account's net position at a point in time.
type AccountBalance struct {
	AccountCode string
	Debit       types.Money
	Credit      types.Money
}

// Net returns debit-minus-credit.
func (b AccountBalance) Net() types.Money { return b.Debit.Subtract(b.Credit) }

// Period identifies a fiscal year/period pair.
type Period struct {
	Year   int
	Period int
}

// TrialBalance is a period-end snapshot of every account's totals.
type TrialBalance struct {
	CompanyCode string
	Period      Period
	Accounts    []AccountBalance
}

// AccountingIdentityHolds reports whether Assets - Liabilities - Equity -
// (Revenue - Expense) == 0, the universal trial-balance invariant.
func (tb TrialBalance) AccountingIdentityHolds(chart *coa.Chart) bool {
	total := int64(0)
	for _, ab := range tb.Accounts {
		acct, ok := chart.Get(ab.AccountCode)
		if !ok {
			continue
		}
		net := ab.Net().Amount // debit minus credit
		// Liability, Equity and Revenue enter the identity at their natural
		// credit balance, which is -net.
		switch acct.Type {
		case coa.Asset:
			total += net
		case coa.Liability:
			total -= -net
		case coa.Equity:
			total -= -net
		case coa.Revenue:
			total -= -net
		case coa.Expense:
			total += net
		}
	}
	return total == 0
}

// Tracker maintains one running balance table per company, safe for
// concurrent use by multiple generation workers posting distinct entries.
type Tracker struct {
	mu       sync.Mutex
	balances map[string]map[string]AccountBalance // company -> account -> balance
	opening  map[string][]AccountBalance
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		balances: make(map[string]map[string]AccountBalance),
		opening:  make(map[string][]AccountBalance),
	}
}

// SeedOpeningBalances computes and stores a company's opening balances
// once, at chart-build time — the single resolved shape for this concern
// (spec design note: the historical dual schema is unified here).
func (t *Tracker) SeedOpeningBalances(companyCode string, chart *coa.Chart, opening []AccountBalance) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.opening[companyCode] = opening
	table := make(map[string]AccountBalance, len(opening))
	for _, ob := range opening {
		table[ob.AccountCode] = ob
	}
	t.balances[companyCode] = table
}

// OpeningBalances returns the stored opening balances for companyCode.
func (t *Tracker) OpeningBalances(companyCode string) []AccountBalance {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opening[companyCode]
}

// Post applies every line of entry to the running balance table.
func (t *Tracker) Post(entry journal.Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	table, ok := t.balances[entry.Header.CompanyCode]
	if !ok {
		table = make(map[string]AccountBalance)
		t.balances[entry.Header.CompanyCode] = table
	}

	for _, line := range entry.Lines {
		ab := table[line.AccountCode]
		ab.AccountCode = line.AccountCode
		if ab.Debit.Currency == "" {
			ab.Debit = types.Zero(line.Debit.Currency)
			ab.Credit = types.Zero(line.Debit.Currency)
		}
		ab.Debit = ab.Debit.Add(line.Debit)
		ab.Credit = ab.Credit.Add(line.Credit)
		table[line.AccountCode] = ab
	}
}

// TrialBalance computes the current trial balance for companyCode/period
// by folding the running ledger, in stable account-code order.
func (t *Tracker) TrialBalance(companyCode string, period Period, chart *coa.Chart) TrialBalance {
	t.mu.Lock()
	defer t.mu.Unlock()

	table := t.balances[companyCode]
	tb := TrialBalance{CompanyCode: companyCode, Period: period}

	codes := make([]string, 0, len(chart.Accounts))
	for code := range chart.Accounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if ab, ok := table[code]; ok {
			tb.Accounts = append(tb.Accounts, ab)
		}
	}

	return tb
}
