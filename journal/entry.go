// Package journal implements the balanced journal-entry construction
// algorithm: the critical routine that, given a target amount and line
// count, guarantees sum(debit) == sum(credit) exactly on every entry it
// produces.
package journal

import (
	"time"

	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/types"
)

// Source is the transaction source tag.
type Source string

const (
	SourceManual    Source = "manual"
	SourceInterface Source = "interface"
	SourceBatch     Source = "batch"
	SourceRecurring Source = "recurring"
	SourceAdjustment Source = "adjustment"
)

// Process is the business-process category.
type Process string

const (
	ProcessO2C Process = "O2C"
	ProcessP2P Process = "P2P"
	ProcessR2R Process = "R2R"
	ProcessH2R Process = "H2R"
	ProcessA2R Process = "A2R"
)

// Header carries a journal entry's non-line metadata.
type Header struct {
	ID               id.JournalEntryID
	CompanyCode      string
	FiscalYear       int
	FiscalPeriod     int
	PostingDate      time.Time
	DocumentDate     time.Time
	CreatedAt        time.Time
	Source           Source
	Process          Process
	FraudMarker      bool
	FraudType        string
	SOXRelevant      bool
	ControlStatus    string
}

// Line is a single journal-entry line. Exactly one of Debit/Credit is
// non-zero.
type Line struct {
	AccountCode string
	Debit       types.Money
	Credit      types.Money
	CostCenter  string
	ProfitCenter string
	Segment     string
	Description string
}

// IsDebit reports whether this line is a debit line.
func (l Line) IsDebit() bool { return l.Debit.Amount > 0 }

// Entry is a full journal entry: header plus ordered lines.
type Entry struct {
	Header Header
	Lines  []Line
}

// SumDebits returns the exact sum of all debit amounts.
func (e Entry) SumDebits() types.Money {
	sum := types.Zero(e.currency())
	for _, l := range e.Lines {
		if l.IsDebit() {
			sum = sum.Add(l.Debit)
		}
	}
	return sum
}

// SumCredits returns the exact sum of all credit amounts.
func (e Entry) SumCredits() types.Money {
	sum := types.Zero(e.currency())
	for _, l := range e.Lines {
		if !l.IsDebit() {
			sum = sum.Add(l.Credit)
		}
	}
	return sum
}

// IsBalanced reports whether sum(debit) == sum(credit) exactly, the hard
// post-condition every entry must satisfy.
func (e Entry) IsBalanced() bool {
	return e.SumDebits().Equal(e.SumCredits())
}

func (e Entry) currency() string {
	for _, l := range e.Lines {
		if l.IsDebit() {
			return l.Debit.Currency
		}
		return l.Credit.Currency
	}
	return "usd"
}

// ReferencesOnlyExistingAccounts reports whether every line's account
// exists in chart — invariant (c) from the data model.
func (e Entry) ReferencesOnlyExistingAccounts(chart *coa.Chart) bool {
	for _, l := range e.Lines {
		if !chart.Exists(l.AccountCode) {
			return false
		}
	}
	return true
}
