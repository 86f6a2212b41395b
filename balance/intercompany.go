package balance

import (
	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/types"
)

// ICKey ties two matched intercompany entries together.
type ICKey = id.ICKeyID

// ICControlAccount is the clearing account both sides of an intercompany
// transaction book against. A matched pair's net position is read off this
// account only: each side of the pair is itself a fully balanced entry (the
// other line settles against cash, AR, or AP in the local books), so summing
// debits-minus-credits over the whole entry is always zero and says nothing
// about the IC exposure.
const ICControlAccount = coa.CodeIntercompany

// ICPair is a matched intercompany transaction: one entry per company
// sharing an ICKey.
type ICPair struct {
	Key         ICKey
	CompanyA    journal.Entry
	CompanyB    journal.Entry
	GroupFXRate float64 // multiplies CompanyB's amounts into the group currency
}

// netOnAccount returns an entry's debit-minus-credit position on a single
// account code.
func netOnAccount(e journal.Entry, accountCode string) types.Money {
	var net types.Money
	found := false
	for _, l := range e.Lines {
		if l.AccountCode != accountCode {
			continue
		}
		line := l.Debit.Subtract(l.Credit)
		if !found {
			net = line
			found = true
			continue
		}
		net = net.Add(line)
	}
	return net
}

// GroupCurrencySum returns the sum of both entries' net ICControlAccount
// positions translated into the group currency via GroupFXRate. CompanyA is
// assumed already denominated in the group currency.
func (p ICPair) GroupCurrencySum() types.Money {
	a := netOnAccount(p.CompanyA, ICControlAccount)
	bNet := netOnAccount(p.CompanyB, ICControlAccount)
	bTranslated := int64(float64(bNet.Amount) * p.GroupFXRate)

	return types.Money{Amount: a.Amount + bTranslated, Currency: a.Currency}
}

// Matches reports whether the pair nets to zero in group currency within
// one cent, per spec property 5.
func (p ICPair) Matches() bool {
	sum := p.GroupCurrencySum()
	return sum.Amount >= -1 && sum.Amount <= 1
}

// Matcher tracks intercompany pairs and produces elimination entries at
// consolidation boundaries.
type Matcher struct {
	Pairs []ICPair
}

// Eliminate produces the elimination entry that cancels pair in the group
// books: a single entry whose header carries pair.Key and whose lines
// exactly reverse both sides' net group-currency positions.
func (m *Matcher) Eliminate(pair ICPair, groupCompanyCode string) journal.Entry {
	netA := netOnAccount(pair.CompanyA, ICControlAccount)
	bNet := netOnAccount(pair.CompanyB, ICControlAccount)
	netB := types.Money{Amount: int64(float64(bNet.Amount) * pair.GroupFXRate), Currency: netA.Currency}

	lines := []journal.Line{}
	if netA.Amount > 0 {
		lines = append(lines, journal.Line{AccountCode: ICControlAccount, Credit: netA.Abs(), Debit: types.Zero(netA.Currency), Description: "IC elimination"})
	} else {
		lines = append(lines, journal.Line{AccountCode: ICControlAccount, Debit: netA.Abs(), Credit: types.Zero(netA.Currency), Description: "IC elimination"})
	}
	if netB.Amount > 0 {
		lines = append(lines, journal.Line{AccountCode: ICControlAccount, Credit: netB.Abs(), Debit: types.Zero(netB.Currency), Description: "IC elimination"})
	} else {
		lines = append(lines, journal.Line{AccountCode: ICControlAccount, Debit: netB.Abs(), Credit: types.Zero(netB.Currency), Description: "IC elimination"})
	}

	return journal.Entry{
		Header: journal.Header{
			ID:          pair.Key,
			CompanyCode: groupCompanyCode,
			Source:      journal.SourceBatch,
			Process:     journal.ProcessR2R,
		},
		Lines: lines,
	}
}
