package balance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/synthgl/genengine/balance"
	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/types"
)

// TestIntercompanyPairMatchesAcrossCurrencies covers spec.md's Scenario S5:
// two companies in different currencies with an IC transaction nets to zero
// in group currency within one cent once translated, and produces an
// elimination entry that cancels the pair.
func TestIntercompanyPairMatchesAcrossCurrencies(t *testing.T) {
	key := id.New(id.PrefixICKey)
	fxRate := 0.92 // 1 EUR = 0.92 USD, company A (USD) books in group currency

	companyA := journal.Entry{
		Header: journal.Header{CompanyCode: "1000"},
		Lines: []journal.Line{
			{AccountCode: balance.ICControlAccount, Debit: types.USD(100_000), Credit: types.Zero("usd")},
			{AccountCode: "1000", Credit: types.USD(100_000), Debit: types.Zero("usd")},
		},
	}
	// Company B's leg, in EUR, sized so translating it at fxRate cancels A's leg.
	bAmount := int64(float64(100_000) / fxRate)
	companyB := journal.Entry{
		Header: journal.Header{CompanyCode: "2000"},
		Lines: []journal.Line{
			{AccountCode: "2000", Debit: types.EUR(bAmount), Credit: types.Zero("eur")},
			{AccountCode: balance.ICControlAccount, Credit: types.EUR(bAmount), Debit: types.Zero("eur")},
		},
	}

	pair := balance.ICPair{Key: key, CompanyA: companyA, CompanyB: companyB, GroupFXRate: fxRate}

	assert.True(t, pair.Matches(), "matched IC pair must net to zero in group currency within one cent")
	sum := pair.GroupCurrencySum()
	assert.LessOrEqual(t, sum.Amount, int64(1))
	assert.GreaterOrEqual(t, sum.Amount, int64(-1))

	matcher := &balance.Matcher{}
	elimination := matcher.Eliminate(pair, "GROUP")
	assert.Equal(t, key, elimination.Header.ID)
	assert.Equal(t, "GROUP", elimination.Header.CompanyCode)
	assert.NotEmpty(t, elimination.Lines)
	for _, l := range elimination.Lines {
		assert.Equal(t, balance.ICControlAccount, l.AccountCode)
	}
}

// TestIntercompanyPairMismatchDetected ensures Matches() rejects a pair
// whose legs were not sized to cancel once translated.
func TestIntercompanyPairMismatchDetected(t *testing.T) {
	key := id.New(id.PrefixICKey)

	companyA := journal.Entry{
		Header: journal.Header{CompanyCode: "1000"},
		Lines: []journal.Line{
			{AccountCode: balance.ICControlAccount, Debit: types.USD(100_000), Credit: types.Zero("usd")},
			{AccountCode: "1000", Credit: types.USD(100_000), Debit: types.Zero("usd")},
		},
	}
	companyB := journal.Entry{
		Header: journal.Header{CompanyCode: "2000"},
		Lines: []journal.Line{
			{AccountCode: "2000", Debit: types.EUR(1_000), Credit: types.Zero("eur")},
			{AccountCode: balance.ICControlAccount, Credit: types.EUR(1_000), Debit: types.Zero("eur")},
		},
	}

	pair := balance.ICPair{Key: key, CompanyA: companyA, CompanyB: companyB, GroupFXRate: 1.0}
	assert.False(t, pair.Matches())
}
