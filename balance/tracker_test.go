package balance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgl/genengine/balance"
	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/sample"
)

func TestTrialBalanceAccountingIdentity(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryManufacturing, Complexity: coa.ComplexitySmall})
	require.NoError(t, err)

	tracker := balance.NewTracker()

	gen := &journal.Generator{
		Chart:        chart,
		Accounts:     journal.ChartAccountPool{Chart: chart},
		LineCounts:   sample.NewLineItemCountSampler(),
		Amounts:      sample.AmountSampler{Config: sample.AmountConfig{Currency: "usd", Mu: 6, Sigma: 1}},
		BalanceSplit: journal.DefaultBalanceSplit(),
	}

	for i := uint64(0); i < 500; i++ {
		entry := gen.Build(journal.Request{
			Seed: 5, Counter: i, CompanyCode: "1000", Process: journal.ProcessP2P,
			Source: journal.SourceInterface, PostingDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			DocumentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		})
		tracker.Post(entry)
	}

	tb := tracker.TrialBalance("1000", balance.Period{Year: 2024, Period: 3}, chart)
	assert.True(t, tb.AccountingIdentityHolds(chart))
}
