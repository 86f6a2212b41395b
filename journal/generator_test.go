package journal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/sample"
)

func newGenerator(t *testing.T) (*journal.Generator, *coa.Chart) {
	t.Helper()
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryManufacturing, Complexity: coa.ComplexitySmall})
	require.NoError(t, err)

	gen := &journal.Generator{
		Chart:        chart,
		Accounts:     journal.ChartAccountPool{Chart: chart},
		LineCounts:   sample.LineItemCountSampler{Weights: []sample.CountWeight{{Count: 2, HighCount: 2, Weight: 1.0}}},
		Amounts:      sample.AmountSampler{Config: sample.AmountConfig{Currency: "usd", Mu: 7, Sigma: 0}},
		BalanceSplit: journal.DefaultBalanceSplit(),
	}
	return gen, chart
}

// TestMinimumBalancedEntry implements scenario S1: seed=42, one line_item
// distribution forced to {2:1.0}, amount mu=7 sigma=0 -> exactly one entry
// with two lines, debit == credit, both accounts valid, deterministic
// across reruns.
func TestMinimumBalancedEntry(t *testing.T) {
	gen, chart := newGenerator(t)

	req := journal.Request{
		Seed: 42, Counter: 0, CompanyCode: "1000", Process: journal.ProcessP2P,
		Source: journal.SourceInterface, PostingDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		DocumentDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	entry := gen.Build(req)

	require.Len(t, entry.Lines, 2)
	assert.True(t, entry.IsBalanced())
	assert.True(t, entry.ReferencesOnlyExistingAccounts(chart))
	assert.Equal(t, entry.SumDebits(), entry.SumCredits())

	entry2 := gen.Build(req)
	assert.Equal(t, entry.Header.ID, entry2.Header.ID)
	assert.Equal(t, entry.SumDebits(), entry2.SumDebits())
}

func TestBuildAlwaysBalances(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryRetail, Complexity: coa.ComplexityMedium})
	require.NoError(t, err)

	gen := &journal.Generator{
		Chart:        chart,
		Accounts:     journal.ChartAccountPool{Chart: chart},
		LineCounts:   sample.NewLineItemCountSampler(),
		Amounts:      sample.AmountSampler{Config: sample.AmountConfig{Currency: "usd", Mu: 6, Sigma: 2}},
		BalanceSplit: journal.DefaultBalanceSplit(),
	}

	for i := uint64(0); i < 2000; i++ {
		entry := gen.Build(journal.Request{
			Seed: 7, Counter: i, CompanyCode: "1000", Process: journal.ProcessO2C,
			Source: journal.SourceInterface, PostingDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			DocumentDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		})

		require.True(t, entry.IsBalanced(), "entry %d must balance exactly", i)
		require.GreaterOrEqual(t, len(entry.Lines), 2)
		require.True(t, entry.ReferencesOnlyExistingAccounts(chart))
	}
}
