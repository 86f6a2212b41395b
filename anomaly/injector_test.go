package anomaly_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgl/genengine/anomaly"
	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/sample"
)

func buildEntry(t *testing.T, counter uint64) journal.Entry {
	t.Helper()
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryManufacturing, Complexity: coa.ComplexitySmall})
	require.NoError(t, err)

	gen := &journal.Generator{
		Chart:        chart,
		Accounts:     journal.ChartAccountPool{Chart: chart},
		LineCounts:   sample.NewLineItemCountSampler(),
		Amounts:      sample.AmountSampler{Config: sample.AmountConfig{Currency: "usd", Mu: 7, Sigma: 1}},
		BalanceSplit: journal.DefaultBalanceSplit(),
	}

	return gen.Build(journal.Request{
		Seed: 3, Counter: counter, CompanyCode: "1000", Process: journal.ProcessP2P,
		Source: journal.SourceInterface, PostingDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DocumentDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

// TestSplitTransactionFraud implements scenario S4: fraudulent entries have
// total amount in [9000, 9999] (threshold 10000), are labeled, and remain
// balanced.
func TestSplitTransactionFraud(t *testing.T) {
	inj := anomaly.Injector{
		Seed: 3,
		Config: anomaly.RateConfig{
			TotalRate: 1.0,
			Variants:  map[anomaly.Variant]float64{anomaly.VariantSplitTransaction: 1.0},
		},
	}

	for i := uint64(0); i < 50; i++ {
		entry := buildEntry(t, i)
		mutated, label, ok := inj.Apply(entry, i)
		require.True(t, ok)
		assert.Equal(t, anomaly.VariantSplitTransaction, label.Variant)
		assert.True(t, mutated.IsBalanced())
		total := mutated.SumDebits().Amount
		assert.GreaterOrEqual(t, total, int64(900000))
		assert.LessOrEqual(t, total, int64(999999))
	}
}

func TestInvariantPreservingCategoriesStayBalanced(t *testing.T) {
	// WrongAccount and WrongPeriod are Error-category variants that leave
	// amounts untouched, so they stay balanced too.
	for _, tc := range []struct {
		v        anomaly.Variant
		category anomaly.Category
	}{
		{anomaly.VariantFictitiousTransaction, anomaly.CategoryFraud},
		{anomaly.VariantBenfordViolation, anomaly.CategoryStatistical},
		{anomaly.VariantOutlierValue, anomaly.CategoryStatistical},
		{anomaly.VariantWrongAccount, anomaly.CategoryError},
		{anomaly.VariantWrongPeriod, anomaly.CategoryError},
	} {
		v := tc.v
		inj := anomaly.Injector{
			Seed:   11,
			Config: anomaly.RateConfig{TotalRate: 1.0, Variants: map[anomaly.Variant]float64{v: 1.0}},
		}

		entry := buildEntry(t, 1)
		mutated, label, ok := inj.Apply(entry, 1)
		require.True(t, ok)
		assert.Equal(t, tc.category, label.Category)
		assert.True(t, mutated.IsBalanced(), "variant %s must preserve balance", v)
		assert.False(t, label.IntentionallyUnbalanced)
	}
}

func TestReversedDebitCreditIsExplicitlyLabeledUnbalanced(t *testing.T) {
	inj := anomaly.Injector{
		Seed: 11,
		Config: anomaly.RateConfig{
			TotalRate: 1.0,
			Variants:  map[anomaly.Variant]float64{anomaly.VariantReversedDebitCredit: 1.0},
		},
	}

	entry := buildEntry(t, 1)
	_, label, ok := inj.Apply(entry, 1)
	require.True(t, ok)
	assert.Equal(t, anomaly.CategoryError, label.Category)
	assert.True(t, label.IntentionallyUnbalanced, "reversed debit/credit must be explicitly labeled, never silently unbalanced")
}
