package flow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/flow"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/sample"
)

func buildTestGenerator(t *testing.T, chart *coa.Chart) *journal.Generator {
	t.Helper()
	return &journal.Generator{
		Chart:        chart,
		Accounts:     journal.ChartAccountPool{Chart: chart},
		LineCounts:   sample.NewLineItemCountSampler(),
		Amounts:      sample.AmountSampler{Config: sample.AmountConfig{Currency: "usd", Mu: 8, Sigma: 1}},
		BalanceSplit: journal.DefaultBalanceSplit(),
	}
}

// TestP2PChainBalancesAndOrdersTemporally implements scenario S3: every
// document in a chain is temporally ordered and every emitted journal
// entry is balanced.
func TestP2PChainBalancesAndOrdersTemporally(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryManufacturing, Complexity: coa.ComplexitySmall})
	require.NoError(t, err)

	engine := flow.P2PEngine{
		Config:  flow.DefaultP2PConfig(),
		Chart:   chart,
		Journal: buildTestGenerator(t, chart),
	}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := uint64(0); i < 30; i++ {
		chain := engine.BuildChain(42, i, "1000", "vend_abc123", start)

		assert.True(t, flow.PrecedesOK(chain.PO, chain.GR))
		assert.True(t, flow.PrecedesOK(chain.GR, chain.Invoice))
		assert.True(t, flow.PrecedesOK(chain.Invoice, chain.Payment))
		assert.True(t, chain.GR.HasParent())
		assert.True(t, chain.Invoice.HasParent())
		assert.True(t, chain.Payment.HasParent())

		for _, entry := range chain.Entries {
			assert.True(t, entry.IsBalanced())
		}
	}
}

// TestP2PChainIsDeterministic confirms two runs with identical seed and
// chain index produce byte-identical chains.
func TestP2PChainIsDeterministic(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryManufacturing, Complexity: coa.ComplexitySmall})
	require.NoError(t, err)

	engine := flow.P2PEngine{Config: flow.DefaultP2PConfig(), Chart: chart, Journal: buildTestGenerator(t, chart)}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	a := engine.BuildChain(7, 5, "1000", "vend_xyz", start)
	b := engine.BuildChain(7, 5, "1000", "vend_xyz", start)

	assert.Equal(t, a.PO.ID.String(), b.PO.ID.String())
	assert.Equal(t, a.Invoice.TotalCents, b.Invoice.TotalCents)
	assert.Equal(t, a.Match, b.Match)
}

func TestO2CChainHandlesCreditCheckFailure(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryRetail, Complexity: coa.ComplexitySmall})
	require.NoError(t, err)

	cfg := flow.DefaultO2CConfig()
	cfg.CreditCheckFailureRate = 1.0 // force rejection deterministically
	engine := flow.O2CEngine{Config: cfg, Chart: chart, Journal: buildTestGenerator(t, chart)}

	chain := engine.BuildChain(99, 1, "1000", "cust_abc", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, chain.CreditApproved)
	assert.Empty(t, chain.Entries)
}

func TestO2CChainBalancesWhenApproved(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryRetail, Complexity: coa.ComplexitySmall})
	require.NoError(t, err)

	cfg := flow.DefaultO2CConfig()
	cfg.CreditCheckFailureRate = 0
	engine := flow.O2CEngine{Config: cfg, Chart: chart, Journal: buildTestGenerator(t, chart)}

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := uint64(0); i < 30; i++ {
		chain := engine.BuildChain(99, i, "1000", "cust_abc", start)
		require.True(t, chain.CreditApproved)

		for _, entry := range chain.Entries {
			assert.True(t, entry.IsBalanced())
		}
	}
}

func TestThreeWayMatchDetectsVariance(t *testing.T) {
	po := flow.Document{Kind: flow.KindPurchaseOrder, Quantity: 100, UnitPriceCents: 1000}
	grOK := flow.Document{Kind: flow.KindGoodsReceipt, Quantity: 100, UnitPriceCents: 1000}
	grShort := flow.Document{Kind: flow.KindGoodsReceipt, Quantity: 80, UnitPriceCents: 1000}
	invOK := flow.Document{Kind: flow.KindVendorInvoice, Quantity: 100, UnitPriceCents: 1020}
	invVariant := flow.Document{Kind: flow.KindVendorInvoice, Quantity: 100, UnitPriceCents: 1200}

	assert.Equal(t, flow.MatchOK, flow.ThreeWayMatch(&po, &grOK, &invOK, 5))
	assert.Equal(t, flow.MatchQuantityVariance, flow.ThreeWayMatch(&po, &grShort, &invOK, 5))
	assert.Equal(t, flow.MatchPriceVariance, flow.ThreeWayMatch(&po, &grOK, &invVariant, 5))
	assert.Equal(t, flow.MatchMissingDocument, flow.ThreeWayMatch(nil, &grOK, &invOK, 5))
}
