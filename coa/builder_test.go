package coa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgl/genengine/coa"
)

func TestBuildContainsCanonicalAccounts(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryManufacturing, Complexity: coa.ComplexitySmall})
	require.NoError(t, err)

	for _, code := range []string{
		coa.CodeCash, coa.CodeAccountsReceivable, coa.CodeInventory,
		coa.CodeAccountsPayable, coa.CodeRetainedEarnings, coa.CodeRevenue, coa.CodeCOGS,
	} {
		assert.True(t, chart.Exists(code), "canonical account %s must exist", code)
	}
}

func TestBuildParentTypeMatchesChild(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryManufacturing, Complexity: coa.ComplexityMedium, MaxDepth: 5})
	require.NoError(t, err)

	for _, acct := range chart.Accounts {
		if acct.ParentCode == "" {
			continue
		}
		parentType, ok := chart.ParentType(acct.Code)
		require.True(t, ok)
		assert.Equal(t, parentType, acct.Type, "account %s type must match parent %s type", acct.Code, acct.ParentCode)
	}
}

func TestBuildApproximatesComplexityTarget(t *testing.T) {
	chart, err := coa.Build("1000", coa.Options{Industry: coa.IndustryRetail, Complexity: coa.ComplexityLarge})
	require.NoError(t, err)
	assert.Greater(t, len(chart.Accounts), 1000)
}
