package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgl/genengine/config"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestValidateRejectsNonAscendingThresholds(t *testing.T) {
	cfg := config.Default()
	cfg.Fraud.ApprovalThresholds = []int64{10000, 5000}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not strictly ascending")
}

func TestValidateRejectsBadDistributionSum(t *testing.T) {
	cfg := config.Default()
	cfg.Fraud.FraudTypeDistribution = map[string]float64{"split_transaction": 0.5, "ghost_employee": 0.2}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fraud_type_distribution")
}

func TestValidateRejectsInconsistentDepths(t *testing.T) {
	cfg := config.Default()
	cfg.ChartOfAccounts.MinDepth = 5
	cfg.ChartOfAccounts.MaxDepth = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
}

func TestValidateRejectsMissingCompanies(t *testing.T) {
	cfg := config.Default()
	cfg.Companies = nil

	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidateRejectsDuplicateCompanyCodes(t *testing.T) {
	cfg := config.Default()
	cfg.Companies = append(cfg.Companies, cfg.Companies[0])

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate company code")
}
