package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	multierror "github.com/hashicorp/go-multierror"
)

// distributionSumTolerance mirrors spec.md §6: sums-to-one distributions
// are accepted within ±0.01.
const distributionSumTolerance = 0.01

var (
	validatorOnce sync.Once
	structValidator *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator
}

// Validate checks every struct-tag constraint via validator/v10, then the
// business rules spec.md §7 names as ConfigurationError sources that
// struct tags alone cannot express: distributions summing to one,
// strictly ascending approval thresholds, and consistent chart-of-accounts
// depth bounds. Every violation is collected before returning, so a caller
// sees every problem in one pass instead of fixing them one at a time.
func (c Config) Validate() error {
	var merr *multierror.Error

	if err := getValidator().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				merr = multierror.Append(merr, fmt.Errorf("%s: %s", fe.Namespace(), fe.Tag()))
			}
		} else {
			merr = multierror.Append(merr, err)
		}
	}

	merr = appendIfErr(merr, c.validateChartDepth())
	merr = appendIfErr(merr, c.validateDistribution("transactions.source_distribution", c.Transactions.SourceDistribution))
	merr = appendIfErr(merr, c.validateDistribution("fraud.fraud_type_distribution", c.Fraud.FraudTypeDistribution))
	merr = appendIfErr(merr, c.validateDistribution("anomaly_injection.category_weights", c.AnomalyInjection.CategoryWeights))
	merr = appendIfErr(merr, c.validateAscendingThresholds())
	merr = appendIfErr(merr, c.validateCompanyCurrencies())

	if merr == nil || merr.Len() == 0 {
		return nil
	}
	return merr.ErrorOrNil()
}

func appendIfErr(merr *multierror.Error, err error) *multierror.Error {
	if err != nil {
		return multierror.Append(merr, err)
	}
	return merr
}

func (c Config) validateChartDepth() error {
	if c.ChartOfAccounts.MaxDepth < c.ChartOfAccounts.MinDepth {
		return fmt.Errorf("chart_of_accounts: max_depth (%d) must be >= min_depth (%d)",
			c.ChartOfAccounts.MaxDepth, c.ChartOfAccounts.MinDepth)
	}
	return nil
}

// validateDistribution checks that a weight map, if non-empty, sums to 1.0
// within distributionSumTolerance. An empty map is not validated here —
// required-ness is the caller's concern (some distributions are optional).
func (c Config) validateDistribution(field string, weights map[string]float64) error {
	if len(weights) == 0 {
		return nil
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}

	if diff := sum - 1.0; diff > distributionSumTolerance || diff < -distributionSumTolerance {
		return fmt.Errorf("%s: weights sum to %.4f, want 1.0 +/- %.2f", field, sum, distributionSumTolerance)
	}
	return nil
}

// validateAscendingThresholds enforces spec.md §7's "approval thresholds
// not ascending" ConfigurationError.
func (c Config) validateAscendingThresholds() error {
	thresholds := c.Fraud.ApprovalThresholds
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return fmt.Errorf("fraud.approval_thresholds: not strictly ascending at index %d (%d <= %d)",
				i, thresholds[i], thresholds[i-1])
		}
	}
	return nil
}

func (c Config) validateCompanyCurrencies() error {
	seen := make(map[string]bool, len(c.Companies))
	for _, comp := range c.Companies {
		if seen[comp.Code] {
			return fmt.Errorf("companies: duplicate company code %q", comp.Code)
		}
		seen[comp.Code] = true
	}
	return nil
}
