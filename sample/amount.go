package sample

import (
	"github.com/synthgl/genengine/rng"
	"github.com/synthgl/genengine/types"
)

// niceMultiples are the "round number" snap targets, in major currency
// units, tried from largest to smallest.
var niceMultiples = []int64{5000, 1000, 100}

// niceFractions are the "nice number" cents-level snap targets: X.99,
// X.95, X.50.
var niceFractions = []int64{99, 95, 50}

// AmountConfig parameterizes AmountSampler per spec section 4.2 /
// the transactions.amount_distribution configuration block.
type AmountConfig struct {
	Currency               string
	Mu, Sigma              float64
	RoundNumberProbability float64
	NiceNumberProbability  float64
	BenfordCompliance      bool
	Exempt                 bool // true when the current source is in exempt_sources
}

// AmountSampler draws a log-normal amount and applies round-number
// snapping, nice-number snapping, and (unless exempt) Benford-compliance
// rescaling. The result is always a types.Money with two fractional
// digits; floating-point arithmetic never reaches the output.
type AmountSampler struct {
	Config AmountConfig
}

// Sample draws one amount. benfordDigit is the pre-drawn target first
// digit from BenfordDigitSampler, consulted only when BenfordCompliance is
// enabled and the source is not exempt.
func (a AmountSampler) Sample(s *rng.Stream, benfordDigit int) types.Money {
	raw := s.LogNormal(a.Config.Mu, a.Config.Sigma)

	cents := int64(raw * 100)
	if cents < 1 {
		cents = 1
	}

	if s.Bool(a.Config.RoundNumberProbability) {
		cents = snapToNiceMultiple(cents)
	} else if s.Bool(a.Config.NiceNumberProbability) {
		cents = snapToNiceFraction(cents, s)
	}

	if a.Config.BenfordCompliance && !a.Config.Exempt {
		cents = rescaleToFirstDigit(cents, benfordDigit)
	}

	return types.Money{Amount: cents, Currency: a.Config.Currency}
}

// snapToNiceMultiple rounds to the nearest multiple of 100, 1000, or 5000
// major units (10000, 100000, 500000 cents) chosen by the amount's
// magnitude, preferring the largest multiple that keeps the result within
// the same order of magnitude as the input.
func snapToNiceMultiple(cents int64) int64 {
	for _, major := range niceMultiples {
		step := major * 100
		if cents >= step {
			rounded := (cents + step/2) / step * step
			if rounded > 0 {
				return rounded
			}
		}
	}
	return cents
}

// snapToNiceFraction replaces the cents' final two digits with one of
// {99, 95, 50}, chosen uniformly, while preserving the major-unit part.
func snapToNiceFraction(cents int64, s *rng.Stream) int64 {
	major := cents / 100
	if major == 0 {
		major = 1
	}
	idx := s.IntRange(0, int64(len(niceFractions)-1))
	return major*100 + niceFractions[idx]
}

// rescaleToFirstDigit replaces the leading digit of cents with target,
// keeping the number of digits and every lower digit, so the amount's
// order of magnitude is preserved (never, e.g., turning a six-figure
// amount into a one-digit one) per spec.md 4.2 step 3.
func rescaleToFirstDigit(cents, target int64) int64 {
	if target < 1 || target > 9 || cents <= 0 {
		return cents
	}

	current := FirstDigit(cents)
	if current == target || current == 0 {
		return cents
	}

	// Strip the leading digit, then rebuild with the target leading digit
	// at the same magnitude (same number of digits).
	magnitude := int64(1)
	tmp := cents
	for tmp >= 10 {
		tmp /= 10
		magnitude *= 10
	}

	remainder := cents - int64(current)*magnitude
	return int64(target)*magnitude + remainder
}
