// Package sample implements the engine's statistical samplers. Every
// sampler is stateless given an *rng.Stream: Sample(s) -> T, so the same
// sampler value can be shared read-only across worker goroutines as long
// as each worker supplies its own stream.
package sample

import (
	"math"

	"github.com/synthgl/genengine/rng"
)

// benfordCumulative[d] holds the cumulative probability of drawing a first
// digit <= d under Benford's Law, P(d) = log10(1 + 1/d).
var benfordCumulative = buildBenfordCumulative()

func buildBenfordCumulative() [10]float64 {
	var cum [10]float64
	var running float64
	for d := 1; d <= 9; d++ {
		running += math.Log10(1 + 1/float64(d))
		cum[d] = running
	}
	return cum
}

// BenfordDigitSampler draws a first digit d in {1..9} with
// P(d) = log10(1 + 1/d).
type BenfordDigitSampler struct{}

// Sample draws one Benford-distributed first digit.
func (BenfordDigitSampler) Sample(s *rng.Stream) int {
	u := s.Float64()
	for d := 1; d <= 9; d++ {
		if u <= benfordCumulative[d] {
			return d
		}
	}
	return 9
}

// ExpectedFrequency returns Benford's Law's predicted frequency for digit d.
func ExpectedFrequency(d int) float64 {
	if d < 1 || d > 9 {
		return 0
	}
	return math.Log10(1 + 1/float64(d))
}

// FirstDigit returns the leading decimal digit of a positive integer cent
// amount, or 0 if amount <= 0.
func FirstDigit(amountCents int64) int {
	if amountCents <= 0 {
		return 0
	}
	for amountCents >= 10 {
		amountCents /= 10
	}
	return int(amountCents)
}

// MeanAbsoluteDeviation computes the MAD between an observed first-digit
// histogram (indices 1..9, counts) and the Benford prediction, used by
// distributional property tests (spec property 9: MAD <= 0.006).
func MeanAbsoluteDeviation(counts [10]int64) float64 {
	var total int64
	for d := 1; d <= 9; d++ {
		total += counts[d]
	}
	if total == 0 {
		return 0
	}

	var sum float64
	for d := 1; d <= 9; d++ {
		observed := float64(counts[d]) / float64(total)
		sum += math.Abs(observed - ExpectedFrequency(d))
	}
	return sum / 9
}
