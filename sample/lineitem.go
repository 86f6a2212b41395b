package sample

import "github.com/synthgl/genengine/rng"

// CountWeight pairs a line-item count (or the low end of a count range)
// with its configured probability weight.
type CountWeight struct {
	// Count is used when Count == HighCount (a single value).
	// When HighCount > Count the pair represents a uniform group
	// ("7-9", "10-99", ...), expanded uniformly over its interior.
	Count     int
	HighCount int
	Weight    float64
}

// DefaultLineItemWeights mirrors the empirical default distribution from
// the specification's line-item count sampler.
var DefaultLineItemWeights = []CountWeight{
	{Count: 2, HighCount: 2, Weight: 0.6068},
	{Count: 3, HighCount: 3, Weight: 0.0577},
	{Count: 4, HighCount: 4, Weight: 0.1663},
	{Count: 5, HighCount: 5, Weight: 0.0306},
	{Count: 6, HighCount: 6, Weight: 0.0332},
	{Count: 7, HighCount: 9, Weight: 0.0443},
	{Count: 10, HighCount: 99, Weight: 0.0633},
	{Count: 100, HighCount: 999, Weight: 0.0076},
	{Count: 1000, HighCount: 1000, Weight: 0.0002},
}

// LineItemCountSampler draws a line count from an empirical categorical
// distribution over counts and count ranges.
type LineItemCountSampler struct {
	Weights []CountWeight
}

// NewLineItemCountSampler returns a sampler for the default distribution.
func NewLineItemCountSampler() LineItemCountSampler {
	return LineItemCountSampler{Weights: DefaultLineItemWeights}
}

func (l LineItemCountSampler) total() float64 {
	var sum float64
	for _, w := range l.Weights {
		sum += w.Weight
	}
	return sum
}

// Sample draws a line count. Groups expand uniformly over their interior:
// drawing a value in the group "7-9" picks 7, 8, or 9 with equal
// probability within that group's combined weight.
func (l LineItemCountSampler) Sample(s *rng.Stream) int {
	total := l.total()
	if total <= 0 {
		return 2
	}

	u := s.Float64() * total
	var cum float64
	for _, w := range l.Weights {
		cum += w.Weight
		if u <= cum {
			if w.HighCount <= w.Count {
				return w.Count
			}
			span := int64(w.HighCount - w.Count + 1)
			return w.Count + int(s.IntRange(0, span-1))
		}
	}

	last := l.Weights[len(l.Weights)-1]
	return last.Count
}
