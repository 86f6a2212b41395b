package sample_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synthgl/genengine/rng"
	"github.com/synthgl/genengine/sample"
)

func TestBenfordDigitDistribution(t *testing.T) {
	s := rng.SubStream(1, "benford-test", 0)
	var counts [10]int64

	var sampler sample.BenfordDigitSampler
	for i := 0; i < 200000; i++ {
		d := sampler.Sample(s)
		counts[d]++
	}

	mad := sample.MeanAbsoluteDeviation(counts)
	assert.LessOrEqual(t, mad, 0.006, "observed Benford MAD should be within tolerance over a large sample")
}

func TestLineItemCountSamplerRespectsForcedWeights(t *testing.T) {
	s := rng.SubStream(1, "li-test", 0)
	sampler := sample.LineItemCountSampler{Weights: []sample.CountWeight{{Count: 2, HighCount: 2, Weight: 1.0}}}

	for i := 0; i < 1000; i++ {
		assert.Equal(t, 2, sampler.Sample(s))
	}
}

func TestAmountSamplerProducesTwoDecimalCents(t *testing.T) {
	s := rng.SubStream(1, "amount-test", 0)
	sampler := sample.AmountSampler{Config: sample.AmountConfig{
		Currency: "usd", Mu: 7, Sigma: 0,
	}}

	m := sampler.Sample(s, 0)
	assert.Greater(t, m.Amount, int64(0))
	assert.Equal(t, "usd", m.Currency)
}

func TestAmountSamplerBenfordRescale(t *testing.T) {
	s := rng.SubStream(1, "amount-benford", 0)
	sampler := sample.AmountSampler{Config: sample.AmountConfig{
		Currency: "usd", Mu: 7, Sigma: 1, BenfordCompliance: true,
	}}

	for target := 1; target <= 9; target++ {
		m := sampler.Sample(s, target)
		assert.Equal(t, target, sample.FirstDigit(m.Amount))
	}
}

func TestTemporalSamplerWeekendSuppressed(t *testing.T) {
	cfg := sample.DefaultSeasonality()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	sampler := sample.NewTemporalSampler(cfg, start, end)

	s := rng.SubStream(1, "temporal-test", 0)
	var weekend, total int
	for i := 0; i < 5000; i++ {
		d := sampler.Sample(s)
		total++
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			weekend++
		}
	}

	assert.Less(t, float64(weekend)/float64(total), 0.1)
}

func TestIsHolidayUSFixed(t *testing.T) {
	assert.True(t, sample.IsHoliday(time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC), sample.RegionUS))
	assert.False(t, sample.IsHoliday(time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), sample.RegionUS))
}

func TestWorkingHourTimestampMostlyBusinessHours(t *testing.T) {
	s := rng.SubStream(1, "wh-test", 0)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var businessHours int
	const n = 2000
	for i := 0; i < n; i++ {
		ts := sample.WorkingHourTimestamp(s, date)
		if ts.Hour() >= 8 && ts.Hour() < 18 {
			businessHours++
		}
	}

	assert.Greater(t, float64(businessHours)/n, 0.7)
}
