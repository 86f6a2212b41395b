package sample

import (
	"sort"
	"time"

	"github.com/synthgl/genengine/rng"
)

// Industry tags a vertical whose seasonality multipliers layer on top of
// the base calendar seasonality.
type Industry string

const (
	IndustryManufacturing  Industry = "manufacturing"
	IndustryRetail         Industry = "retail"
	IndustryFinancial      Industry = "financial_services"
	IndustryTechnology     Industry = "technology"
	IndustryHealthcare     Industry = "healthcare"
)

// industryMultipliers holds date-specific spikes layered on the base
// seasonality for a given industry, keyed by (month, day).
var industryMultipliers = map[Industry]map[[2]int]float64{
	IndustryRetail: {
		{11, 29}: 8.0, // Black Friday
		{12, 24}: 3.0,
	},
}

// SeasonalityConfig parameterizes TemporalSampler per spec.md 4.2.
type SeasonalityConfig struct {
	MonthEndMultiplier   float64
	QuarterEndMultiplier float64
	YearEndMultiplier    float64
	WeekendMultiplier    float64
	HolidayMultiplier    float64
	Regions              []Region
	Industry             Industry
}

// DefaultSeasonality mirrors the specification's base seasonality
// multipliers.
func DefaultSeasonality() SeasonalityConfig {
	return SeasonalityConfig{
		MonthEndMultiplier:   2.5,
		QuarterEndMultiplier: 4.0,
		YearEndMultiplier:    6.0,
		WeekendMultiplier:    0.1,
		HolidayMultiplier:    0.05,
		Regions:              []Region{RegionUS},
		Industry:             IndustryManufacturing,
	}
}

// TemporalSampler produces a date-to-weight mapping over a configured date
// range and samples posting dates proportionally to those weights.
type TemporalSampler struct {
	Config SeasonalityConfig
	Start  time.Time
	End    time.Time

	dates   []time.Time
	weights []float64
	cumul   []float64
	total   float64
}

// NewTemporalSampler precomputes the weight of every day in [start, end).
func NewTemporalSampler(cfg SeasonalityConfig, start, end time.Time) *TemporalSampler {
	t := &TemporalSampler{Config: cfg, Start: start, End: end}
	t.build()
	return t
}

func (t *TemporalSampler) build() {
	var running float64
	for d := t.Start; d.Before(t.End); d = d.AddDate(0, 0, 1) {
		w := t.weightFor(d)
		running += w
		t.dates = append(t.dates, d)
		t.weights = append(t.weights, w)
		t.cumul = append(t.cumul, running)
	}
	t.total = running
}

// weightFor computes the composed seasonality weight for a single date:
// base calendar seasonality x industry multiplier x holiday suppression.
func (t *TemporalSampler) weightFor(d time.Time) float64 {
	weight := 1.0

	if isWeekend(d) {
		weight *= t.Config.WeekendMultiplier
	}

	if isMonthEnd(d) {
		weight *= t.Config.MonthEndMultiplier
	}
	if isQuarterEnd(d) {
		weight *= t.Config.QuarterEndMultiplier
	}
	if isYearEnd(d) {
		weight *= t.Config.YearEndMultiplier
	}

	for _, region := range t.Config.Regions {
		if IsHoliday(d, region) {
			weight *= t.Config.HolidayMultiplier
			break
		}
	}

	if mults, ok := industryMultipliers[t.Config.Industry]; ok {
		if m, ok := mults[[2]int{int(d.Month()), d.Day()}]; ok {
			weight *= m
		}
	}

	return weight
}

// Sample draws one posting date proportionally to the precomputed weights.
func (t *TemporalSampler) Sample(s *rng.Stream) time.Time {
	if t.total <= 0 || len(t.dates) == 0 {
		return t.Start
	}

	u := s.Float64() * t.total
	idx := sort.SearchFloat64s(t.cumul, u)
	if idx >= len(t.dates) {
		idx = len(t.dates) - 1
	}
	return t.dates[idx]
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isMonthEnd(d time.Time) bool {
	return d.AddDate(0, 0, 1).Day() == 1
}

func isQuarterEnd(d time.Time) bool {
	if !isMonthEnd(d) {
		return false
	}
	switch d.Month() {
	case time.March, time.June, time.September, time.December:
		return true
	default:
		return false
	}
}

func isYearEnd(d time.Time) bool {
	return d.Month() == time.December && d.Day() == 31
}

// WorkingHourTimestamp samples a creation timestamp on date, biased to
// 8:00-18:00 local time with a small after-hours tail, per spec.md 4.6
// step 7.
func WorkingHourTimestamp(s *rng.Stream, date time.Time) time.Time {
	var hour int
	if s.Bool(0.92) {
		hour = 8 + int(s.IntRange(0, 9)) // 8:00-17:59
	} else {
		hour = int(s.IntRange(0, 23)) // after-hours tail, any hour
	}

	minute := int(s.IntRange(0, 59))
	second := int(s.IntRange(0, 59))

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, second, 0, time.UTC)
}
