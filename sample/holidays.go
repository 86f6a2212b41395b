package sample

import "time"

// Region identifies one of the regional holiday calendars the temporal
// sampler composes into its seasonality weighting.
type Region string

const (
	RegionUS Region = "US"
	RegionDE Region = "DE"
	RegionGB Region = "GB"
	RegionCN Region = "CN"
	RegionJP Region = "JP"
	RegionIN Region = "IN"
)

// fixedHolidays lists (month, day) holidays observed across all years for
// a region. Floating and lunar holidays are computed separately below.
var fixedHolidays = map[Region][][2]int{
	RegionUS: {{1, 1}, {7, 4}, {12, 25}},
	RegionDE: {{1, 1}, {5, 1}, {10, 3}, {12, 25}, {12, 26}},
	RegionGB: {{1, 1}, {12, 25}, {12, 26}},
	RegionCN: {{1, 1}, {10, 1}, {10, 2}, {10, 3}},
	RegionJP: {{1, 1}, {1, 2}, {1, 3}, {5, 3}, {5, 4}, {5, 5}},
	RegionIN: {{1, 26}, {8, 15}, {10, 2}},
}

// IsHoliday reports whether d is a holiday in region, accounting for both
// the fixed calendar and the floating/lunar holidays computed for d's year.
func IsHoliday(d time.Time, region Region) bool {
	month, day := int(d.Month()), d.Day()
	for _, md := range fixedHolidays[region] {
		if md[0] == month && md[1] == day {
			return true
		}
	}

	for _, h := range floatingHolidays(d.Year(), region) {
		if h.Month() == d.Month() && h.Day() == d.Day() {
			return true
		}
	}

	return false
}

// floatingHolidays computes the region's floating/lunar holidays for year.
func floatingHolidays(year int, region Region) []time.Time {
	var out []time.Time

	switch region {
	case RegionUS:
		out = append(out, nthWeekdayOfMonth(year, time.November, time.Thursday, 4)) // Thanksgiving
		out = append(out, easterSunday(year))
	case RegionDE, RegionGB:
		out = append(out, easterSunday(year))
		out = append(out, easterSunday(year).AddDate(0, 0, 1)) // Easter Monday
	case RegionCN:
		out = append(out, chineseNewYear(year))
	case RegionJP:
		out = append(out, easterSunday(year).AddDate(0, 0, 0)) // placeholder: JP uses fixed calendar mainly
	case RegionIN:
		out = append(out, diwali(year))
	}

	return out
}

// nthWeekdayOfMonth returns the date of the nth occurrence of weekday in
// month/year (1-indexed n), e.g. the fourth Thursday of November.
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	d = d.AddDate(0, 0, offset+7*(n-1))
	return d
}

// easterSunday computes the date of Easter Sunday using the anonymous
// Gregorian algorithm (Meeus/Jones/Butcher).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// lunarNewYearDates is a precomputed table of Chinese New Year dates for
// the years this engine realistically generates data for. Lunar new year
// has no closed-form arithmetic formula; production systems carry a
// lookup table derived from published lunisolar calendar data, which this
// mirrors at reduced range.
var lunarNewYearDates = map[int][2]int{
	2015: {2, 19}, 2016: {2, 8}, 2017: {1, 28}, 2018: {2, 16}, 2019: {2, 5},
	2020: {1, 25}, 2021: {2, 12}, 2022: {2, 1}, 2023: {1, 22}, 2024: {2, 10},
	2025: {1, 29}, 2026: {2, 17}, 2027: {2, 6}, 2028: {1, 26}, 2029: {2, 13},
	2030: {2, 3},
}

func chineseNewYear(year int) time.Time {
	if md, ok := lunarNewYearDates[year]; ok {
		return time.Date(year, time.Month(md[0]), md[1], 0, 0, 0, 0, time.UTC)
	}
	// Outside the tabulated range, fall back to a fixed mid-February
	// anchor rather than fabricating lunar arithmetic.
	return time.Date(year, time.February, 10, 0, 0, 0, 0, time.UTC)
}

// diwaliDates mirrors lunarNewYearDates for the Diwali lunar holiday.
var diwaliDates = map[int][2]int{
	2015: {11, 11}, 2016: {10, 30}, 2017: {10, 19}, 2018: {11, 7}, 2019: {10, 27},
	2020: {11, 14}, 2021: {11, 4}, 2022: {10, 24}, 2023: {11, 12}, 2024: {11, 1},
	2025: {10, 20}, 2026: {11, 8}, 2027: {10, 29}, 2028: {10, 17}, 2029: {11, 5},
	2030: {10, 26},
}

func diwali(year int) time.Time {
	if md, ok := diwaliDates[year]; ok {
		return time.Date(year, time.Month(md[0]), md[1], 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
}
