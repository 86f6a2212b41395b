// Package masterdata generates the pools of vendors, customers, materials,
// fixed assets, and employees that document flows and journal entries
// reference. Master data is built once at initialization and is read-only
// thereafter; every entity is assigned a validity interval so later phases
// can avoid referencing retired entities.
package masterdata

import (
	"fmt"

	"github.com/synthgl/genengine/rng"
)

// Culture identifies one of the seven weighted name-pool cultures.
type Culture string

const (
	CultureWestern  Culture = "western"
	CultureHispanic Culture = "hispanic"
	CultureGerman   Culture = "german"
	CultureFrench   Culture = "french"
	CultureChinese  Culture = "chinese"
	CultureJapanese Culture = "japanese"
	CultureIndian   Culture = "indian"
)

// DefaultCultureWeights mirrors a plausible global persona mix; callers may
// override via configuration.
var DefaultCultureWeights = map[Culture]float64{
	CultureWestern:  0.34,
	CultureHispanic: 0.12,
	CultureGerman:   0.09,
	CultureFrench:   0.08,
	CultureChinese:  0.16,
	CultureJapanese: 0.11,
	CultureIndian:   0.10,
}

var firstNames = map[Culture][]string{
	CultureWestern:  {"James", "Mary", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth"},
	CultureHispanic: {"Jose", "Maria", "Juan", "Ana", "Luis", "Carmen", "Carlos", "Isabel"},
	CultureGerman:   {"Hans", "Greta", "Klaus", "Ingrid", "Stefan", "Ursula", "Jurgen", "Heike"},
	CultureFrench:   {"Pierre", "Marie", "Jean", "Sophie", "Luc", "Camille", "Antoine", "Claire"},
	CultureChinese:  {"Wei", "Li", "Jun", "Fang", "Hui", "Min", "Qiang", "Yan"},
	CultureJapanese: {"Hiroshi", "Yuki", "Takeshi", "Aiko", "Kenji", "Naomi", "Satoshi", "Emi"},
	CultureIndian:   {"Raj", "Priya", "Amit", "Divya", "Vikram", "Anita", "Arjun", "Kavita"},
}

var lastNames = map[Culture][]string{
	CultureWestern:  {"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis", "Wilson"},
	CultureHispanic: {"Garcia", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Perez", "Sanchez"},
	CultureGerman:   {"Muller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker"},
	CultureFrench:   {"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Petit", "Richard", "Durand"},
	CultureChinese:  {"Wang", "Li", "Zhang", "Liu", "Chen", "Yang", "Huang", "Zhao"},
	CultureJapanese: {"Sato", "Suzuki", "Takahashi", "Tanaka", "Watanabe", "Ito", "Yamamoto", "Nakamura"},
	CultureIndian:   {"Sharma", "Verma", "Gupta", "Patel", "Singh", "Kumar", "Reddy", "Nair"},
}

var companySuffixes = []string{"Inc.", "LLC", "Ltd.", "GmbH", "Corp.", "Group", "Holdings", "& Co."}

// PersonaName draws a culturally plausible full name from the culture
// pool selected by weight.
func PersonaName(s *rng.Stream) (string, Culture) {
	culture := drawCulture(s)
	fn := firstNames[culture]
	ln := lastNames[culture]
	return fmt.Sprintf("%s %s", fn[s.IntRange(0, int64(len(fn)-1))], ln[s.IntRange(0, int64(len(ln)-1))]), culture
}

// OrganizationName draws a plausible company-style name using the same
// culture-weighted surname pools, for vendors and customers.
func OrganizationName(s *rng.Stream) (string, Culture) {
	culture := drawCulture(s)
	ln := lastNames[culture]
	suffix := companySuffixes[s.IntRange(0, int64(len(companySuffixes)-1))]
	return fmt.Sprintf("%s %s", ln[s.IntRange(0, int64(len(ln)-1))], suffix), culture
}

// drawCulture performs a weighted categorical draw over DefaultCultureWeights
// in a fixed iteration order (never ranging the map directly, since Go map
// iteration order is randomized and would break determinism).
func drawCulture(s *rng.Stream) Culture {
	order := []Culture{
		CultureWestern, CultureHispanic, CultureGerman, CultureFrench,
		CultureChinese, CultureJapanese, CultureIndian,
	}

	var total float64
	for _, c := range order {
		total += DefaultCultureWeights[c]
	}

	u := s.Float64() * total
	var cum float64
	for _, c := range order {
		cum += DefaultCultureWeights[c]
		if u <= cum {
			return c
		}
	}
	return CultureWestern
}
