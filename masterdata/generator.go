package masterdata

import (
	"strconv"
	"time"

	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/rng"
	"github.com/synthgl/genengine/types"
)

// Counts configures how many of each master-entity type to generate.
type Counts struct {
	Vendors   int
	Customers int
	Materials int
	Assets    int
	Employees int
}

// Pool holds the full generated set of master data for one company,
// shared-read by every downstream generator and never mutated after Build
// returns.
type Pool struct {
	Vendors   []Vendor
	Customers []Customer
	Materials []Material
	Assets    []FixedAsset
	Employees []Employee
}

// Registry provides indexed, deterministic-order lookups over a Pool so
// document-flow engines can pick entities without ranging Go maps.
type Registry struct {
	Pool *Pool
}

// ActiveVendorAt returns the vendor at position idx among vendors active
// at t, wrapping modulo the active count. Returns false if none are active.
func (r *Registry) ActiveVendorAt(t time.Time, idx int) (Vendor, bool) {
	var active []Vendor
	for _, v := range r.Pool.Vendors {
		if v.Validity.Active(t) {
			active = append(active, v)
		}
	}
	if len(active) == 0 {
		return Vendor{}, false
	}
	return active[idx%len(active)], true
}

// ActiveCustomerAt is ActiveVendorAt's Customer analogue.
func (r *Registry) ActiveCustomerAt(t time.Time, idx int) (Customer, bool) {
	var active []Customer
	for _, c := range r.Pool.Customers {
		if c.Validity.Active(t) {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return Customer{}, false
	}
	return active[idx%len(active)], true
}

// ActiveMaterialAt is ActiveVendorAt's Material analogue.
func (r *Registry) ActiveMaterialAt(t time.Time, idx int) (Material, bool) {
	var active []Material
	for _, m := range r.Pool.Materials {
		if m.Validity.Active(t) {
			active = append(active, m)
		}
	}
	if len(active) == 0 {
		return Material{}, false
	}
	return active[idx%len(active)], true
}

// Build generates a full Pool deterministically from seed, horizonStart,
// and horizonEnd (the master-data phase's date range, used only to assign
// validity intervals — not all entities start active on day one).
func Build(seed rng.Seed, counts Counts, horizonStart, horizonEnd time.Time) *Pool {
	s := rng.SubStream(seed, "masterdata", 0)

	pool := &Pool{}

	for i := 0; i < counts.Vendors; i++ {
		name, culture := OrganizationName(s)
		pool.Vendors = append(pool.Vendors, Vendor{
			ID:       id.FromUUIDBytes(id.PrefixVendor, rng.DeterministicUUIDBytes(seed, "vendor", uint64(i))),
			Name:     name,
			Culture:  culture,
			Terms:    drawPaymentTerms(s),
			BankAcct: drawBankAccount(s),
			Validity: drawValidity(s, horizonStart, horizonEnd),
		})
	}

	for i := 0; i < counts.Customers; i++ {
		name, culture := OrganizationName(s)
		pool.Customers = append(pool.Customers, Customer{
			ID:       id.FromUUIDBytes(id.PrefixCustomer, rng.DeterministicUUIDBytes(seed, "customer", uint64(i))),
			Name:     name,
			Culture:  culture,
			Rating:   drawCreditRating(s),
			Validity: drawValidity(s, horizonStart, horizonEnd),
		})
	}

	for i := 0; i < counts.Materials; i++ {
		pool.Materials = append(pool.Materials, Material{
			ID:          id.FromUUIDBytes(id.PrefixMaterial, rng.DeterministicUUIDBytes(seed, "material", uint64(i))),
			Name:        "Material " + strconv.Itoa(i+1),
			UnitPriceUS: types.USD(int64(s.IntRange(500, 500_000))),
			Validity:    drawValidity(s, horizonStart, horizonEnd),
		})
	}

	for i := 0; i < counts.Assets; i++ {
		pool.Assets = append(pool.Assets, FixedAsset{
			ID:                 id.FromUUIDBytes(id.PrefixAsset, rng.DeterministicUUIDBytes(seed, "asset", uint64(i))),
			Name:               "Fixed Asset " + strconv.Itoa(i+1),
			AcquisitionCost:    types.USD(int64(s.IntRange(100_000, 50_000_000))),
			DepreciationMonths: int(s.IntRange(24, 120)),
			Validity:           drawValidity(s, horizonStart, horizonEnd),
		})
	}

	for i := 0; i < counts.Employees; i++ {
		name, culture := PersonaName(s)
		pool.Employees = append(pool.Employees, Employee{
			ID:       id.FromUUIDBytes(id.PrefixEmployee, rng.DeterministicUUIDBytes(seed, "employee", uint64(i))),
			Name:     name,
			Culture:  culture,
			Role:     drawRole(s),
			Validity: drawValidity(s, horizonStart, horizonEnd),
		})
	}

	return pool
}

func drawValidity(s *rng.Stream, start, end time.Time) ValidityInterval {
	horizonDays := int64(end.Sub(start).Hours() / 24)
	if horizonDays < 1 {
		horizonDays = 1
	}

	offset := s.IntRange(0, horizonDays/4) // most entities start active early
	validFrom := start.AddDate(0, 0, int(offset))

	var validTo time.Time
	if s.Bool(0.05) { // a small fraction of entities retire during the run
		retireOffset := s.IntRange(offset+1, horizonDays)
		validTo = start.AddDate(0, 0, int(retireOffset))
	}

	return ValidityInterval{ValidFrom: validFrom, ValidTo: validTo}
}

func drawPaymentTerms(s *rng.Stream) PaymentTerms {
	options := []PaymentTerms{TermsNet15, TermsNet30, TermsNet30, TermsNet30, TermsNet45, TermsNet60}
	return options[s.IntRange(0, int64(len(options)-1))]
}

func drawCreditRating(s *rng.Stream) CreditRating {
	options := []CreditRating{RatingExcellent, RatingGood, RatingGood, RatingFair, RatingPoor}
	return options[s.IntRange(0, int64(len(options)-1))]
}

func drawRole(s *rng.Stream) Role {
	options := []Role{
		RoleJuniorAccountant, RoleJuniorAccountant, RoleSeniorAccountant,
		RoleController, RoleManager, RoleAutomatedSystem,
	}
	return options[s.IntRange(0, int64(len(options)-1))]
}

func drawBankAccount(s *rng.Stream) string {
	digits := "0123456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = digits[s.IntRange(0, 9)]
	}
	return string(b)
}
