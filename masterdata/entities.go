package masterdata

import (
	"time"

	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/types"
)

// Master entities carry no created_at/updated_at bookkeeping: their only
// temporal dimension is ValidityInterval, drawn deterministically from the
// seeded RNG stream below. A wall-clock timestamp field would make two runs
// with the same seed produce byte-different output (Testable Property 7).

// PaymentTerms is a vendor's configured days-to-pay distribution bucket.
type PaymentTerms string

const (
	TermsNet15 PaymentTerms = "net15"
	TermsNet30 PaymentTerms = "net30"
	TermsNet45 PaymentTerms = "net45"
	TermsNet60 PaymentTerms = "net60"
)

// CreditRating is a customer's credit-rating bucket.
type CreditRating string

const (
	RatingExcellent CreditRating = "excellent"
	RatingGood      CreditRating = "good"
	RatingFair      CreditRating = "fair"
	RatingPoor      CreditRating = "poor"
)

// Role is an employee persona's organizational role, carrying a
// role-specific approval-limit distribution.
type Role string

const (
	RoleJuniorAccountant Role = "junior_accountant"
	RoleSeniorAccountant Role = "senior_accountant"
	RoleController       Role = "controller"
	RoleManager          Role = "manager"
	RoleAutomatedSystem  Role = "automated_system"
)

// approvalLimits gives the upper bound of each role's approval-limit
// distribution, in cents. Employee generation (drawRole) does not read it,
// and it is not used to validate configured approval_thresholds.
var approvalLimits = map[Role]int64{
	RoleJuniorAccountant: 500_00,
	RoleSeniorAccountant: 5_000_00,
	RoleController:       50_000_00,
	RoleManager:          250_000_00,
	RoleAutomatedSystem:  1_000_00,
}

// ApprovalLimit returns the configured approval ceiling for role.
func ApprovalLimit(r Role) int64 { return approvalLimits[r] }

// ValidityInterval is the [ValidFrom, ValidTo) window during which an
// entity may be referenced by document flows. A zero ValidTo means the
// entity is still active at the end of the configured generation horizon.
type ValidityInterval struct {
	ValidFrom time.Time
	ValidTo   time.Time
}

// Active reports whether t falls within the interval.
func (v ValidityInterval) Active(t time.Time) bool {
	if t.Before(v.ValidFrom) {
		return false
	}
	if !v.ValidTo.IsZero() && !t.Before(v.ValidTo) {
		return false
	}
	return true
}

// Vendor is a P2P-side master entity.
type Vendor struct {
	ID       id.VendorID
	Name     string
	Culture  Culture
	Terms    PaymentTerms
	BankAcct string
	Validity ValidityInterval
}

// Customer is an O2C-side master entity.
type Customer struct {
	ID       id.CustomerID
	Name     string
	Culture  Culture
	Rating   CreditRating
	Validity ValidityInterval
}

// Material is a product/service line catalog entry referenced by P2P and
// O2C line items.
type Material struct {
	ID          id.MaterialID
	Name        string
	UnitPriceUS types.Money
	Validity    ValidityInterval
}

// FixedAsset is a depreciable asset referenced by R2R journal entries.
type FixedAsset struct {
	ID                 id.AssetID
	Name               string
	AcquisitionCost    types.Money
	DepreciationMonths int
	Validity           ValidityInterval
}

// Employee is a persona that authors, approves, or executes journal
// entries and document-flow steps.
type Employee struct {
	ID       id.EmployeeID
	Name     string
	Culture  Culture
	Role     Role
	Validity ValidityInterval
}
