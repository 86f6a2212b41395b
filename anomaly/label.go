// Package anomaly implements the fraud/anomaly injector: a closed,
// tagged-variant dispatch over the five anomaly categories that either
// preserves the balance invariant by construction or explicitly labels
// the result as an intentionally unbalanced error.
package anomaly

import (
	"github.com/synthgl/genengine/id"
)

// Category is one of the five anomaly categories.
type Category string

const (
	CategoryFraud       Category = "Fraud"
	CategoryError       Category = "Error"
	CategoryProcessIssue Category = "ProcessIssue"
	CategoryStatistical Category = "Statistical"
	CategoryRelational  Category = "Relational"
)

// InvariantPreserving reports whether entries of this category must still
// satisfy the balance/account-reference invariants after injection. Only
// Error may break them, and only when explicitly labeled as such.
func (c Category) InvariantPreserving() bool {
	return c != CategoryError
}

// Variant is the closed set of anomaly types this injector knows how to
// produce, grouped by category per spec.md 4.8.
type Variant string

const (
	VariantSplitTransaction     Variant = "SplitTransaction"
	VariantDuplicatePayment     Variant = "DuplicatePayment"
	VariantGhostEmployee        Variant = "GhostEmployee"
	VariantFictitiousTransaction Variant = "FictitiousTransaction"

	VariantWrongAccount        Variant = "WrongAccount"
	VariantWrongPeriod         Variant = "WrongPeriod"
	VariantReversedDebitCredit Variant = "ReversedDebitCredit"

	VariantLatePosting    Variant = "LatePosting"
	VariantSkippedApproval Variant = "SkippedApproval"
	VariantOutOfSequence  Variant = "OutOfSequence"

	VariantBenfordViolation Variant = "BenfordViolation"
	VariantOutlierValue     Variant = "OutlierValue"

	VariantCircularTransaction   Variant = "CircularTransaction"
	VariantDormantAccountActivity Variant = "DormantAccountActivity"
)

// categoryOf maps every known variant to its category, the single switch
// the injector and serializer both dispatch through (spec design note:
// "a closed, tagged variant over the known ... anomaly categories rather
// than open inheritance").
var categoryOf = map[Variant]Category{
	VariantSplitTransaction:      CategoryFraud,
	VariantDuplicatePayment:      CategoryFraud,
	VariantGhostEmployee:         CategoryFraud,
	VariantFictitiousTransaction: CategoryFraud,

	VariantWrongAccount:        CategoryError,
	VariantWrongPeriod:         CategoryError,
	VariantReversedDebitCredit: CategoryError,

	VariantLatePosting:     CategoryProcessIssue,
	VariantSkippedApproval: CategoryProcessIssue,
	VariantOutOfSequence:   CategoryProcessIssue,

	VariantBenfordViolation: CategoryStatistical,
	VariantOutlierValue:     CategoryStatistical,

	VariantCircularTransaction:    CategoryRelational,
	VariantDormantAccountActivity: CategoryRelational,
}

// CategoryOf returns v's category.
func CategoryOf(v Variant) Category { return categoryOf[v] }

// Severity is a coarse impact rating attached to every label.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Label ties an entry or document identifier to its injected anomaly,
// for downstream ML use.
type Label struct {
	ID          id.AnomalyLabelID
	EntryID     id.JournalEntryID
	DocumentID  id.DocumentID
	Category    Category
	Variant     Variant
	Severity    Severity
	Narrative   string
	// IntentionallyUnbalanced is set only for Error-category labels whose
	// semantics are "unbalanced entry produced by human error" — the
	// explicit opt-out the specification requires instead of silently
	// breaking the balance invariant.
	IntentionallyUnbalanced bool
}
