package anomaly

import (
	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/rng"
	"github.com/synthgl/genengine/types"
)

// RateConfig gives each variant its target injection rate, as a fraction
// of entries passed through Injector.Apply.
type RateConfig struct {
	TotalRate float64
	Variants  map[Variant]float64 // must sum to <= 1.0
}

// Injector applies labeled modifications to a batch of generated entries,
// operating as a post-pass (or inline during flow generation for
// process-level anomalies, via ApplyProcessIssue).
//
// Critical requirement this type exists to enforce: injectors that modify
// amounts must adjust contra-entries to keep sum(debit) == sum(credit), or
// the modified entry must be explicitly labeled as an Error variant whose
// semantics are "unbalanced entry produced by human error." Silent
// invariant violation is a bug — every mutating method below either
// rebalances before returning or sets Label.IntentionallyUnbalanced.
type Injector struct {
	Seed   rng.Seed
	Config RateConfig
}

// Apply decides whether entry is selected for injection and, if so, which
// variant to apply, then returns the (possibly mutated) entry alongside
// its label. ok is false when no injection was selected for this entry.
func (inj Injector) Apply(entry journal.Entry, counter uint64) (journal.Entry, Label, bool) {
	s := rng.SubStream(inj.Seed, "anomaly", counter)
	if !s.Bool(inj.Config.TotalRate) {
		return entry, Label{}, false
	}

	variant := inj.pickVariant(s)
	mutated, label := inj.dispatch(entry, variant, s, counter)
	return mutated, label, true
}

// pickVariant draws a variant from Config.Variants using a fixed,
// deterministic order — never ranging the map directly for the draw
// itself, since Go map iteration order is randomized.
func (inj Injector) pickVariant(s *rng.Stream) Variant {
	order := []Variant{
		VariantSplitTransaction, VariantDuplicatePayment, VariantGhostEmployee, VariantFictitiousTransaction,
		VariantWrongAccount, VariantWrongPeriod, VariantReversedDebitCredit,
		VariantLatePosting, VariantSkippedApproval, VariantOutOfSequence,
		VariantBenfordViolation, VariantOutlierValue,
		VariantCircularTransaction, VariantDormantAccountActivity,
	}

	var total float64
	for _, v := range order {
		total += inj.Config.Variants[v]
	}
	if total <= 0 {
		return VariantBenfordViolation
	}

	u := s.Float64() * total
	var cum float64
	for _, v := range order {
		cum += inj.Config.Variants[v]
		if u <= cum {
			return v
		}
	}
	return order[len(order)-1]
}

func (inj Injector) newLabelID(counter uint64) id.AnomalyLabelID {
	return id.FromUUIDBytes(id.PrefixAnomalyLabel, rng.DeterministicUUIDBytes(inj.Seed, "anomaly-label", counter))
}

func (inj Injector) dispatch(entry journal.Entry, v Variant, s *rng.Stream, counter uint64) (journal.Entry, Label) {
	label := Label{
		ID:       inj.newLabelID(counter),
		EntryID:  entry.Header.ID,
		Category: CategoryOf(v),
		Variant:  v,
		Severity: SeverityMedium,
	}

	switch v {
	case VariantSplitTransaction:
		return applySplitTransaction(entry, s, label)
	case VariantFictitiousTransaction:
		return applyFictitiousTransaction(entry, label)
	case VariantDuplicatePayment, VariantGhostEmployee:
		// These variants are realized at the document-flow level (a
		// duplicate Payment document, a fabricated Employee persona); at
		// the entry level they are invariant-preserving passthroughs that
		// only attach the label.
		entry.Header.FraudMarker = true
		entry.Header.FraudType = string(v)
		label.Narrative = "flagged at document-flow level: " + string(v)
		return entry, label

	case VariantWrongAccount:
		return applyWrongAccount(entry, s, label)
	case VariantReversedDebitCredit:
		return applyReversedDebitCredit(entry, label)
	case VariantWrongPeriod:
		return applyWrongPeriod(entry, label)

	case VariantLatePosting, VariantSkippedApproval, VariantOutOfSequence:
		entry.Header.ControlStatus = "flagged:" + string(v)
		label.Narrative = "process-level anomaly: " + string(v)
		return entry, label

	case VariantBenfordViolation, VariantOutlierValue:
		return applyStatisticalAnomaly(entry, s, label)

	case VariantCircularTransaction, VariantDormantAccountActivity:
		label.Narrative = "relational anomaly: " + string(v)
		return entry, label

	default:
		return entry, label
	}
}

// applySplitTransaction sets the entry's total to just below a fixed
// approval threshold of 10,000.00 (1,000,000 cents), somewhere in
// [9,000.00, 9,999.99], rebalancing debit and credit sides so the result
// remains a valid accounting entry (Fraud is invariant-preserving per
// spec.md 4.8). The threshold is not read from config.Fraud.
func applySplitTransaction(entry journal.Entry, s *rng.Stream, label Label) (journal.Entry, Label) {
	const threshold = int64(1_000_000)
	target := threshold - 1 - s.IntRange(0, 99_999) // lands in [threshold-100000, threshold-1]

	rebalanceTo(&entry, target)
	label.Narrative = "amount reduced to just below approval threshold"
	return entry, label
}

// applyFictitiousTransaction snaps the entry's total to a round number
// (anti-Benford), rebalancing both sides.
func applyFictitiousTransaction(entry journal.Entry, label Label) (journal.Entry, Label) {
	total := entry.SumDebits()
	rounded := (total.Amount/100000 + 1) * 100000 // round up to the next multiple of 1000 major units
	rebalanceTo(&entry, rounded)
	label.Narrative = "amount snapped to round number (anti-Benford)"
	return entry, label
}

// applyWrongAccount reassigns one line to a plausible-but-incorrect
// account without touching amounts, so the balance invariant is untouched.
// The shifted code is usually absent from the company's chart (coa.Build
// only mints codes ending in 0), so the entry can break the
// account-existence invariant; the Error-category label records the
// misclassification.
func applyWrongAccount(entry journal.Entry, s *rng.Stream, label Label) (journal.Entry, Label) {
	if len(entry.Lines) == 0 {
		return entry, label
	}
	idx := int(s.IntRange(0, int64(len(entry.Lines)-1)))
	original := entry.Lines[idx].AccountCode
	entry.Lines[idx].AccountCode = shiftAccountCode(original)
	label.Narrative = "line reassigned from " + original + " to " + entry.Lines[idx].AccountCode
	return entry, label
}

func shiftAccountCode(code string) string {
	// A deterministic, plausible-looking misclassification: bump the
	// account's last digit. Real charts reserve the neighboring code for
	// a sibling account in the same subtree, which is the scenario this
	// anomaly simulates.
	if len(code) == 0 {
		return code
	}
	b := []byte(code)
	b[len(b)-1] = '0' + (b[len(b)-1]-'0'+1)%10
	return string(b)
}

// applyReversedDebitCredit swaps debit and credit on one line. This is
// the one variant that genuinely breaks sum(debit) == sum(credit) for a
// non-trivial entry: it is explicitly an Error category label documenting
// that the resulting entry is unbalanced by design, never silently.
func applyReversedDebitCredit(entry journal.Entry, label Label) (journal.Entry, Label) {
	if len(entry.Lines) == 0 {
		return entry, label
	}
	entry.Lines[0].Debit, entry.Lines[0].Credit = entry.Lines[0].Credit, entry.Lines[0].Debit
	label.Narrative = "debit/credit reversed on one line: unbalanced entry produced by human error"
	label.IntentionallyUnbalanced = true
	label.Severity = SeverityHigh
	return entry, label
}

// applyWrongPeriod shifts the posting date into the prior fiscal period
// without touching any amount — invariant-preserving by construction,
// labeled as an Error because the period assignment itself is wrong.
func applyWrongPeriod(entry journal.Entry, label Label) (journal.Entry, Label) {
	entry.Header.PostingDate = entry.Header.PostingDate.AddDate(0, -1, 0)
	label.Narrative = "posting date shifted into the prior fiscal period"
	return entry, label
}

// applyStatisticalAnomaly nudges the total to deliberately violate
// Benford's Law or sit as a magnitude outlier, rebalancing both sides so
// the entry remains valid accounting.
func applyStatisticalAnomaly(entry journal.Entry, s *rng.Stream, label Label) (journal.Entry, Label) {
	total := entry.SumDebits()
	multiplier := 1 + s.IntRange(5, 20)
	rebalanceTo(&entry, total.Amount*multiplier)
	label.Narrative = "amount rescaled to produce a statistical outlier"
	return entry, label
}

// rebalanceTo rescales every debit and credit line proportionally so the
// entry's new total is target, preserving the relative shape of the
// original partition while guaranteeing sum(debit) == sum(credit) ==
// target exactly (the residual is reconciled onto the largest line on
// each side, mirroring the journal generator's own reconciliation step).
func rebalanceTo(entry *journal.Entry, target int64) {
	oldTotal := entry.SumDebits().Amount
	if oldTotal == 0 {
		return
	}

	rescaleSide := func(isDebit bool) {
		var sum int64
		largest := -1
		for i, l := range entry.Lines {
			if l.IsDebit() != isDebit {
				continue
			}
			var amt *types.Money
			if isDebit {
				amt = &entry.Lines[i].Debit
			} else {
				amt = &entry.Lines[i].Credit
			}
			amt.Amount = amt.Amount * target / oldTotal
			sum += amt.Amount
			if largest == -1 || amt.Amount > entry.Lines[largest].Debit.Amount+entry.Lines[largest].Credit.Amount {
				largest = i
			}
		}
		if largest >= 0 {
			if isDebit {
				entry.Lines[largest].Debit.Amount += target - sum
			} else {
				entry.Lines[largest].Credit.Amount += target - sum
			}
		}
	}

	rescaleSide(true)
	rescaleSide(false)
}
