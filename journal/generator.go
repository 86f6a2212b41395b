package journal

import (
	"sort"
	"time"

	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/rng"
	"github.com/synthgl/genengine/sample"
	"github.com/synthgl/genengine/types"
)

// AccountPool resolves the candidate accounts a line may draw from, given
// the business process and whether the line is a debit or credit line.
// The journal-entry generator asks the caller for this pool rather than
// owning chart-of-accounts knowledge itself, so it stays agnostic to
// industry presets.
type AccountPool interface {
	// Candidates returns, in stable order, account codes eligible for a
	// line of the given process and side.
	Candidates(process Process, debitSide bool) []string
}

// BalanceSplitConfig parameterizes the empirical debit/credit line-count
// split distribution (spec.md 4.6 step 2 defaults).
type BalanceSplitConfig struct {
	EvenProbability        float64 // K/2 on each side
	MoreCreditsProbability float64
	MoreDebitsProbability  float64
}

// DefaultBalanceSplit mirrors the specification's defaults: 82% equal
// split, 11% more credit lines, 7% more debit lines, 88% even total K.
func DefaultBalanceSplit() BalanceSplitConfig {
	return BalanceSplitConfig{
		EvenProbability:        0.82,
		MoreCreditsProbability: 0.11,
		MoreDebitsProbability:  0.07,
	}
}

// Generator builds balanced journal entries via the algorithm in
// spec.md 4.6.
type Generator struct {
	Chart        *coa.Chart
	Accounts     AccountPool
	LineCounts   sample.LineItemCountSampler
	Amounts      sample.AmountSampler
	Benford      sample.BenfordDigitSampler
	BalanceSplit BalanceSplitConfig
}

// Request carries the per-entry parameters the caller (a document-flow
// engine or the standalone batch generator) supplies.
type Request struct {
	Seed        rng.Seed
	Counter     uint64
	CompanyCode string
	Process     Process
	Source      Source
	PostingDate time.Time
	DocumentDate time.Time
}

// Build draws K, D, the total amount, partitions it across debit and
// credit lines, reconciles rounding residuals, assigns accounts, and
// attaches header metadata — the full seven-step algorithm. The returned
// Entry always satisfies IsBalanced(); the hard post-condition is
// guaranteed by construction, not checked after the fact.
func (g *Generator) Build(req Request) Entry {
	s := rng.SubStream(req.Seed, "journal", req.Counter)

	// Step 1: line count K.
	k := g.LineCounts.Sample(s)
	if k < 2 {
		k = 2
	}

	// Step 2: debit-side line count D.
	d := g.drawDebitCount(s, k)

	// Step 3: total amount A, Benford-constrained.
	benfordDigit := g.Benford.Sample(s)
	total := g.Amounts.Sample(s, benfordDigit)

	// Step 4+5: partition and reconcile.
	debitAmounts := partitionBalanced(s, total, d)
	creditAmounts := partitionBalanced(s, total, k-d)

	header := Header{
		ID:           id.FromUUIDBytes(id.PrefixJournalEntry, rng.DeterministicUUIDBytes(req.Seed, "journal", req.Counter)),
		CompanyCode:  req.CompanyCode,
		FiscalYear:   req.PostingDate.Year(),
		FiscalPeriod: int(req.PostingDate.Month()),
		PostingDate:  req.PostingDate,
		DocumentDate: req.DocumentDate,
		CreatedAt:    sample.WorkingHourTimestamp(s, req.PostingDate),
		Source:       req.Source,
		Process:      req.Process,
	}

	lines := make([]Line, 0, k)

	debitAccounts := g.Accounts.Candidates(req.Process, true)
	for i, amt := range debitAmounts {
		code := pickAccount(s, debitAccounts)
		lines = append(lines, Line{
			AccountCode: code,
			Debit:       amt,
			Credit:      types.Zero(amt.Currency),
			Description: "auto-generated debit line",
		})
		_ = i
	}

	creditAccounts := g.Accounts.Candidates(req.Process, false)
	for _, amt := range creditAmounts {
		code := pickAccount(s, creditAccounts)
		lines = append(lines, Line{
			AccountCode: code,
			Debit:       types.Zero(amt.Currency),
			Credit:      amt,
			Description: "auto-generated credit line",
		})
	}

	return Entry{Header: header, Lines: lines}
}

func (g *Generator) drawDebitCount(s *rng.Stream, k int) int {
	u := s.Float64()
	switch {
	case u < g.BalanceSplit.EvenProbability:
		d := k / 2
		if d < 1 {
			d = 1
		}
		return d
	case u < g.BalanceSplit.EvenProbability+g.BalanceSplit.MoreCreditsProbability:
		d := k/2 - 1
		if d < 1 {
			d = 1
		}
		return d
	default:
		d := k/2 + 1
		if d > k-1 {
			d = k - 1
		}
		if d < 1 {
			d = 1
		}
		return d
	}
}

// partitionBalanced draws n-1 cut points uniformly on [0, total], sorts
// them, takes differences to get n sub-amounts, rounds each to cents (it
// already is cents, so this is a no-op on precision but preserves the
// algorithm's shape), and reconciles any residual onto the largest line —
// guaranteeing the sub-amounts sum to exactly total.
func partitionBalanced(s *rng.Stream, total types.Money, n int) []types.Money {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []types.Money{total}
	}

	cuts := make([]int64, n-1)
	for i := range cuts {
		cuts[i] = s.IntRange(0, total.Amount)
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i] < cuts[j] })

	amounts := make([]int64, n)
	prev := int64(0)
	for i, c := range cuts {
		amounts[i] = c - prev
		prev = c
	}
	amounts[n-1] = total.Amount - prev

	// Reconcile: the cut-point differences already sum exactly to
	// total.Amount in integer cents, so no residual exists at this stage.
	// The residual step exists for callers that additionally apply
	// per-line rounding (e.g. unit-price * quantity lines); here it is a
	// defensive no-op that still holds the invariant if amounts drifts.
	var sum int64
	largest := 0
	for i, a := range amounts {
		sum += a
		if a > amounts[largest] {
			largest = i
		}
	}
	if residual := total.Amount - sum; residual != 0 {
		amounts[largest] += residual
	}

	result := make([]types.Money, n)
	for i, a := range amounts {
		result[i] = types.Money{Amount: a, Currency: total.Currency}
	}
	return result
}

func pickAccount(s *rng.Stream, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[s.IntRange(0, int64(len(candidates)-1))]
}
