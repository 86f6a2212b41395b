package orchestrator

import (
	"context"
	"fmt"
	"math"

	"github.com/synthgl/genengine/anomaly"
	"github.com/synthgl/genengine/balance"
	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/flow"
	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/masterdata"
	"github.com/synthgl/genengine/rng"
	"github.com/synthgl/genengine/sample"
	"github.com/synthgl/genengine/sink"
	"github.com/synthgl/genengine/types"
)

// intercompanyCompanyCode is the synthetic consolidation entity elimination
// entries post against. The generated companies are operating entities,
// not the group itself, so eliminations have no company chart of their
// own to check invariants against — they are written straight to the sink.
const intercompanyCompanyCode = "GROUP"

// samplers bundles the shared, read-only sampler instances every
// downstream phase draws from (spec.md §2 phase 2). Samplers carry no
// per-call state beyond the *rng.Stream passed in, so one instance is
// safely shared read-only across every worker goroutine.
type samplers struct {
	benford    sample.BenfordDigitSampler
	amounts    sample.AmountSampler
	lineCounts sample.LineItemCountSampler
	temporal   map[string]*sample.TemporalSampler // keyed by company code
}

// runRNGPhase (phase 1) has nothing left to do beyond what New already
// resolved: the seed is fixed at construction so every later phase derives
// its sub-streams from it. The phase exists in the pipeline purely so its
// share of the progress bar and its metrics label are visible to callers.
func (o *Orchestrator) runRNGPhase(_ context.Context) error {
	return nil
}

// runSamplerPhase (phase 2) builds the shared statistical samplers and the
// anomaly injector. The injector is built here, not in runAnomalyPhase,
// because it is applied inline as each entry is generated in phases 5-6 —
// re-reading already-flushed entries in a later pass would defeat the
// streaming, bounded-memory design spec.md §4.9 requires for 100M-entry
// runs. runAnomalyPhase (phase 8) does no work of its own, per its own
// comment.
func (o *Orchestrator) runSamplerPhase(_ context.Context) error {
	o.smp = &samplers{
		benford:    sample.BenfordDigitSampler{},
		lineCounts: lineItemSamplerFrom(o.cfg.Transactions.LineItemDistribution),
		amounts: sample.AmountSampler{Config: sample.AmountConfig{
			Currency:               o.cfg.Global.GroupCurrency,
			Mu:                     o.cfg.Transactions.AmountDistribution.Mu,
			Sigma:                  o.cfg.Transactions.AmountDistribution.Sigma,
			RoundNumberProbability: o.cfg.Transactions.AmountDistribution.RoundNumberProbability,
			NiceNumberProbability:  o.cfg.Transactions.AmountDistribution.NiceNumberProbability,
			BenfordCompliance:      o.cfg.Transactions.AmountDistribution.BenfordCompliance,
		}},
		temporal: make(map[string]*sample.TemporalSampler, len(o.cfg.Companies)),
	}

	end := o.cfg.Global.StartDate.AddDate(0, o.cfg.Global.PeriodMonths, 0)
	seasonCfg := sample.SeasonalityConfig{
		MonthEndMultiplier:   o.cfg.Transactions.Seasonality.MonthEndMultiplier,
		QuarterEndMultiplier: o.cfg.Transactions.Seasonality.QuarterEndMultiplier,
		YearEndMultiplier:    o.cfg.Transactions.Seasonality.YearEndMultiplier,
		WeekendMultiplier:    1 - o.cfg.Transactions.Seasonality.WeekendActivity,
		HolidayMultiplier:    1 - o.cfg.Transactions.Seasonality.HolidaySuppression,
		Regions:              regionsFrom(o.cfg.Transactions.Seasonality.Regions),
		Industry:             sample.Industry(o.cfg.Global.Industry),
	}

	for _, company := range o.cfg.Companies {
		o.smp.temporal[company.Code] = sample.NewTemporalSampler(seasonCfg, o.cfg.Global.StartDate, end)
	}

	o.injector = anomaly.Injector{Seed: o.seed, Config: anomalyRateConfig(o.cfg.AnomalyInjection.TotalRate, o.cfg.AnomalyInjection.CategoryWeights)}

	return nil
}

// anomalyRateConfig spreads each category's configured weight evenly across
// its variants, since spec.md §6's anomaly_injection.category_weights block
// is expressed per-category while anomaly.RateConfig dispatches per-variant.
func anomalyRateConfig(totalRate float64, categoryWeights map[string]float64) anomaly.RateConfig {
	byCategory := map[anomaly.Category][]anomaly.Variant{
		anomaly.CategoryFraud:        {anomaly.VariantSplitTransaction, anomaly.VariantDuplicatePayment, anomaly.VariantGhostEmployee, anomaly.VariantFictitiousTransaction},
		anomaly.CategoryError:        {anomaly.VariantWrongAccount, anomaly.VariantWrongPeriod, anomaly.VariantReversedDebitCredit},
		anomaly.CategoryProcessIssue: {anomaly.VariantLatePosting, anomaly.VariantSkippedApproval, anomaly.VariantOutOfSequence},
		anomaly.CategoryStatistical:  {anomaly.VariantBenfordViolation, anomaly.VariantOutlierValue},
		anomaly.CategoryRelational:   {anomaly.VariantCircularTransaction, anomaly.VariantDormantAccountActivity},
	}

	variants := make(map[anomaly.Variant]float64)
	for catName, weight := range categoryWeights {
		variantsInCat := byCategory[normalizeCategory(catName)]
		if len(variantsInCat) == 0 || weight <= 0 {
			continue
		}
		each := weight / float64(len(variantsInCat))
		for _, v := range variantsInCat {
			variants[v] = each
		}
	}

	return anomaly.RateConfig{TotalRate: totalRate, Variants: variants}
}

// normalizeCategory accepts the config file's snake_case/lowercase category
// names (spec.md §6's anomaly_injection.category_weights keys, e.g.
// "process_issue") and maps them onto anomaly.Category's Go-cased constants.
func normalizeCategory(name string) anomaly.Category {
	switch name {
	case "fraud", "Fraud":
		return anomaly.CategoryFraud
	case "error", "Error":
		return anomaly.CategoryError
	case "process_issue", "processissue", "ProcessIssue":
		return anomaly.CategoryProcessIssue
	case "statistical", "Statistical":
		return anomaly.CategoryStatistical
	case "relational", "Relational":
		return anomaly.CategoryRelational
	default:
		return anomaly.Category(name)
	}
}

func lineItemSamplerFrom(dist map[string]float64) sample.LineItemCountSampler {
	if len(dist) == 0 {
		return sample.NewLineItemCountSampler()
	}
	weights := make([]sample.CountWeight, 0, len(dist))
	for k, w := range dist {
		var lo, hi int
		if _, err := fmt.Sscanf(k, "%d-%d", &lo, &hi); err != nil {
			if _, err := fmt.Sscanf(k, "%d", &lo); err != nil {
				continue
			}
			hi = lo
		}
		weights = append(weights, sample.CountWeight{Count: lo, HighCount: hi, Weight: w})
	}
	return sample.LineItemCountSampler{Weights: weights}
}

// pickSource draws a journal.Source from dist (spec.md §6's
// transactions.source_distribution, keyed by the same lowercase tags as
// journal.Source's own constants). Falls back to SourceManual when dist is
// empty or has no positive weight for a known source; a draw that lands
// past the last cumulative weight due to rounding returns the last source
// in order (SourceAdjustment).
func pickSource(s *rng.Stream, dist map[string]float64) journal.Source {
	if len(dist) == 0 {
		return journal.SourceManual
	}

	order := []journal.Source{
		journal.SourceManual, journal.SourceInterface, journal.SourceBatch,
		journal.SourceRecurring, journal.SourceAdjustment,
	}

	var total float64
	for _, src := range order {
		total += dist[string(src)]
	}
	if total <= 0 {
		return journal.SourceManual
	}

	u := s.Float64() * total
	var cum float64
	for _, src := range order {
		cum += dist[string(src)]
		if u <= cum {
			return src
		}
	}
	return order[len(order)-1]
}

func regionsFrom(codes []string) []sample.Region {
	out := make([]sample.Region, 0, len(codes))
	for _, c := range codes {
		out = append(out, sample.Region(c))
	}
	if len(out) == 0 {
		out = append(out, sample.RegionUS)
	}
	return out
}

func (o *Orchestrator) runChartPhase(ctx context.Context) error {
	g, gctx := o.newWorkerGroup(ctx)
	o.companies = make([]companyState, len(o.cfg.Companies))

	for i, company := range o.cfg.Companies {
		i, company := i, company
		g.Go(func() error {
			if err := o.waitIfPaused(gctx); err != nil {
				return err
			}
			chart, err := coa.Build(company.Code, coa.Options{
				Industry:   coa.Industry(o.cfg.Global.Industry),
				Complexity: coa.Complexity(o.cfg.ChartOfAccounts.Complexity),
				MinDepth:   o.cfg.ChartOfAccounts.MinDepth,
				MaxDepth:   o.cfg.ChartOfAccounts.MaxDepth,
			})
			if err != nil {
				return fmt.Errorf("chart_of_accounts: company %s: %w", company.Code, err)
			}
			o.companies[i] = companyState{company: company, chart: chart}
			o.tracker.SeedOpeningBalances(company.Code, chart, zeroOpeningBalances(chart, company.Currency))

			if err := o.sink.Write(gctx, *chart); err != nil {
				return wrapSinkErr(err)
			}
			return nil
		})
	}

	return g.Wait()
}

// zeroOpeningBalances computes a company's opening trial balance directly
// from its chart: every account starts at zero. This is the seeding rule
// the engine commits to for spec.md §3's "opening balances are computed
// once from the chart" — a freshly built chart has no prior period to
// carry non-zero balances forward from.
func zeroOpeningBalances(chart *coa.Chart, currency string) []balance.AccountBalance {
	balances := make([]balance.AccountBalance, 0, len(chart.Accounts))
	for code := range chart.Accounts {
		balances = append(balances, balance.AccountBalance{
			AccountCode: code,
			Debit:       types.Zero(currency),
			Credit:      types.Zero(currency),
		})
	}
	return balances
}

func (o *Orchestrator) runMasterDataPhase(ctx context.Context) error {
	g, gctx := o.newWorkerGroup(ctx)
	end := o.cfg.Global.StartDate.AddDate(0, o.cfg.Global.PeriodMonths, 0)

	for i := range o.companies {
		i := i
		g.Go(func() error {
			if err := o.waitIfPaused(gctx); err != nil {
				return err
			}
			counts := masterdata.Counts{
				Vendors:   o.cfg.MasterData.Vendors.Count,
				Customers: o.cfg.MasterData.Customers.Count,
				Materials: o.cfg.MasterData.Materials.Count,
				Assets:    o.cfg.MasterData.Assets.Count,
				Employees: o.cfg.MasterData.Employees.Count,
			}
			// Each company draws master data from its own sub-stream so two
			// companies never share a vendor/customer/material identity.
			companySeed := rng.Seed(uint64(o.seed) + uint64(i) + 1)
			pool := masterdata.Build(companySeed, counts, o.cfg.Global.StartDate, end)
			o.companies[i].pool = pool

			if err := o.sink.WriteBatch(gctx, masterDataItems(pool)); err != nil {
				return wrapSinkErr(err)
			}
			return nil
		})
	}

	return g.Wait()
}

// masterDataItems flattens a Pool's per-type slices into the sink's
// item stream, so vendors, customers, materials, fixed assets, and
// employees reach the same output consumers as journal entries and
// documents (spec.md §3 lists MasterEntity as a produced top-level type).
func masterDataItems(pool *masterdata.Pool) []sink.Item {
	items := make([]sink.Item, 0, len(pool.Vendors)+len(pool.Customers)+len(pool.Materials)+len(pool.Assets)+len(pool.Employees))
	for _, v := range pool.Vendors {
		items = append(items, v)
	}
	for _, c := range pool.Customers {
		items = append(items, c)
	}
	for _, m := range pool.Materials {
		items = append(items, m)
	}
	for _, a := range pool.Assets {
		items = append(items, a)
	}
	for _, e := range pool.Employees {
		items = append(items, e)
	}
	return items
}

func (o *Orchestrator) runDocumentFlowPhase(ctx context.Context) error {
	if !o.cfg.DocumentFlows.P2P.Enabled && !o.cfg.DocumentFlows.O2C.Enabled {
		return nil
	}

	g, gctx := o.newWorkerGroup(ctx)

	for i := range o.companies {
		i := i
		g.Go(func() error {
			return o.runDocumentFlowsForCompany(gctx, i)
		})
	}

	return g.Wait()
}

func (o *Orchestrator) runDocumentFlowsForCompany(ctx context.Context, idx int) error {
	cs := &o.companies[idx]
	cs.generator = o.newGeneratorFor(cs.chart)

	if o.cfg.DocumentFlows.P2P.Enabled {
		if err := o.runP2PForCompany(ctx, idx); err != nil {
			return err
		}
	}
	if o.cfg.DocumentFlows.O2C.Enabled {
		if err := o.runO2CForCompany(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) newGeneratorFor(chart *coa.Chart) *journal.Generator {
	// Entries are drawn in the company's own currency, the currency its
	// opening balances are seeded in.
	amounts := o.smp.amounts
	for _, c := range o.cfg.Companies {
		if c.Code == chart.CompanyCode {
			amounts.Config.Currency = c.Currency
		}
	}
	return &journal.Generator{
		Chart:        chart,
		Accounts:     journal.ChartAccountPool{Chart: chart},
		LineCounts:   o.smp.lineCounts,
		Amounts:      amounts,
		Benford:      o.smp.benford,
		BalanceSplit: journal.DefaultBalanceSplit(),
	}
}

func (o *Orchestrator) runP2PForCompany(ctx context.Context, idx int) error {
	cs := &o.companies[idx]
	p2pCfg := o.cfg.DocumentFlows.P2P
	engine := flow.P2PEngine{
		Config: flow.P2PConfig{
			ThreeWayMatchRate: p2pCfg.ThreeWayMatchRate, PartialDeliveryRate: p2pCfg.PartialDeliveryRate,
			PriceVarianceRate: p2pCfg.PriceVarianceRate, MaxPriceVariancePercent: p2pCfg.MaxPriceVariancePercent,
			AveragePOToGRDays: p2pCfg.AveragePOToGRDays, AverageGRToInvoiceDays: p2pCfg.AverageGRToInvoiceDays,
			AverageInvoiceToPaymentDays: p2pCfg.AverageInvoiceToPaymentDays, CashDiscountRate: p2pCfg.CashDiscountRate,
		},
		Chart:   cs.chart,
		Journal: cs.generator,
	}

	vendorCount := len(cs.pool.Vendors)
	batch := make([]sink.Item, 0, defaultBatchSize)

	for i := 0; i < p2pCfg.TargetChains; i++ {
		if err := o.throttleAndCheck(ctx); err != nil {
			return err
		}

		vendorID := "vend_unknown"
		if vendorCount > 0 {
			vendorID = cs.pool.Vendors[i%vendorCount].ID.String()
		}

		counter := uint64(idx)<<40 | uint64(i)
		anchorDate := o.cfg.Global.StartDate
		if temporal := o.smp.temporal[cs.company.Code]; temporal != nil {
			anchorDate = temporal.Sample(rng.SubStream(o.seed, "posting-date-p2p", counter))
		}

		chain := engine.BuildChain(o.seed, uint64(i), cs.company.Code, vendorID, anchorDate)
		chain.Entries, batch = o.injectAndCollectLabels(chain.Entries, counter, batch)
		for _, e := range chain.Entries {
			if e.IsBalanced() && e.ReferencesOnlyExistingAccounts(cs.chart) {
				o.tracker.Post(e)
			}
		}

		batch = append(batch, chain)
		o.advance(1)

		if len(batch) >= o.batchSize() {
			if err := o.flushBatch(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	return o.flushBatch(ctx, batch)
}

func (o *Orchestrator) runO2CForCompany(ctx context.Context, idx int) error {
	cs := &o.companies[idx]
	o2cCfg := o.cfg.DocumentFlows.O2C
	engine := flow.O2CEngine{
		Config: flow.O2CConfig{
			CreditCheckFailureRate: o2cCfg.CreditCheckFailureRate, PartialDeliveryRate: o2cCfg.PartialDeliveryRate,
			BadDebtRate: o2cCfg.BadDebtRate, ReturnRate: o2cCfg.ReturnRate,
			AverageOrderToDeliveryDays: o2cCfg.AverageOrderToDeliveryDays, AverageDeliveryToInvoiceDays: o2cCfg.AverageDeliveryToInvoiceDays,
			AverageInvoiceToPaymentDays: o2cCfg.AverageInvoiceToPaymentDays,
		},
		Chart:   cs.chart,
		Journal: cs.generator,
	}

	customerCount := len(cs.pool.Customers)
	batch := make([]sink.Item, 0, defaultBatchSize)

	for i := 0; i < o2cCfg.TargetChains; i++ {
		if err := o.throttleAndCheck(ctx); err != nil {
			return err
		}

		customerID := "cust_unknown"
		if customerCount > 0 {
			customerID = cs.pool.Customers[i%customerCount].ID.String()
		}

		counter := uint64(idx)<<40 | (1<<39 + uint64(i))
		anchorDate := o.cfg.Global.StartDate
		if temporal := o.smp.temporal[cs.company.Code]; temporal != nil {
			anchorDate = temporal.Sample(rng.SubStream(o.seed, "posting-date-o2c", counter))
		}

		chain := engine.BuildChain(o.seed, uint64(i), cs.company.Code, customerID, anchorDate)
		chain.Entries, batch = o.injectAndCollectLabels(chain.Entries, counter, batch)
		for _, e := range chain.Entries {
			if e.IsBalanced() && e.ReferencesOnlyExistingAccounts(cs.chart) {
				o.tracker.Post(e)
			}
		}

		batch = append(batch, chain)
		o.advance(1)

		if len(batch) >= o.batchSize() {
			if err := o.flushBatch(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	return o.flushBatch(ctx, batch)
}

func (o *Orchestrator) runJournalPhase(ctx context.Context) error {
	g, gctx := o.newWorkerGroup(ctx)

	totalWeight := 0.0
	for _, c := range o.cfg.Companies {
		totalWeight += c.VolumeWeight
	}
	if totalWeight <= 0 {
		totalWeight = float64(len(o.cfg.Companies))
	}

	for i := range o.companies {
		i := i
		share := o.companies[i].company.VolumeWeight / totalWeight
		target := int(float64(o.cfg.Transactions.TargetCount) * share)

		g.Go(func() error {
			return o.runJournalBatchForCompany(gctx, i, target)
		})
	}

	return g.Wait()
}

func (o *Orchestrator) runJournalBatchForCompany(ctx context.Context, idx, target int) error {
	cs := &o.companies[idx]
	if cs.generator == nil {
		cs.generator = o.newGeneratorFor(cs.chart)
	}

	temporal := o.smp.temporal[cs.company.Code]
	batch := make([]sink.Item, 0, defaultBatchSize)

	for i := 0; i < target; i++ {
		if err := o.throttleAndCheck(ctx); err != nil {
			return err
		}

		counter := uint64(idx)<<32 | uint64(i)
		postingStream := rng.SubStream(o.seed, "posting-date", counter)
		postingDate := o.cfg.Global.StartDate
		if temporal != nil {
			postingDate = temporal.Sample(postingStream)
		}

		sourceStream := rng.SubStream(o.seed, "source", counter)
		source := pickSource(sourceStream, o.cfg.Transactions.SourceDistribution)

		entry := cs.generator.Build(journal.Request{
			Seed: o.seed, Counter: counter, CompanyCode: cs.company.Code,
			Process: journal.ProcessR2R, Source: source,
			PostingDate: postingDate, DocumentDate: postingDate,
		})

		unbalancedByDesign := false
		errorLabeled := false
		if o.cfg.AnomalyInjection.TotalRate > 0 {
			mutated, label, ok := o.injector.Apply(entry, counter)
			if ok {
				entry = mutated
				unbalancedByDesign = label.IntentionallyUnbalanced
				errorLabeled = label.Category == anomaly.CategoryError
				batch = append(batch, label)
			}
		}

		if !unbalancedByDesign && !entry.IsBalanced() {
			return fmt.Errorf("%w: entry %s is not balanced", ErrInvariantViolation, entry.Header.ID)
		}
		if !errorLabeled && !entry.ReferencesOnlyExistingAccounts(cs.chart) {
			return fmt.Errorf("%w: entry %s references a missing account", ErrInvariantViolation, entry.Header.ID)
		}

		// Error-labeled entries reach the sink as ground truth but are kept
		// out of the balance tracker.
		if !errorLabeled {
			o.tracker.Post(entry)
		}
		batch = append(batch, entry)
		o.advance(1)

		if len(batch) >= o.batchSize() {
			if err := o.flushBatch(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	return o.flushBatch(ctx, batch)
}

// injectAndCollectLabels runs the anomaly injector over a document-flow
// chain's entries in place, appending any produced labels to batch. Entries
// explicitly labeled IntentionallyUnbalanced still post to the sink (they
// are ground truth for an Error-category anomaly) but the caller skips
// posting them to the balance tracker, along with any entry that references
// an account missing from the company's chart.
func (o *Orchestrator) injectAndCollectLabels(entries []journal.Entry, baseCounter uint64, batch []sink.Item) ([]journal.Entry, []sink.Item) {
	if o.cfg.AnomalyInjection.TotalRate <= 0 {
		return entries, batch
	}
	out := make([]journal.Entry, len(entries))
	for i, e := range entries {
		mutated, label, ok := o.injector.Apply(e, baseCounter+uint64(i))
		if ok {
			batch = append(batch, label)
			out[i] = mutated
		} else {
			out[i] = e
		}
	}
	return out, batch
}

func (o *Orchestrator) runBalancePhase(ctx context.Context) error {
	if err := checkDiskGuard(o.cfg.Output.Directory); err != nil {
		return err
	}

	if err := o.runIntercompanyMatching(ctx); err != nil {
		return err
	}

	for _, cs := range o.companies {
		period := balance.Period{Year: o.cfg.Global.StartDate.Year(), Period: int(o.cfg.Global.StartDate.Month())}
		tb := o.tracker.TrialBalance(cs.company.Code, period, cs.chart)
		if !tb.AccountingIdentityHolds(cs.chart) {
			return fmt.Errorf("%w: company %s: accounting identity does not hold", ErrInvariantViolation, cs.company.Code)
		}
		if err := o.sink.Write(ctx, tb); err != nil {
			return wrapSinkErr(err)
		}
	}

	return nil
}

// runIntercompanyMatching generates one matched intercompany transaction
// pair per adjacent pair of companies (spec.md §4.7), posts both sides to
// their own company's running balance so the pair is reflected in each
// company's trial balance, verifies the pair nets to zero in group
// currency (invariant 5), and writes the matched entries plus the
// elimination entry that cancels them at the consolidation boundary. A
// single-company run has no intercompany activity to generate.
func (o *Orchestrator) runIntercompanyMatching(ctx context.Context) error {
	if len(o.companies) < 2 {
		return nil
	}

	matcher := &balance.Matcher{}

	for i := 0; i+1 < len(o.companies); i++ {
		pair := o.buildIntercompanyPair(i, i+1)

		if !pair.CompanyA.IsBalanced() || !pair.CompanyB.IsBalanced() {
			return fmt.Errorf("%w: intercompany pair %s is not internally balanced", ErrInvariantViolation, pair.Key)
		}
		if !pair.CompanyA.ReferencesOnlyExistingAccounts(o.companies[i].chart) || !pair.CompanyB.ReferencesOnlyExistingAccounts(o.companies[i+1].chart) {
			return fmt.Errorf("%w: intercompany pair %s references a missing account", ErrInvariantViolation, pair.Key)
		}

		o.tracker.Post(pair.CompanyA)
		o.tracker.Post(pair.CompanyB)

		if !pair.Matches() {
			return fmt.Errorf("%w: intercompany pair %s does not net to zero in group currency", ErrInvariantViolation, pair.Key)
		}

		elimination := matcher.Eliminate(pair, intercompanyCompanyCode)
		matcher.Pairs = append(matcher.Pairs, pair)

		if err := o.sink.Write(ctx, pair.CompanyA); err != nil {
			return wrapSinkErr(err)
		}
		if err := o.sink.Write(ctx, pair.CompanyB); err != nil {
			return wrapSinkErr(err)
		}
		if err := o.sink.Write(ctx, elimination); err != nil {
			return wrapSinkErr(err)
		}
	}

	return nil
}

// buildIntercompanyPair synthesizes a matched cross-company transaction
// between the companies at idxA and idxB: idxA books a debit to the
// intercompany clearing account settled against cash, idxB books the
// mirrored credit settled against its own payable. idxB's leg is sized so
// that, translated at the drawn FX rate, it cancels idxA's leg in group
// currency — the property Matches() checks.
func (o *Orchestrator) buildIntercompanyPair(idxA, idxB int) balance.ICPair {
	a := &o.companies[idxA]
	b := &o.companies[idxB]

	counter := uint64(idxA)<<32 | uint64(idxB)
	s := rng.SubStream(o.seed, "intercompany", counter)

	amount := s.IntRange(10_000, 1_000_000)
	fxRate := 1.0
	if b.company.Currency != a.company.Currency {
		fxRate = 0.8 + s.Float64()*0.4
	}
	bAmount := int64(math.Round(float64(amount) / fxRate))

	key := balance.ICKey(id.FromUUIDBytes(id.PrefixICKey, rng.DeterministicUUIDBytes(o.seed, "ic-key", counter)))
	note := fmt.Sprintf("intercompany: %s <-> %s", a.company.Code, b.company.Code)

	entryA := journal.Entry{
		Header: journal.Header{
			ID:           id.FromUUIDBytes(id.PrefixJournalEntry, rng.DeterministicUUIDBytes(o.seed, "ic-entry-a", counter)),
			CompanyCode:  a.company.Code,
			PostingDate:  o.cfg.Global.StartDate,
			DocumentDate: o.cfg.Global.StartDate,
			Source:       journal.SourceInterface,
			Process:      journal.ProcessR2R,
		},
		Lines: []journal.Line{
			{AccountCode: coa.CodeIntercompany, Debit: types.Money{Amount: amount, Currency: a.company.Currency}, Credit: types.Zero(a.company.Currency), Description: note},
			{AccountCode: coa.CodeCash, Credit: types.Money{Amount: amount, Currency: a.company.Currency}, Debit: types.Zero(a.company.Currency), Description: note},
		},
	}

	entryB := journal.Entry{
		Header: journal.Header{
			ID:           id.FromUUIDBytes(id.PrefixJournalEntry, rng.DeterministicUUIDBytes(o.seed, "ic-entry-b", counter)),
			CompanyCode:  b.company.Code,
			PostingDate:  o.cfg.Global.StartDate,
			DocumentDate: o.cfg.Global.StartDate,
			Source:       journal.SourceInterface,
			Process:      journal.ProcessR2R,
		},
		Lines: []journal.Line{
			{AccountCode: coa.CodeAccountsPayable, Debit: types.Money{Amount: bAmount, Currency: b.company.Currency}, Credit: types.Zero(b.company.Currency), Description: note},
			{AccountCode: coa.CodeIntercompany, Credit: types.Money{Amount: bAmount, Currency: b.company.Currency}, Debit: types.Zero(b.company.Currency), Description: note},
		},
	}

	return balance.ICPair{Key: key, CompanyA: entryA, CompanyB: entryB, GroupFXRate: fxRate}
}

// runAnomalyPhase (phase 8) does no work: every injection already
// happened inline in phases 5-6 (see runSamplerPhase's comment), so there
// is no further entry mutation to do here. The phase is kept in the
// pipeline so its progress share and metrics label remain visible, matching
// the nine-stage phase table callers expect.
func (o *Orchestrator) runAnomalyPhase(_ context.Context) error {
	return nil
}

func (o *Orchestrator) throttleAndCheck(ctx context.Context) error {
	if err := o.cpuLimiter().Wait(ctx); err != nil {
		return err
	}
	if err := o.waitIfPaused(ctx); err != nil {
		return err
	}
	if o.cancelled.Load() || ctx.Err() != nil {
		return ErrCancelled
	}
	if o.guards.hardLimitHit() {
		return ErrResourceExhaustion
	}
	return nil
}

func (o *Orchestrator) flushBatch(ctx context.Context, batch []sink.Item) error {
	if len(batch) == 0 {
		return nil
	}
	if err := checkDiskGuard(o.cfg.Output.Directory); err != nil {
		return err
	}
	if err := o.sink.WriteBatch(ctx, batch); err != nil {
		return wrapSinkErr(err)
	}
	return nil
}

// wrapSinkErr prefixes a sink error with orchestrator context, keeping the
// original reachable through errors.Is/As. The root package is not imported
// (that would create an import cycle), and Engine.Run returns these errors
// as they are: they are not tagged with genengine.ErrSink.
func wrapSinkErr(err error) error {
	return fmt.Errorf("orchestrator: sink error: %w", err)
}
