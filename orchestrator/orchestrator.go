// Package orchestrator sequences the nine generation phases (spec.md §2)
// behind a resource-bounded, pausable, cancellable pipeline that streams
// its output to a caller-supplied sink.Sink rather than accumulating the
// full dataset in memory.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/synthgl/genengine/anomaly"
	"github.com/synthgl/genengine/balance"
	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/config"
	"github.com/synthgl/genengine/flow"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/masterdata"
	"github.com/synthgl/genengine/rng"
	"github.com/synthgl/genengine/sample"
	"github.com/synthgl/genengine/sink"
)

// defaultBatchSize is the default streaming batch handed to the sink per
// spec.md §4.9 ("batches (default 100K)").
const defaultBatchSize = 100_000

// Phase names the pipeline's nine stages (spec.md §2), exposed on Snapshot
// so external callers can show "which phase is running".
type Phase string

const (
	PhaseRNG           Phase = "rng_core"
	PhaseSamplers      Phase = "samplers"
	PhaseChartOfAccounts Phase = "chart_of_accounts"
	PhaseMasterData    Phase = "master_data"
	PhaseDocumentFlows Phase = "document_flows"
	PhaseJournalEntries Phase = "journal_entries"
	PhaseBalanceTracking Phase = "balance_tracking"
	PhaseAnomalyInjection Phase = "anomaly_injection"
	PhaseDone          Phase = "done"
)

// phaseShare mirrors spec.md §2's Share column, used only to compute the
// progress snapshot's best-effort percentage across phases.
var phaseShare = map[Phase]float64{
	PhaseRNG:              0.02,
	PhaseSamplers:         0.10,
	PhaseChartOfAccounts:  0.05,
	PhaseMasterData:       0.08,
	PhaseDocumentFlows:    0.18,
	PhaseJournalEntries:   0.18,
	PhaseBalanceTracking:  0.10,
	PhaseAnomalyInjection: 0.12,
	PhaseDone:             0.17, // the orchestrator's own bookkeeping share
}

// Snapshot is the read-only progress view spec.md §6 names: (current,
// total, phase, entries_per_second, paused, memory_usage_bytes).
type Snapshot struct {
	Current           int64
	Total             int64
	Phase             Phase
	EntriesPerSecond  float64
	Paused            bool
	MemoryUsageBytes  uint64
	DegradationLevel  DegradationLevel
}

// String renders a one-line, human-readable progress summary, the form a
// CLI progress reporter or log line would print.
func (s Snapshot) String() string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return fmt.Sprintf("[%s] %s: %s/%s entries (%s/s), mem %s, degradation=%s",
		state, s.Phase,
		humanize.Comma(s.Current), humanize.Comma(s.Total),
		humanize.Comma(int64(s.EntriesPerSecond)),
		humanize.Bytes(s.MemoryUsageBytes), s.DegradationLevel)
}

// companyState holds one company's per-phase outputs, all built once and
// treated as read-only thereafter per spec.md §3's ownership rules.
type companyState struct {
	company   config.Company
	chart     *coa.Chart
	pool      *masterdata.Pool
	generator *journal.Generator
}

// Orchestrator composes the rng/sample/coa/masterdata/flow/journal/
// balance/anomaly packages into the nine-phase pipeline described in
// spec.md §2, guarded by the resource controls in §4.9.
type Orchestrator struct {
	cfg  config.Config
	sink sink.Sink

	seed rng.Seed

	companies []companyState
	tracker   *balance.Tracker
	injector  anomaly.Injector
	smp       *samplers

	metrics *metricsSet
	guards  *guardSet

	phase   atomic.Value // Phase
	current atomic.Int64
	total   atomic.Int64
	startedAt time.Time

	cancelled atomic.Bool

	pauseMu   sync.Mutex
	pauseCond *sync.Cond
	paused    bool
}

// New validates cfg, resolves the run seed, and prepares an Orchestrator.
// Per-company charts and master data are not built until Run is called —
// construction itself does no generation work.
func New(cfg config.Config, s sink.Sink) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("orchestrator: nil sink")
	}

	seed := rng.Seed(1)
	if cfg.Global.Seed != nil {
		seed = rng.Seed(*cfg.Global.Seed)
	}

	o := &Orchestrator{
		cfg:     cfg,
		sink:    s,
		seed:    seed,
		tracker: balance.NewTracker(),
		metrics: newMetricsSet(),
		guards:  newGuardSet(cfg),
	}
	o.pauseCond = sync.NewCond(&o.pauseMu)
	o.phase.Store(PhaseRNG)

	total := int64(cfg.Transactions.TargetCount)
	total += int64(cfg.DocumentFlows.P2P.TargetChains)
	total += int64(cfg.DocumentFlows.O2C.TargetChains)
	o.total.Store(total)

	return o, nil
}

// Run executes phases 1-9 sequentially, in dependency order (spec.md §2:
// "data flows strictly downward"). It honors ctx cancellation and the
// orchestrator's own cooperative Cancel at batch boundaries.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.startedAt = time.Now()
	o.guards.startMemorySampler(ctx)
	defer o.guards.stop()

	type step struct {
		phase Phase
		fn    func(context.Context) error
	}

	steps := []step{
		{PhaseRNG, o.runRNGPhase},
		{PhaseSamplers, o.runSamplerPhase},
		{PhaseChartOfAccounts, o.runChartPhase},
		{PhaseMasterData, o.runMasterDataPhase},
		{PhaseDocumentFlows, o.runDocumentFlowPhase},
		{PhaseJournalEntries, o.runJournalPhase},
		{PhaseBalanceTracking, o.runBalancePhase},
		{PhaseAnomalyInjection, o.runAnomalyPhase},
	}

	for _, st := range steps {
		o.setPhase(st.phase)

		if err := o.waitIfPaused(ctx); err != nil {
			return o.finish(ctx, err)
		}
		if o.cancelled.Load() || ctx.Err() != nil {
			return o.finish(ctx, ErrCancelled)
		}

		if err := st.fn(ctx); err != nil {
			return o.finish(ctx, err)
		}
	}

	o.setPhase(PhaseDone)
	return o.finish(ctx, nil)
}

func (o *Orchestrator) finish(ctx context.Context, runErr error) error {
	if flushErr := o.sink.Flush(ctx); flushErr != nil && runErr == nil {
		return flushErr
	}
	return runErr
}

// Pause blocks worker loops at their next batch boundary until Resume is
// called, per spec.md §4.9's pause/resume contract.
func (o *Orchestrator) Pause() {
	o.pauseMu.Lock()
	o.paused = true
	o.pauseMu.Unlock()
}

// Resume wakes any loop blocked in waitIfPaused.
func (o *Orchestrator) Resume() {
	o.pauseMu.Lock()
	o.paused = false
	o.pauseMu.Unlock()
	o.pauseCond.Broadcast()
}

// Cancel requests cooperative cancellation, observed at the next batch
// boundary (spec.md §5: "cancellation is cooperative").
func (o *Orchestrator) Cancel() {
	o.cancelled.Store(true)
	o.pauseCond.Broadcast() // wake a paused loop so it can observe cancellation
}

// Snapshot returns a read-only progress view (spec.md §6).
func (o *Orchestrator) Snapshot() Snapshot {
	o.pauseMu.Lock()
	paused := o.paused
	o.pauseMu.Unlock()

	current := o.current.Load()
	elapsed := time.Since(o.startedAt).Seconds()
	var eps float64
	if elapsed > 0 {
		eps = float64(current) / elapsed
	}
	o.metrics.setEntriesPerSecond(eps)

	phase, _ := o.phase.Load().(Phase)

	return Snapshot{
		Current:          current,
		Total:            o.total.Load(),
		Phase:            phase,
		EntriesPerSecond: eps,
		Paused:           paused,
		MemoryUsageBytes: o.guards.lastRSS(),
		DegradationLevel: o.guards.level(),
	}
}

func (o *Orchestrator) setPhase(p Phase) {
	o.phase.Store(p)
	o.metrics.setPhase(p, phaseShare[p])
}

// waitIfPaused blocks the caller while paused is set, waking on Resume or
// Cancel, and returns ctx.Err() if the context is done while waiting.
func (o *Orchestrator) waitIfPaused(ctx context.Context) error {
	o.pauseMu.Lock()
	for o.paused && !o.cancelled.Load() {
		if ctx.Err() != nil {
			o.pauseMu.Unlock()
			return ctx.Err()
		}
		o.pauseCond.Wait()
	}
	o.pauseMu.Unlock()
	return nil
}

func (o *Orchestrator) advance(n int64) {
	cur := o.current.Add(n)
	o.metrics.setProgress(cur, o.total.Load())
}

// newWorkerGroup returns an errgroup bounded by Global.WorkerThreads, the
// shape every parallelizable phase below uses to fan out across companies
// or batch partitions (spec.md §5: disjoint partitions, independent
// sub-streams, no shared mutable state).
func (o *Orchestrator) newWorkerGroup(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	workers := o.cfg.Global.WorkerThreads
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)
	return g, gctx
}

// cpuLimiter returns a rate.Limiter the generator loops Wait() on between
// batches, implementing the CPU guard (spec.md §4.9: "at a configured
// threshold, insert a small sleep in the generator loop").
func (o *Orchestrator) cpuLimiter() *rate.Limiter {
	return o.guards.cpuLimiter
}

// batchSize returns the batch size generator loops should flush at,
// shrunk from defaultBatchSize as the memory guard's degradation level
// rises so a run under pressure holds less unflushed data in memory.
func (o *Orchestrator) batchSize() int {
	return batchSizeFor(o.guards.level(), defaultBatchSize)
}
