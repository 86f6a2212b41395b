package orchestrator

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/time/rate"

	"github.com/synthgl/genengine/config"
)

// DegradationLevel is one of the four graceful-degradation tiers spec.md
// §4.9 names. Each level beyond Normal progressively sheds optional work
// so the pipeline keeps making forward progress under resource pressure
// instead of failing outright.
type DegradationLevel string

const (
	DegradationNormal    DegradationLevel = "Normal"
	DegradationReduced   DegradationLevel = "Reduced"   // batches halved
	DegradationMinimal   DegradationLevel = "Minimal"   // batches quartered
	DegradationEmergency DegradationLevel = "Emergency" // flush and terminate
)

// batchSizeFor scales base down as the degradation level rises, so a run
// under memory pressure flushes to the sink more often and holds less of
// the in-flight batch in memory at once (spec.md §4.9's soft-limit
// response). The hard limit is handled separately, by hardLimitHit
// aborting the run entirely.
func batchSizeFor(lvl DegradationLevel, base int) int {
	switch lvl {
	case DegradationMinimal:
		base /= 4
	case DegradationReduced:
		base /= 2
	}
	if base < 1 {
		base = 1
	}
	return base
}

// memorySamplePeriod is how often the background sampler reads RSS.
const memorySamplePeriod = 500 * time.Millisecond

// guardSet bundles the memory, CPU, and degradation-level guards spec.md
// §4.9 assigns to the orchestrator.
type guardSet struct {
	softLimitBytes uint64
	hardLimitBytes uint64

	proc *process.Process

	cpuLimiter *rate.Limiter

	rss   atomic.Uint64
	lvl   atomic.Value // DegradationLevel

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func newGuardSet(cfg config.Config) *guardSet {
	hard := uint64(cfg.Global.MemoryLimitBytes)
	soft := hard / 2
	if soft == 0 {
		soft = hard
	}

	g := &guardSet{
		softLimitBytes: soft,
		hardLimitBytes: hard,
		// CPU guard: allow bursts but cap sustained throughput across all
		// workers (one limiter shared by every generator loop) so
		// a single run doesn't starve co-located processes, per spec.md
		// §4.9's "sample load average ... insert a small sleep" contract —
		// expressed here as a steady-state token-bucket limiter rather than
		// a raw loadavg poll, since rate.Limiter already composes cleanly
		// with the per-batch Wait() call sites.
		cpuLimiter: rate.NewLimiter(rate.Limit(50_000), 10_000),
		stopCh:     make(chan struct{}),
	}
	g.lvl.Store(DegradationNormal)

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		g.proc = p
	}

	return g
}

// startMemorySampler launches a background goroutine that periodically
// samples RSS and updates the degradation level, stopping when ctx is done
// or stop() is called.
func (g *guardSet) startMemorySampler(ctx context.Context) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		ticker := time.NewTicker(memorySamplePeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-g.stopCh:
				return
			case <-ticker.C:
				g.sampleOnce()
			}
		}
	}()
}

func (g *guardSet) sampleOnce() {
	if g.proc == nil {
		return
	}
	info, err := g.proc.MemoryInfo()
	if err != nil || info == nil {
		return
	}
	g.rss.Store(info.RSS)
	g.lvl.Store(levelFor(info.RSS, g.softLimitBytes, g.hardLimitBytes))
}

func levelFor(rss, soft, hard uint64) DegradationLevel {
	switch {
	case hard > 0 && rss >= hard:
		return DegradationEmergency
	case soft > 0 && rss >= soft && hard > 0 && rss >= (soft+hard)/2:
		return DegradationMinimal
	case soft > 0 && rss >= soft:
		return DegradationReduced
	default:
		return DegradationNormal
	}
}

func (g *guardSet) lastRSS() uint64 { return g.rss.Load() }

func (g *guardSet) level() DegradationLevel {
	lvl, _ := g.lvl.Load().(DegradationLevel)
	if lvl == "" {
		return DegradationNormal
	}
	return lvl
}

// hardLimitHit reports whether the most recent sample crossed the hard
// memory limit, the condition that aborts generation with a flush of
// in-memory state (spec.md §4.9).
func (g *guardSet) hardLimitHit() bool {
	return g.level() == DegradationEmergency
}

func (g *guardSet) stop() {
	g.stopOnce.Do(func() { close(g.stopCh) })
	g.wg.Wait()
}

// diskFreeFloorBytes is the configured minimum free space the disk guard
// enforces before each sink write (spec.md §4.9). No Config field exposes
// this yet (spec.md §6's `output` section does not name a floor), so a
// conservative fixed floor stands in until a configuration knob is added.
const diskFreeFloorBytes = 256 << 20 // 256 MiB

// checkDiskGuard estimates free space on dir and returns
// ErrResourceExhaustion if it is below diskFreeFloorBytes. A freeBytes
// error (platform cannot be queried, or dir does not exist yet) is treated
// as "unknown, assume fine" rather than blocking generation.
func checkDiskGuard(dir string) error {
	if dir == "" {
		return nil
	}
	free, err := freeBytes(dir)
	if err != nil {
		return nil
	}
	if free < diskFreeFloorBytes {
		return ErrResourceExhaustion
	}
	return nil
}
