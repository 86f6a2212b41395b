// Package genengine generates large-scale synthetic general-ledger
// accounting data: journal entries, chart of accounts, master data,
// document flows, and intercompany postings, with statistical fidelity to
// real ERP systems and injected fraud/anomaly labels suitable for ML
// training and audit tooling.
//
// # Quick Start
//
//	cfg := config.Default()
//	seed := uint64(42)
//	cfg.Global.Seed = &seed
//	eng, err := genengine.New(cfg, genengine.WithSink(mySink))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := eng.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// The engine owns the statistical samplers, the balanced journal-entry
// construction algorithm, the coupled P2P/O2C document-flow state
// machines, the balance-coherence tracker, and the anomaly/fraud injector.
// It does not own configuration parsing, output serialization, or any
// front end — those are supplied by the caller through Config and Sink.
package genengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/synthgl/genengine/config"
	"github.com/synthgl/genengine/orchestrator"
	"github.com/synthgl/genengine/sink"
)

// Engine is the top-level handle returned by New. It wraps the
// orchestrator and exposes the progress/control surface described in the
// external-interfaces section of the specification this module implements.
type Engine struct {
	orch *orchestrator.Orchestrator
}

// Option configures an Engine at construction time.
type Option func(*options)

type options struct {
	sink sink.Sink
}

// WithSink supplies the external sink that receives generated output. If
// omitted, New returns a ConfigurationError — the engine always needs
// somewhere to stream entries.
func WithSink(s sink.Sink) Option {
	return func(o *options) { o.sink = s }
}

// New validates cfg and constructs an Engine ready to Run. Validation
// failures are returned as a ConfigurationError wrapping every violated
// constraint; no generation occurs until Run is called.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.sink == nil {
		return nil, ConfigurationError("sink", "no sink configured: use WithSink")
	}

	if err := cfg.Validate(); err != nil {
		return nil, CollectConfigurationErrors(err)
	}

	orch, err := orchestrator.New(cfg, o.sink)
	if err != nil {
		return nil, err
	}

	return &Engine{orch: orch}, nil
}

// Run executes all nine phases in order and streams journal entries and
// documents to the configured sink. It returns nil on a clean, complete
// run, Cancelled if ctx was cancelled or Cancel was called, or one of the
// other error kinds in errors.go on failure.
func (e *Engine) Run(ctx context.Context) error {
	return translateOrchestratorError(e.orch.Run(ctx))
}

// translateOrchestratorError maps orchestrator's local sentinels onto this
// package's own error taxonomy. orchestrator cannot import genengine (this
// package already imports orchestrator), so it raises its own Cancelled/
// ResourceExhaustion/InvariantViolation sentinels; this is the one place
// that reconciles them with the sentinels callers of Engine.Run actually
// check via IsCancelled/IsResourceExhaustion/IsInvariantViolation.
func translateOrchestratorError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orchestrator.ErrCancelled):
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	case errors.Is(err, orchestrator.ErrResourceExhaustion):
		return fmt.Errorf("%w: %v", ErrResourceExhaustion, err)
	case errors.Is(err, orchestrator.ErrInvariantViolation):
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	default:
		return err
	}
}

// Pause requests that generator loops suspend at the next batch boundary.
func (e *Engine) Pause() { e.orch.Pause() }

// Resume releases a paused Engine.
func (e *Engine) Resume() { e.orch.Resume() }

// Cancel requests cooperative, partial-output termination.
func (e *Engine) Cancel() { e.orch.Cancel() }

// Snapshot returns a read-only view of current progress.
func (e *Engine) Snapshot() orchestrator.Snapshot { return e.orch.Snapshot() }
