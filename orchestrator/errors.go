package orchestrator

import "errors"

// Sentinel errors this package itself raises. Root package genengine
// translates these into its own ConfigurationError/InvariantViolation/
// ResourceExhaustion/Cancelled taxonomy (see genengine.go) rather than this
// package importing genengine directly, which would create an import
// cycle (genengine already imports orchestrator).
var (
	// ErrCancelled is returned by Run when cancellation was observed before
	// all phases completed.
	ErrCancelled = errors.New("orchestrator: run cancelled")

	// ErrResourceExhaustion is returned by Run when the memory guard's hard
	// limit was hit.
	ErrResourceExhaustion = errors.New("orchestrator: resource exhaustion")

	// ErrInvariantViolation is returned when a generated entry fails a hard
	// post-condition the generator packages guarantee by construction —
	// observing it here indicates a generator bug, never a data problem.
	ErrInvariantViolation = errors.New("orchestrator: invariant violation")
)
