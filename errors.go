package genengine

import (
	"errors"
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// Sentinel errors identifying the five error kinds the core may raise.
// Each kind is represented by one base sentinel plus, where useful,
// more specific sentinels that wrap it through errors.Is chains built
// with fmt.Errorf("%w: ...", base).
var (
	// ErrConfiguration: distribution weights don't sum to one, approval
	// thresholds aren't ascending, hierarchy depths are inconsistent, or a
	// canonical account is missing. Surfaced at initialization, fatal.
	ErrConfiguration = errors.New("genengine: configuration error")

	// ErrInvariantViolation: sum(debit) != sum(credit) after reconciliation,
	// or a line references a non-existent GL account. Indicates a generator
	// bug; never recovered.
	ErrInvariantViolation = errors.New("genengine: invariant violation")

	// ErrResourceExhaustion: the hard memory limit was hit or disk is full.
	// Partial-output semantics: already-written output remains valid.
	ErrResourceExhaustion = errors.New("genengine: resource exhaustion")

	// ErrCancelled: caller-initiated cooperative cancellation. Partial-output
	// semantics identical to ErrResourceExhaustion.
	ErrCancelled = errors.New("genengine: cancelled")

	// ErrSink: propagated unchanged from the external sink.
	ErrSink = errors.New("genengine: sink error")
)

// ConfigurationError builds an ErrConfiguration wrapping a single named
// violation. Use CollectConfigurationErrors to aggregate several into one
// error, as New does with the violations Config.Validate reports.
func ConfigurationError(field, message string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfiguration, field, message)
}

// InvariantViolation builds an ErrInvariantViolation naming the offending
// entity or entry identifier, per the user-visible failure behavior in the
// error-handling design: diagnostics always name the failed phase and the
// offending identifier.
func InvariantViolation(phase, entityID, detail string) error {
	return fmt.Errorf("%w: phase %s: entity %s: %s", ErrInvariantViolation, phase, entityID, detail)
}

// WrapSinkError propagates an error returned by a Sink implementation,
// tagging it as ErrSink without losing the original error via errors.Is/As.
func WrapSinkError(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrSink, err)
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("genengine: validation failed for %s: %s", e.Field, e.Message)
}

// CollectConfigurationErrors accumulates every non-nil error into a single
// *multierror.Error wrapped as ErrConfiguration, so New can surface every
// constraint Config.Validate reports at once instead of failing on the
// first one found.
func CollectConfigurationErrors(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if merr == nil || merr.Len() == 0 {
		return nil
	}

	return fmt.Errorf("%w: %v", ErrConfiguration, merr)
}

// IsConfigurationError reports whether err is (or wraps) ErrConfiguration.
func IsConfigurationError(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsInvariantViolation reports whether err is (or wraps) ErrInvariantViolation.
func IsInvariantViolation(err error) bool { return errors.Is(err, ErrInvariantViolation) }

// IsResourceExhaustion reports whether err is (or wraps) ErrResourceExhaustion.
func IsResourceExhaustion(err error) bool { return errors.Is(err, ErrResourceExhaustion) }

// IsCancelled reports whether err is (or wraps) ErrCancelled.
func IsCancelled(err error) bool { return errors.Is(err, ErrCancelled) }

// IsSinkError reports whether err is (or wraps) ErrSink.
func IsSinkError(err error) bool { return errors.Is(err, ErrSink) }

// IsPartialOutput reports whether err represents a run that stopped early
// but left valid output behind (ResourceExhaustion or Cancelled), as
// opposed to ConfigurationError/InvariantViolation which indicate no
// trustworthy output exists.
func IsPartialOutput(err error) bool {
	return IsResourceExhaustion(err) || IsCancelled(err)
}
