//go:build !unix

package orchestrator

import "math"

// freeBytes is the portable fallback when statfs is unavailable: it
// reports an effectively unbounded floor so the disk guard degrades to a
// no-op rather than falsely tripping on platforms it cannot query.
func freeBytes(_ string) (uint64, error) {
	return math.MaxUint64, nil
}
