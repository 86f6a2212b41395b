package rng

import (
	"github.com/google/uuid"
)

// DeterministicUUID derives a UUID from (seed, generator-tag, local-counter)
// via a keyed hash projected into the UUID v4 layout. Two runs with the
// same seed and configuration produce identical UUIDs, and distinct
// (tag, counter) pairs are collision-free under the same guarantee
// SubStream provides.
func DeterministicUUID(seed Seed, tag string, counter uint64) uuid.UUID {
	s := SubStream(seed, "uuid:"+tag, counter)
	b := s.Bytes16()

	var u uuid.UUID
	copy(u[:], b[:])

	// Force the version (4) and variant (RFC 4122) bits so the result is a
	// structurally valid v4 UUID even though its entropy comes from the
	// keyed hash rather than a random source.
	u[6] = (u[6] & 0x0f) | 0x40
	u[8] = (u[8] & 0x3f) | 0x80

	return u
}

// DeterministicUUIDBytes is DeterministicUUID's raw byte form, consumed
// directly by id.FromUUIDBytes.
func DeterministicUUIDBytes(seed Seed, tag string, counter uint64) [16]byte {
	u := DeterministicUUID(seed, tag, counter)
	var b [16]byte
	copy(b[:], u[:])
	return b
}
