package sink

import (
	"context"
	"sync"
)

// MemorySink is a reference Sink implementation that accumulates every
// written item in memory, guarded by an RWMutex the way the teacher's
// in-memory store protected its record maps. It is the sink used by the
// package's own tests and by callers (CLI tooling, notebooks) that want
// output without standing up a file or database sink.
type MemorySink struct {
	mu    sync.RWMutex
	items []Item
}

// NewMemorySink returns an empty MemorySink ready to receive items.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write implements Sink.
func (m *MemorySink) Write(_ context.Context, item Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
	return nil
}

// WriteBatch implements Sink.
func (m *MemorySink) WriteBatch(_ context.Context, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
	return nil
}

// Flush implements Sink. MemorySink has nothing to durably flush; it is a
// no-op kept for interface conformance and for tests that exercise the
// phase-boundary flush call site.
func (m *MemorySink) Flush(_ context.Context) error {
	return nil
}

// Items returns a snapshot copy of everything written so far, safe to
// range over while the sink continues to receive writes from other
// goroutines.
func (m *MemorySink) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len reports how many items have been written so far.
func (m *MemorySink) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
