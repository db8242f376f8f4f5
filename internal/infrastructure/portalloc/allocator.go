// Package portalloc implements the Port Allocator (C4): a process-wide
// monotonic counter handing out non-overlapping port ranges to concurrent
// batches (spec §4.3). Grounded on engine.py's BatchEngine._PORT_COUNTER /
// _PORT_LOCK / _get_next_base_port, translated to a mutex-guarded Go type
// rather than an asyncio.Lock-guarded module global, so the critical
// section is explicit and the allocator is trivially testable in
// isolation.
package portalloc

import "sync"

const (
	// DefaultStart is the first base port ever handed out.
	DefaultStart = 10000
	// WrapCeiling is the exclusive ceiling; once the counter would reach
	// or exceed it, the next reservation wraps back to DefaultStart.
	WrapCeiling = 60000
	// Slack is added on top of the batch size to absorb mid-batch
	// compile-rejects without risking collision with the next batch
	// (spec §4.3 "+10 port slack").
	Slack = 10
)

// Allocator hands out base ports for batches. The zero value is not
// usable; construct with New.
type Allocator struct {
	mu   sync.Mutex
	next int
}

// New returns an Allocator starting at start. Most callers should pass
// DefaultStart.
func New(start int) *Allocator {
	return &Allocator{next: start}
}

// Reserve reserves batchSize+Slack consecutive ports and returns the base
// of the reservation. The counter read-and-advance is the sole critical
// section (spec §4.3); callers from different goroutines never observe
// overlapping ranges.
func (a *Allocator) Reserve(batchSize int) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	base := a.next
	a.next += batchSize + Slack
	if a.next >= WrapCeiling {
		a.next = DefaultStart
	}
	return base
}
