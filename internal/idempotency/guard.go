// Package idempotency provides a best-effort guard against duplicate
// order submissions. Creating an order is a non-idempotent multi-row
// write, so resubmitting the same request would duplicate it; callers
// send an Idempotency-Key header and the guard rejects keys that
// already produced an order.
//
// A key is recorded only after its order has been persisted. A request
// that failed — catalog outage, bad body, insufficient stock — leaves
// the key unrecorded, so the caller can retry it.
//
// The guard is a bloom filter: it never misses a key it recorded, but
// may reject a fresh key at the configured false-positive rate, and it
// is local to one process.
package idempotency

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Guard tracks idempotency keys whose requests have succeeded
type Guard struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewGuard creates a guard sized for the expected number of keys at the
// given false-positive rate
func NewGuard(expectedKeys uint, falsePositiveRate float64) *Guard {
	return &Guard{
		filter: bloom.NewWithEstimates(expectedKeys, falsePositiveRate),
	}
}

// Seen reports whether a key was (probably) recorded before. Empty keys
// are never seen: the header is optional.
func (g *Guard) Seen(key string) bool {
	if key == "" {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.filter.TestString(key)
}

// Record marks a key as used. Call it only after the work the key
// guards has succeeded; recording earlier would turn transient
// failures into permanent 409s for the retrying caller.
func (g *Guard) Record(key string) {
	if key == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.filter.AddString(key)
}
