package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh, collision resistant stroke id.
type IDGenerator func() string

// NewStrokeID is the default IDGenerator: a random 128-bit UUID.
func NewStrokeID() string {
	return uuid.NewString()
}

// Sequence is a monotonically increasing counter, used to number batches.
type Sequence struct {
	n atomic.Uint64
}

// Next returns the next value, starting at 1.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// Observe moves the counter forward to at least v.
func (s *Sequence) Observe(v uint64) {
	for {
		cur := s.n.Load()
		if v <= cur || s.n.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Current returns the last value handed out or observed.
func (s *Sequence) Current() uint64 {
	return s.n.Load()
}
