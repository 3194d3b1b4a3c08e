package state

import (
	"sync"
	"time"

	"CanvasBoard/internal/logx"
)

// DefaultBatchDelay is how long updates accumulate before a flush.
const DefaultBatchDelay = 100 * time.Millisecond

// Timer is the part of *time.Timer the Batcher needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Batch is one flushed group of updates.
type Batch struct {
	Seq     uint64
	Updates []StrokeUpdate
}

// Batcher buffers outgoing updates and hands them to a sink as a single
// ordered batch once per delay window. At most one flush is scheduled at a
// time.
type Batcher struct {
	mu        sync.Mutex
	delay     time.Duration
	afterFunc AfterFunc
	sink      func(Batch)
	seq       Sequence

	buf    []StrokeUpdate
	timer  Timer
	gen    uint64
	closed bool
}

// BatcherOption configures a Batcher.
type BatcherOption func(*Batcher)

// WithAfterFunc replaces the timer factory, mainly for tests.
func WithAfterFunc(f AfterFunc) BatcherOption {
	return func(b *Batcher) { b.afterFunc = f }
}

// NewBatcher returns a Batcher that delivers batches to sink. A delay of
// zero or less uses DefaultBatchDelay.
func NewBatcher(delay time.Duration, sink func(Batch), opts ...BatcherOption) *Batcher {
	if delay <= 0 {
		delay = DefaultBatchDelay
	}
	b := &Batcher{
		delay:     delay,
		afterFunc: realAfterFunc,
		sink:      sink,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Enqueue appends u to the buffer and schedules a flush if none is pending.
func (b *Batcher) Enqueue(u StrokeUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.buf = append(b.buf, u)
	if b.timer == nil {
		b.gen++
		gen := b.gen
		b.timer = b.afterFunc(b.delay, func() { b.flushWindow(gen) })
	}
}

// flushWindow is the timer callback for window gen. A callback that fired
// but lost the race against Flush, Discard or a newer window does nothing.
func (b *Batcher) flushWindow(gen uint64) {
	b.mu.Lock()
	if gen != b.gen || b.timer == nil {
		b.mu.Unlock()
		return
	}
	b.flushLocked()
}

// Flush delivers the buffered updates, if any, and clears the schedule.
func (b *Batcher) Flush() {
	b.mu.Lock()
	b.flushLocked()
}

// flushLocked is called with b.mu held and releases it.
func (b *Batcher) flushLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if b.closed || len(b.buf) == 0 {
		b.mu.Unlock()
		return
	}
	batch := Batch{Seq: b.seq.Next(), Updates: b.buf}
	b.buf = nil
	b.mu.Unlock()

	logx.For("batcher").Debug("flushing batch", "seq", batch.Seq, "updates", len(batch.Updates))
	if b.sink != nil {
		b.sink(batch)
	}
}

// Discard drops buffered updates and cancels the pending flush.
func (b *Batcher) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.buf = nil
}

// Pending returns the number of buffered updates.
func (b *Batcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}

// Close cancels the pending flush. No batch is delivered after Close.
func (b *Batcher) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.buf = nil
	b.closed = true
}
