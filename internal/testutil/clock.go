package testutil

import "sync"

// SeqClock is a logical clock handing out increasing sequence numbers.
//
// The store orders rows by seq, never by wall time; tests pass a SeqClock
// to pin those numbers.
type SeqClock struct {
	mu  sync.Mutex
	seq int64
}

// NewSeqClock creates a clock whose first Next returns start+1.
func NewSeqClock(start int64) *SeqClock {
	return &SeqClock{seq: start}
}

// Next advances the clock and returns the new value.
func (c *SeqClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last value handed out.
func (c *SeqClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}
