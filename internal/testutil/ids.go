package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDGenerator returns UUID-shaped ids numbered from 1.
//
// Store tests and the harness use it in place of random UUIDv7 ids so that
// binding-set ids and golden output are byte-identical across runs.
//
// Safe for concurrent use.
type SequenceIDGenerator struct {
	mu sync.Mutex
	n  uint64
}

// NewSequenceIDGenerator creates a generator whose first id ends in 1:
//
//	00000000-0000-7000-8000-000000000001
func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

// NewID returns the next id. It never fails.
func (g *SequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("00000000-0000-7000-8000-%012x", g.n), nil
}
