// Package testutil provides deterministic collaborators for tests:
// a fixed-step clock and a scripted email sender.
package testutil

import (
	"sync"
	"time"
)

// DeterministicClock yields a strictly increasing sequence of timestamps,
// one millisecond apart, starting from a fixed epoch. It lets tests
// assert exact persisted createdAt values.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type DeterministicClock struct {
	mu   sync.Mutex
	next time.Time
}

// NewDeterministicClock creates a clock starting at start.
func NewDeterministicClock(start time.Time) *DeterministicClock {
	return &DeterministicClock{next: start}
}

// Now returns the next timestamp and advances the clock by one
// millisecond.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(time.Millisecond)
	return t
}
