// Package testutil provides test-only helpers shared across packages.
package testutil

import (
	"sync"
	"time"
)

// FrozenClock is a thread-safe wall clock that only moves when told to.
//
// Stores order records by created_at, so tests inject a FrozenClock to
// get deterministic timestamps and stable list output.
type FrozenClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFrozenClock creates a clock frozen at the given instant.
func NewFrozenClock(at time.Time) *FrozenClock {
	return &FrozenClock{now: at}
}

// Now returns the current frozen instant. Pass this method as the
// store's clock function.
func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FrozenClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
