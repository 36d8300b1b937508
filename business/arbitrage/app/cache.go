package app

import (
	"sync"
	"time"
)

// lastResult remembers the most recent good value of one computation so
// callers can fall back to it when recomputation fails. It is never read on
// the happy path.
type lastResult[T any] struct {
	mu  sync.RWMutex
	ttl time.Duration
	val T
	at  time.Time
	ok  bool
}

func newLastResult[T any](ttl time.Duration) *lastResult[T] {
	return &lastResult[T]{ttl: ttl}
}

func (c *lastResult[T]) store(val T) {
	c.mu.Lock()
	c.val = val
	c.at = time.Now()
	c.ok = true
	c.mu.Unlock()
}

// load returns the stored value if one exists and has not expired.
func (c *lastResult[T]) load() (T, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ok || time.Since(c.at) > c.ttl {
		var zero T
		return zero, time.Time{}, false
	}
	return c.val, c.at, true
}
