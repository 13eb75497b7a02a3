package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is an immutable view of the latest value held by a Cache.
type Snapshot[T any] struct {
	Value               T
	HasValue            bool
	FetchedAt           time.Time // time of the last successful update
	LastUpdated         time.Time // time of the last update, successful or not
	LastError           error
	ConsecutiveFailures int
}

// Failed reports whether the most recent update was an error.
func (s Snapshot[T]) Failed() bool {
	return s.LastError != nil
}

// IsOffline returns true when the source has failed for multiple polls.
func (s Snapshot[T]) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Cache coordinates concurrent updates to a single value. The zero value is
// ready to use.
type Cache[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
	now      func() time.Time
}

// Set replaces the stored value wholesale and clears any recorded error.
func (c *Cache[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	c.snapshot.Value = value
	c.snapshot.HasValue = true
	c.snapshot.FetchedAt = now
	c.snapshot.LastUpdated = now
	c.snapshot.LastError = nil
	c.snapshot.ConsecutiveFailures = 0
}

// Fail records err while keeping the previous value untouched.
func (c *Cache[T]) Fail(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot.LastError = err
	c.snapshot.LastUpdated = c.clock()
	c.snapshot.ConsecutiveFailures++
}

// Update applies a poll result: Set on success, Fail otherwise.
func (c *Cache[T]) Update(value T, err error) {
	if err != nil {
		c.Fail(err)
		return
	}
	c.Set(value)
}

// Snapshot returns a copy of the current snapshot.
func (c *Cache[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.snapshot
	if c.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", c.snapshot.LastError)
	}
	return snap
}

func (c *Cache[T]) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
