// Package testutil holds shared fixtures for package tests: a catalog of
// well-known records, a resettable trace clock and a fixed session ID
// generator.
package testutil

import "sync"

// DeterministicClock is a resettable logical clock for session traces.
// The first call to Next returns 1.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock creates a clock starting at 0.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next increments and returns the next sequence number.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock so the same scenario can replay with identical
// sequence numbers.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}

// FixedID always returns the same session ID.
type FixedID string

// DefaultSessionID is used when a test does not care about the ID.
const DefaultSessionID = "test-session-00000000-0000-0000-0000-000000000001"

// Generate returns the fixed ID, or DefaultSessionID when empty.
func (id FixedID) Generate() string {
	if id == "" {
		return DefaultSessionID
	}
	return string(id)
}
