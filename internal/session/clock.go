package session

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock stamps trace events with strictly increasing sequence numbers.
type Clock interface {
	Next() int64
}

// LogicalClock is a monotonic counter starting at 0. The first call to Next
// returns 1. It is safe for concurrent use.
type LogicalClock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *LogicalClock {
	return &LogicalClock{}
}

// Next returns the next sequence number.
func (c *LogicalClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number.
func (c *LogicalClock) Current() int64 {
	return c.seq.Load()
}

// IDGenerator produces session IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session IDs, so log lines
// from successive sessions sort by start time.
type UUIDv7Generator struct{}

// Generate returns a hyphenated UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
