package selection

import (
	"errors"

	"github.com/roach88/agentdeck/internal/catalog"
)

// MaxCompared bounds the comparison selection.
const MaxCompared = 3

var (
	// ErrComparisonFull is returned by Add when MaxCompared records are
	// already selected.
	ErrComparisonFull = errors.New("you can compare up to 3 agents at a time")

	// ErrAlreadyCompared is returned by Add when the record is already selected.
	ErrAlreadyCompared = errors.New("agent is already in the comparison")
)

// Comparison is an ordered, duplicate-free selection of at most
// MaxCompared records, keyed by name. Insertion order is display order.
type Comparison struct {
	records []catalog.Record
}

// NewComparison creates an empty comparison.
func NewComparison() *Comparison {
	return &Comparison{records: make([]catalog.Record, 0, MaxCompared)}
}

// Add appends r. Capacity is checked before membership, so a full
// selection reports ErrComparisonFull even for a record it holds.
// On error the selection is unchanged.
func (c *Comparison) Add(r catalog.Record) error {
	if len(c.records) >= MaxCompared {
		return ErrComparisonFull
	}
	if c.Has(r.Name) {
		return ErrAlreadyCompared
	}
	c.records = append(c.records, r)
	return nil
}

// Remove drops the record with the given name, preserving the order of the
// rest. Returns false when the name was not selected.
func (c *Comparison) Remove(name string) bool {
	kept := c.records[:0]
	removed := false
	for _, r := range c.records {
		if r.Name == name {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	c.records = kept
	return removed
}

// Has reports whether a record with the given name is selected.
func (c *Comparison) Has(name string) bool {
	for _, r := range c.records {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Len returns the number of selected records.
func (c *Comparison) Len() int { return len(c.records) }

// Full reports whether another Add would be rejected for capacity.
func (c *Comparison) Full() bool { return len(c.records) >= MaxCompared }

// Records returns a copy of the selection in insertion order.
func (c *Comparison) Records() []catalog.Record {
	out := make([]catalog.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Names returns the selected names in insertion order.
func (c *Comparison) Names() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Name
	}
	return out
}

// Clear empties the selection.
func (c *Comparison) Clear() {
	c.records = c.records[:0]
}
