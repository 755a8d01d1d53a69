package render

import (
	"fmt"
	"strings"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/query"
)

// Mode is the display mode of the renderer. Modes are mutually exclusive.
type Mode string

const (
	ModeGrid    Mode = "grid"
	ModeList    Mode = "list"
	ModeCompare Mode = "compare"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeGrid, ModeList, ModeCompare}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid view mode %q: must be one of %v", s, Modes)
}

// Pill is one toggleable facet with its active state.
type Pill struct {
	Key      string `json:"key"`
	Category bool   `json:"category"`
	Count    int    `json:"count"`
	Active   bool   `json:"active"`
}

// Snapshot is everything the renderer reads. It is a copy of session state;
// rendering never reaches back into the session.
type Snapshot struct {
	Mode     Mode
	View     []catalog.Record // derived view, used by grid and list
	Compared []catalog.Record // comparison selection, used by compare
	Criteria query.Criteria
	Pills    []Pill
	Total    int // size of the full record list

	// Cursor highlights one card of the view; -1 highlights nothing.
	Cursor int
	// PillCursor highlights one pill; -1 highlights nothing.
	PillCursor int
}

// IsCompared reports whether the named record is in the comparison.
func (s Snapshot) IsCompared(name string) bool {
	for _, r := range s.Compared {
		if r.Name == name {
			return true
		}
	}
	return false
}
