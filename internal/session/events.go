package session

import (
	"maps"
	"slices"
)

// Action names a session operation.
type Action string

const (
	ActionSetSearch            Action = "set_search"
	ActionSetCategory          Action = "set_category"
	ActionSetSort              Action = "set_sort"
	ActionToggleTag            Action = "toggle_tag"
	ActionResetFilters         Action = "reset_filters"
	ActionSwitchMode           Action = "switch_mode"
	ActionAddToComparison      Action = "add_to_comparison"
	ActionRemoveFromComparison Action = "remove_from_comparison"
	ActionOpenDetail           Action = "open_detail"
	ActionCloseDetail          Action = "close_detail"
)

// Actions lists every action.
var Actions = []Action{
	ActionSetSearch,
	ActionSetCategory,
	ActionSetSort,
	ActionToggleTag,
	ActionResetFilters,
	ActionSwitchMode,
	ActionAddToComparison,
	ActionRemoveFromComparison,
	ActionOpenDetail,
	ActionCloseDetail,
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return slices.Contains(Actions, a)
}

// Outcome is what an operation did to the state.
type Outcome string

const (
	// OutcomeApplied means the state changed, or was set to the same value.
	OutcomeApplied Outcome = "applied"
	// OutcomeRejected means the operation was refused and nothing changed.
	OutcomeRejected Outcome = "rejected"
	// OutcomeIgnored means the operation had nothing to act on.
	OutcomeIgnored Outcome = "ignored"
)

// Event is one entry in the session trace.
type Event struct {
	Seq     int64             `json:"seq" yaml:"seq"`
	Action  Action            `json:"action" yaml:"action"`
	Args    map[string]string `json:"args,omitempty" yaml:"args,omitempty"`
	Outcome Outcome           `json:"outcome" yaml:"outcome"`
	Reason  string            `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (e Event) clone() Event {
	e.Args = maps.Clone(e.Args)
	return e
}
