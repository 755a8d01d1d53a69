package harness

import (
	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/session"
)

// State is the session state after the last step.
type State struct {
	ViewNames       []string       `json:"view_names"`
	ComparisonNames []string       `json:"comparison_names"`
	SelectedTags    []string       `json:"selected_tags"`
	Mode            string         `json:"mode"`
	Criteria        query.Criteria `json:"criteria"`
	Detail          string         `json:"detail,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	SessionID string `json:"session_id"`

	// Events is the session trace, one event per step.
	Events []session.Event `json:"events"`

	Final State `json:"final"`

	// Errors lists failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Events: []session.Event{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
