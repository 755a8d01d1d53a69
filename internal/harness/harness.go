package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/loader"
	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
	"github.com/roach88/agentdeck/internal/session"
	"github.com/roach88/agentdeck/internal/testutil"
)

// Harness replays one scenario against a session.
type Harness struct {
	sess   *session.Session
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a context for loading the catalog.
//
// An error is returned only when the scenario cannot run at all, for
// example when its catalog fails to load. Failed expectations are reported
// in the result.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cat, err := scenarioCatalog(ctx, scenario, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	h := &Harness{
		sess: session.New(cat,
			session.WithClock(testutil.NewDeterministicClock()),
			session.WithIDGenerator(testutil.FixedID(scenario.SessionID)),
			session.WithLogger(logger),
		),
		logger: logger,
	}

	result := NewResult()
	result.SessionID = h.sess.ID()
	for i, step := range scenario.Steps {
		if err := h.apply(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	result.Events = h.sess.Events()

	for i, step := range scenario.Steps {
		if step.Expect == "" || i >= len(result.Events) {
			continue
		}
		if got := result.Events[i].Outcome; got != step.Expect {
			result.AddError(fmt.Sprintf("step %d (%s): expected %s, got %s%s",
				i, step.Action, step.Expect, got, reasonSuffix(result.Events[i])))
		}
	}

	result.Final = snapshotState(h.sess)
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario completed", "scenario", scenario.Name, "pass", result.Pass)
	return result, nil
}

func scenarioCatalog(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*catalog.Catalog, error) {
	if scenario.Catalog != "" {
		return loader.New(loader.WithLogger(logger)).Load(ctx, scenario.Catalog)
	}
	records, issues := catalog.Normalize(scenario.Records)
	return catalog.New("inline:"+scenario.Name, records, issues), nil
}

// apply performs one step. Operations that the session refuses are
// recorded in its trace and are not errors here.
func (h *Harness) apply(step Step) error {
	arg := step.Args[stepArg[step.Action]]
	switch step.Action {
	case session.ActionSetSearch:
		h.sess.SetSearch(arg)
	case session.ActionSetCategory:
		h.sess.SetCategory(arg)
	case session.ActionSetSort:
		_ = h.sess.SetSort(query.SortKey(arg))
	case session.ActionToggleTag:
		h.sess.ToggleTag(arg)
	case session.ActionResetFilters:
		h.sess.ResetFilters()
	case session.ActionSwitchMode:
		_ = h.sess.SwitchMode(render.Mode(arg))
	case session.ActionAddToComparison:
		_ = h.sess.AddToComparison(arg)
	case session.ActionRemoveFromComparison:
		h.sess.RemoveFromComparison(arg)
	case session.ActionOpenDetail:
		h.sess.OpenDetail(arg)
	case session.ActionCloseDetail:
		h.sess.CloseDetail()
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

func snapshotState(s *session.Session) State {
	st := State{
		ViewNames:       names(s.View()),
		ComparisonNames: names(s.Compared()),
		SelectedTags:    s.SelectedTags(),
		Mode:            string(s.Mode()),
		Criteria:        s.Criteria(),
	}
	if st.SelectedTags == nil {
		st.SelectedTags = []string{}
	}
	if rec, open := s.Detail(); open {
		st.Detail = rec.Name
	}
	return st
}

func names(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func reasonSuffix(e session.Event) string {
	if e.Reason == "" {
		return ""
	}
	return " (" + e.Reason + ")"
}

func isURL(loc string) bool {
	return strings.Contains(loc, "://")
}
