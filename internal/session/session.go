package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
	"github.com/roach88/agentdeck/internal/selection"
)

// ErrUnknownRecord is returned when an operation names a record that is
// not in the catalog.
var ErrUnknownRecord = errors.New("unknown agent")

// Session is the state of one browsing session.
// It is not safe for concurrent use; the owner applies operations in order.
type Session struct {
	id     string
	clock  Clock
	logger *slog.Logger

	catalog    *catalog.Catalog
	facets     []catalog.Facet
	criteria   query.Criteria
	pills      *selection.TagSet
	comparison *selection.Comparison
	mode       render.Mode
	detail     string

	view   []catalog.Record
	events []Event
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Every line carries the session ID.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock sets the trace clock.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithIDGenerator sets the session ID source.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Session) { s.id = g.Generate() }
}

// WithCriteria sets the starting criteria. Invalid criteria are ignored.
func WithCriteria(c query.Criteria) Option {
	return func(s *Session) {
		if c.Validate() == nil {
			s.criteria = c
		}
	}
}

// WithMode sets the starting display mode. Unknown modes are ignored.
func WithMode(m render.Mode) Option {
	return func(s *Session) {
		if parsed, err := render.ParseMode(string(m)); err == nil {
			s.mode = parsed
		}
	}
}

// New starts a session over a loaded catalog. The catalog is never mutated.
func New(cat *catalog.Catalog, opts ...Option) *Session {
	if cat == nil {
		cat = catalog.New("", nil, nil)
	}
	s := &Session{
		catalog:    cat,
		facets:     catalog.Facets(cat.Records),
		criteria:   query.DefaultCriteria(),
		pills:      selection.NewTagSet(),
		comparison: selection.NewComparison(),
		mode:       render.ModeGrid,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = UUIDv7Generator{}.Generate()
	}
	if s.clock == nil {
		s.clock = NewClock()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("session_id", s.id)
	s.recompute()

	s.logger.Info("session started",
		"records", len(cat.Records),
		"catalog", cat.Source,
		"digest", catalog.ShortDigest(cat.Digest))
	return s
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Catalog returns the loaded catalog.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Criteria returns the active criteria.
func (s *Session) Criteria() query.Criteria { return s.criteria }

// Mode returns the display mode.
func (s *Session) Mode() render.Mode { return s.mode }

// SelectedTags returns the active pill keys, sorted.
func (s *Session) SelectedTags() []string { return s.pills.Keys() }

// Compared returns the comparison selection in insertion order.
func (s *Session) Compared() []catalog.Record { return s.comparison.Records() }

// IsCompared reports whether the named record is in the comparison.
func (s *Session) IsCompared(name string) bool { return s.comparison.Has(name) }

// View returns a copy of the derived view.
func (s *Session) View() []catalog.Record {
	out := make([]catalog.Record, len(s.view))
	copy(out, s.view)
	return out
}

// Detail returns the record whose detail is open.
func (s *Session) Detail() (catalog.Record, bool) {
	if s.detail == "" {
		return catalog.Record{}, false
	}
	return s.catalog.Find(s.detail)
}

// Facets returns the pill universe.
func (s *Session) Facets() []catalog.Facet { return s.facets }

// Events returns a copy of the trace.
func (s *Session) Events() []Event {
	out := make([]Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.clone()
	}
	return out
}

// Stats summarizes the session.
type Stats struct {
	Total        int `json:"total"`
	Shown        int `json:"shown"`
	Compared     int `json:"compared"`
	SelectedTags int `json:"selected_tags"`
}

// Stats returns the total and filtered counts.
func (s *Session) Stats() Stats {
	return Stats{
		Total:        len(s.catalog.Records),
		Shown:        len(s.view),
		Compared:     s.comparison.Len(),
		SelectedTags: s.pills.Len(),
	}
}

// Snapshot copies the state a renderer needs. Cursors are unset (-1);
// interactive callers fill them in.
func (s *Session) Snapshot() render.Snapshot {
	pills := make([]render.Pill, len(s.facets))
	for i, f := range s.facets {
		pills[i] = render.Pill{
			Key:      f.Key,
			Category: f.Category,
			Count:    f.Count,
			Active:   s.pills.Has(f.Key),
		}
	}
	return render.Snapshot{
		Mode:       s.mode,
		View:       s.View(),
		Compared:   s.comparison.Records(),
		Criteria:   s.criteria,
		Pills:      pills,
		Total:      len(s.catalog.Records),
		Cursor:     -1,
		PillCursor: -1,
	}
}

// SetSearch replaces the search text.
func (s *Session) SetSearch(text string) {
	s.criteria.Search = text
	s.recompute()
	s.record(ActionSetSearch, map[string]string{"search": text}, OutcomeApplied, "")
}

// SetCategory sets the exact category filter. An empty category means
// query.CategoryAll.
func (s *Session) SetCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = query.CategoryAll
	}
	s.criteria.Category = category
	s.recompute()
	s.record(ActionSetCategory, map[string]string{"category": category}, OutcomeApplied, "")
}

// SetSort changes the sort key. Unknown keys are rejected.
func (s *Session) SetSort(key query.SortKey) error {
	args := map[string]string{"sort": string(key)}
	if !key.Valid() {
		err := fmt.Errorf("invalid sort key %q", key)
		s.record(ActionSetSort, args, OutcomeRejected, err.Error())
		return err
	}
	s.criteria.Sort = key
	s.recompute()
	s.record(ActionSetSort, args, OutcomeApplied, "")
	return nil
}

// ToggleTag flips a pill. It returns whether the pill is active afterwards.
func (s *Session) ToggleTag(key string) bool {
	active := s.pills.Toggle(key)
	s.recompute()
	s.record(ActionToggleTag, map[string]string{"tag": key, "active": fmt.Sprint(active)}, OutcomeApplied, "")
	return active
}

// ResetFilters restores the default criteria and clears the pills.
// The comparison and the display mode are kept.
func (s *Session) ResetFilters() {
	s.criteria = query.DefaultCriteria()
	s.pills.Clear()
	s.recompute()
	s.record(ActionResetFilters, nil, OutcomeApplied, "")
}

// SwitchMode changes the display mode. It never touches criteria or
// selections.
func (s *Session) SwitchMode(m render.Mode) error {
	args := map[string]string{"mode": string(m)}
	parsed, err := render.ParseMode(string(m))
	if err != nil {
		s.record(ActionSwitchMode, args, OutcomeRejected, err.Error())
		return err
	}
	s.mode = parsed
	s.record(ActionSwitchMode, args, OutcomeApplied, "")
	return nil
}

// AddToComparison appends the named record to the comparison. It returns
// selection.ErrComparisonFull, selection.ErrAlreadyCompared or
// ErrUnknownRecord, leaving the comparison unchanged.
func (s *Session) AddToComparison(name string) error {
	args := map[string]string{"name": name}
	rec, ok := s.catalog.Find(name)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownRecord, name)
		s.record(ActionAddToComparison, args, OutcomeRejected, err.Error())
		return err
	}
	if err := s.comparison.Add(rec); err != nil {
		s.record(ActionAddToComparison, args, OutcomeRejected, err.Error())
		return err
	}
	s.record(ActionAddToComparison, args, OutcomeApplied, "")
	return nil
}

// RemoveFromComparison drops the named record. Absent names are ignored.
func (s *Session) RemoveFromComparison(name string) bool {
	args := map[string]string{"name": name}
	if !s.comparison.Remove(name) {
		s.record(ActionRemoveFromComparison, args, OutcomeIgnored, "not in comparison")
		return false
	}
	s.record(ActionRemoveFromComparison, args, OutcomeApplied, "")
	return true
}

// OpenDetail shows the named record. Unknown names are ignored.
func (s *Session) OpenDetail(name string) bool {
	args := map[string]string{"name": name}
	if _, ok := s.catalog.Find(name); !ok {
		s.record(ActionOpenDetail, args, OutcomeIgnored, "unknown agent")
		return false
	}
	s.detail = name
	s.record(ActionOpenDetail, args, OutcomeApplied, "")
	return true
}

// CloseDetail hides the detail, if one is open.
func (s *Session) CloseDetail() {
	if s.detail == "" {
		s.record(ActionCloseDetail, nil, OutcomeIgnored, "no detail open")
		return
	}
	s.detail = ""
	s.record(ActionCloseDetail, nil, OutcomeApplied, "")
}

func (s *Session) recompute() {
	s.view = query.ComputeView(s.catalog.Records, s.criteria, s.pills)
}

func (s *Session) record(action Action, args map[string]string, outcome Outcome, reason string) {
	e := Event{
		Seq:     s.clock.Next(),
		Action:  action,
		Args:    args,
		Outcome: outcome,
		Reason:  reason,
	}
	s.events = append(s.events, e)

	attrs := []any{
		"seq", e.Seq,
		"action", string(action),
		"outcome", string(outcome),
		"shown", len(s.view),
	}
	for _, k := range slices.Sorted(maps.Keys(args)) {
		attrs = append(attrs, k, args[k])
	}
	if outcome == OutcomeRejected {
		s.logger.Info("action rejected", append(attrs, "reason", reason)...)
		return
	}
	s.logger.Debug("action", attrs...)
}
