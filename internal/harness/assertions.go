package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/agentdeck/internal/session"
)

// AssertionError is returned when an assertion fails. It carries the event
// trace to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Events   []session.Event
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Events) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Events {
			fmt.Fprintf(&buf, "  [%d] %s %v %s%s\n", ev.Seq, ev.Action, ev.Args, ev.Outcome, reasonSuffix(ev))
		}
	}
	return buf.String()
}

func assertNames(result *Result, a Assertion, actual []string) error {
	if slices.Equal(a.Names, actual) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%q", a.Names),
		Actual:   fmt.Sprintf("%q", actual),
		Events:   result.Events,
	}
}

func assertMode(result *Result, a Assertion) error {
	if strings.EqualFold(a.Value, result.Final.Mode) {
		return nil
	}
	return &AssertionError{
		Type:     AssertMode,
		Expected: a.Value,
		Actual:   result.Final.Mode,
		Events:   result.Events,
	}
}

// assertCriteria checks only the keys the assertion names.
func assertCriteria(result *Result, a Assertion) error {
	c := result.Final.Criteria
	actual := map[string]string{
		"search":   c.Search,
		"category": c.Category,
		"sort":     string(c.Sort),
	}
	var mismatches []string
	for _, k := range []string{"search", "category", "sort"} {
		want, ok := a.Criteria[k]
		if ok && want != actual[k] {
			mismatches = append(mismatches, fmt.Sprintf("%s=%q (want %q)", k, actual[k], want))
		}
	}
	if len(mismatches) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertCriteria,
		Expected: fmt.Sprintf("%v", a.Criteria),
		Actual:   strings.Join(mismatches, ", "),
		Events:   result.Events,
	}
}

func assertRejected(result *Result, a Assertion) error {
	i := *a.Step
	if i >= len(result.Events) {
		return &AssertionError{
			Type:     AssertRejected,
			Expected: fmt.Sprintf("step %d rejected", i),
			Actual:   fmt.Sprintf("only %d events recorded", len(result.Events)),
			Events:   result.Events,
		}
	}
	if ev := result.Events[i]; ev.Outcome != session.OutcomeRejected {
		return &AssertionError{
			Type:     AssertRejected,
			Expected: fmt.Sprintf("step %d rejected", i),
			Actual:   fmt.Sprintf("step %d %s", i, ev.Outcome),
			Events:   result.Events,
		}
	}
	return nil
}

func assertViewCount(result *Result, a Assertion) error {
	if n := len(result.Final.ViewNames); n != *a.Count {
		return &AssertionError{
			Type:     AssertViewCount,
			Expected: fmt.Sprintf("%d records in view", *a.Count),
			Actual:   fmt.Sprintf("%d records %q", n, result.Final.ViewNames),
			Events:   result.Events,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result's final
// state. It returns one message per failed assertion.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertViewNames:
			err = assertNames(result, a, result.Final.ViewNames)
		case AssertComparisonNames:
			err = assertNames(result, a, result.Final.ComparisonNames)
		case AssertSelectedTags:
			err = assertNames(result, a, result.Final.SelectedTags)
		case AssertMode:
			err = assertMode(result, a)
		case AssertCriteria:
			err = assertCriteria(result, a)
		case AssertRejected:
			if a.Step == nil {
				err = fmt.Errorf("assertion[%d]: rejected requires step", i)
			} else {
				err = assertRejected(result, a)
			}
		case AssertViewCount:
			if a.Count == nil {
				err = fmt.Errorf("assertion[%d]: view_count requires count", i)
			} else {
				err = assertViewCount(result, a)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
