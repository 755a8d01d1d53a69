package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/session"
)

// Scenario is a scripted browsing session with expectations.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Catalog is a catalog location. Relative paths are resolved against
	// the scenario file's directory by LoadScenario.
	Catalog string `yaml:"catalog,omitempty"`

	// Records is an inline catalog, used when Catalog is empty.
	Records []catalog.RawRecord `yaml:"records,omitempty"`

	// SessionID fixes the session ID. Empty means testutil.DefaultSessionID.
	SessionID string `yaml:"session_id,omitempty"`

	Steps []Step `yaml:"steps"`

	Assertions []Assertion `yaml:"assertions"`
}

// Step is one session operation.
type Step struct {
	Action session.Action    `yaml:"action"`
	Args   map[string]string `yaml:"args,omitempty"`

	// Expect is the outcome the step must have. Empty skips the check.
	Expect session.Outcome `yaml:"expect,omitempty"`
}

// Assertion checks the session after all steps ran.
type Assertion struct {
	Type string `yaml:"type"`

	// Names is used by view_names, comparison_names and selected_tags.
	Names []string `yaml:"names,omitempty"`

	// Value is the expected mode.
	Value string `yaml:"value,omitempty"`

	// Step is the step index checked by rejected.
	Step *int `yaml:"step,omitempty"`

	// Count is the expected view size.
	Count *int `yaml:"count,omitempty"`

	// Criteria holds expected search, category and sort values. Keys that
	// are absent are not checked.
	Criteria map[string]string `yaml:"criteria,omitempty"`
}

// Assertion type constants.
const (
	AssertViewNames       = "view_names"
	AssertComparisonNames = "comparison_names"
	AssertSelectedTags    = "selected_tags"
	AssertMode            = "mode"
	AssertCriteria        = "criteria"
	AssertRejected        = "rejected"
	AssertViewCount       = "view_count"
)

// stepArg is the argument each action reads.
var stepArg = map[session.Action]string{
	session.ActionSetSearch:            "text",
	session.ActionSetCategory:          "category",
	session.ActionSetSort:              "sort",
	session.ActionToggleTag:            "tag",
	session.ActionSwitchMode:           "mode",
	session.ActionAddToComparison:      "name",
	session.ActionRemoveFromComparison: "name",
	session.ActionOpenDetail:           "name",
}

var criteriaKeys = map[string]bool{"search": true, "category": true, "sort": true}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) && !isURL(scenario.Catalog) {
		scenario.Catalog = filepath.Join(filepath.Dir(path), scenario.Catalog)
	}
	return scenario, nil
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if (s.Catalog == "") == (len(s.Records) == 0) {
		return fmt.Errorf("exactly one of catalog and records is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if !step.Action.Valid() {
			return fmt.Errorf("steps[%d]: unknown action %q", i, step.Action)
		}
		if arg, ok := stepArg[step.Action]; ok {
			if _, present := step.Args[arg]; !present {
				return fmt.Errorf("steps[%d]: %s requires arg %q", i, step.Action, arg)
			}
		}
		switch step.Expect {
		case "", session.OutcomeApplied, session.OutcomeRejected, session.OutcomeIgnored:
		default:
			return fmt.Errorf("steps[%d]: unknown outcome %q", i, step.Expect)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a, len(s.Steps)); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a Assertion, steps int) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertViewNames, AssertComparisonNames, AssertSelectedTags:
		if a.Names == nil {
			return fmt.Errorf("assertions[%d]: names is required for %s (use [] for none)", index, a.Type)
		}
	case AssertMode:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for mode", index)
		}
	case AssertCriteria:
		if len(a.Criteria) == 0 {
			return fmt.Errorf("assertions[%d]: criteria is required for criteria", index)
		}
		for k := range a.Criteria {
			if !criteriaKeys[k] {
				return fmt.Errorf("assertions[%d]: unknown criteria key %q", index, k)
			}
		}
	case AssertRejected:
		if a.Step == nil || *a.Step < 0 || *a.Step >= steps {
			return fmt.Errorf("assertions[%d]: step must index one of the %d steps", index, steps)
		}
	case AssertViewCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for view_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
