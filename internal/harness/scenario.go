package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a cross-client conformance scenario: one baseline
// document, the per-client exports to compare against it, and the
// expectations on the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Baseline is the path to the baseline config.json, relative to the
	// scenario file unless absolute.
	Baseline string `yaml:"baseline"`

	// Exported maps client name to that client's exported config.json.
	Exported map[string]string `yaml:"exported"`

	// Ignore lists extra top-level fields to strip during normalization,
	// on top of the default volatile-field set.
	Ignore []string `yaml:"ignore,omitempty"`

	// Assertions validate the comparison records.
	// Supported types: all_match, match, mismatch_at, difference_count.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a scenario's comparison records.
type Assertion struct {
	// Type specifies the assertion type:
	// - "all_match": every client compared clean
	// - "match": the named client compared clean
	// - "mismatch_at": the named client has a difference of Kind at Path
	// - "difference_count": the named client has exactly Count differences
	Type string `yaml:"type"`

	// Client names the client under assertion (all but all_match).
	Client string `yaml:"client,omitempty"`

	// Path is the difference path (used by mismatch_at), e.g. "root.name".
	Path string `yaml:"path,omitempty"`

	// Kind is the expected difference kind (used by mismatch_at).
	// Empty matches any kind at the path.
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of differences (used by difference_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertAllMatch        = "all_match"
	AssertMatch           = "match"
	AssertMismatchAt      = "mismatch_at"
	AssertDifferenceCount = "difference_count"
)

// LoadScenario reads and parses a scenario YAML file, resolving relative
// document paths against the scenario file's directory. Returns an error if
// the file is malformed, contains unknown fields (typos), or is missing
// required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	scenario.resolvePaths(filepath.Dir(path))

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// resolvePaths makes relative document paths absolute against base.
func (s *Scenario) resolvePaths(base string) {
	if base == "" {
		return
	}
	if s.Baseline != "" && !filepath.IsAbs(s.Baseline) {
		s.Baseline = filepath.Join(base, s.Baseline)
	}
	for client, p := range s.Exported {
		if !filepath.IsAbs(p) {
			s.Exported[client] = filepath.Join(base, p)
		}
	}
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Baseline == "" {
		return fmt.Errorf("baseline is required")
	}
	if _, err := os.Stat(s.Baseline); os.IsNotExist(err) {
		return fmt.Errorf("baseline file not found: %s", s.Baseline)
	}

	if len(s.Exported) == 0 {
		return fmt.Errorf("exported map is required and must be non-empty")
	}
	for client, p := range s.Exported {
		if client == "" {
			return fmt.Errorf("exported: client name must not be empty")
		}
		if p == "" {
			return fmt.Errorf("exported[%s]: path must not be empty", client)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Exported); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, exported map[string]string) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	requireClient := func() error {
		if a.Client == "" {
			return fmt.Errorf("assertions[%d]: client is required for %s", index, a.Type)
		}
		if _, ok := exported[a.Client]; !ok {
			return fmt.Errorf("assertions[%d]: client %q not present in exported map", index, a.Client)
		}
		return nil
	}

	switch a.Type {
	case AssertAllMatch:
		// No extra fields.
	case AssertMatch:
		return requireClient()
	case AssertMismatchAt:
		if err := requireClient(); err != nil {
			return err
		}
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for mismatch_at", index)
		}
	case AssertDifferenceCount:
		if err := requireClient(); err != nil {
			return err
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for difference_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
