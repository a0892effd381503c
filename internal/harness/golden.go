package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/conformix/schemacheck/internal/schema"
)

// Snapshot is the golden-file form of a scenario execution: the scenario
// name plus its comparison records. The run ID is deliberately excluded so
// snapshots stay stable across runs.
type Snapshot struct {
	ScenarioName string             `json:"scenario_name"`
	Records      []ComparisonRecord `json:"records"`
}

// MarshalSnapshot renders a result as canonical JSON for golden comparison:
// the snapshot is serialized, re-parsed into the document model, and
// canonically marshaled so key order is fully deterministic.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Records:      result.Records,
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	doc, err := schema.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to reparse snapshot: %w", err)
	}

	return schema.MarshalCanonical(doc)
}

// RunWithGolden executes a scenario and compares its record trace against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts RunOptions) error {
	t.Helper()

	result, err := Run(scenario, opts)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-obtained result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
