package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/recsel/internal/ir"
)

// Snapshot captures every query outcome of a scenario execution.
// Serialized with canonical JSON for deterministic comparison.
type Snapshot struct {
	ScenarioName string
	Queries      []QueryResult
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical JSON serialization.
// This is required because ir.MarshalCanonical only handles IR types and primitives.
func (s *Snapshot) toCanonicalMap() map[string]any {
	queries := make([]any, len(s.Queries))
	for i, q := range s.Queries {
		m := map[string]any{
			"name":  q.Name,
			"table": q.Table,
		}
		if q.Predicate != "" {
			m["predicate"] = q.Predicate
		}
		if q.Digest != "" {
			m["digest"] = q.Digest
		}
		if q.Error != "" {
			m["error"] = q.Error
		} else {
			recs := q.Records
			if recs == nil {
				recs = []ir.Record{}
			}
			m["records"] = recs
		}
		queries[i] = m
	}

	return map[string]any{
		"format_version": ir.FormatVersion,
		"scenario_name":  s.ScenarioName,
		"queries":        queries,
	}
}

// MarshalSnapshot renders a result as canonical JSON.
func MarshalSnapshot(result *Result) ([]byte, error) {
	snapshot := Snapshot{
		ScenarioName: result.Scenario,
		Queries:      result.Queries,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its query outcomes
// against a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
