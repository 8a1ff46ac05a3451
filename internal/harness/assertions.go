package harness

import (
	"fmt"

	"github.com/roach88/recsel/internal/ir"
)

// errorKind classifies err the way scenarios name errors.
func errorKind(err error) string {
	switch {
	case ir.IsValidationError(err):
		return ErrorKindValidation
	case ir.IsComparisonError(err):
		return ErrorKindComparison
	default:
		return "error"
	}
}

// checkError compares an operation's error against the expected kind.
// Returns true if the operation succeeded and was expected to.
func checkError(label string, err error, expect string, result *Result) bool {
	switch {
	case err == nil && expect == "":
		return true
	case err == nil:
		result.AddError(fmt.Sprintf("%s: expected %s error, got success", label, expect))
	case expect == "":
		result.AddError(fmt.Sprintf("%s: unexpected error: %v", label, err))
	case errorKind(err) != expect:
		result.AddError(fmt.Sprintf("%s: expected %s error, got: %v", label, expect, err))
	}
	return false
}

// toRecords converts expected records from YAML to ir.Record values.
func toRecords(raw []map[string]any) ([]ir.Record, error) {
	recs := make([]ir.Record, len(raw))
	for i, m := range raw {
		rec, err := ir.RecordFromGo(m)
		if err != nil {
			return nil, fmt.Errorf("expected record %d: %w", i, err)
		}
		recs[i] = rec
	}
	return recs, nil
}

// assertRecords requires got to equal want exactly, in order.
// Numbers compare numerically, so 9 and 9.0 match.
func assertRecords(label string, want, got []ir.Record, result *Result) {
	if len(want) != len(got) {
		result.AddError(fmt.Sprintf("%s: expected %d records, got %d: %v",
			label, len(want), len(got), got))
		return
	}
	for i := range want {
		if !want[i].Equal(got[i]) {
			result.AddError(fmt.Sprintf("%s: record %d: expected %s, got %s",
				label, i, want[i], got[i]))
		}
	}
}
