package harness

import "github.com/roach88/recsel/internal/ir"

// QueryResult is the outcome of one scenario query.
type QueryResult struct {
	// Name is the query's name from the scenario.
	Name string `json:"name"`

	// Table is the table the query selected from.
	Table string `json:"table"`

	// Predicate is the rendered predicate. Empty if decoding failed.
	Predicate string `json:"predicate,omitempty"`

	// Records are the selected records, in order. Nil when Error is set.
	Records []ir.Record `json:"records,omitempty"`

	// Digest is ir.ResultSetDigest of Records. Empty when Error is set.
	Digest string `json:"digest,omitempty"`

	// Error is the error kind the query failed with, if any:
	// "validation", "comparison" or "error".
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass indicates overall test success.
	// True if every insert and query behaved as expected.
	Pass bool `json:"pass"`

	// Queries holds per-query outcomes in scenario order.
	Queries []QueryResult `json:"queries"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Queries:  []QueryResult{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddQuery records a query outcome.
func (r *Result) AddQuery(q QueryResult) {
	r.Queries = append(r.Queries, q)
}
