// Package engine executes predicate queries against record tables.
//
// Select is the only query operation: it takes a Source (a Store or a
// Snapshot), a table name and a predicate, and returns the matching
// records in insertion order.
//
// Execution model:
//  1. Read the table once. Inserts that land after this read are not seen.
//  2. Evaluate the predicate against each record, first inserted first.
//  3. Either every record evaluates cleanly and the matches are returned,
//     or the first error is returned and nothing else.
//
// Results are materialized before Select returns. ResultSet.All exposes
// them as an iter.Seq for range-over-func iteration.
package engine
