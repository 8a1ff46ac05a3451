// Package harness provides conformance testing for the record store and
// its query executor.
//
// A scenario inserts records into a fresh store and runs queries against
// it, checking exact results (order included) or expected error kinds.
// Flagged queries are replayed through the SQLite mirror in package
// querysql, which must agree with the in-memory executor.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	inserts:
//	  - table: songs
//	    record: {title: "Fly", artist: "Dixie Chicks", rating: 8}
//	  - table: songs
//	    record: {title: "Bad", rating: null}
//	    expect_error: validation
//	queries:
//	  - name: by_artist
//	    table: songs
//	    where: {eq: [artist, "Dixie Chicks"]}
//	    cross_check: true
//	    expect:
//	      - {title: "Fly", artist: "Dixie Chicks", rating: 8}
//	  - name: ordering_on_missing
//	    table: songs
//	    where: {gt: [year, 1990]}
//	    expect_error: comparison
//
// Files are checked against an embedded CUE schema (schema.cue) and then
// decoded strictly, so unknown fields and operators are rejected with a
// pointer to the offending path.
//
// # Golden Files
//
// RunWithGolden snapshots every query outcome as canonical JSON under
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
//
// # Determinism
//
// Every run uses a fixed store ID and a DeterministicClock, and logs are
// discarded, so the same scenario always produces byte-identical output.
package harness
