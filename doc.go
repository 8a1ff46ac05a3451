// Package recsel is an embeddable, schema-less in-memory record store with
// composable predicate selection.
//
// Records are immutable attribute maps appended to named tables. Queries
// are predicates built from constructors and combinators and run against
// one consistent snapshot of a table:
//
//	st := recsel.New()
//	_ = st.Insert("songs", map[string]recsel.Value{
//		"title":  recsel.String("Fly"),
//		"artist": recsel.String("Dixie Chicks"),
//		"rating": recsel.Int(8),
//	})
//
//	rs, err := recsel.Select(st, "songs", recsel.Or(
//		recsel.Eq("artist", recsel.String("Dixie Chicks")),
//		recsel.Gt("rating", recsel.Int(6)),
//	))
//
// A selection either returns every matching record in insertion order or
// the first error. Errors classify with IsValidationError and
// IsComparisonError.
package recsel
