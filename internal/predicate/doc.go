// Package predicate provides composable record predicates.
//
// A Predicate is a pure function from ir.Record to bool, exposed as the
// Eval method. Queries are built bottom-up:
//
//	[constructors] Eq, NotEq, Gt, Lt, Between, Match
//	      ↓
//	[combinators]  And, Or, Not, Where
//	      ↓
//	[executor]     engine.Select(store, "songs", p)
//
// # Constructors
//
// Each constructor is a factory returning a small struct whose Eval takes
// the record explicitly. Equality never fails and treats a missing
// attribute as ir.IRAbsent. Ordering predicates fail at evaluation time,
// never at construction time, when an operand is absent or the kinds are
// incomparable.
//
// # Combinators
//
// And and Or evaluate left to right and short-circuit: And stops at the
// first false, Or at the first true. Errors stop evaluation and propagate.
// And() is vacuously true and Or() vacuously false.
//
// All combinators accept nested sequences through Group and flatten them
// first, so variadic and nested call styles build identical predicates:
//
//	And(p1, p2)          // variadic
//	And(Group{p1, p2})   // nested sequence
//	And(ps...)           // slice expansion
//
// Where is the query entry point. It equals And for one or more predicates
// and rejects an empty argument list with a validation error.
//
// # Rendering
//
// Every structural predicate implements fmt.Stringer with a SQL-like text
// form, used in logs, CLI output and golden snapshots:
//
//	(artist = "Dixie Chicks" OR rating > 6)
//
// Validate reports whether a predicate can be rendered to SQL by package
// querysql.
package predicate
