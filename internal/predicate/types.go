package predicate

import (
	"strings"

	"github.com/roach88/recsel/internal/ir"
)

// Predicate is a pure test over a record.
//
// Eval must not mutate the record or any shared state; the executor and the
// combinators rely on that to evaluate predicates in any order, any number
// of times, from any goroutine. A non-nil error aborts the enclosing query.
//
// Structural predicates (Equals, And, ...) are built by the constructors in
// this package. Callers add their own logic with Func.
type Predicate interface {
	Eval(rec ir.Record) (bool, error)
}

// Func adapts an ordinary function to the Predicate interface.
//
//	hasTitle := predicate.Func(func(r ir.Record) (bool, error) {
//	    return r.Has("title"), nil
//	})
type Func func(rec ir.Record) (bool, error)

// Eval calls f(rec). A nil Func is a validation error.
func (f Func) Eval(rec ir.Record) (bool, error) {
	if f == nil {
		return false, ir.NewValidationError("nil predicate func")
	}
	return f(rec)
}

func (Func) String() string {
	return "<func>"
}

// Group is the nested-sequence form of a predicate list.
//
// And, Or and Where splice a Group's members into their own argument list,
// recursively, so
//
//	And(p1, p2) == And(Group{p1, p2}) == And(Group{Group{p1}, p2})
//
// A Group evaluated on its own behaves as the conjunction of its members.
type Group []Predicate

// Eval evaluates the group as a conjunction.
func (g Group) Eval(rec ir.Record) (bool, error) {
	return And(g...).Eval(rec)
}

func (g Group) String() string {
	parts := make([]string, len(g))
	for i, p := range g {
		parts[i] = render(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// flatten splices nested Groups into a single flat list.
// The result never aliases the caller's slice.
func flatten(preds []Predicate) []Predicate {
	out := make([]Predicate, 0, len(preds))
	var walk func([]Predicate)
	walk = func(ps []Predicate) {
		for _, p := range ps {
			if g, ok := p.(Group); ok {
				walk(g)
				continue
			}
			out = append(out, p)
		}
	}
	walk(preds)
	return out
}

// eval evaluates p, turning a nil predicate into a validation error.
func eval(p Predicate, rec ir.Record) (bool, error) {
	if p == nil {
		return false, ir.NewValidationError("nil predicate")
	}
	return p.Eval(rec)
}

// render returns p's text form for logs and snapshots.
func render(p Predicate) string {
	if p == nil {
		return "<nil>"
	}
	if s, ok := p.(interface{ String() string }); ok {
		return s.String()
	}
	return "<predicate>"
}

// String renders any predicate, including nil and caller-defined ones.
func String(p Predicate) string {
	return render(p)
}
