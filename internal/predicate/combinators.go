package predicate

import (
	"slices"
	"strings"

	"github.com/roach88/recsel/internal/ir"
)

// AllOf is a conjunction: true when every member is true.
//
// Members are evaluated left to right and evaluation stops at the first
// false result or the first error. An empty AllOf is vacuously true.
type AllOf struct {
	Predicates []Predicate
}

// And returns the conjunction of preds. Groups are flattened first.
func And(preds ...Predicate) AllOf {
	return AllOf{Predicates: flatten(preds)}
}

// Eval implements Predicate.
func (p AllOf) Eval(rec ir.Record) (bool, error) {
	for _, sub := range p.Predicates {
		ok, err := eval(sub, rec)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (p AllOf) String() string {
	return join(p.Predicates, " AND ", "TRUE")
}

// AnyOf is a disjunction: true when at least one member is true.
//
// Members are evaluated left to right and evaluation stops at the first
// true result or the first error. An empty AnyOf is vacuously false.
type AnyOf struct {
	Predicates []Predicate
}

// Or returns the disjunction of preds. Groups are flattened first.
func Or(preds ...Predicate) AnyOf {
	return AnyOf{Predicates: flatten(preds)}
}

// Eval implements Predicate.
func (p AnyOf) Eval(rec ir.Record) (bool, error) {
	for _, sub := range p.Predicates {
		ok, err := eval(sub, rec)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (p AnyOf) String() string {
	return join(p.Predicates, " OR ", "FALSE")
}

// Negation inverts its operand. Errors pass through unchanged.
type Negation struct {
	Predicate Predicate
}

// Not returns the negation of p.
func Not(p Predicate) Negation {
	return Negation{Predicate: p}
}

// Eval implements Predicate.
func (p Negation) Eval(rec ir.Record) (bool, error) {
	ok, err := eval(p.Predicate, rec)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (p Negation) String() string {
	s := render(p.Predicate)
	if !strings.HasPrefix(s, "(") {
		s = "(" + s + ")"
	}
	return "NOT " + s
}

// Where is the entry point for building a query's filter.
//
// Where(p1, ..., pn) is And(p1, ..., pn) for n >= 1, except that a single
// predicate (after flattening) is returned as is. With nothing to filter on
// there is no sensible default, so zero predicates is a validation error.
func Where(preds ...Predicate) (Predicate, error) {
	flat := flatten(preds)
	switch len(flat) {
	case 0:
		return nil, ir.NewValidationError("where requires at least one predicate")
	case 1:
		if flat[0] == nil {
			return nil, ir.NewValidationError("nil predicate")
		}
		return flat[0], nil
	default:
		return AllOf{Predicates: flat}, nil
	}
}

// MustWhere is like Where but panics on error.
func MustWhere(preds ...Predicate) Predicate {
	p, err := Where(preds...)
	if err != nil {
		panic(err)
	}
	return p
}

// Match returns the conjunction of Eq(attr, value) for every entry in
// fields, in sorted attribute order:
//
//	Match(map[string]ir.IRValue{"artist": ir.IRString("Dixie Chicks"), "rating": ir.IRInt(9)})
//
// is And(Eq("artist", ...), Eq("rating", ...)). An empty map matches every record.
func Match(fields map[string]ir.IRValue) AllOf {
	attrs := make([]string, 0, len(fields))
	for attr := range fields {
		attrs = append(attrs, attr)
	}
	slices.Sort(attrs)

	preds := make([]Predicate, len(attrs))
	for i, attr := range attrs {
		preds[i] = Eq(attr, fields[attr])
	}
	return AllOf{Predicates: preds}
}

func join(preds []Predicate, sep, empty string) string {
	switch len(preds) {
	case 0:
		return empty
	case 1:
		return render(preds[0])
	}
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = render(p)
	}
	return "(" + strings.Join(parts, sep) + ")"
}
