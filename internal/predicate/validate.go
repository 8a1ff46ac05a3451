package predicate

import (
	"fmt"

	"github.com/roach88/recsel/internal/ir"
)

// ValidationResult contains portability analysis of a predicate.
//
// A portable predicate can be rendered to SQL by package querysql and
// evaluated by SQLite with the same result as in memory, given well-typed
// data. Non-portable predicates still evaluate correctly in memory.
type ValidationResult struct {
	// IsPortable indicates the predicate renders to SQL.
	IsPortable bool

	// Warnings lists the non-portable parts. Empty when IsPortable is true.
	Warnings []string
}

// Validate walks p and reports whether it is portable to SQL rendering.
//
// Non-portable constructs:
//  1. Func - opaque caller code cannot be translated
//  2. nil predicates
//  3. ordering (Gt, Lt, Between) against absent or bool bounds, which
//     always fail in memory
//  4. unknown Predicate implementations
//
// Validate is a pure function with no side effects.
func Validate(p Predicate) ValidationResult {
	v := &validator{
		warnings: []string{},
	}
	v.validate(p)

	return ValidationResult{
		IsPortable: len(v.warnings) == 0,
		Warnings:   v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validate(p Predicate) {
	switch pred := p.(type) {
	case nil:
		v.addWarning("nil predicate")
	case Equals, NotEquals:
		// Equality is total; every value kind renders
	case Greater:
		v.validateBound("gt", pred.Attr, pred.Value)
	case Less:
		v.validateBound("lt", pred.Attr, pred.Value)
	case Range:
		v.validateBound("between", pred.Attr, pred.Lo)
		v.validateBound("between", pred.Attr, pred.Hi)
	case AllOf:
		v.validateAll(pred.Predicates)
	case AnyOf:
		v.validateAll(pred.Predicates)
	case Group:
		v.validateAll(pred)
	case Negation:
		v.validate(pred.Predicate)
	case Func:
		v.addWarning("Func predicate - opaque code cannot be rendered to SQL")
	default:
		v.addWarning("Unknown predicate type: %T - portability cannot be verified", p)
	}
}

func (v *validator) validateAll(preds []Predicate) {
	for _, sub := range preds {
		v.validate(sub)
	}
}

// validateBound checks an ordering bound. Only strings and numbers order.
func (v *validator) validateBound(op, attr string, bound ir.IRValue) {
	switch k := ir.KindOf(bound); {
	case k == ir.KindString, k.Numeric():
	default:
		v.addWarning("%s on '%s' with %s bound - ordering always fails", op, attr, k)
	}
}
