package querysql

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/recsel/internal/ir"
	"github.com/roach88/recsel/internal/predicate"
)

// SQLCompiler compiles structural predicates to parameterized SQLite
// over the mirror's records table, where each row's body column holds the
// record as a JSON object.
//
// CRITICAL: All values and attribute paths are parameterized, never
// interpolated.
// CRITICAL: Every SELECT ends with ORDER BY seq so rows come back in
// insertion order.
//
// Equality carries type guards so it agrees with in-memory semantics on
// every record: absent attributes, bools, strings and numbers never
// cross-match. Ordering renders typed comparisons that exclude rows the
// in-memory evaluator would reject with a comparison error.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// SelectSQL compiles a full query selecting the bodies of table's records
// that satisfy p, in insertion order.
func (c *SQLCompiler) SelectSQL(table string, p predicate.Predicate) (string, []any, error) {
	where, params, err := c.Compile(p)
	if err != nil {
		return "", nil, err
	}

	sql := "SELECT body FROM records WHERE tbl = ? AND " + where + " ORDER BY seq ASC"
	return sql, append([]any{table}, params...), nil
}

// Compile converts p to a SQL boolean expression and its parameters.
// The expression never evaluates to NULL.
func (c *SQLCompiler) Compile(p predicate.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "", nil, fmt.Errorf("cannot compile nil predicate")
	case predicate.Equals:
		return c.compileEquals(pred.Attr, pred.Value)
	case predicate.NotEquals:
		sql, params, err := c.compileEquals(pred.Attr, pred.Value)
		if err != nil {
			return "", nil, err
		}
		return "NOT " + sql, params, nil
	case predicate.Greater:
		return c.compileOrder(pred.Attr, ">", pred.Value)
	case predicate.Less:
		return c.compileOrder(pred.Attr, "<", pred.Value)
	case predicate.Range:
		return c.compileRange(pred)
	case predicate.AllOf:
		return c.compileJunction(pred.Predicates, " AND ", "1")
	case predicate.Group:
		return c.compileJunction(pred, " AND ", "1")
	case predicate.AnyOf:
		return c.compileJunction(pred.Predicates, " OR ", "0")
	case predicate.Negation:
		sql, params, err := c.Compile(pred.Predicate)
		if err != nil {
			return "", nil, err
		}
		return "NOT (" + sql + ")", params, nil
	case predicate.Func:
		return "", nil, fmt.Errorf("func predicates cannot be compiled to SQL")
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileEquals renders attr = v with a guard on the JSON type.
func (c *SQLCompiler) compileEquals(attr string, v ir.IRValue) (string, []any, error) {
	path, err := jsonPath(attr)
	if err != nil {
		return "", nil, err
	}

	switch val := v.(type) {
	case ir.IRAbsent:
		return "(json_type(body, ?) IS NULL)", []any{path}, nil
	case ir.IRBool:
		if val {
			return "(json_type(body, ?) IS 'true')", []any{path}, nil
		}
		return "(json_type(body, ?) IS 'false')", []any{path}, nil
	case ir.IRString, ir.IRInt, ir.IRFloat:
		guard, param, err := typedGuard(v)
		if err != nil {
			return "", nil, err
		}
		return "(" + guard + " AND json_extract(body, ?) = ?)", []any{path, path, param}, nil
	default:
		return "", nil, fmt.Errorf("unsupported value for %q: %s", attr, ir.Format(v))
	}
}

// compileOrder renders attr op v. Only strings and numbers order.
func (c *SQLCompiler) compileOrder(attr, op string, v ir.IRValue) (string, []any, error) {
	path, err := jsonPath(attr)
	if err != nil {
		return "", nil, err
	}
	guard, param, err := typedGuard(v)
	if err != nil {
		return "", nil, fmt.Errorf("order %q: %w", attr, err)
	}
	return "(" + guard + " AND json_extract(body, ?) " + op + " ?)", []any{path, path, param}, nil
}

// compileRange renders lo <= attr <= hi. Both bounds must be of the same
// family, strings or numbers.
func (c *SQLCompiler) compileRange(r predicate.Range) (string, []any, error) {
	path, err := jsonPath(r.Attr)
	if err != nil {
		return "", nil, err
	}
	loGuard, lo, err := typedGuard(r.Lo)
	if err != nil {
		return "", nil, fmt.Errorf("between %q: %w", r.Attr, err)
	}
	hiGuard, hi, err := typedGuard(r.Hi)
	if err != nil {
		return "", nil, fmt.Errorf("between %q: %w", r.Attr, err)
	}
	if loGuard != hiGuard {
		return "", nil, fmt.Errorf("between %q: bounds %s and %s are of different kinds",
			r.Attr, ir.Format(r.Lo), ir.Format(r.Hi))
	}

	sql := "(" + loGuard + " AND json_extract(body, ?) >= ? AND json_extract(body, ?) <= ?)"
	return sql, []any{path, path, lo, path, hi}, nil
}

// compileJunction joins compiled members with sep. Empty renders as the
// identity element.
func (c *SQLCompiler) compileJunction(preds []predicate.Predicate, sep, empty string) (string, []any, error) {
	if len(preds) == 0 {
		return empty, nil, nil
	}

	var sqlParts []string
	var allParams []any

	for _, pred := range preds {
		sql, params, err := c.Compile(pred)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	return "(" + strings.Join(sqlParts, sep) + ")", allParams, nil
}

// typedGuard returns the json_type guard for v's family and v as a SQL
// parameter. The guard consumes one path parameter.
func typedGuard(v ir.IRValue) (string, any, error) {
	switch val := v.(type) {
	case ir.IRString:
		return "json_type(body, ?) IS 'text'", string(val), nil
	case ir.IRInt:
		return "COALESCE(json_type(body, ?), '') IN ('integer', 'real')", int64(val), nil
	case ir.IRFloat:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return "", nil, fmt.Errorf("float value %s is not finite", ir.Format(v))
		}
		return "COALESCE(json_type(body, ?), '') IN ('integer', 'real')", float64(val), nil
	default:
		return "", nil, fmt.Errorf("%s value %s cannot be ordered", ir.KindOf(v), ir.Format(v))
	}
}

// jsonPath returns the SQLite JSON path selecting attr.
func jsonPath(attr string) (string, error) {
	if attr == "" {
		return "", fmt.Errorf("empty attribute name")
	}
	if strings.ContainsRune(attr, '"') {
		return "", fmt.Errorf("attribute %q contains a double quote", attr)
	}
	return `$."` + attr + `"`, nil
}
