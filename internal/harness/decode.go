package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/recsel/internal/ir"
	"github.com/roach88/recsel/internal/predicate"
)

// Predicate operators accepted in a scenario's where tree.
const (
	OpEq      = "eq"
	OpNotEq   = "not_eq"
	OpGt      = "gt"
	OpLt      = "lt"
	OpBetween = "between"
	OpAnd     = "and"
	OpOr      = "or"
	OpWhere   = "where"
	OpNot     = "not"
	OpMatch   = "match"
)

// DecodePredicate builds a predicate from its YAML form.
//
// A predicate is a single-key mapping from operator to operands:
//
//	eq: [artist, "Dixie Chicks"]        # also not_eq, gt, lt
//	between: [rating, 7, 9]
//	or: [{eq: [title, Fly]}, [{gt: [rating, 8]}, {lt: [rating, 10]}]]
//	not: {eq: [ripped, true]}
//	match: {artist: "Dixie Chicks", rating: 9}
//
// Operands of and, or and where are predicates or nested lists of them;
// nested lists become predicate.Group values. A null operand value means
// the attribute is absent.
func DecodePredicate(node map[string]any) (predicate.Predicate, error) {
	if len(node) != 1 {
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return nil, fmt.Errorf("predicate must have exactly one operator, got %v", keys)
	}

	var op string
	var arg any
	for k, v := range node {
		op, arg = k, v
	}

	p, err := decodeOp(op, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func decodeOp(op string, arg any) (predicate.Predicate, error) {
	switch op {
	case OpEq, OpNotEq, OpGt, OpLt:
		attr, vals, err := decodeComparison(arg, 1)
		if err != nil {
			return nil, err
		}
		switch op {
		case OpEq:
			return predicate.Eq(attr, vals[0]), nil
		case OpNotEq:
			return predicate.NotEq(attr, vals[0]), nil
		case OpGt:
			return predicate.Gt(attr, vals[0]), nil
		default:
			return predicate.Lt(attr, vals[0]), nil
		}
	case OpBetween:
		attr, vals, err := decodeComparison(arg, 2)
		if err != nil {
			return nil, err
		}
		return predicate.Between(attr, vals[0], vals[1]), nil
	case OpAnd, OpOr, OpWhere:
		items, ok := arg.([]any)
		if !ok {
			return nil, fmt.Errorf("expected a list of predicates, got %T", arg)
		}
		preds, err := decodeItems(items)
		if err != nil {
			return nil, err
		}
		switch op {
		case OpAnd:
			return predicate.And(preds...), nil
		case OpOr:
			return predicate.Or(preds...), nil
		default:
			return predicate.Where(preds...)
		}
	case OpNot:
		inner, ok := arg.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected a predicate, got %T", arg)
		}
		p, err := DecodePredicate(inner)
		if err != nil {
			return nil, err
		}
		return predicate.Not(p), nil
	case OpMatch:
		fields, ok := arg.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected a mapping of attribute values, got %T", arg)
		}
		values := make(map[string]ir.IRValue, len(fields))
		for attr, raw := range fields {
			v, err := decodeValue(raw)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", attr, err)
			}
			values[attr] = v
		}
		return predicate.Match(values), nil
	default:
		return nil, fmt.Errorf("unknown operator")
	}
}

// decodeComparison decodes [attr, v1, ..., vn].
func decodeComparison(arg any, n int) (string, []ir.IRValue, error) {
	list, ok := arg.([]any)
	if !ok || len(list) != n+1 {
		return "", nil, fmt.Errorf("expected [attribute, %d value(s)], got %v", n, arg)
	}
	attr, ok := list[0].(string)
	if !ok {
		return "", nil, fmt.Errorf("attribute name must be a string, got %T", list[0])
	}

	vals := make([]ir.IRValue, n)
	for i, raw := range list[1:] {
		v, err := decodeValue(raw)
		if err != nil {
			return "", nil, err
		}
		vals[i] = v
	}
	return attr, vals, nil
}

// decodeItems decodes combinator operands. Nested lists become Groups.
func decodeItems(items []any) ([]predicate.Predicate, error) {
	preds := make([]predicate.Predicate, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case []any:
			inner, err := decodeItems(v)
			if err != nil {
				return nil, fmt.Errorf("[%d]%w", i, err)
			}
			preds = append(preds, predicate.Group(inner))
		case map[string]any:
			p, err := DecodePredicate(v)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			preds = append(preds, p)
		default:
			return nil, fmt.Errorf("[%d]: expected a predicate or a list, got %T", i, item)
		}
	}
	return preds, nil
}

// decodeValue converts a YAML scalar to an operand value. Null is absent.
func decodeValue(raw any) (ir.IRValue, error) {
	if raw == nil {
		return ir.IRAbsent{}, nil
	}
	return ir.FromGo(raw)
}
