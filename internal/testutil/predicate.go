package testutil

import (
	"sync/atomic"

	"github.com/roach88/recsel/internal/ir"
	"github.com/roach88/recsel/internal/predicate"
)

// CountingPredicate wraps a predicate and counts how often it is evaluated.
// Use it to observe short-circuiting and single-pass evaluation.
//
// Thread-safety: Eval and Calls are safe for concurrent use.
type CountingPredicate struct {
	inner predicate.Predicate
	calls atomic.Int64
}

// Count wraps p. A nil p evaluates to true on every record.
func Count(p predicate.Predicate) *CountingPredicate {
	return &CountingPredicate{inner: p}
}

// Const returns a counting predicate with a fixed result.
func Const(result bool) *CountingPredicate {
	return Count(predicate.Func(func(ir.Record) (bool, error) {
		return result, nil
	}))
}

// Failing returns a counting predicate that always fails with err.
func Failing(err error) *CountingPredicate {
	return Count(predicate.Func(func(ir.Record) (bool, error) {
		return false, err
	}))
}

// Eval implements predicate.Predicate.
func (c *CountingPredicate) Eval(rec ir.Record) (bool, error) {
	c.calls.Add(1)
	if c.inner == nil {
		return true, nil
	}
	return c.inner.Eval(rec)
}

// Calls returns the number of Eval calls so far.
func (c *CountingPredicate) Calls() int {
	return int(c.calls.Load())
}

func (c *CountingPredicate) String() string {
	return "counted(" + predicate.String(c.inner) + ")"
}
