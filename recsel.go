package recsel

import (
	"github.com/roach88/recsel/internal/engine"
	"github.com/roach88/recsel/internal/ir"
	"github.com/roach88/recsel/internal/predicate"
	"github.com/roach88/recsel/internal/store"
)

type (
	// Store holds named append-only tables of records.
	Store = store.Store

	// Option configures a Store.
	Option = store.Option

	// Snapshot is a point-in-time view of every table of a Store.
	Snapshot = store.Snapshot

	// Record is an immutable mapping from attribute name to Value.
	Record = ir.Record

	// Value is a record attribute value.
	Value = ir.IRValue

	// Predicate tests a record.
	Predicate = predicate.Predicate

	// Group is a nested sequence of predicates. Combinators flatten it.
	Group = predicate.Group

	// Source is anything Select can read tables from: a Store or a Snapshot.
	Source = engine.Source

	// ResultSet holds the records a selection matched.
	ResultSet = engine.ResultSet
)

// Store options.
var (
	WithLogger      = store.WithLogger
	WithIDGenerator = store.WithIDGenerator
	WithSequencer   = store.WithSequencer
)

// New creates an empty Store.
func New(opts ...Option) *Store {
	return store.New(opts...)
}

// Value constructors.

func String(s string) Value { return ir.IRString(s) }
func Int(n int64) Value     { return ir.IRInt(n) }
func Float(f float64) Value { return ir.IRFloat(f) }
func Bool(b bool) Value     { return ir.IRBool(b) }

// Absent is the value of a missing attribute. Eq(attr, Absent()) matches
// records without attr.
func Absent() Value { return ir.IRAbsent{} }

// NewRecord validates fields and builds a Record.
func NewRecord(fields map[string]Value) (Record, error) {
	return ir.NewRecord(fields)
}

// RecordFromGo builds a Record from plain Go values (strings, integers,
// floats and bools).
func RecordFromGo(m map[string]any) (Record, error) {
	return ir.RecordFromGo(m)
}

// Eq matches records whose attr equals v. A missing attribute is Absent.
func Eq(attr string, v Value) Predicate { return predicate.Eq(attr, v) }

// NotEq is the negation of Eq.
func NotEq(attr string, v Value) Predicate { return predicate.NotEq(attr, v) }

// Gt matches records whose attr orders after v.
func Gt(attr string, v Value) Predicate { return predicate.Gt(attr, v) }

// Lt matches records whose attr orders before v.
func Lt(attr string, v Value) Predicate { return predicate.Lt(attr, v) }

// Between matches records with lo <= attr <= hi.
func Between(attr string, lo, hi Value) Predicate { return predicate.Between(attr, lo, hi) }

// And is true when every predicate is true. And() is true.
func And(preds ...Predicate) Predicate { return predicate.And(preds...) }

// Or is true when any predicate is true. Or() is false.
func Or(preds ...Predicate) Predicate { return predicate.Or(preds...) }

// Not inverts p.
func Not(p Predicate) Predicate { return predicate.Not(p) }

// Where combines preds like And and rejects an empty list.
func Where(preds ...Predicate) (Predicate, error) { return predicate.Where(preds...) }

// MustWhere is like Where but panics on error.
func MustWhere(preds ...Predicate) Predicate { return predicate.MustWhere(preds...) }

// Match requires every attribute in fields to equal its value.
func Match(fields map[string]Value) Predicate { return predicate.Match(fields) }

// Func adapts a function to a Predicate.
func Func(f func(Record) (bool, error)) Predicate { return predicate.Func(f) }

// Select returns the records of table matching p, in insertion order.
func Select(src Source, table string, p Predicate) (*ResultSet, error) {
	return engine.Select(src, table, p)
}

// Count returns how many records of table match p.
func Count(src Source, table string, p Predicate) (int, error) {
	return engine.Count(src, table, p)
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool { return ir.IsValidationError(err) }

// IsComparisonError reports whether err is a comparison error.
func IsComparisonError(err error) bool { return ir.IsComparisonError(err) }
