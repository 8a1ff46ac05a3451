package engine

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/roach88/recsel/internal/ir"
	"github.com/roach88/recsel/internal/predicate"
)

// Source is anything that hands out a table's records in insertion order.
// *store.Store and *store.Snapshot both satisfy it.
//
// Table must return a slice the caller may keep; Select reads it exactly
// once per call.
type Source interface {
	Table(name string) []ir.Record
}

// ResultSet holds the records selected from one table, in insertion order.
//
// A ResultSet is fully materialized before Select returns, so iterating it
// never fails and never observes inserts made after the selection.
type ResultSet struct {
	table   string
	records []ir.Record
}

// Table returns the name of the table the records were selected from.
func (rs *ResultSet) Table() string {
	return rs.table
}

// Len returns the number of selected records.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// Records returns a copy of the selected records.
func (rs *ResultSet) Records() []ir.Record {
	return slices.Clone(rs.records)
}

// All iterates the selected records in insertion order.
//
//	for rec := range rs.All() {
//	    fmt.Println(rec.Get("title"))
//	}
func (rs *ResultSet) All() iter.Seq[ir.Record] {
	return func(yield func(ir.Record) bool) {
		for _, rec := range rs.records {
			if !yield(rec) {
				return
			}
		}
	}
}

// Select returns every record of table that satisfies p, in insertion order.
//
// Select reads the table once and evaluates p against each record in order.
// The selection is all-or-nothing: if p fails on any record, Select returns
// that error (wrapped with the table name and row index) and no records.
// Unknown tables select nothing. A nil predicate is a validation error;
// build "match everything" with predicate.And().
func Select(src Source, table string, p predicate.Predicate) (*ResultSet, error) {
	if p == nil {
		return nil, ir.NewValidationError("select requires a predicate").WithTable(table)
	}

	records := src.Table(table)
	matched := make([]ir.Record, 0, len(records))

	for i, rec := range records {
		ok, err := p.Eval(rec)
		if err != nil {
			slog.Warn("select failed",
				"table", table,
				"predicate", renderedPredicate{p},
				"row", i,
				"error", err,
			)
			return nil, fmt.Errorf("select %q: record %d: %w", table, i, err)
		}
		if ok {
			matched = append(matched, rec)
		}
	}

	slog.Debug("select complete",
		"table", table,
		"predicate", renderedPredicate{p},
		"scanned", len(records),
		"matched", len(matched),
	)

	return &ResultSet{table: table, records: matched}, nil
}

// renderedPredicate renders its predicate only when a handler formats the
// log record.
type renderedPredicate struct {
	p predicate.Predicate
}

func (r renderedPredicate) LogValue() slog.Value {
	return slog.StringValue(predicate.String(r.p))
}

// Count returns the number of records of table that satisfy p.
// It fails exactly when Select would.
func Count(src Source, table string, p predicate.Predicate) (int, error) {
	rs, err := Select(src, table, p)
	if err != nil {
		return 0, err
	}
	return rs.Len(), nil
}
