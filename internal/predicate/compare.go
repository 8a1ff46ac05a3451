package predicate

import (
	"github.com/roach88/recsel/internal/ir"
)

// Equals is true when the record's attribute equals Value under ir.Equal.
// A missing attribute reads as IRAbsent, so Equals matches it only when
// Value is IRAbsent too. Equals never fails.
type Equals struct {
	Attr  string
	Value ir.IRValue
}

// Eq returns an Equals predicate.
func Eq(attr string, value ir.IRValue) Equals {
	return Equals{Attr: attr, Value: value}
}

// Eval implements Predicate.
func (p Equals) Eval(rec ir.Record) (bool, error) {
	return ir.Equal(rec.Get(p.Attr), p.Value), nil
}

func (p Equals) String() string {
	return p.Attr + " = " + ir.Format(p.Value)
}

// NotEquals is the negation of Equals with the same Attr and Value.
type NotEquals struct {
	Attr  string
	Value ir.IRValue
}

// NotEq returns a NotEquals predicate.
func NotEq(attr string, value ir.IRValue) NotEquals {
	return NotEquals{Attr: attr, Value: value}
}

// Eval implements Predicate.
func (p NotEquals) Eval(rec ir.Record) (bool, error) {
	return !ir.Equal(rec.Get(p.Attr), p.Value), nil
}

func (p NotEquals) String() string {
	return p.Attr + " != " + ir.Format(p.Value)
}

// Greater is true when the record's attribute orders strictly after Value.
// An absent attribute or an incomparable pair fails with a comparison
// error when evaluated; construction never fails.
type Greater struct {
	Attr  string
	Value ir.IRValue
}

// Gt returns a Greater predicate.
func Gt(attr string, value ir.IRValue) Greater {
	return Greater{Attr: attr, Value: value}
}

// Eval implements Predicate.
func (p Greater) Eval(rec ir.Record) (bool, error) {
	c, err := compareAttr(rec, p.Attr, p.Value)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (p Greater) String() string {
	return p.Attr + " > " + ir.Format(p.Value)
}

// Less is true when the record's attribute orders strictly before Value.
// Same failure conditions as Greater.
type Less struct {
	Attr  string
	Value ir.IRValue
}

// Lt returns a Less predicate.
func Lt(attr string, value ir.IRValue) Less {
	return Less{Attr: attr, Value: value}
}

// Eval implements Predicate.
func (p Less) Eval(rec ir.Record) (bool, error) {
	c, err := compareAttr(rec, p.Attr, p.Value)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

func (p Less) String() string {
	return p.Attr + " < " + ir.Format(p.Value)
}

// Range is true when Lo <= attribute <= Hi, inclusive at both ends.
//
// Both bounds are always compared, so an incomparable bound fails even
// when the other bound alone would decide the result. Lo > Hi matches
// nothing.
type Range struct {
	Attr   string
	Lo, Hi ir.IRValue
}

// Between returns a Range predicate.
func Between(attr string, lo, hi ir.IRValue) Range {
	return Range{Attr: attr, Lo: lo, Hi: hi}
}

// Eval implements Predicate.
func (p Range) Eval(rec ir.Record) (bool, error) {
	lo, err := compareAttr(rec, p.Attr, p.Lo)
	if err != nil {
		return false, err
	}
	hi, err := compareAttr(rec, p.Attr, p.Hi)
	if err != nil {
		return false, err
	}
	return lo >= 0 && hi <= 0, nil
}

func (p Range) String() string {
	return p.Attr + " BETWEEN " + ir.Format(p.Lo) + " AND " + ir.Format(p.Hi)
}

// compareAttr orders rec[attr] against v, tagging failures with attr.
func compareAttr(rec ir.Record, attr string, v ir.IRValue) (int, error) {
	c, err := ir.Compare(rec.Get(attr), v)
	if err != nil {
		if e, ok := err.(*ir.Error); ok {
			return 0, e.WithAttr(attr)
		}
		return 0, err
	}
	return c, nil
}
