package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"unicode/utf16"
)

// Record is an immutable mapping from attribute name to IRValue.
//
// The zero Record is uninitialized and is rejected by the store; use
// NewRecord, RecordFromPairs or RecordFromGo to build one. Those constructors
// copy their input, so later changes to the caller's map never leak in.
type Record struct {
	fields map[string]IRValue
}

// Pair is an attribute/value pair for RecordFromPairs.
type Pair struct {
	Attr  string
	Value IRValue
}

// P is a shorthand for Pair.
// Example: RecordFromPairs(P("title", IRString("Fly")), P("rating", IRInt(8)))
func P(attr string, value IRValue) Pair {
	return Pair{Attr: attr, Value: value}
}

// NewRecord validates fields and returns a Record holding a private copy.
// A nil map, an empty attribute name, a nil or absent value, or a
// non-finite float is a validation error.
func NewRecord(fields map[string]IRValue) (Record, error) {
	if fields == nil {
		return Record{}, NewValidationError("record is nil")
	}
	cp := make(map[string]IRValue, len(fields))
	for k, v := range fields {
		if err := validAttr(k); err != nil {
			return Record{}, err
		}
		if err := validValue(v); err != nil {
			return Record{}, err.WithAttr(k)
		}
		cp[k] = v
	}
	return Record{fields: cp}, nil
}

// RecordFromPairs builds a Record from attribute/value pairs.
// A repeated attribute is a validation error.
func RecordFromPairs(pairs ...Pair) (Record, error) {
	fields := make(map[string]IRValue, len(pairs))
	for _, p := range pairs {
		if _, dup := fields[p.Attr]; dup {
			return Record{}, &Error{Code: ErrCodeValidation, Message: "duplicate attribute", Attr: p.Attr}
		}
		fields[p.Attr] = p.Value
	}
	return NewRecord(fields)
}

// RecordFromGo builds a Record from native Go values, as produced by the
// JSON and YAML decoders. See FromGo for the accepted types.
func RecordFromGo(m map[string]any) (Record, error) {
	if m == nil {
		return Record{}, NewValidationError("record is nil")
	}
	fields := make(map[string]IRValue, len(m))
	for k, raw := range m {
		v, err := FromGo(raw)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				return Record{}, e.WithAttr(k)
			}
			return Record{}, err
		}
		fields[k] = v
	}
	return NewRecord(fields)
}

// MustRecord is like RecordFromPairs but panics on error.
// Intended for tests and static fixtures.
func MustRecord(pairs ...Pair) Record {
	r, err := RecordFromPairs(pairs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Valid reports whether r was built by one of the constructors.
func (r Record) Valid() bool {
	return r.fields != nil
}

// Get returns the value of attr, or IRAbsent{} if r has no such attribute.
func (r Record) Get(attr string) IRValue {
	if v, ok := r.fields[attr]; ok {
		return v
	}
	return IRAbsent{}
}

// Has reports whether r has attr.
func (r Record) Has(attr string) bool {
	_, ok := r.fields[attr]
	return ok
}

// Len returns the number of attributes.
func (r Record) Len() int {
	return len(r.fields)
}

// Keys returns attribute names in RFC 8785 canonical order (UTF-16 code units).
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// Fields returns a copy of the record's attributes.
func (r Record) Fields() map[string]IRValue {
	cp := make(map[string]IRValue, len(r.fields))
	for k, v := range r.fields {
		cp[k] = v
	}
	return cp
}

// Equal reports whether r and o have the same attributes with equal values.
func (r Record) Equal(o Record) bool {
	if len(r.fields) != len(o.fields) {
		return false
	}
	for k, v := range r.fields {
		ov, ok := o.fields[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// String renders r as JSON for logs and test failure messages.
func (r Record) String() string {
	data, err := r.MarshalJSON()
	if err != nil {
		return "<invalid record>"
	}
	return string(data)
}

func validAttr(attr string) *Error {
	if attr == "" {
		return NewValidationError("attribute name is empty")
	}
	return nil
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering
// as required by RFC 8785 (Canonical JSON).
// Go's default string comparison uses UTF-8 which produces a different
// order for characters outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	// Shorter string comes first
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// MarshalJSON encodes r as a JSON object with sorted keys.
// This is NOT canonical marshaling; use MarshalCanonical for hashing.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalIRValue(r.fields[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object into r.
// Integral numbers become IRInt, other numbers IRFloat. Nested arrays,
// objects and null are rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return NewValidationError("record is null")
	}

	fields := make(map[string]IRValue, len(raw))
	for k, v := range raw {
		val, err := fromJSON(v)
		if err != nil {
			return fmt.Errorf("record key %q: %w", k, err)
		}
		fields[k] = val
	}

	rec, err := NewRecord(fields)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// MarshalIRValue marshals a stored IRValue to JSON bytes.
func MarshalIRValue(v IRValue) ([]byte, error) {
	switch val := v.(type) {
	case IRString:
		return json.Marshal(string(val))
	case IRInt:
		return json.Marshal(int64(val))
	case IRFloat:
		return json.Marshal(float64(val))
	case IRBool:
		return json.Marshal(bool(val))
	case IRAbsent:
		return nil, fmt.Errorf("absent has no JSON form")
	default:
		return nil, fmt.Errorf("unknown IRValue type: %T", v)
	}
}

// fromJSON converts a value decoded with UseNumber to an IRValue.
func fromJSON(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return nil, NewValidationError("null is not a value")
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return IRInt(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, NewValidationError("number out of range: " + val.String())
		}
		return IRFloat(f), nil
	case string, bool:
		return FromGo(val)
	default:
		return nil, NewValidationError("nested values are not supported: " + typeName(v))
	}
}
