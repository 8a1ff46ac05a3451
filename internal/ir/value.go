package ir

import (
	"math"
	"strconv"
)

// IRValue is a sealed interface representing the scalar values a record
// attribute may hold. Only IRString, IRInt, IRFloat, IRBool and IRAbsent
// implement it.
type IRValue interface {
	irValue() // Sealed - only these types implement it
}

// IRAbsent is the result of looking up an attribute a record does not have.
// It is never stored in a record.
type IRAbsent struct{}

func (IRAbsent) irValue() {}

// IRString represents a string value.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value.
type IRInt int64

func (IRInt) irValue() {}

// IRFloat represents a finite floating point value.
// NaN and infinities are rejected when a record is built.
type IRFloat float64

func (IRFloat) irValue() {}

// IRBool represents a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// Kind classifies an IRValue for comparison and diagnostics.
type Kind int

const (
	KindInvalid Kind = iota
	KindAbsent
	KindString
	KindInt
	KindFloat
	KindBool
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindAbsent:  "absent",
	KindString:  "string",
	KindInt:     "int",
	KindFloat:   "float",
	KindBool:    "bool",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Numeric reports whether values of this kind are ordered numerically.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// KindOf returns the kind of v. A nil value is KindInvalid.
func KindOf(v IRValue) Kind {
	switch v.(type) {
	case IRAbsent:
		return KindAbsent
	case IRString:
		return KindString
	case IRInt:
		return KindInt
	case IRFloat:
		return KindFloat
	case IRBool:
		return KindBool
	default:
		return KindInvalid
	}
}

// IsAbsent reports whether v is the absent sentinel.
func IsAbsent(v IRValue) bool {
	_, ok := v.(IRAbsent)
	return ok
}

// Format renders v the way predicates and diagnostics print literals:
// strings are quoted, absent prints as ABSENT.
func Format(v IRValue) string {
	switch val := v.(type) {
	case IRAbsent:
		return "ABSENT"
	case IRString:
		return strconv.Quote(string(val))
	case IRInt:
		return strconv.FormatInt(int64(val), 10)
	case IRFloat:
		return formatFloat(float64(val))
	case IRBool:
		return strconv.FormatBool(bool(val))
	case nil:
		return "<nil>"
	default:
		return "<invalid>"
	}
}

// formatFloat uses the shortest representation that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// validValue checks that v can be stored in a record.
func validValue(v IRValue) *Error {
	switch val := v.(type) {
	case nil:
		return NewValidationError("value is nil")
	case IRAbsent:
		return NewValidationError("absent cannot be stored as a value")
	case IRFloat:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return NewValidationError("float value must be finite, got " + formatFloat(float64(val)))
		}
	case IRString, IRInt, IRBool:
	default:
		return NewValidationError("unsupported value type")
	}
	return nil
}

// FromGo converts a native Go scalar (as produced by JSON or YAML decoders)
// to an IRValue. Integral types become IRInt, float types become IRFloat.
func FromGo(v any) (IRValue, error) {
	switch val := v.(type) {
	case IRValue:
		if err := validValue(val); err != nil {
			return nil, err
		}
		return val, nil
	case string:
		return IRString(val), nil
	case bool:
		return IRBool(val), nil
	case int:
		return IRInt(val), nil
	case int8:
		return IRInt(val), nil
	case int16:
		return IRInt(val), nil
	case int32:
		return IRInt(val), nil
	case int64:
		return IRInt(val), nil
	case uint8:
		return IRInt(val), nil
	case uint16:
		return IRInt(val), nil
	case uint32:
		return IRInt(val), nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return nil, NewValidationError("unsigned value overflows int64")
		}
		return IRInt(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, NewValidationError("unsigned value overflows int64")
		}
		return IRInt(val), nil
	case float32:
		return FromGo(float64(val))
	case float64:
		f := IRFloat(val)
		if err := validValue(f); err != nil {
			return nil, err
		}
		return f, nil
	case nil:
		return nil, NewValidationError("value is nil")
	default:
		return nil, NewValidationError("unsupported value type " + typeName(v))
	}
}
