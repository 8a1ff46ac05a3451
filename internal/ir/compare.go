package ir

import (
	"math"
	"strings"
)

// Equal reports whether a and b are the same value.
//
// Values of different kinds are never equal, except IRInt and IRFloat which
// compare numerically. IRAbsent equals only IRAbsent. Equal never fails.
func Equal(a, b IRValue) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka.Numeric() && kb.Numeric() {
		if isNaN(a) || isNaN(b) {
			return false
		}
		return compareNumeric(a, b) == 0
	}
	if ka != kb {
		return false
	}
	switch av := a.(type) {
	case IRAbsent:
		return true
	case IRString:
		return av == b.(IRString)
	case IRBool:
		return av == b.(IRBool)
	default:
		return false
	}
}

// Compare orders a against b and returns -1, 0 or +1.
//
// Strings are ordered bytewise and numbers numerically (IRInt and IRFloat
// mix freely). Every other pairing, including any IRAbsent or IRBool
// operand, returns a comparison error.
func Compare(a, b IRValue) (int, error) {
	ka, kb := KindOf(a), KindOf(b)
	switch {
	case ka.Numeric() && kb.Numeric():
		if isNaN(a) || isNaN(b) {
			return 0, NewComparisonError("", "cannot order NaN")
		}
		return compareNumeric(a, b), nil
	case ka == KindString && kb == KindString:
		return strings.Compare(string(a.(IRString)), string(b.(IRString))), nil
	case ka == KindAbsent || kb == KindAbsent:
		return 0, NewComparisonError("", "cannot order an absent value")
	default:
		return 0, NewComparisonError("", "cannot order "+ka.String()+" against "+kb.String())
	}
}

// compareNumeric compares two non-NaN numeric values exactly. A mixed
// int/float pair never rounds the int through float64.
func compareNumeric(a, b IRValue) int {
	ai, aIsInt := a.(IRInt)
	bi, bIsInt := b.(IRInt)
	switch {
	case aIsInt && bIsInt:
		return cmp3(ai, bi)
	case aIsInt:
		return compareIntFloat(int64(ai), toFloat(b))
	case bIsInt:
		return -compareIntFloat(int64(bi), toFloat(a))
	default:
		return cmp3(toFloat(a), toFloat(b))
	}
}

// int64 bounds as float64; both are exact powers of two.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// compareIntFloat orders i against a non-NaN f without loss of precision.
func compareIntFloat(i int64, f float64) int {
	switch {
	case f < minInt64Float:
		return 1
	case f >= maxInt64Float:
		return -1
	}

	whole := math.Trunc(f)
	if c := cmp3(IRInt(i), IRInt(int64(whole))); c != 0 {
		return c
	}
	// i equals the integer part of f, so the fraction decides.
	switch {
	case f > whole:
		return -1
	case f < whole:
		return 1
	}
	return 0
}

func isNaN(v IRValue) bool {
	f, ok := v.(IRFloat)
	return ok && math.IsNaN(float64(f))
}

func toFloat(v IRValue) float64 {
	switch n := v.(type) {
	case IRInt:
		return float64(n)
	case IRFloat:
		return float64(n)
	}
	return 0
}

func cmp3[T IRInt | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
