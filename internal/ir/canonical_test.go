package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", IRString("hello"), `"hello"`},
		{"empty string", IRString(""), `""`},
		{"int", IRInt(42), "42"},
		{"negative int", IRInt(-100), "-100"},
		{"max int64", IRInt(9223372036854775807), "9223372036854775807"},
		{"float", IRFloat(7.5), "7.5"},
		{"integral float", IRFloat(8), "8"},
		{"bool true", IRBool(true), "true"},
		{"bool false", IRBool(false), "false"},
		{"go string", "x", `"x"`},
		{"go int", 3, "3"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"string slice", []string{"b", "a"}, `["b","a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalRecord(t *testing.T) {
	rec := MustRecord(
		P("title", IRString("Fly")),
		P("artist", IRString("Dixie Chicks")),
		P("rating", IRInt(8)),
	)

	result, err := MarshalCanonical(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"artist":"Dixie Chicks","rating":8,"title":"Fly"}`, string(result))
}

func TestMarshalCanonicalNested(t *testing.T) {
	input := map[string]any{
		"z":       []Record{MustRecord(P("b", IRInt(1)), P("a", IRInt(2)))},
		"a":       int64(3),
		"records": []any{},
	}

	result, err := MarshalCanonical(input)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"records":[],"z":[{"a":2,"b":1}]}`, string(result))
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	result, err := MarshalCanonical(IRString("<a href='x'>&</a>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a href='x'>&</a>"`, string(result))
}

func TestMarshalCanonicalEscapes(t *testing.T) {
	result, err := MarshalCanonical(IRString("q\"b\\n\n\x01 "))
	require.NoError(t, err)
	assert.Equal(t, "\"q\\\"b\\\\n\\n\\u0001 \"", string(result))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed "é"
	decomposed, err := MarshalCanonical(IRString("e\u0301"))
	require.NoError(t, err)
	precomposed, err := MarshalCanonical(IRString("\u00e9"))
	require.NoError(t, err)

	assert.Equal(t, precomposed, decomposed)
}

func TestMarshalCanonicalRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"absent", IRAbsent{}},
		{"nan", math.NaN()},
		{"inf", IRFloat(math.Inf(1))},
		{"zero record", Record{}},
		{"unsupported", struct{}{}},
		{"nested absent", map[string]any{"a": IRAbsent{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MarshalCanonical(tt.input)
			assert.Error(t, err)
		})
	}
}
