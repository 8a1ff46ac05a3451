package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recsel/internal/ir"
)

var (
	roses = ir.MustRecord(
		ir.P("title", ir.IRString("Roses")),
		ir.P("artist", ir.IRString("Kathy Mattea")),
		ir.P("rating", ir.IRInt(7)),
	)
	fly = ir.MustRecord(
		ir.P("title", ir.IRString("Fly")),
		ir.P("artist", ir.IRString("Dixie Chicks")),
		ir.P("rating", ir.IRInt(8)),
		ir.P("ripped", ir.IRBool(true)),
	)
	untitled = ir.MustRecord(
		ir.P("artist", ir.IRString("Unknown")),
	)
)

func mustEval(t *testing.T, p Predicate, rec ir.Record) bool {
	t.Helper()
	ok, err := p.Eval(rec)
	require.NoError(t, err)
	return ok
}

func TestEq(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
		rec  ir.Record
		want bool
	}{
		{"string match", Eq("artist", ir.IRString("Dixie Chicks")), fly, true},
		{"string mismatch", Eq("artist", ir.IRString("Dixie Chicks")), roses, false},
		{"int match", Eq("rating", ir.IRInt(8)), fly, true},
		{"int matches float", Eq("rating", ir.IRFloat(8)), fly, true},
		{"bool match", Eq("ripped", ir.IRBool(true)), fly, true},
		{"kind mismatch", Eq("rating", ir.IRString("8")), fly, false},
		{"missing attribute", Eq("title", ir.IRString("Roses")), untitled, false},
		{"absent matches missing", Eq("title", ir.IRAbsent{}), untitled, true},
		{"absent does not match present", Eq("title", ir.IRAbsent{}), roses, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustEval(t, tt.p, tt.rec))
		})
	}
}

func TestNotEq(t *testing.T) {
	assert.True(t, mustEval(t, NotEq("artist", ir.IRString("Dixie Chicks")), roses))
	assert.False(t, mustEval(t, NotEq("artist", ir.IRString("Dixie Chicks")), fly))

	// A missing attribute is never equal to a present value
	assert.True(t, mustEval(t, NotEq("title", ir.IRString("Roses")), untitled))
}

func TestGtLt(t *testing.T) {
	assert.True(t, mustEval(t, Gt("rating", ir.IRInt(7)), fly))
	assert.False(t, mustEval(t, Gt("rating", ir.IRInt(7)), roses), "strict")
	assert.True(t, mustEval(t, Gt("rating", ir.IRFloat(7.5)), fly))
	assert.True(t, mustEval(t, Gt("title", ir.IRString("Fly")), roses))

	assert.True(t, mustEval(t, Lt("rating", ir.IRInt(8)), roses))
	assert.False(t, mustEval(t, Lt("rating", ir.IRInt(8)), fly), "strict")
}

func TestGt_AbsentAttributeFails(t *testing.T) {
	_, err := Gt("title", ir.IRString("A")).Eval(untitled)

	require.Error(t, err)
	assert.True(t, ir.IsComparisonError(err))

	var e *ir.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "title", e.Attr)
}

func TestGt_IncomparableKindsFail(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
	}{
		{"string against int", Gt("artist", ir.IRInt(3))},
		{"int against string", Lt("rating", ir.IRString("9"))},
		{"bool attribute", Gt("ripped", ir.IRBool(false))},
		{"absent bound", Gt("rating", ir.IRAbsent{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Eval(fly)
			require.Error(t, err)
			assert.True(t, ir.IsComparisonError(err))
		})
	}
}

func TestBetween_Inclusive(t *testing.T) {
	tests := []struct {
		name   string
		rating int64
		want   bool
	}{
		{"below", 6, false},
		{"low bound", 7, true},
		{"inside", 8, true},
		{"high bound", 9, true},
		{"above", 10, false},
	}

	p := Between("rating", ir.IRInt(7), ir.IRInt(9))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ir.MustRecord(ir.P("rating", ir.IRInt(tt.rating)))
			assert.Equal(t, tt.want, mustEval(t, p, rec))
		})
	}
}

func TestBetween_InvertedBoundsMatchNothing(t *testing.T) {
	p := Between("rating", ir.IRInt(9), ir.IRInt(7))

	assert.False(t, mustEval(t, p, roses))
	assert.False(t, mustEval(t, p, fly))
}

func TestBetween_BothBoundsCompared(t *testing.T) {
	// rating 7 is below the low bound, but the string high bound still fails
	_, err := Between("rating", ir.IRInt(8), ir.IRString("z")).Eval(roses)

	require.Error(t, err)
	assert.True(t, ir.IsComparisonError(err))
}

func TestBetween_Strings(t *testing.T) {
	p := Between("title", ir.IRString("A"), ir.IRString("M"))

	assert.True(t, mustEval(t, p, fly))
	assert.False(t, mustEval(t, p, roses))
}

func TestFunc(t *testing.T) {
	hasRipped := Func(func(r ir.Record) (bool, error) {
		return r.Has("ripped"), nil
	})

	assert.True(t, mustEval(t, hasRipped, fly))
	assert.False(t, mustEval(t, hasRipped, roses))
	assert.Equal(t, "<func>", String(hasRipped))
}

func TestFunc_NilIsValidationError(t *testing.T) {
	var missing Func

	ok, err := missing.Eval(roses)
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, ir.IsValidationError(err))

	_, err = And(Eq("title", ir.IRString("Roses")), missing).Eval(roses)
	assert.True(t, ir.IsValidationError(err), "nil func nested in a combinator")
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
		want string
	}{
		{"eq", Eq("artist", ir.IRString("Dixie Chicks")), `artist = "Dixie Chicks"`},
		{"not eq", NotEq("rating", ir.IRInt(8)), `rating != 8`},
		{"gt", Gt("rating", ir.IRFloat(6.5)), `rating > 6.5`},
		{"lt", Lt("ripped", ir.IRBool(true)), `ripped < true`},
		{"between", Between("rating", ir.IRInt(7), ir.IRInt(9)), `rating BETWEEN 7 AND 9`},
		{"absent", Eq("title", ir.IRAbsent{}), `title = ABSENT`},
		{
			"and",
			And(Eq("artist", ir.IRString("Dixie Chicks")), Gt("rating", ir.IRInt(6))),
			`(artist = "Dixie Chicks" AND rating > 6)`,
		},
		{
			"or of and",
			Or(Eq("title", ir.IRString("Fly")), And(Gt("rating", ir.IRInt(7)), Lt("rating", ir.IRInt(10)))),
			`(title = "Fly" OR (rating > 7 AND rating < 10))`,
		},
		{"single and", And(Eq("rating", ir.IRInt(8))), `rating = 8`},
		{"empty and", And(), `TRUE`},
		{"empty or", Or(), `FALSE`},
		{"not", Not(Eq("rating", ir.IRInt(8))), `NOT (rating = 8)`},
		{"not of and", Not(And(Eq("a", ir.IRInt(1)), Eq("b", ir.IRInt(2)))), `NOT (a = 1 AND b = 2)`},
		{"group", Group{Eq("a", ir.IRInt(1)), Eq("b", ir.IRInt(2))}, `[a = 1, b = 2]`},
		{"nil", nil, `<nil>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.p))
		})
	}
}
