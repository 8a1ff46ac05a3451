package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recsel/internal/ir"
	"github.com/roach88/recsel/internal/predicate"
)

func TestCountingPredicate_CountsCalls(t *testing.T) {
	rec := ir.MustRecord(ir.P("rating", ir.IRInt(8)))
	p := Count(predicate.Gt("rating", ir.IRInt(7)))

	for i := 0; i < 3; i++ {
		ok, err := p.Eval(rec)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	assert.Equal(t, 3, p.Calls())
	assert.Equal(t, "counted(rating > 7)", p.String())
}

func TestCountingPredicate_ShortCircuitObservable(t *testing.T) {
	rec := ir.MustRecord(ir.P("rating", ir.IRInt(8)))
	first := Const(true)
	second := Const(false)

	ok, err := predicate.Or(first, second).Eval(rec)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, first.Calls())
	assert.Equal(t, 0, second.Calls())
}

func TestFailing(t *testing.T) {
	boom := errors.New("boom")
	p := Failing(boom)

	_, err := p.Eval(ir.MustRecord(ir.P("a", ir.IRInt(1))))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, p.Calls())
}

func TestCount_NilMatchesEverything(t *testing.T) {
	ok, err := Count(nil).Eval(ir.MustRecord(ir.P("a", ir.IRInt(1))))

	require.NoError(t, err)
	assert.True(t, ok)
}
