package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDigest_Stable(t *testing.T) {
	a := MustRecord(P("title", IRString("Home")), P("rating", IRInt(9)))
	b := MustRecord(P("rating", IRInt(9)), P("title", IRString("Home")))

	da, err := RecordDigest(a)
	require.NoError(t, err)
	db, err := RecordDigest(b)
	require.NoError(t, err)

	assert.Equal(t, da, db)
	assert.Len(t, da, 64)
}

func TestRecordDigest_DiffersOnValue(t *testing.T) {
	a := MustRecord(P("rating", IRInt(8)))
	b := MustRecord(P("rating", IRInt(9)))

	da, err := RecordDigest(a)
	require.NoError(t, err)
	db, err := RecordDigest(b)
	require.NoError(t, err)

	assert.NotEqual(t, da, db)
}

func TestRecordDigest_DomainSeparation(t *testing.T) {
	rec := MustRecord(P("rating", IRInt(8)))

	recordDigest, err := RecordDigest(rec)
	require.NoError(t, err)
	setDigest, err := ResultSetDigest([]Record{rec})
	require.NoError(t, err)

	assert.NotEqual(t, recordDigest, setDigest)
}

func TestResultSetDigest_OrderMatters(t *testing.T) {
	fly := MustRecord(P("title", IRString("Fly")))
	home := MustRecord(P("title", IRString("Home")))

	d1, err := ResultSetDigest([]Record{fly, home})
	require.NoError(t, err)
	d2, err := ResultSetDigest([]Record{home, fly})
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
}

func TestRecordDigest_ZeroRecord(t *testing.T) {
	_, err := RecordDigest(Record{})
	assert.Error(t, err)
}
