package store

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recsel/internal/ir"
)

func TestNew_Empty(t *testing.T) {
	s := createTestStore(t)

	assert.Equal(t, "test-store", s.ID())
	assert.Empty(t, s.Tables())
}

func TestNew_DefaultIDIsUUID(t *testing.T) {
	s := New(WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	assert.Len(t, s.ID(), 36)
}

func TestInsert_CreatesTableAndPreservesOrder(t *testing.T) {
	s := createTestStore(t)

	require.NoError(t, s.InsertRecord("songs", song("Roses", "Kathy Mattea", 7)))
	require.NoError(t, s.InsertRecord("songs", song("Fly", "Dixie Chicks", 8)))
	require.NoError(t, s.InsertRecord("songs", song("Home", "Dixie Chicks", 9)))
	require.NoError(t, s.InsertRecord("songs", song("Home", "Dixie Chicks", 9)))

	assert.Equal(t, []string{"songs"}, s.Tables())
	assert.Equal(t, 4, s.Len("songs"))
	assert.Equal(t, []string{"Roses", "Fly", "Home", "Home"}, titles(s.Table("songs")))
}

func TestInsert_FromMap(t *testing.T) {
	s := createTestStore(t)

	err := s.Insert("songs", map[string]ir.IRValue{
		"title":  ir.IRString("Fly"),
		"rating": ir.IRInt(8),
	})
	require.NoError(t, err)

	recs := s.Table("songs")
	require.Len(t, recs, 1)
	assert.Equal(t, ir.IRInt(8), recs[0].Get("rating"))
}

func TestInsert_ValidationLeavesStoreUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		table string
		rec   map[string]ir.IRValue
	}{
		{"nil record", "songs", nil},
		{"empty attribute", "songs", map[string]ir.IRValue{"": ir.IRInt(1)}},
		{"absent value", "songs", map[string]ir.IRValue{"title": ir.IRAbsent{}}},
		{"empty table name", "", map[string]ir.IRValue{"title": ir.IRString("Fly")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestStore(t)

			err := s.Insert(tt.table, tt.rec)
			require.Error(t, err)
			assert.True(t, ir.IsValidationError(err))
			assert.Empty(t, s.Tables())
		})
	}
}

func TestInsert_ErrorCarriesTable(t *testing.T) {
	s := createTestStore(t)

	err := s.Insert("songs", nil)

	var e *ir.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "songs", e.Table)
}

func TestInsertRecord_ZeroRecordRejected(t *testing.T) {
	s := createTestStore(t)

	err := s.InsertRecord("songs", ir.Record{})
	require.Error(t, err)
	assert.True(t, ir.IsValidationError(err))
	assert.Equal(t, 0, s.Len("songs"))
}

func TestInsertAll_AllOrNothing(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.InsertRecord("songs", song("Roses", "Kathy Mattea", 7)))

	err := s.InsertAll("songs", song("Fly", "Dixie Chicks", 8), ir.Record{})
	require.Error(t, err)
	assert.True(t, ir.IsValidationError(err))
	assert.Equal(t, []string{"Roses"}, titles(s.Table("songs")))

	require.NoError(t, s.InsertAll("songs", song("Fly", "Dixie Chicks", 8), song("Home", "Dixie Chicks", 9)))
	assert.Equal(t, []string{"Roses", "Fly", "Home"}, titles(s.Table("songs")))
}

func TestInsertAll_EmptyBatchIsNoop(t *testing.T) {
	s := createTestStore(t)

	require.NoError(t, s.InsertAll("songs"))
	assert.Empty(t, s.Tables())
}

func TestTable_UnknownIsEmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	recs := s.Table("nope")
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.NotNil(t, s.Rows("nope"))
	assert.Equal(t, 0, s.Len("nope"))
}

func TestTable_ReturnsCallerCopy(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.InsertRecord("songs", song("Roses", "Kathy Mattea", 7)))

	recs := s.Table("songs")
	recs[0] = song("Overwritten", "Nobody", 0)

	assert.Equal(t, []string{"Roses"}, titles(s.Table("songs")))
}

func TestRows_SequenceAcrossTables(t *testing.T) {
	s := createTestStore(t)

	require.NoError(t, s.InsertRecord("songs", song("Roses", "Kathy Mattea", 7)))
	require.NoError(t, s.InsertRecord("albums", ir.MustRecord(ir.P("name", ir.IRString("Wide Open Spaces")))))
	require.NoError(t, s.InsertRecord("songs", song("Fly", "Dixie Chicks", 8)))

	songs := s.Rows("songs")
	require.Len(t, songs, 2)
	assert.Equal(t, int64(1), songs[0].Seq)
	assert.Equal(t, int64(3), songs[1].Seq)

	albums := s.Rows("albums")
	require.Len(t, albums, 1)
	assert.Equal(t, int64(2), albums[0].Seq)

	assert.Equal(t, []string{"albums", "songs"}, s.Tables())
}

// stepSequencer hands out multiples of ten.
type stepSequencer struct{ n int64 }

func (s *stepSequencer) Next() int64 {
	s.n += 10
	return s.n
}

func TestWithSequencer(t *testing.T) {
	s := createTestStore(t, WithSequencer(&stepSequencer{n: 100}))

	require.NoError(t, s.InsertRecord("songs", song("Roses", "Kathy Mattea", 7)))
	require.NoError(t, s.InsertRecord("songs", song("Fly", "Dixie Chicks", 8)))

	rows := s.Rows("songs")
	assert.Equal(t, int64(110), rows[0].Seq)
	assert.Equal(t, int64(120), rows[1].Seq)
}

func TestSnapshot_IsolatedFromLaterInserts(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.InsertRecord("songs", song("Roses", "Kathy Mattea", 7)))

	snap := s.Snapshot()

	require.NoError(t, s.InsertRecord("songs", song("Fly", "Dixie Chicks", 8)))
	require.NoError(t, s.InsertRecord("albums", ir.MustRecord(ir.P("name", ir.IRString("Fly")))))

	assert.Equal(t, []string{"Roses"}, titles(snap.Table("songs")))
	assert.Equal(t, 1, snap.Len("songs"))
	assert.Equal(t, []string{"songs"}, snap.Tables())
	assert.Empty(t, snap.Table("albums"))
	assert.Len(t, snap.Rows("songs"), 1)

	assert.Equal(t, 2, s.Len("songs"))
}

func TestInsert_LogsWithStoreID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(WithLogger(logger), WithIDGenerator(NewFixedGenerator("store-log")))

	require.NoError(t, s.InsertRecord("songs", song("Roses", "Kathy Mattea", 7)))
	require.Error(t, s.Insert("songs", nil))

	out := buf.String()
	assert.Contains(t, out, "store_id=store-log")
	assert.Contains(t, out, "records appended")
	assert.Contains(t, out, "insert rejected")
}
