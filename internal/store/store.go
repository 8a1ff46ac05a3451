package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/roach88/recsel/internal/ir"
)

// Row is a stored record together with the sequence number it was
// stamped with when appended.
type Row struct {
	Seq    int64
	Record ir.Record
}

// table is an append-only pair of parallel slices.
// Elements below len are never written again once appended.
type table struct {
	records []ir.Record
	seqs    []int64
}

// view is a capacity-clipped header over a table at one instant.
// Appends made after the view was taken land beyond its length and are
// invisible to it.
type view struct {
	records []ir.Record
	seqs    []int64
}

func (t *table) view() view {
	n := len(t.records)
	return view{records: t.records[:n:n], seqs: t.seqs[:n:n]}
}

func (v view) recordsCopy() []ir.Record {
	out := make([]ir.Record, len(v.records))
	copy(out, v.records)
	return out
}

func (v view) rowsCopy() []Row {
	out := make([]Row, len(v.records))
	for i, r := range v.records {
		out[i] = Row{Seq: v.seqs[i], Record: r}
	}
	return out
}

// Store maps table names to append-only tables of records.
//
// Thread-safety model:
//   - Insert, InsertRecord, InsertAll: safe from any goroutine; each call
//     holds the write lock only for the append itself
//   - Table, Rows, Snapshot: safe from any goroutine; the read lock is held
//     only while slice headers are captured, copying happens after release
//
// INVARIANTS:
//   - Table order is exactly append order
//   - A batch is appended entirely or not at all
//   - seq values are strictly increasing across all tables
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table

	seq    Sequencer
	ids    IDGenerator
	id     string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDGenerator sets the generator for the store ID.
// Default: UUIDv7Generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		s.ids = gen
	}
}

// WithSequencer sets the source of row sequence numbers.
// Default: a fresh Clock starting at 0.
func WithSequencer(seq Sequencer) Option {
	return func(s *Store) {
		s.seq = seq
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		tables: make(map[string]*table),
		seq:    NewClock(),
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.id = s.ids.Generate()
	s.logger = s.logger.With("store_id", s.id)
	return s
}

// ID returns the identifier attached to this store's log lines.
func (s *Store) ID() string {
	return s.id
}

// Insert validates fields as a record and appends it to table, creating the
// table if needed. Malformed input is a validation error and leaves the
// store unchanged.
func (s *Store) Insert(tableName string, fields map[string]ir.IRValue) error {
	rec, err := ir.NewRecord(fields)
	if err != nil {
		return s.reject(tableName, err)
	}
	return s.InsertAll(tableName, rec)
}

// InsertRecord appends an already-built record to table.
func (s *Store) InsertRecord(tableName string, rec ir.Record) error {
	return s.InsertAll(tableName, rec)
}

// InsertAll appends recs to table as one atomic batch: readers observe
// either none or all of them. Every record is checked before anything is
// appended. An empty batch is a no-op and does not create the table.
func (s *Store) InsertAll(tableName string, recs ...ir.Record) error {
	if tableName == "" {
		return s.reject(tableName, ir.NewValidationError("table name is empty"))
	}
	for i, rec := range recs {
		if !rec.Valid() {
			return s.reject(tableName, ir.NewValidationError(fmt.Sprintf("record %d is uninitialized", i)))
		}
	}
	if len(recs) == 0 {
		return nil
	}

	s.mu.Lock()
	t, ok := s.tables[tableName]
	if !ok {
		t = &table{}
		s.tables[tableName] = t
	}
	var first, last int64
	for i, rec := range recs {
		seq := s.seq.Next()
		if i == 0 {
			first = seq
		}
		last = seq
		t.records = append(t.records, rec)
		t.seqs = append(t.seqs, seq)
	}
	size := len(t.records)
	s.mu.Unlock()

	s.logger.Debug("records appended",
		"table", tableName,
		"count", len(recs),
		"first_seq", first,
		"last_seq", last,
		"table_len", size,
	)
	return nil
}

// reject tags err with the table name and logs it.
func (s *Store) reject(tableName string, err error) error {
	var e *ir.Error
	if errors.As(err, &e) {
		err = e.WithTable(tableName)
	}
	s.logger.Warn("insert rejected",
		"table", tableName,
		"error", err,
	)
	return err
}

func (s *Store) view(tableName string) view {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tableName]
	if !ok {
		return view{}
	}
	return t.view()
}

// Table returns the records of table in append order.
// An unknown table yields an empty, non-nil slice. The returned slice is
// the caller's own copy.
func (s *Store) Table(tableName string) []ir.Record {
	return s.view(tableName).recordsCopy()
}

// Rows returns the records of table with their sequence numbers.
func (s *Store) Rows(tableName string) []Row {
	return s.view(tableName).rowsCopy()
}

// Len returns the number of records in table.
func (s *Store) Len(tableName string) int {
	return len(s.view(tableName).records)
}

// Tables returns the names of all tables, sorted.
func (s *Store) Tables() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	s.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Snapshot captures a consistent point-in-time view of every table.
// Later inserts never show up in the snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	views := make(map[string]view, len(s.tables))
	for name, t := range s.tables {
		views[name] = t.view()
	}
	s.mu.RUnlock()

	return &Snapshot{views: views}
}

// Snapshot is an immutable view of a Store at one instant.
// It is safe for concurrent use.
type Snapshot struct {
	views map[string]view
}

// Table returns the records of table as of the snapshot.
func (sn *Snapshot) Table(tableName string) []ir.Record {
	return sn.views[tableName].recordsCopy()
}

// Rows returns the records of table with their sequence numbers.
func (sn *Snapshot) Rows(tableName string) []Row {
	return sn.views[tableName].rowsCopy()
}

// Len returns the number of records in table as of the snapshot.
func (sn *Snapshot) Len(tableName string) int {
	return len(sn.views[tableName].records)
}

// Tables returns the names of all tables in the snapshot, sorted.
func (sn *Snapshot) Tables() []string {
	names := make([]string, 0, len(sn.views))
	for name := range sn.views {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
