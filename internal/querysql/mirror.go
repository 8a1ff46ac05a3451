package querysql

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/recsel/internal/ir"
	"github.com/roach88/recsel/internal/predicate"
	"github.com/roach88/recsel/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Mirror is a SQLite copy of store rows, queried with compiled predicates.
//
// The mirror is a second, independent evaluator: loading a store's rows and
// selecting through SQL must return the same records as engine.Select for
// any portable predicate over well-typed data.
type Mirror struct {
	db       *sql.DB
	compiler *SQLCompiler
}

// OpenMirror opens a SQLite database at path. Use ":memory:" for a private
// in-memory mirror.
func OpenMirror(path string) (*Mirror, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every connection to ":memory:" is a distinct database, so pin to one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Mirror{db: db, compiler: NewSQLCompiler()}, nil
}

// Close closes the database connection.
func (m *Mirror) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Load copies rows into the mirror under table, in one transaction.
// Row sequence numbers become the primary key, so rows from one store can
// be loaded table by table and still order correctly.
func (m *Mirror) Load(ctx context.Context, table string, rows []store.Row) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // No-op after commit

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO records (seq, tbl, body) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		body, err := json.Marshal(row.Record)
		if err != nil {
			return fmt.Errorf("marshal record seq=%d: %w", row.Seq, err)
		}
		if _, err := stmt.ExecContext(ctx, row.Seq, table, string(body)); err != nil {
			return fmt.Errorf("insert record seq=%d: %w", row.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadStore copies every table of src into the mirror.
func (m *Mirror) LoadStore(ctx context.Context, src *store.Snapshot) error {
	for _, name := range src.Tables() {
		if err := m.Load(ctx, name, src.Rows(name)); err != nil {
			return fmt.Errorf("load table %q: %w", name, err)
		}
	}
	return nil
}

// Select returns the records of table satisfying p, in insertion order.
// p must be portable (see predicate.Validate).
func (m *Mirror) Select(ctx context.Context, table string, p predicate.Predicate) ([]ir.Record, error) {
	query, params, err := m.compiler.SelectSQL(table, p)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	records := []ir.Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec ir.Record
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}
