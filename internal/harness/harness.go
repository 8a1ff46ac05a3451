package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/recsel/internal/engine"
	"github.com/roach88/recsel/internal/ir"
	"github.com/roach88/recsel/internal/predicate"
	"github.com/roach88/recsel/internal/querysql"
	"github.com/roach88/recsel/internal/store"
	"github.com/roach88/recsel/internal/testutil"
)

// Harness is the test execution engine.
// It runs one scenario against a fresh store with a deterministic clock
// and a fixed store ID.
type Harness struct {
	store  *store.Store
	mirror *querysql.Mirror
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh store for isolation.
//
// Execution flow:
// 1. Create a fresh store with deterministic helpers
// 2. Execute inserts in order, checking expected rejections
// 3. Execute queries in order, checking records or expected errors
// 4. Cross-check flagged queries against a SQLite mirror
// 5. Return result with pass/fail, per-query outcomes, and errors
//
// The returned error is reserved for infrastructure failures; scenario
// failures are reported through Result.
func Run(scenario *Scenario) (*Result, error) {
	h := &Harness{
		store: store.New(
			store.WithIDGenerator(testutil.NewStaticIDGenerator("scenario-"+scenario.Name)),
			store.WithSequencer(testutil.NewDeterministicClock()),
			store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), // Suppress logs in tests
		),
	}
	defer h.close()

	ctx := context.Background()
	result := NewResult(scenario.Name)

	for i, step := range scenario.Inserts {
		h.executeInsert(i, step, result)
	}

	for _, step := range scenario.Queries {
		if err := h.executeQuery(ctx, step, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (h *Harness) close() {
	if h.mirror != nil {
		h.mirror.Close()
	}
}

func (h *Harness) executeInsert(i int, step InsertStep, result *Result) {
	label := fmt.Sprintf("insert %d into %q", i, step.Table)

	rec, err := ir.RecordFromGo(step.Record)
	if err == nil {
		err = h.store.InsertRecord(step.Table, rec)
	}

	checkError(label, err, step.ExpectError, result)
}

func (h *Harness) executeQuery(ctx context.Context, step QueryStep, result *Result) error {
	label := fmt.Sprintf("query %q", step.Name)
	qr := QueryResult{Name: step.Name, Table: step.Table}

	p, err := DecodePredicate(step.Where)
	var rs *engine.ResultSet
	if err == nil {
		qr.Predicate = predicate.String(p)
		rs, err = engine.Select(h.store, step.Table, p)
	}

	if err != nil {
		qr.Error = errorKind(err)
	} else {
		qr.Records = rs.Records()
		digest, derr := ir.ResultSetDigest(qr.Records)
		if derr != nil {
			return fmt.Errorf("%s: digest: %w", label, derr)
		}
		qr.Digest = digest
	}
	result.AddQuery(qr)

	if !checkError(label, err, step.ExpectError, result) {
		return nil
	}

	want, err := toRecords(step.Expect)
	if err != nil {
		result.AddError(fmt.Sprintf("%s: %v", label, err))
		return nil
	}
	assertRecords(label, want, qr.Records, result)

	if step.CrossCheck {
		return h.crossCheck(ctx, label, step.Table, p, qr.Records, result)
	}
	return nil
}

// crossCheck replays a query through the SQLite mirror. The mirror is
// opened and loaded on first use; queries never modify the store, so one
// load serves every later query.
func (h *Harness) crossCheck(ctx context.Context, label, table string, p predicate.Predicate, want []ir.Record, result *Result) error {
	if v := predicate.Validate(p); !v.IsPortable {
		result.AddError(fmt.Sprintf("%s: cross_check on non-portable predicate: %v", label, v.Warnings))
		return nil
	}

	if h.mirror == nil {
		m, err := querysql.OpenMirror(":memory:")
		if err != nil {
			return fmt.Errorf("failed to open mirror: %w", err)
		}
		h.mirror = m
		if err := m.LoadStore(ctx, h.store.Snapshot()); err != nil {
			return fmt.Errorf("failed to load mirror: %w", err)
		}
	}

	got, err := h.mirror.Select(ctx, table, p)
	if err != nil {
		result.AddError(fmt.Sprintf("%s: cross_check: %v", label, err))
		return nil
	}
	assertRecords(label+" cross_check", want, got, result)
	return nil
}
