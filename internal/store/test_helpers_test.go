package store

import (
	"io"
	"log/slog"
	"testing"

	"github.com/roach88/recsel/internal/ir"
)

// createTestStore creates a store with a fixed ID and silent logger.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	base := []Option{
		WithIDGenerator(NewFixedGenerator("test-store")),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New(append(base, opts...)...)
}

// song builds a record for the songs fixtures.
func song(title, artist string, rating int64) ir.Record {
	return ir.MustRecord(
		ir.P("title", ir.IRString(title)),
		ir.P("artist", ir.IRString(artist)),
		ir.P("rating", ir.IRInt(rating)),
	)
}

func titles(recs []ir.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = string(r.Get("title").(ir.IRString))
	}
	return out
}
