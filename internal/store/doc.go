// Package store provides the in-memory, append-only record store.
//
// A Store maps table names to ordered sequences of ir.Record. The only
// mutation is appending; there is no update, delete, or persistence.
//
// # Concurrency
//
// A sync.RWMutex guards the table map. Writers hold it just long enough to
// append. Readers hold the read lock just long enough to capture each
// table's slice header clipped to its current length; copying and any
// evaluation happen after the lock is released. Because elements below a
// captured length are never rewritten, a captured header is a consistent
// snapshot and later appends are invisible to it.
//
// # Ordering
//
// Rows are stamped with a store-wide logical sequence number (Clock). Table
// order equals append order equals seq order. Wall-clock time is never
// recorded.
//
// # Logging
//
// Each store logs through its own *slog.Logger tagged with store_id.
// Appends log at Debug, rejected inserts at Warn.
package store
