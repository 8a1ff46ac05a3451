// Package ir provides the value and record types shared by every other
// package in recsel.
//
// This package imports nothing internal; all other internal packages import
// ir. That keeps ir the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - IRValue is sealed: string, int64, finite float64, bool, and the
//     IRAbsent sentinel returned for missing attributes
//   - Records are immutable; constructors copy and validate their input
//   - Equality never fails; ordering fails with a COMPARISON error for
//     absent, bool, or mixed string/number operands
//   - Canonical JSON (sorted keys, NFC strings) backs digests and snapshots
package ir
