package ir

// Version constants for the record encoding and the tooling.
const (
	// FormatVersion is the canonical record encoding version. Digest
	// domains and golden snapshots carry it.
	FormatVersion = "1"

	// Version is the recsel release version.
	Version = "0.1.0"
)
