package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed digests.
// The version suffix follows FormatVersion.
const (
	DomainRecord    = "recsel/record/v" + FormatVersion
	DomainResultSet = "recsel/resultset/v" + FormatVersion
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordDigest returns a stable content digest of r.
// Records that are Equal and hold the same value kinds share a digest;
// IRInt(8) and IRFloat(8) also share one because both render as 8.
func RecordDigest(r Record) (string, error) {
	canonical, err := MarshalCanonical(r)
	if err != nil {
		return "", fmt.Errorf("RecordDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRecord, canonical), nil
}

// ResultSetDigest returns a digest of an ordered sequence of records.
// Order matters: the same records in a different order hash differently.
func ResultSetDigest(records []Record) (string, error) {
	canonical, err := MarshalCanonical(records)
	if err != nil {
		return "", fmt.Errorf("ResultSetDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainResultSet, canonical), nil
}
