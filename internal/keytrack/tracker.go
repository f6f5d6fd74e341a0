// Package keytrack adapts the teacher's hash-then-verify collision tracker
// to CBOR map key identity: keys are compared by their raw encoded byte
// sequence (RFC 8949 never stringifies a key for identity), and candidate
// duplicates are resolved by exact byte comparison on hash match.
package keytrack

import (
	"bytes"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/internal/hash"
)

// Tracker detects duplicate CBOR map keys during a single map's decode or
// encode, keyed by the xxHash64 digest of each key's raw encoded bytes with
// an exact byte comparison to resolve hash collisions.
//
// Not safe for concurrent use; one Tracker is scoped to one map's pair list.
type Tracker struct {
	seen map[uint64][][]byte
	n    int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[uint64][][]byte)}
}

// Track records the raw encoded bytes of a map key and reports
// errs.ErrDuplicateKey if an identical key byte sequence was already
// recorded.
func (t *Tracker) Track(keyBytes []byte) error {
	h := hash.Bytes(keyBytes)

	for _, existing := range t.seen[h] {
		if bytes.Equal(existing, keyBytes) {
			return errs.ErrDuplicateKey
		}
	}

	t.seen[h] = append(t.seen[h], keyBytes)
	t.n++

	return nil
}

// Count returns the number of distinct keys tracked so far.
func (t *Tracker) Count() int {
	return t.n
}

// Reset clears all tracked keys, preserving the underlying map for reuse.
func (t *Tracker) Reset() {
	for k := range t.seen {
		delete(t.seen, k)
	}
	t.n = 0
}

// CompareCanonical orders two CBOR-encoded key byte sequences under RFC 8949
// §4.2.1 deterministic map-key order: shorter encoding first; equal-length
// keys compared byte-wise ascending. It returns a negative number if a < b,
// zero if equal, and a positive number if a > b.
func CompareCanonical(a, b []byte) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}

	return bytes.Compare(a, b)
}
