// Package hash provides the xxHash64 helper used to accelerate duplicate-key
// checks over raw encoded byte sequences.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of the given byte slice.
//
// Used by internal/keytrack to index map keys by their raw encoded byte
// sequence (the spec's "map key identity" rule) without repeatedly
// allocating a string copy of each key just to hash it.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
