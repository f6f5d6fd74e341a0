// Package wire implements the lowest layer of the codec: fixed-width
// big-endian integer reads, the CBOR initial-byte header codec, and a
// strict hex/byte conversion.
//
// CBOR payload integers (RFC 8949 §3) are always big-endian, unlike the
// teacher's endian package, which plugs in either byte order via
// endian.EndianEngine. Reader narrows that idea to the one byte order this
// wire format ever uses; see DESIGN.md for why a pluggable engine has no
// home here.
package wire

import (
	"encoding/binary"

	"github.com/plutusdata/cbor/errs"
)

// Reader is a pure, bounds-checked cursor over an immutable input buffer.
// It never mutates data and never retains it beyond what callers already
// hold. Reads return only the data read; the bytes consumed so far are
// reported by Pos.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential reads starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// Data returns the full buffer the reader was constructed with.
func (r *Reader) Data() []byte {
	return r.data
}

// ReadByte consumes and returns a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errs.ErrUnexpectedEOF
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errs.ErrUnexpectedEOF
	}

	return r.data[r.pos], nil
}

// ReadBytes consumes and returns the next n bytes as a freshly copied slice,
// so the result stays valid independent of the reader's backing buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, errs.ErrUnexpectedEOF
	}

	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n

	return out, nil
}

// Uint8 reads one big-endian byte as a uint64 argument.
func (r *Reader) Uint8() (uint64, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	return uint64(b), nil
}

// Uint16 reads two big-endian bytes as a uint64 argument.
func (r *Reader) Uint16() (uint64, error) {
	if r.Len() < 2 {
		return 0, errs.ErrUnexpectedEOF
	}

	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2

	return uint64(v), nil
}

// Uint32 reads four big-endian bytes as a uint64 argument.
func (r *Reader) Uint32() (uint64, error) {
	if r.Len() < 4 {
		return 0, errs.ErrUnexpectedEOF
	}

	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4

	return uint64(v), nil
}

// Uint64 reads eight big-endian bytes.
func (r *Reader) Uint64() (uint64, error) {
	if r.Len() < 8 {
		return 0, errs.ErrUnexpectedEOF
	}

	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8

	return v, nil
}
