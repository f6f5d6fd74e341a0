package wire

import (
	"encoding/binary"

	"github.com/plutusdata/cbor/internal/pool"
)

// Writer appends CBOR-encoded bytes to a pooled output buffer. It mirrors
// Reader: a thin, allocation-conscious wrapper, not a general io.Writer.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter wraps buf for sequential appends.
func NewWriter(buf *pool.ByteBuffer) *Writer {
	return &Writer{buf: buf}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf.MustWrite([]byte{b})
}

// WriteBytes appends data verbatim.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.MustWrite(data)
}

// WriteHeader appends the initial byte for (major, ai).
func (w *Writer) WriteHeader(major MajorType, ai uint8) {
	w.WriteByte(byte(major)<<5 | ai)
}

// WriteArgument appends the minimal-length header and follow-on argument
// bytes encoding v under major.
func (w *Writer) WriteArgument(major MajorType, v uint64) {
	ai := MinimalAI(v)
	w.WriteHeader(major, ai)

	switch ai {
	case AIOneByte:
		w.WriteByte(byte(v))
	case AITwoByte:
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(v))
		w.WriteBytes(tmp[:])
	case AIFourByte:
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(v))
		w.WriteBytes(tmp[:])
	case AIEightByte:
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], v)
		w.WriteBytes(tmp[:])
	}
}

// WriteBreak appends the indefinite-length terminator byte.
func (w *Writer) WriteBreak() {
	w.WriteByte(Break)
}
