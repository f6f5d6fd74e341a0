package wire

import (
	"testing"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeader(t *testing.T) {
	h := ExtractHeader(0x18) // major 0, ai 24
	assert.Equal(t, MajorUnsigned, h.Major)
	assert.Equal(t, uint8(24), h.AI)

	h = ExtractHeader(0xA1) // major 5 (map), ai 1
	assert.Equal(t, MajorMap, h.Major)
	assert.Equal(t, uint8(1), h.AI)
}

func TestReader_ReadHeaderAndArgument(t *testing.T) {
	// 0x18 0x64 -> integer 100
	r := NewReader([]byte{0x18, 0x64})

	h, err := ReadHeader(r)
	require.NoError(t, err)
	assert.Equal(t, MajorUnsigned, h.Major)

	v, err := ReadArgument(r, h.AI)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), v)
}

func TestReader_DirectArgument(t *testing.T) {
	r := NewReader([]byte{0x05}) // major 0, ai 5 (direct)
	h, err := ReadHeader(r)
	require.NoError(t, err)

	v, err := ReadArgument(r, h.AI)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)
}

func TestReader_UnexpectedEOF(t *testing.T) {
	r := NewReader([]byte{0x18}) // claims a follow-on byte that isn't there
	h, err := ReadHeader(r)
	require.NoError(t, err)

	_, err = ReadArgument(r, h.AI)
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestReader_ReservedAdditionalInfo(t *testing.T) {
	r := NewReader([]byte{0x1C}) // major 0, ai 28 (reserved)
	h, err := ReadHeader(r)
	require.NoError(t, err)

	_, err = ReadArgument(r, h.AI)
	assert.ErrorIs(t, err, errs.ErrReserved)
}

func TestReader_ReadBytes_BoundsChecked(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	_, err := r.ReadBytes(3)
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)

	b, err := r.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)
}

func TestMinimalAI(t *testing.T) {
	assert.Equal(t, uint8(5), MinimalAI(5))
	assert.Equal(t, uint8(AIOneByte), MinimalAI(100))
	assert.Equal(t, uint8(AITwoByte), MinimalAI(1000))
	assert.Equal(t, uint8(AIFourByte), MinimalAI(1<<20))
	assert.Equal(t, uint8(AIEightByte), MinimalAI(1<<40))
}

func TestWriter_WriteArgument_RoundTrip(t *testing.T) {
	cases := []uint64{0, 23, 24, 255, 256, 65535, 65536, 1 << 33}

	for _, v := range cases {
		bb := pool.NewByteBuffer(16)
		w := NewWriter(bb)
		w.WriteArgument(MajorUnsigned, v)

		r := NewReader(w.Bytes())
		h, err := ReadHeader(r)
		require.NoError(t, err)

		got, err := ReadArgument(r, h.AI)
		require.NoError(t, err)
		assert.Equal(t, v, got, "round-trip mismatch for %d", v)
	}
}

func TestBytesToHex(t *testing.T) {
	assert.Equal(t, "1864", BytesToHex([]byte{0x18, 0x64}))
	assert.Equal(t, "", BytesToHex(nil))
}

func TestHexToBytes(t *testing.T) {
	b, err := HexToBytes("1864")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x18, 0x64}, b)

	b, err = HexToBytes("6449455446")
	require.NoError(t, err)
	assert.Equal(t, []byte("IETF"), b)
}

func TestHexToBytes_OddLength(t *testing.T) {
	_, err := HexToBytes("186")
	assert.ErrorIs(t, err, errs.ErrInvalidHex)
}

func TestHexToBytes_InvalidCharacter(t *testing.T) {
	_, err := HexToBytes("18zz")
	assert.ErrorIs(t, err, errs.ErrInvalidHex)
}

func TestHexRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x42, 0x13}
	assert.Equal(t, data, mustHex(t, BytesToHex(data)))
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := HexToBytes(s)
	require.NoError(t, err)
	return b
}
