package sourcemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plutusdata/cbor/decode"
	"github.com/plutusdata/cbor/format"
	"github.com/plutusdata/cbor/sourcemap"
	"github.com/plutusdata/cbor/wire"
)

func decodeHex(t *testing.T, hexStr string) []byte {
	t.Helper()
	b, err := wire.HexToBytes(hexStr)
	require.NoError(t, err)
	return b
}

func TestBuilder_RecordsArrayAndChildren(t *testing.T) {
	data := decodeHex(t, "83010203") // [1, 2, 3]

	b := sourcemap.NewBuilder()
	res, err := decode.DecodeWithSink(data, nil, b)
	require.NoError(t, err)
	require.NotNil(t, res.Value)

	entries := b.Entries()
	require.Len(t, entries, 4) // root array + 3 elements

	root := entries[0]
	assert.Equal(t, "", root.Path)
	assert.Equal(t, "array", root.TypeLabel)
	assert.Equal(t, 0, root.Start)
	assert.Equal(t, 4, root.End)
	assert.Equal(t, []string{"[0]", "[1]", "[2]"}, root.Children)

	assert.Equal(t, "[0]", entries[1].Path)
	assert.Equal(t, "unsigned", entries[1].TypeLabel)
	assert.Equal(t, "1", entries[1].ValueRepr)
}

func TestBuilder_NestedMapPaths(t *testing.T) {
	data := decodeHex(t, "bf6346756ef563416d7421ff") // {"Fun": true, "Amt": -2}

	b := sourcemap.NewBuilder()
	_, err := decode.DecodeWithSink(data, nil, b)
	require.NoError(t, err)

	idx := sourcemap.ByPath(b.Entries())
	fun, ok := idx[".Fun"]
	require.True(t, ok)
	assert.Equal(t, "bool", fun.TypeLabel)
	assert.Equal(t, "true", fun.ValueRepr)

	amt, ok := idx[".Amt"]
	require.True(t, ok)
	assert.Equal(t, "negative", amt.TypeLabel)
}

func TestAtOffset_FindsInnermostEntry(t *testing.T) {
	data := decodeHex(t, "83010203")

	b := sourcemap.NewBuilder()
	_, err := decode.DecodeWithSink(data, nil, b)
	require.NoError(t, err)

	entries := b.Entries()
	e, ok := sourcemap.AtOffset(entries, 1)
	require.True(t, ok)
	assert.Equal(t, "[0]", e.Path)

	_, ok = sourcemap.AtOffset(entries, 100)
	assert.False(t, ok)
}

func TestExportLoad_RoundTrip(t *testing.T) {
	data := decodeHex(t, "83010203")

	b := sourcemap.NewBuilder()
	_, err := decode.DecodeWithSink(data, nil, b)
	require.NoError(t, err)

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		archive, err := sourcemap.Export(b.Entries(), ct)
		require.NoError(t, err, ct.String())

		loaded, err := sourcemap.Load(archive)
		require.NoError(t, err, ct.String())
		assert.Equal(t, b.Entries(), loaded, ct.String())
	}
}

func TestDecode_AndDecodeWithSink_AgreeOnSuccessAndFailure(t *testing.T) {
	cases := []string{
		"83010203",
		"bf6346756ef563416d7421ff",
		"d87980",
		"c249010000000000000000",
		"ff", // bare break: invalid at top level
	}

	for _, hexStr := range cases {
		data := decodeHex(t, hexStr)

		directRes, directErr := decode.Decode(data, nil)

		b := sourcemap.NewBuilder()
		sinkRes, sinkErr := decode.DecodeWithSink(data, nil, b)

		if directErr == nil {
			require.NoError(t, sinkErr, hexStr)
			assert.Equal(t, directRes.BytesRead, sinkRes.BytesRead, hexStr)
		} else {
			require.Error(t, sinkErr, hexStr)
		}
	}
}
