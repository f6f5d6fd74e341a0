package decode_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plutusdata/cbor/decode"
	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/limits"
	"github.com/plutusdata/cbor/value"
	"github.com/plutusdata/cbor/wire"
)

func hx(t *testing.T, s string) []byte {
	t.Helper()
	b, err := wire.HexToBytes(s)
	require.NoError(t, err)
	return b
}

func TestDecode_ConcreteScenarios(t *testing.T) {
	t.Run("unsigned one-byte-follow", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "1864"), nil)
		require.NoError(t, err)
		assert.Equal(t, value.KindUnsigned, res.Value.Kind)
		assert.Equal(t, uint64(100), res.Value.U)
	})

	t.Run("text string IETF", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "6449455446"), nil)
		require.NoError(t, err)
		assert.Equal(t, "IETF", res.Value.Text)
	})

	t.Run("array of three", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "83010203"), nil)
		require.NoError(t, err)
		require.Len(t, res.Value.Array, 3)
		assert.Equal(t, uint64(1), res.Value.Array[0].U)
		assert.Equal(t, uint64(3), res.Value.Array[2].U)
	})

	t.Run("Plutus Constr 0 empty array", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "d87980"), nil)
		require.NoError(t, err)
		assert.Equal(t, value.KindPlutusConstr, res.Value.Kind)
		assert.Equal(t, uint64(0), res.Value.ConstrIndex)
		assert.Empty(t, res.Value.Array)
	})

	t.Run("float -0", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "f98000"), nil)
		require.NoError(t, err)
		assert.Equal(t, value.KindFloat, res.Value.Kind)
		assert.True(t, res.Value.IsNegativeZero())
	})

	t.Run("canonical NaN", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "f97e00"), nil)
		require.NoError(t, err)
		assert.True(t, res.Value.Float != res.Value.Float) // NaN
	})

	t.Run("bignum 2^64 via tag 2", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "c249010000000000000000"), nil)
		require.NoError(t, err)
		assert.Equal(t, value.KindUnsigned, res.Value.Kind)
		require.NotNil(t, res.Value.Big)

		want := new(big.Int).Lsh(big.NewInt(1), 64)
		assert.Equal(t, 0, want.Cmp(res.Value.Big))
	})

	t.Run("indefinite map Fun/Amt", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "bf6346756ef563416d7421ff"), nil)
		require.NoError(t, err)
		require.Len(t, res.Value.Map, 2)
		assert.Equal(t, "Fun", res.Value.Map[0].Key.Text)
		assert.True(t, res.Value.Map[0].Val.Bool)
		assert.Equal(t, "Amt", res.Value.Map[1].Key.Text)
		assert.Equal(t, value.KindNegative, res.Value.Map[1].Val.Kind)
		assert.Equal(t, uint64(1), res.Value.Map[1].Val.U) // -1-1 = -2
	})
}

func TestDecode_DepthLimit(t *testing.T) {
	// [[[...]]] nested to a controlled depth via repeated single-element arrays.
	build := func(n int) []byte {
		out := []byte{0x00}
		for i := 0; i < n; i++ {
			out = append([]byte{0x81}, out...)
		}
		return out
	}

	opts, err := limits.New(limits.WithMaxDepth(3))
	require.NoError(t, err)

	_, err = decode.Decode(build(3), opts)
	require.NoError(t, err)

	_, err = decode.Decode(build(4), opts)
	require.Error(t, err)
	var de *errs.DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, de.Err, errs.ErrDepthExceeded)
}

func TestDecode_ArrayLengthLimit(t *testing.T) {
	opts, err := limits.New(limits.WithMaxArrayLength(2))
	require.NoError(t, err)

	_, err = decode.Decode(hx(t, "820102"), opts) // [1,2]
	require.NoError(t, err)

	_, err = decode.Decode(hx(t, "83010203"), opts) // [1,2,3]
	require.Error(t, err)
}

func TestDecode_MapSizeLimit(t *testing.T) {
	opts, err := limits.New(limits.WithMaxMapSize(1))
	require.NoError(t, err)

	_, err = decode.Decode(hx(t, "bf6346756ef563416d7421ff"), opts) // 2 pairs
	require.Error(t, err)
}

func TestDecode_BignumSizeLimit(t *testing.T) {
	opts, err := limits.New(limits.WithMaxBignumBytes(8))
	require.NoError(t, err)

	_, err = decode.Decode(hx(t, "c249010000000000000000"), opts) // 9-byte magnitude
	require.Error(t, err)

	_, err = decode.Decode(hx(t, "c248ffffffffffffffff"), opts) // 8-byte magnitude
	require.NoError(t, err)
}

func TestDecode_IndefiniteTextChunks(t *testing.T) {
	t.Run("two chunks", func(t *testing.T) {
		// (_ "strea", "ming")
		res, err := decode.Decode(hx(t, "7f657374726561646d696e67ff"), nil)
		require.NoError(t, err)
		assert.Equal(t, "streaming", res.Value.Text)
		assert.Equal(t, []string{"strea", "ming"}, res.Value.TextChunks)
	})

	t.Run("empty indefinite text", func(t *testing.T) {
		res, err := decode.Decode(hx(t, "7fff"), nil)
		require.NoError(t, err)
		assert.Equal(t, "", res.Value.Text)
	})
}

func TestDecode_IndefiniteByteStringFedToBignumTag(t *testing.T) {
	// tag 2 wrapping an indefinite byte string (_ h'01' h'02') concatenates
	// its chunks before decoding the magnitude, same as a definite one would.
	res, err := decode.Decode(hx(t, "c25f41014102ff"), nil)
	require.NoError(t, err)
	require.NotNil(t, res.Value.Big)
	assert.Equal(t, 0, big.NewInt(0x0102).Cmp(res.Value.Big))
}

func TestDecode_DuplicateKeys_IdenticalEncodedKeys(t *testing.T) {
	// {0: 1, 0: 2} -- both keys encode identically (0x00).
	_, err := decode.Decode(hx(t, "a200010002"), nil)
	require.Error(t, err)
	var de *errs.DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, de.Err, errs.ErrDuplicateKey)
}

func TestDecode_CanonicalKeyOrder(t *testing.T) {
	opts, err := limits.New(limits.WithCanonical(true))
	require.NoError(t, err)

	// {0: 1, 1: 2} is in canonical order.
	_, err = decode.Decode(hx(t, "a200010102"), opts)
	require.NoError(t, err)

	// {1: 2, 0: 1} is out of canonical order.
	_, err = decode.Decode(hx(t, "a201020001"), opts)
	require.Error(t, err)
}

func TestDecode_NonCanonicalInteger_RejectedInCanonicalMode(t *testing.T) {
	opts, err := limits.New(limits.WithCanonical(true))
	require.NoError(t, err)

	// 0x1800 encodes 0 with a one-byte-follow header; 0 should be encoded as 0x00.
	_, err = decode.Decode(hx(t, "1800"), opts)
	require.Error(t, err)

	_, err = decode.Decode(hx(t, "00"), opts)
	require.NoError(t, err)
}

func TestDecode_FloatCanonicalTransitions(t *testing.T) {
	opts, err := limits.New(limits.WithCanonical(true))
	require.NoError(t, err)

	t.Run("binary64 representable as binary16 rejected", func(t *testing.T) {
		// 1.0 encoded as a full binary64 (0xFB3FF0000000000000) is non-minimal.
		_, err := decode.Decode(hx(t, "fb3ff0000000000000"), opts)
		require.Error(t, err)
	})

	t.Run("binary16 1.0 accepted", func(t *testing.T) {
		_, err := decode.Decode(hx(t, "f93c00"), opts)
		require.NoError(t, err)
	})

	t.Run("non-canonical NaN rejected", func(t *testing.T) {
		_, err := decode.Decode(hx(t, "f97e01"), opts)
		require.Error(t, err)
	})
}

func TestDecode_PlutusGeneralTag(t *testing.T) {
	// tag 102 wrapping [0, []] -> Constr 0 with no fields, same semantics as 121.
	res, err := decode.Decode(hx(t, "d866820080"), nil)
	require.NoError(t, err)
	assert.Equal(t, value.KindPlutusConstr, res.Value.Kind)
	assert.Equal(t, uint64(0), res.Value.ConstrIndex)
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, format)
}

func TestDecode_UnknownTag_WarnsViaLogger(t *testing.T) {
	logger := &recordingLogger{}
	opts, err := limits.New(limits.WithLogger(logger))
	require.NoError(t, err)

	// tag 999 over an unsigned 0.
	res, err := decode.Decode(hx(t, "d903e700"), opts)
	require.NoError(t, err)
	assert.Equal(t, value.KindTagged, res.Value.Kind)
	assert.Len(t, logger.warnings, 1)
}

func TestDecode_UnknownTag_StrictRejects(t *testing.T) {
	opts, err := limits.New(limits.WithStrictTags(true))
	require.NoError(t, err)

	_, err = decode.Decode(hx(t, "d903e700"), opts)
	require.Error(t, err)
	var de *errs.DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, de.Err, errs.ErrUnknownTag)
}

func TestDecodeWithSink_AgreesWithDecode(t *testing.T) {
	cases := [][]byte{
		hx(t, "83010203"),
		hx(t, "bf6346756ef563416d7421ff"),
		hx(t, "d87980"),
	}

	for _, data := range cases {
		directRes, directErr := decode.Decode(data, nil)
		sinkRes, sinkErr := decode.DecodeWithSink(data, nil, noopRecorder{})
		assert.Equal(t, directErr == nil, sinkErr == nil)
		if directErr == nil {
			assert.Equal(t, directRes.BytesRead, sinkRes.BytesRead)
		}
	}
}

type noopRecorder struct{}

func (noopRecorder) Begin(string, int) int { return -1 }
func (noopRecorder) Finish(int, int, int, uint8, string, string) {}

func TestDecode_HugeDeclaredCount_ErrorsRatherThanPanics(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		// major 4, ai=27 (8-byte argument), declared count 2^63.
		_, err := decode.Decode(hx(t, "9b8000000000000000"), nil)
		require.Error(t, err)
		var de *errs.DecodeError
		require.ErrorAs(t, err, &de)
		assert.ErrorIs(t, de.Err, errs.ErrArrayTooLarge)
	})

	t.Run("map", func(t *testing.T) {
		// major 5, ai=27 (8-byte argument), declared size 2^63.
		_, err := decode.Decode(hx(t, "bb8000000000000000"), nil)
		require.Error(t, err)
		var de *errs.DecodeError
		require.ErrorAs(t, err, &de)
		assert.ErrorIs(t, de.Err, errs.ErrMapTooLarge)
	})
}

func TestDecode_Tag258Set(t *testing.T) {
	t.Run("true duplicate rejected", func(t *testing.T) {
		// tag 258 over ["a", "a"].
		_, err := decode.Decode(hx(t, "d901028261616161"), nil)
		require.Error(t, err)
		var de *errs.DecodeError
		require.ErrorAs(t, err, &de)
		assert.ErrorIs(t, de.Err, errs.ErrDuplicateKey)
	})

	t.Run("elements sharing a long repr prefix are not falsely duplicate", func(t *testing.T) {
		long1 := bytes.Repeat([]byte("a"), 200)
		long2 := append(bytes.Repeat([]byte("a"), 199), 'b')

		data := []byte{0xD9, 0x01, 0x02, 0x82} // tag 258, array of 2
		data = append(data, 0x78, 200)
		data = append(data, long1...)
		data = append(data, 0x78, 200)
		data = append(data, long2...)

		_, err := decode.Decode(data, nil)
		require.NoError(t, err)
	})
}

func TestDecode_PlutusConstrFields_ReclassifiedAsPlutusData(t *testing.T) {
	// tag 121 (Constr 0) over a single field: map {1: 2}.
	res, err := decode.Decode(hx(t, "d87981a10102"), nil)
	require.NoError(t, err)
	require.Equal(t, value.KindPlutusConstr, res.Value.Kind)
	require.Len(t, res.Value.Array, 1)

	field := res.Value.Array[0]
	assert.Equal(t, value.KindPlutusMap, field.Kind)
	require.Len(t, field.Map, 1)
	assert.Equal(t, value.KindPlutusInt, field.Map[0].Key.Kind)
	assert.Equal(t, value.KindPlutusInt, field.Map[0].Val.Kind)
}
