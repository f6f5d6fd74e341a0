package encode

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/internal/ieee754"
	"github.com/plutusdata/cbor/internal/keytrack"
	"github.com/plutusdata/cbor/internal/pool"
	"github.com/plutusdata/cbor/value"
	"github.com/plutusdata/cbor/wire"
)

// Result is the outcome of an encode call: the raw bytes and their lowercase
// hex form, mirroring the decode side's dual byte/hex surface.
type Result struct {
	Bytes []byte
	Hex   string
}

// Encode serializes a single value under opts. A nil opts uses the package
// defaults (canonical encoding).
func Encode(v *value.Value, opts *Options) (Result, error) {
	if opts == nil {
		var err error
		opts, err = New()
		if err != nil {
			return Result{}, err
		}
	}

	buf := pool.GetValueBuffer()
	defer pool.PutValueBuffer(buf)

	w := wire.NewWriter(buf)
	e := &encoder{w: w, opts: opts}

	if err := e.encodeValue(v, ""); err != nil {
		return Result{}, errs.NewEncodeError(err, e.path)
	}

	out := append([]byte(nil), w.Bytes()...)

	return Result{Bytes: out, Hex: wire.BytesToHex(out)}, nil
}

// EncodeSequence concatenates the encoding of each value in values with no
// framing between them, per RFC 8742.
func EncodeSequence(values []*value.Value, opts *Options) (Result, error) {
	if opts == nil {
		var err error
		opts, err = New()
		if err != nil {
			return Result{}, err
		}
	}

	buf := pool.GetSequenceBuffer()
	defer pool.PutSequenceBuffer(buf)

	w := wire.NewWriter(buf)
	e := &encoder{w: w, opts: opts}

	for i, v := range values {
		e.path = value.RootPath().Index(i).String()
		if err := e.encodeValue(v, e.path); err != nil {
			return Result{}, errs.NewEncodeError(err, e.path)
		}
	}

	out := append([]byte(nil), w.Bytes()...)

	return Result{Bytes: out, Hex: wire.BytesToHex(out)}, nil
}

// encoder holds the mutable state threaded through one encode call; path
// records the value currently being encoded, for EncodeError context.
type encoder struct {
	w    *wire.Writer
	opts *Options
	path string
}

// encodeValue dispatches on v.Kind and appends its CBOR encoding to e.w.
func (e *encoder) encodeValue(v *value.Value, path string) error {
	e.path = path

	switch v.Kind {
	case value.KindUnsigned:
		return e.encodeUint(wire.MajorUnsigned, v, false)
	case value.KindNegative:
		return e.encodeUint(wire.MajorNegative, v, true)
	case value.KindBytes:
		return e.encodeBytes(v)
	case value.KindText:
		return e.encodeText(v)
	case value.KindArray:
		return e.encodeArray(v, path)
	case value.KindMap:
		return e.encodeMap(v, path)
	case value.KindTagged:
		e.w.WriteArgument(wire.MajorTag, v.Tag)
		return e.encodeValue(v.Inner, path)
	case value.KindSimple:
		return e.encodeSimple(v)
	case value.KindBool:
		if v.Bool {
			e.w.WriteHeader(wire.MajorSimple, 21)
		} else {
			e.w.WriteHeader(wire.MajorSimple, 20)
		}
		return nil
	case value.KindNull:
		e.w.WriteHeader(wire.MajorSimple, 22)
		return nil
	case value.KindUndefined:
		if !e.opts.AllowUndefined {
			return errs.ErrEncodingUnsupported
		}
		e.w.WriteHeader(wire.MajorSimple, 23)
		return nil
	case value.KindFloat:
		return e.encodeFloat(v)
	case value.KindPlutusConstr:
		return e.encodePlutusConstr(v, path)
	case value.KindPlutusMap:
		return e.encodeMap(value.NewMap(v.Map, v.Indefinite), path)
	case value.KindPlutusList:
		return e.encodeArray(value.NewArray(v.Array, v.Indefinite), path)
	case value.KindPlutusBytes:
		return e.encodeBytes(value.NewBytes(v.Bytes))
	case value.KindPlutusInt:
		if v.PlutusNeg {
			return e.encodeUint(wire.MajorNegative, v, true)
		}
		return e.encodeUint(wire.MajorUnsigned, v, false)
	default:
		return errs.ErrEncodingUnsupported
	}
}

// encodeUint handles both KindUnsigned and KindNegative/KindPlutusInt: when
// the magnitude exceeds uint64 it falls back to the tag-2/3 bignum form.
func (e *encoder) encodeUint(major wire.MajorType, v *value.Value, negative bool) error {
	if v.Big != nil && !v.Big.IsUint64() {
		tag := uint64(2)
		if negative {
			tag = 3
		}

		data := v.Big.Bytes()
		e.w.WriteArgument(wire.MajorTag, tag)
		e.w.WriteArgument(wire.MajorBytes, uint64(len(data)))
		e.w.WriteBytes(data)

		return nil
	}

	n := v.U
	if v.Big != nil {
		n = v.Big.Uint64()
	}

	e.w.WriteArgument(major, n)

	return nil
}

func (e *encoder) encodeBytes(v *value.Value) error {
	if !e.opts.Canonical && v.Chunks != nil {
		e.w.WriteHeader(wire.MajorBytes, wire.AIIndefinite)
		for _, c := range v.Chunks {
			e.w.WriteArgument(wire.MajorBytes, uint64(len(c)))
			e.w.WriteBytes(c)
		}
		e.w.WriteBreak()

		return nil
	}

	e.w.WriteArgument(wire.MajorBytes, uint64(len(v.Bytes)))
	e.w.WriteBytes(v.Bytes)

	return nil
}

func (e *encoder) encodeText(v *value.Value) error {
	if e.opts.StrictUTF8 && !utf8.ValidString(v.Text) {
		return errs.ErrInvalidUTF8
	}

	if !e.opts.Canonical && v.TextChunks != nil {
		e.w.WriteHeader(wire.MajorText, wire.AIIndefinite)
		for _, c := range v.TextChunks {
			e.w.WriteArgument(wire.MajorText, uint64(len(c)))
			e.w.WriteBytes([]byte(c))
		}
		e.w.WriteBreak()

		return nil
	}

	data := []byte(v.Text)
	e.w.WriteArgument(wire.MajorText, uint64(len(data)))
	e.w.WriteBytes(data)

	return nil
}

func (e *encoder) encodeArray(v *value.Value, path string) error {
	if !e.opts.Canonical && v.Indefinite {
		e.w.WriteHeader(wire.MajorArray, wire.AIIndefinite)
		for i, item := range v.Array {
			if err := e.encodeValue(item, value.PathOf(path).Index(i).String()); err != nil {
				return err
			}
		}
		e.w.WriteBreak()

		return nil
	}

	e.w.WriteArgument(wire.MajorArray, uint64(len(v.Array)))
	for i, item := range v.Array {
		if err := e.encodeValue(item, value.PathOf(path).Index(i).String()); err != nil {
			return err
		}
	}

	return nil
}

// encodedPair is a map entry paired with its own freshly encoded key bytes,
// which (not the decode-side Pair.KeyBytes cache) is the identity used for
// duplicate detection and canonical ordering at encode time.
type encodedPair struct {
	pair     value.Pair
	keyBytes []byte
	valPath  string
}

func (e *encoder) encodeMap(v *value.Value, path string) error {
	entries := make([]encodedPair, len(v.Map))
	tracker := keytrack.NewTracker()

	for i, pr := range v.Map {
		keyBuf := pool.GetValueBuffer()
		kw := wire.NewWriter(keyBuf)
		ke := &encoder{w: kw, opts: e.opts}

		keyPath := value.PathOf(path).DiagnosticKey("key").String()
		if pr.Key.Kind == value.KindText {
			keyPath = value.PathOf(path).TextKey(pr.Key.Text).String()
		}

		if err := ke.encodeValue(pr.Key, keyPath); err != nil {
			pool.PutValueBuffer(keyBuf)
			return err
		}

		keyBytes := append([]byte(nil), kw.Bytes()...)
		pool.PutValueBuffer(keyBuf)

		if err := tracker.Track(keyBytes); err != nil {
			return err
		}

		entries[i] = encodedPair{pair: pr, keyBytes: keyBytes, valPath: mapValuePathForEncode(path, pr.Key, i)}
	}

	if e.opts.Canonical {
		sort.SliceStable(entries, func(i, j int) bool {
			return keytrack.CompareCanonical(entries[i].keyBytes, entries[j].keyBytes) < 0
		})

		e.w.WriteArgument(wire.MajorMap, uint64(len(entries)))
		for _, en := range entries {
			e.w.WriteBytes(en.keyBytes)
			if err := e.encodeValue(en.pair.Val, en.valPath); err != nil {
				return err
			}
		}

		return nil
	}

	if v.Indefinite {
		e.w.WriteHeader(wire.MajorMap, wire.AIIndefinite)
		for _, en := range entries {
			e.w.WriteBytes(en.keyBytes)
			if err := e.encodeValue(en.pair.Val, en.valPath); err != nil {
				return err
			}
		}
		e.w.WriteBreak()

		return nil
	}

	e.w.WriteArgument(wire.MajorMap, uint64(len(entries)))
	for _, en := range entries {
		e.w.WriteBytes(en.keyBytes)
		if err := e.encodeValue(en.pair.Val, en.valPath); err != nil {
			return err
		}
	}

	return nil
}

func mapValuePathForEncode(path string, key *value.Value, index int) string {
	if key.Kind == value.KindText {
		return value.PathOf(path).TextKey(key.Text).String()
	}

	return value.PathOf(path).Index(index).String()
}

func (e *encoder) encodeSimple(v *value.Value) error {
	if v.Simple < wire.AIOneByte {
		e.w.WriteHeader(wire.MajorSimple, v.Simple)
		return nil
	}
	if v.Simple < 32 {
		return errs.ErrEncodingUnsupported
	}

	e.w.WriteHeader(wire.MajorSimple, wire.AIOneByte)
	e.w.WriteByte(v.Simple)

	return nil
}

// encodeFloat picks the shortest IEEE-754 width that round-trips f losslessly
// (when PreferShortestFloat) or emits it at its recorded source width.
func (e *encoder) encodeFloat(v *value.Value) error {
	f := v.Float
	if v.NegativeZero {
		f = math.Copysign(0, -1)
	}

	if math.IsNaN(f) {
		e.w.WriteHeader(wire.MajorSimple, 25)
		e.w.WriteBytes([]byte{0x7E, 0x00})

		return nil
	}

	if !e.opts.PreferShortestFloat {
		return e.encodeFloatAtWidth(f, v.FloatWidth)
	}

	if bits, ok := ieee754.Float64ToFloat16(f); ok {
		e.w.WriteHeader(wire.MajorSimple, 25)
		e.w.WriteBytes([]byte{byte(bits >> 8), byte(bits)})

		return nil
	}

	if f32, ok := ieee754.Float64ToFloat32(f); ok {
		e.w.WriteHeader(wire.MajorSimple, 26)
		bits := math.Float32bits(f32)
		e.w.WriteBytes([]byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)})

		return nil
	}

	return e.encodeFloatAtWidth(f, 64)
}

func (e *encoder) encodeFloatAtWidth(f float64, width uint8) error {
	switch width {
	case 16:
		bits, _ := ieee754.Float64ToFloat16(f)
		e.w.WriteHeader(wire.MajorSimple, 25)
		e.w.WriteBytes([]byte{byte(bits >> 8), byte(bits)})
	case 32:
		bits := math.Float32bits(float32(f))
		e.w.WriteHeader(wire.MajorSimple, 26)
		e.w.WriteBytes([]byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)})
	default:
		bits := math.Float64bits(f)
		e.w.WriteHeader(wire.MajorSimple, 27)
		e.w.WriteBytes([]byte{
			byte(bits >> 56), byte(bits >> 48), byte(bits >> 40), byte(bits >> 32),
			byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits),
		})
	}

	return nil
}

// encodePlutusConstr emits the compact tag (121-127, 1280-1400) for
// constructor indices that have one, and the general tag-102 form
// [index, fields] otherwise.
func (e *encoder) encodePlutusConstr(v *value.Value, path string) error {
	if tag, ok := value.TagForConstrIndex(v.ConstrIndex); ok {
		e.w.WriteArgument(wire.MajorTag, tag)
		return e.encodeArray(value.NewArray(v.Array, false), path)
	}

	e.w.WriteArgument(wire.MajorTag, value.TagPlutusGeneral)
	e.w.WriteArgument(wire.MajorArray, 2)
	e.w.WriteArgument(wire.MajorUnsigned, v.ConstrIndex)

	return e.encodeArray(value.NewArray(v.Array, false), path)
}
