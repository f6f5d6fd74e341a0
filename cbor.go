// Package cbor implements a CBOR (RFC 8949) encoder/decoder with two
// extensions: a source map linking every decoded value to the byte range
// that produced it, and structural validation for the Cardano Plutus Data
// tag family (tags 102, 121-127, 1280-1400).
//
// The decode and encode packages hold the core engine; this file wires them
// into the four top-level entry points a caller reaches for first.
package cbor

import (
	"github.com/plutusdata/cbor/decode"
	"github.com/plutusdata/cbor/encode"
	"github.com/plutusdata/cbor/limits"
	"github.com/plutusdata/cbor/sourcemap"
	"github.com/plutusdata/cbor/value"
)

// Decode parses a single top-level CBOR value from data. A nil opts uses
// limits.New()'s defaults.
func Decode(data []byte, opts *limits.Options) (decode.Result, error) {
	return decode.Decode(data, opts)
}

// SourceMapResult bundles a decode's value with the byte-range map recorded
// alongside it.
type SourceMapResult struct {
	Value     *value.Value
	BytesRead int
	Entries   []sourcemap.Entry
}

// DecodeWithSourceMap parses data exactly as Decode does, additionally
// recording every value's byte range and path in pre-order. It shares
// decode's recursive parser via the Sink hook, so it enforces the same
// limits and invariants as Decode by construction.
func DecodeWithSourceMap(data []byte, opts *limits.Options) (SourceMapResult, error) {
	builder := sourcemap.NewBuilder()

	res, err := decode.DecodeWithSink(data, opts, builder)
	if err != nil {
		return SourceMapResult{}, err
	}

	return SourceMapResult{Value: res.Value, BytesRead: res.BytesRead, Entries: builder.Entries()}, nil
}

// Encode serializes a single value. A nil opts uses encode.New()'s defaults
// (canonical encoding).
func Encode(v *value.Value, opts *encode.Options) (encode.Result, error) {
	return encode.Encode(v, opts)
}

// EncodeSequence concatenates the encoding of each value with no framing
// between them, per RFC 8742.
func EncodeSequence(values []*value.Value, opts *encode.Options) (encode.Result, error) {
	return encode.EncodeSequence(values, opts)
}

// Diagnostician renders a decoded value in RFC 8949 §8 diagnostic notation.
// The core supplies everything a formatter needs (Kind, scalar fields, and
// the bounded value_repr/type_label recorded on a SourceMapResult's
// entries); it does not itself implement diagnostic notation; per §6.4 that
// rendering is an external collaborator's responsibility.
type Diagnostician interface {
	ToDiagnostic(v *value.Value) (string, error)
}
