// Package decode implements the recursive-descent CBOR parser: the type
// parsers, the collection parser, the tag dispatcher, and the source-map
// parser, all sharing one dispatch loop so that the limit and invariant
// discipline enforced on the direct decode path is enforced identically on
// the source-map path (see Sink).
package decode

import (
	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/limits"
	"github.com/plutusdata/cbor/value"
	"github.com/plutusdata/cbor/wire"
)

// Result is the outcome of a top-level decode call.
type Result struct {
	Value     *value.Value
	BytesRead int
}

// Decode parses a single top-level CBOR value from data under opts. It
// does not build a source map.
func Decode(data []byte, opts *limits.Options) (Result, error) {
	return decodeWithSink(data, opts, noopSink{})
}

// DecodeWithSink parses a single top-level CBOR value from data under
// opts, reporting every value's byte range and path to sink in pre-order.
// It is the hook sourcemap.Builder attaches to; Decode itself uses a no-op
// Sink so both entry points share this function and therefore share every
// limit check and error path.
func DecodeWithSink(data []byte, opts *limits.Options, sink Sink) (Result, error) {
	return decodeWithSink(data, opts, sink)
}

func decodeWithSink(data []byte, opts *limits.Options, sink Sink) (Result, error) {
	if opts == nil {
		var err error
		opts, err = limits.New()
		if err != nil {
			return Result{}, err
		}
	}

	p := &parser{
		r:    wire.NewReader(data),
		acc:  limits.NewAccountant(opts),
		opts: opts,
		sink: sink,
	}

	v, err := p.parseValue("", -1)
	if err != nil {
		return Result{}, errs.NewDecodeError(unwrapSentinel(err), p.r.Pos(), "")
	}

	return Result{Value: v, BytesRead: p.r.Pos()}, nil
}

// parser holds the mutable state threaded through one top-level decode.
type parser struct {
	r    *wire.Reader
	acc  *limits.Accountant
	opts *limits.Options
	sink Sink
}

// parseValue parses exactly one CBOR data item at the reader's current
// position, dispatching on its major type, and records it with sink.
func (p *parser) parseValue(path string, parent int) (*value.Value, error) {
	if err := p.acc.CheckTimeout(); err != nil {
		return nil, err
	}

	start := p.r.Pos()
	handle := p.sink.Begin(path, parent)

	h, err := wire.ReadHeader(p.r)
	if err != nil {
		return nil, err
	}

	var v *value.Value

	switch h.Major {
	case wire.MajorUnsigned:
		v, err = p.parseUnsigned(h.AI)
	case wire.MajorNegative:
		v, err = p.parseNegative(h.AI)
	case wire.MajorBytes:
		v, err = p.parseByteString(h.AI)
	case wire.MajorText:
		v, err = p.parseTextString(h.AI)
	case wire.MajorArray:
		v, err = p.parseArray(h.AI, path, handle)
	case wire.MajorMap:
		v, err = p.parseMap(h.AI, path, handle)
	case wire.MajorTag:
		v, err = p.parseTag(h.AI, path, handle)
	case wire.MajorSimple:
		v, err = p.parseSimpleOrFloat(h.AI)
	}

	if err != nil {
		return nil, err
	}

	if err := p.acc.AddOutput(p.r.Pos() - start); err != nil {
		return nil, err
	}

	p.sink.Finish(handle, start, p.r.Pos(), uint8(h.Major), typeLabel(v), reprOf(v))

	return v, nil
}

// unwrapSentinel strips a DecodeError wrapper, if err is one, so the single
// wrap applied in decodeWithSink never nests one DecodeError inside another.
// That wrap records the reader position at which parsing stopped and an
// empty path.
func unwrapSentinel(err error) error {
	switch e := err.(type) {
	case *errs.DecodeError:
		return e.Err
	default:
		return err
	}
}
