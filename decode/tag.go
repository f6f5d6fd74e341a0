package decode

import (
	"time"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/value"
	"github.com/plutusdata/cbor/wire"
)

// Standard tags recognized by §4.6.
const (
	tagDateTime       = 0
	tagEpoch          = 1
	tagBignumPos      = 2
	tagBignumNeg      = 3
	tagDecimalFrac    = 4
	tagBigfloat       = 5
	tagURI            = 32
	tagBase64URL      = 33
	tagBase64         = 34
	tagRegex          = 35
	tagMIME           = 36
	tagSet            = 258
)

// parseTag reads the tag argument, recurses into the inner value through
// the same depth- and limit-aware dispatcher, then applies tag-specific
// structural validation.
func (p *parser) parseTag(ai uint8, path string, handle int) (*value.Value, error) {
	tag, err := wire.ReadArgument(p.r, ai)
	if err != nil {
		return nil, err
	}
	if err := checkMinimalArgument(p.opts.ValidateCanonical, ai, tag); err != nil {
		return nil, err
	}

	if err := p.acc.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.acc.ExitDepth()

	switch {
	case tag == tagBignumPos || tag == tagBignumNeg:
		return p.parseBignumTag(tag, path, handle)
	case tag == value.TagPlutusGeneral:
		return p.parsePlutusGeneral(path, handle)
	case isPlutusConstrTag(tag):
		return p.parsePlutusConstrTag(tag, path, handle)
	}

	inner, err := p.parseValue(path, handle)
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagDateTime:
		if inner.Kind != value.KindText {
			return nil, errs.ErrTagShapeMismatch
		}
		if _, err := time.Parse(time.RFC3339, inner.Text); err != nil {
			return nil, errs.ErrTagShapeMismatch
		}
	case tagEpoch:
		if inner.Kind != value.KindUnsigned && inner.Kind != value.KindNegative && inner.Kind != value.KindFloat {
			return nil, errs.ErrTagShapeMismatch
		}
	case tagDecimalFrac, tagBigfloat:
		if err := checkFractionShape(inner); err != nil {
			return nil, err
		}
	case tagURI, tagBase64URL, tagBase64, tagRegex, tagMIME:
		if inner.Kind != value.KindText {
			return nil, errs.ErrTagShapeMismatch
		}
	case tagSet:
		if inner.Kind != value.KindArray {
			return nil, errs.ErrTagShapeMismatch
		}
		if err := checkSetNoDuplicates(inner); err != nil {
			return nil, err
		}
	default:
		if p.opts.StrictTags {
			return nil, errs.ErrUnknownTag
		}
		p.opts.Logger.Warnf("cbor: unrecognized tag %d passed through at %q", tag, path)
	}

	return value.NewTagged(tag, inner), nil
}

// parseBignumTag handles tag 2 (positive) and tag 3 (negative): the inner
// value must be a byte string (definite or indefinite); its concatenated
// length is checked against max_bignum_bytes before the magnitude is
// decoded, and indefinite chunks are never returned as-is.
func (p *parser) parseBignumTag(tag uint64, path string, handle int) (*value.Value, error) {
	h, err := wire.ReadHeader(p.r)
	if err != nil {
		return nil, err
	}
	if h.Major != wire.MajorBytes {
		return nil, errs.ErrTagShapeMismatch
	}

	inner, err := p.parseByteStringAt(h.AI)
	if err != nil {
		return nil, err
	}

	mag, err := bignumFromBytes(p.acc, inner)
	if err != nil {
		return nil, err
	}

	if tag == tagBignumPos {
		return value.NewUnsignedBig(mag), nil
	}

	return value.NewNegativeBig(mag), nil
}

// parseByteStringAt parses a byte string whose header has already been
// consumed (the caller read it to check the major type), returning the
// concatenated bytes.
func (p *parser) parseByteStringAt(ai uint8) ([]byte, error) {
	v, err := p.parseByteString(ai)
	if err != nil {
		return nil, err
	}

	return v.Bytes, nil
}

// checkFractionShape validates the §4.6 decimal-fraction / bigfloat shape:
// a 2-element array [exponent:int, mantissa:int-or-bignum].
func checkFractionShape(inner *value.Value) error {
	if inner.Kind != value.KindArray || len(inner.Array) != 2 {
		return errs.ErrTagShapeMismatch
	}

	exp := inner.Array[0]
	if exp.Kind != value.KindUnsigned && exp.Kind != value.KindNegative {
		return errs.ErrTagShapeMismatch
	}

	mant := inner.Array[1]
	if mant.Kind != value.KindUnsigned && mant.Kind != value.KindNegative {
		return errs.ErrTagShapeMismatch
	}

	return nil
}

// checkSetNoDuplicates validates tag 258: no two elements may be equal
// under byte-slice equality of their encoded form (§4.6), using the raw
// encoded byte range parseArray captured for each element — the same
// identity discipline map keys use, never a lossy diagnostic string.
func checkSetNoDuplicates(arr *value.Value) error {
	seen := make(map[string]struct{}, len(arr.ElemBytes))
	for _, b := range arr.ElemBytes {
		key := string(b)
		if _, ok := seen[key]; ok {
			return errs.ErrDuplicateKey
		}
		seen[key] = struct{}{}
	}

	return nil
}
