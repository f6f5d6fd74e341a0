package decode

import (
	"math"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/internal/ieee754"
	"github.com/plutusdata/cbor/value"
)

// canonicalNaN16 is the only binary16 NaN bit pattern accepted when
// validate_canonical is set (RFC 8949 §4.2.1 "Preferred Serialization" and
// the canonical-NaN open question this decoder resolves as reject-by-default).
const canonicalNaN16 = 0x7E00

// parseFloat parses a major-type-7 float of the width selected by ai (25,
// 26, or 27 for binary16/32/64).
func (p *parser) parseFloat(ai uint8) (*value.Value, error) {
	var width uint8
	var bits uint64
	var err error

	switch ai {
	case 25:
		width = 16
		bits, err = p.r.Uint16()
	case 26:
		width = 32
		bits, err = p.r.Uint32()
	case 27:
		width = 64
		bits, err = p.r.Uint64()
	}
	if err != nil {
		return nil, err
	}

	f := decodeFloatBits(width, bits)

	if p.opts.ValidateCanonical {
		if err := checkCanonicalFloat(width, bits, f); err != nil {
			return nil, err
		}
	}

	return value.NewFloat(f, width), nil
}

// decodeFloatBits converts the raw big-endian payload of the given width
// into a float64, preserving -0, subnormals, infinities, and NaN.
func decodeFloatBits(width uint8, bits uint64) float64 {
	switch width {
	case 16:
		return ieee754.Float16ToFloat64(uint16(bits))
	case 32:
		return float64(math.Float32frombits(uint32(bits)))
	default:
		return math.Float64frombits(bits)
	}
}

// checkCanonicalFloat enforces the canonical-mode NaN and shortest-width
// rules: a canonical binary16 NaN bit pattern is required for any NaN; a
// finite value must not be encodable in a narrower IEEE width than the one
// actually used.
func checkCanonicalFloat(width uint8, bits uint64, f float64) error {
	if math.IsNaN(f) {
		if width != 16 || uint16(bits) != canonicalNaN16 {
			return errs.ErrNonCanonicalNaN
		}

		return nil
	}

	switch width {
	case 64:
		if _, ok := ieee754.Float64ToFloat16(f); ok {
			return errs.ErrNonMinimalFloat
		}
		if _, ok := ieee754.Float64ToFloat32(f); ok {
			return errs.ErrNonMinimalFloat
		}
	case 32:
		if _, ok := ieee754.Float64ToFloat16(f); ok {
			return errs.ErrNonMinimalFloat
		}
	}

	return nil
}
