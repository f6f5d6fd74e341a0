package decode

import (
	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/value"
)

// parseSimpleOrFloat handles every major-type-7 item: booleans, null,
// undefined, anonymous simple values, and the three float widths (floats
// are delegated to parseFloat).
func (p *parser) parseSimpleOrFloat(ai uint8) (*value.Value, error) {
	switch {
	case ai < 20:
		return value.NewSimple(ai), nil
	case ai == 20:
		return value.NewBool(false), nil
	case ai == 21:
		return value.NewBool(true), nil
	case ai == 22:
		return value.Null(), nil
	case ai == 23:
		return value.Undefined(), nil
	case ai == 24:
		n, err := p.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if n < 32 {
			return nil, errs.ErrOverlongSimple
		}

		return value.NewSimple(n), nil
	case ai >= 25 && ai <= 27:
		return p.parseFloat(ai)
	case ai >= 28 && ai <= 30:
		return nil, errs.ErrReserved
	default: // ai == 31
		return nil, errs.ErrUnexpectedBreak
	}
}
