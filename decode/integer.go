package decode

import (
	"math/big"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/limits"
	"github.com/plutusdata/cbor/value"
	"github.com/plutusdata/cbor/wire"
)

// checkMinimalArgument enforces RFC 8949 §4.2.1's minimal-length rule for
// any header argument (integer magnitude, string/array/map length): in
// canonical mode, the additional-info width actually used must be the
// narrowest one that can hold the value. This single check, applied at
// every argument read site, is how this decoder resolves the spec's open
// question on rejecting non-canonical integer encodings uniformly.
func checkMinimalArgument(validateCanonical bool, ai uint8, v uint64) error {
	if !validateCanonical {
		return nil
	}

	if wire.MinimalAI(v) != ai {
		return errs.ErrNonCanonicalInteger
	}

	return nil
}

// parseUnsigned parses a major-type-0 value: the argument itself.
func (p *parser) parseUnsigned(ai uint8) (*value.Value, error) {
	v, err := wire.ReadArgument(p.r, ai)
	if err != nil {
		return nil, err
	}

	if err := checkMinimalArgument(p.opts.ValidateCanonical, ai, v); err != nil {
		return nil, err
	}

	return value.NewUnsigned(v), nil
}

// parseNegative parses a major-type-1 value: CBOR encodes -1-n; n is the
// argument read here.
func (p *parser) parseNegative(ai uint8) (*value.Value, error) {
	n, err := wire.ReadArgument(p.r, ai)
	if err != nil {
		return nil, err
	}

	if err := checkMinimalArgument(p.opts.ValidateCanonical, ai, n); err != nil {
		return nil, err
	}

	return value.NewNegative(n), nil
}

// bignumFromBytes decodes a big-endian unsigned magnitude, applying the
// bignum size ceiling before allocating the big.Int.
func bignumFromBytes(acc *limits.Accountant, data []byte) (*big.Int, error) {
	if err := acc.CheckBignumBytes(len(data)); err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(data), nil
}
