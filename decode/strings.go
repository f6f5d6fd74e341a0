package decode

import (
	"unicode/utf8"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/value"
	"github.com/plutusdata/cbor/wire"
)

// parseByteString parses a major-type-2 value, definite or indefinite.
func (p *parser) parseByteString(ai uint8) (*value.Value, error) {
	if ai == wire.AIIndefinite {
		chunks, err := p.parseIndefiniteChunks(wire.MajorBytes)
		if err != nil {
			return nil, err
		}

		total := 0
		for _, c := range chunks {
			total += len(c)
		}
		if err := p.acc.CheckByteStringLength(total); err != nil {
			return nil, err
		}

		v := value.NewBytes(concatChunks(chunks))
		v.Chunks = chunks

		return v, nil
	}

	n, err := wire.ReadArgument(p.r, ai)
	if err != nil {
		return nil, err
	}
	if err := checkMinimalArgument(p.opts.ValidateCanonical, ai, n); err != nil {
		return nil, err
	}
	if err := p.acc.CheckByteStringLength(int(n)); err != nil {
		return nil, err
	}

	data, err := p.r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}

	return value.NewBytes(data), nil
}

// parseTextString parses a major-type-3 value, definite or indefinite.
func (p *parser) parseTextString(ai uint8) (*value.Value, error) {
	if ai == wire.AIIndefinite {
		chunks, err := p.parseIndefiniteChunks(wire.MajorText)
		if err != nil {
			return nil, err
		}

		total := 0
		for _, c := range chunks {
			total += len(c)
		}
		if err := p.acc.CheckTextStringLength(total); err != nil {
			return nil, err
		}

		data := concatChunks(chunks)
		if p.opts.StrictUTF8 && !utf8.Valid(data) {
			return nil, errs.ErrInvalidUTF8
		}

		v := value.NewText(string(data))
		v.TextChunks = make([]string, len(chunks))
		for i, c := range chunks {
			v.TextChunks[i] = string(c)
		}

		return v, nil
	}

	n, err := wire.ReadArgument(p.r, ai)
	if err != nil {
		return nil, err
	}
	if err := checkMinimalArgument(p.opts.ValidateCanonical, ai, n); err != nil {
		return nil, err
	}
	if err := p.acc.CheckTextStringLength(int(n)); err != nil {
		return nil, err
	}

	data, err := p.r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}

	if p.opts.StrictUTF8 && !utf8.Valid(data) {
		return nil, errs.ErrInvalidUTF8
	}

	return value.NewText(string(data)), nil
}

// parseIndefiniteChunks reads zero or more definite-length chunks of major
// until a break byte. A nested indefinite chunk fails with
// ErrNestedIndefinite.
func (p *parser) parseIndefiniteChunks(major wire.MajorType) ([][]byte, error) {
	if !p.opts.AllowIndefinite {
		return nil, errs.ErrIndefiniteDisallowed
	}

	var chunks [][]byte
	for {
		b, err := p.r.PeekByte()
		if err != nil {
			return nil, errs.ErrMissingBreak
		}

		if b == wire.Break {
			_, _ = p.r.ReadByte()
			return chunks, nil
		}

		h, err := wire.ReadHeader(p.r)
		if err != nil {
			return nil, err
		}
		if h.Major != major {
			return nil, errs.ErrTagShapeMismatch
		}
		if h.AI == wire.AIIndefinite {
			return nil, errs.ErrNestedIndefinite
		}

		n, err := wire.ReadArgument(p.r, h.AI)
		if err != nil {
			return nil, err
		}
		if err := checkMinimalArgument(p.opts.ValidateCanonical, h.AI, n); err != nil {
			return nil, err
		}

		chunk, err := p.r.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}

		chunks = append(chunks, chunk)
	}
}

func concatChunks(chunks [][]byte) []byte {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}

	out := make([]byte, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}

	return out
}
