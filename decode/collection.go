package decode

import (
	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/internal/keytrack"
	"github.com/plutusdata/cbor/value"
	"github.com/plutusdata/cbor/wire"
)

// preallocCap bounds the initial capacity hint given to make() for a
// definite-length array/map whose declared count has passed the limits
// check: the declared count is still attacker-controlled, so allocation is
// grown by append as items are actually parsed rather than trusted upfront,
// even though it is within MaxArrayLength/MaxMapSize.
const preallocCap = 64

func safeCap(n uint64) int {
	if n > preallocCap {
		return preallocCap
	}

	return int(n)
}

// parseArray parses a major-type-4 value, definite or indefinite. path is
// the array's own path; children are path extended with their index.
func (p *parser) parseArray(ai uint8, path string, handle int) (*value.Value, error) {
	if err := p.acc.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.acc.ExitDepth()

	if ai == wire.AIIndefinite {
		if !p.opts.AllowIndefinite {
			return nil, errs.ErrIndefiniteDisallowed
		}

		var items []*value.Value
		var elemBytes [][]byte
		for i := 0; ; i++ {
			if err := p.acc.CheckTimeout(); err != nil {
				return nil, err
			}

			b, err := p.r.PeekByte()
			if err != nil {
				return nil, errs.ErrMissingBreak
			}
			if b == wire.Break {
				_, _ = p.r.ReadByte()
				break
			}

			if err := p.acc.CheckArrayLength(uint64(len(items) + 1)); err != nil {
				return nil, err
			}

			itemStart := p.r.Pos()
			item, err := p.parseValue(value.PathOf(path).Index(i).String(), handle)
			if err != nil {
				return nil, err
			}

			items = append(items, item)
			elemBytes = append(elemBytes, p.r.Data()[itemStart:p.r.Pos()])
		}

		arr := value.NewArray(items, true)
		arr.ElemBytes = elemBytes

		return arr, nil
	}

	n, err := wire.ReadArgument(p.r, ai)
	if err != nil {
		return nil, err
	}
	if err := checkMinimalArgument(p.opts.ValidateCanonical, ai, n); err != nil {
		return nil, err
	}
	if err := p.acc.CheckArrayLength(n); err != nil {
		return nil, err
	}

	items := make([]*value.Value, 0, safeCap(n))
	elemBytes := make([][]byte, 0, safeCap(n))
	for i := 0; i < int(n); i++ {
		if err := p.acc.CheckTimeout(); err != nil {
			return nil, err
		}

		itemStart := p.r.Pos()
		item, err := p.parseValue(value.PathOf(path).Index(i).String(), handle)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
		elemBytes = append(elemBytes, p.r.Data()[itemStart:p.r.Pos()])
	}

	arr := value.NewArray(items, false)
	arr.ElemBytes = elemBytes

	return arr, nil
}

// parseMap parses a major-type-5 value, definite or indefinite, enforcing
// duplicate-key and (in canonical mode) canonical-key-order rules. path is
// the map's own path; children are path extended with their key.
func (p *parser) parseMap(ai uint8, path string, handle int) (*value.Value, error) {
	if err := p.acc.EnterDepth(); err != nil {
		return nil, err
	}
	defer p.acc.ExitDepth()

	tracker := keytrack.NewTracker()

	if ai == wire.AIIndefinite {
		if !p.opts.AllowIndefinite {
			return nil, errs.ErrIndefiniteDisallowed
		}

		var pairs []value.Pair
		var prevKeyBytes []byte

		for i := 0; ; i++ {
			if err := p.acc.CheckTimeout(); err != nil {
				return nil, err
			}

			b, err := p.r.PeekByte()
			if err != nil {
				return nil, errs.ErrMissingBreak
			}
			if b == wire.Break {
				_, _ = p.r.ReadByte()
				break
			}

			if err := p.acc.CheckMapSize(uint64(len(pairs) + 1)); err != nil {
				return nil, err
			}

			key, keyBytes, err := p.parseMapKey(path, i, handle)
			if err != nil {
				return nil, err
			}
			if err := p.checkMapKey(tracker, &prevKeyBytes, keyBytes); err != nil {
				return nil, err
			}

			next, err := p.r.PeekByte()
			if err != nil {
				return nil, errs.ErrMissingBreak
			}
			if next == wire.Break {
				return nil, errs.ErrBreakInsideMapPair
			}

			val, err := p.parseValue(mapValuePath(path, key, i), handle)
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, value.Pair{Key: key, Val: val, KeyBytes: keyBytes})
		}

		return value.NewMap(pairs, true), nil
	}

	n, err := wire.ReadArgument(p.r, ai)
	if err != nil {
		return nil, err
	}
	if err := checkMinimalArgument(p.opts.ValidateCanonical, ai, n); err != nil {
		return nil, err
	}
	if err := p.acc.CheckMapSize(n); err != nil {
		return nil, err
	}

	pairs := make([]value.Pair, 0, safeCap(n))
	var prevKeyBytes []byte

	for i := 0; i < int(n); i++ {
		if err := p.acc.CheckTimeout(); err != nil {
			return nil, err
		}

		key, keyBytes, err := p.parseMapKey(path, i, handle)
		if err != nil {
			return nil, err
		}
		if err := p.checkMapKey(tracker, &prevKeyBytes, keyBytes); err != nil {
			return nil, err
		}

		val, err := p.parseValue(mapValuePath(path, key, i), handle)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, value.Pair{Key: key, Val: val, KeyBytes: keyBytes})
	}

	return value.NewMap(pairs, false), nil
}

// parseMapKey parses one map key and captures its raw encoded byte range,
// which is the sole identity used for duplicate-detection and canonical
// ordering (keys are never stringified for identity).
func (p *parser) parseMapKey(path string, index int, handle int) (key *value.Value, keyBytes []byte, err error) {
	keyStart := p.r.Pos()
	key, err = p.parseValue(value.PathOf(path).DiagnosticKey("key").String(), handle)
	if err != nil {
		return nil, nil, err
	}

	keyEnd := p.r.Pos()

	return key, p.r.Data()[keyStart:keyEnd], nil
}

// checkMapKey applies duplicate-key detection (always) and canonical-order
// validation (when enabled) to a freshly parsed key's raw encoded bytes.
func (p *parser) checkMapKey(tracker *keytrack.Tracker, prevKeyBytes *[]byte, keyBytes []byte) error {
	if err := tracker.Track(keyBytes); err != nil {
		return err
	}

	if p.opts.ValidateCanonical {
		if *prevKeyBytes != nil && keytrack.CompareCanonical(*prevKeyBytes, keyBytes) >= 0 {
			return errs.ErrNonCanonicalKeyOrder
		}
		*prevKeyBytes = keyBytes
	}

	return nil
}

func mapValuePath(path string, key *value.Value, index int) string {
	if key.Kind == value.KindText {
		return value.PathOf(path).TextKey(key.Text).String()
	}

	return value.PathOf(path).DiagnosticKey(reprOf(key)).String()
}
