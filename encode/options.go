// Package encode implements the post-order value-to-bytes traversal: value
// dispatch (§4.8), minimal-length integer encoding, canonical map-key
// ordering, float width promotion, and Plutus/standard tag emission. It uses
// the same wire.Writer and internal/options idioms as the decode side.
package encode

import "github.com/plutusdata/cbor/internal/options"

// Options configures one encode call.
type Options struct {
	// Canonical enables RFC 8949 §4.2.1 deterministic encoding: definite
	// lengths only, minimal integer widths, and canonical map-key order.
	// Float width is governed by PreferShortestFloat. When false, the input value's own Indefinite flag and Map
	// pair order are preserved.
	Canonical bool

	// PreferShortestFloat re-encodes a float in the narrowest IEEE-754
	// width that round-trips losslessly. New enables it; WithCanonical
	// does not change it.
	PreferShortestFloat bool

	// StrictUTF8 rejects text values that are not valid UTF-8 at encode
	// time rather than emitting them as-is.
	StrictUTF8 bool

	// AllowUndefined permits emitting simple value 23 (undefined); when
	// false, encoding an Undefined value fails with ErrEncodingUnsupported.
	AllowUndefined bool
}

// Option configures an Options record.
type Option = options.Option[*Options]

// New builds an Options record, defaulting to canonical encoding.
func New(opts ...Option) (*Options, error) {
	o := &Options{
		Canonical:           true,
		PreferShortestFloat: true,
		StrictUTF8:          true,
		AllowUndefined:      false,
	}

	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	return o, nil
}

// WithCanonical toggles canonical (deterministic) encoding.
func WithCanonical(canonical bool) Option {
	return options.NoError(func(o *Options) { o.Canonical = canonical })
}

// WithPreferShortestFloat toggles shortest-lossless-width float encoding.
func WithPreferShortestFloat(prefer bool) Option {
	return options.NoError(func(o *Options) { o.PreferShortestFloat = prefer })
}

// WithStrictUTF8 toggles UTF-8 validation of text values at encode time.
func WithStrictUTF8(strict bool) Option {
	return options.NoError(func(o *Options) { o.StrictUTF8 = strict })
}

// WithAllowUndefined toggles whether encoding an Undefined value is
// permitted.
func WithAllowUndefined(allow bool) Option {
	return options.NoError(func(o *Options) { o.AllowUndefined = allow })
}
