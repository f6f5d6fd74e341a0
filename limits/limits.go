// Package limits implements the decode-side resource accountant: recursion
// depth, collection sizes, string sizes, bignum sizes, cumulative output
// size, wall-clock timeout, and the indefinite-length framing toggle.
//
// Options follow the teacher's generic functional-options pattern
// (internal/options) rather than a bespoke builder.
package limits

import (
	"time"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/internal/logging"
	"github.com/plutusdata/cbor/internal/options"
)

// Default ceilings, chosen so that max_depth sits far below any platform's
// call-stack limit (see §9 of the design notes this package implements).
const (
	DefaultMaxDepth            = 128
	DefaultMaxArrayLength      = 1 << 20
	DefaultMaxMapSize          = 1 << 20
	DefaultMaxByteStringLength = 1 << 24
	DefaultMaxTextStringLength = 1 << 24
	DefaultMaxBignumBytes      = 1 << 16
	DefaultMaxOutputSize       = 1 << 28
	DefaultTimeout             = 0 // disabled by default
)

// Options is the frozen configuration record consulted by the Accountant.
// It is built once via New and never mutated after a decode starts.
type Options struct {
	MaxDepth            int
	MaxArrayLength      int
	MaxMapSize          int
	MaxByteStringLength int
	MaxTextStringLength int
	MaxBignumBytes      int
	MaxOutputSize       int64
	Timeout             time.Duration
	AllowIndefinite     bool
	ValidateCanonical   bool
	StrictUTF8          bool
	StrictTags          bool

	// Logger receives non-fatal observations, such as a non-strict unknown
	// tag passing through unrecognized. It defaults to logging.Discard.
	Logger logging.Logger
}

// Option configures an Options record.
type Option = options.Option[*Options]

// New builds an Options record from the given options, starting from the
// package defaults.
func New(opts ...Option) (*Options, error) {
	o := &Options{
		MaxDepth:            DefaultMaxDepth,
		MaxArrayLength:      DefaultMaxArrayLength,
		MaxMapSize:          DefaultMaxMapSize,
		MaxByteStringLength: DefaultMaxByteStringLength,
		MaxTextStringLength: DefaultMaxTextStringLength,
		MaxBignumBytes:      DefaultMaxBignumBytes,
		MaxOutputSize:       DefaultMaxOutputSize,
		Timeout:             DefaultTimeout,
		AllowIndefinite:     true,
		ValidateCanonical:   false,
		StrictUTF8:          true,
		StrictTags:          false,
		Logger:              logging.Discard,
	}

	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	return o, nil
}

// WithMaxDepth caps recursion depth for arrays, maps, and tags.
func WithMaxDepth(n int) Option {
	return options.New(func(o *Options) error {
		if n <= 0 {
			return errs.ErrDepthExceeded
		}
		o.MaxDepth = n
		return nil
	})
}

// WithMaxArrayLength caps the declared or streamed element count of an array.
func WithMaxArrayLength(n int) Option {
	return options.NoError(func(o *Options) { o.MaxArrayLength = n })
}

// WithMaxMapSize caps the declared or streamed pair count of a map.
func WithMaxMapSize(n int) Option {
	return options.NoError(func(o *Options) { o.MaxMapSize = n })
}

// WithMaxByteStringLength caps a single byte string's length.
func WithMaxByteStringLength(n int) Option {
	return options.NoError(func(o *Options) { o.MaxByteStringLength = n })
}

// WithMaxTextStringLength caps a single text string's length.
func WithMaxTextStringLength(n int) Option {
	return options.NoError(func(o *Options) { o.MaxTextStringLength = n })
}

// WithMaxBignumBytes caps the byte length supplied to a tag 2/3 payload.
func WithMaxBignumBytes(n int) Option {
	return options.NoError(func(o *Options) { o.MaxBignumBytes = n })
}

// WithMaxOutputSize caps the running accumulator of bytes represented in the
// decoded tree.
func WithMaxOutputSize(n int64) Option {
	return options.NoError(func(o *Options) { o.MaxOutputSize = n })
}

// WithTimeout sets a wall-clock ceiling checked at each collection iteration
// and tag dispatch. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return options.NoError(func(o *Options) { o.Timeout = d })
}

// WithAllowIndefinite toggles indefinite-length array/map/string framing.
func WithAllowIndefinite(allow bool) Option {
	return options.NoError(func(o *Options) { o.AllowIndefinite = allow })
}

// WithCanonical toggles canonical-form validation: minimal integer/float
// encoding, canonical map key order, and canonical NaN.
func WithCanonical(validate bool) Option {
	return options.NoError(func(o *Options) { o.ValidateCanonical = validate })
}

// WithStrictUTF8 toggles UTF-8 validation of decoded text strings.
func WithStrictUTF8(strict bool) Option {
	return options.NoError(func(o *Options) { o.StrictUTF8 = strict })
}

// WithStrictTags toggles rejection of tags outside the recognized table
// (§4.6); when false, unrecognized tags pass through as an opaque Tagged
// value.
func WithStrictTags(strict bool) Option {
	return options.NoError(func(o *Options) { o.StrictTags = strict })
}

// WithLogger overrides the default no-op logger for non-fatal observations.
func WithLogger(l logging.Logger) Option {
	return options.NoError(func(o *Options) { o.Logger = l })
}

// Accountant tracks the mutable resource state of a single top-level decode:
// current recursion depth, cumulative output size, and start time. It is
// created fresh for every call to decode / decode_with_source_map and is
// consulted identically by the direct and source-map parse paths.
type Accountant struct {
	opts       *Options
	depth      int
	outputSize int64
	start      time.Time
}

// NewAccountant creates an Accountant bound to opts, starting its wall clock
// now.
func NewAccountant(opts *Options) *Accountant {
	return &Accountant{opts: opts, start: time.Now()}
}

// Options returns the frozen options record this accountant enforces.
func (a *Accountant) Options() *Options {
	return a.opts
}

// EnterDepth increments the recursion depth and fails with ErrDepthExceeded
// if the new depth exceeds MaxDepth.
func (a *Accountant) EnterDepth() error {
	a.depth++
	if a.depth > a.opts.MaxDepth {
		return errs.ErrDepthExceeded
	}

	return nil
}

// ExitDepth decrements the recursion depth on the way back out of a
// collection or tag.
func (a *Accountant) ExitDepth() {
	a.depth--
}

// Depth returns the current recursion depth.
func (a *Accountant) Depth() int {
	return a.depth
}

// AddOutput adds n bytes to the running output-size accumulator and fails
// with ErrOutputTooLarge if MaxOutputSize is exceeded.
func (a *Accountant) AddOutput(n int) error {
	a.outputSize += int64(n)
	if a.opts.MaxOutputSize > 0 && a.outputSize > a.opts.MaxOutputSize {
		return errs.ErrOutputTooLarge
	}

	return nil
}

// CheckTimeout fails with ErrTimeout if the configured Timeout has elapsed
// since the accountant was created. A zero Timeout disables the check.
func (a *Accountant) CheckTimeout() error {
	if a.opts.Timeout <= 0 {
		return nil
	}

	if time.Since(a.start) > a.opts.Timeout {
		return errs.ErrTimeout
	}

	return nil
}

// CheckArrayLength validates a declared or streamed array element count. n
// is taken as uint64 (the width CBOR's argument encoding actually carries)
// so a declared count at or above 2^63 is compared against the limit before
// any truncation to int, rather than wrapping negative and slipping past
// the check.
func (a *Accountant) CheckArrayLength(n uint64) error {
	if n > uint64(a.opts.MaxArrayLength) {
		return errs.ErrArrayTooLarge
	}

	return nil
}

// CheckMapSize validates a declared or streamed map pair count. See
// CheckArrayLength for why n is uint64.
func (a *Accountant) CheckMapSize(n uint64) error {
	if n > uint64(a.opts.MaxMapSize) {
		return errs.ErrMapTooLarge
	}

	return nil
}

// CheckByteStringLength validates a byte string's length.
func (a *Accountant) CheckByteStringLength(n int) error {
	if n > a.opts.MaxByteStringLength {
		return errs.ErrStringTooLong
	}

	return nil
}

// CheckTextStringLength validates a text string's length.
func (a *Accountant) CheckTextStringLength(n int) error {
	if n > a.opts.MaxTextStringLength {
		return errs.ErrStringTooLong
	}

	return nil
}

// CheckBignumBytes validates a tag 2/3 payload's (possibly concatenated)
// byte length.
func (a *Accountant) CheckBignumBytes(n int) error {
	if n > a.opts.MaxBignumBytes {
		return errs.ErrBignumTooLarge
	}

	return nil
}
