// Package format defines small enumerations: the IEEE-754 float widths, and
// the compression algorithm used by a source-map archive (read by the
// compress and sourcemap packages). The decode and encode packages do not
// use FloatWidth; value.Value records a float's width as a plain uint8.
package format

type (
	// FloatWidth records which IEEE-754 width produced or should produce a
	// Float value: 16 (binary16/half), 32 (binary32/single), or 64
	// (binary64/double). Canonical-encoding checks compare a value against
	// its narrower widths, so the width it actually arrived in must be
	// retained rather than inferred from the Go float64 alone.
	FloatWidth uint8

	// CompressionType selects the algorithm used to compress an exported
	// source-map archive (sourcemap.Archive). It has no bearing on the CBOR
	// wire format itself.
	CompressionType uint8
)

const (
	Width16 FloatWidth = 16
	Width32 FloatWidth = 32
	Width64 FloatWidth = 64

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (w FloatWidth) String() string {
	switch w {
	case Width16:
		return "binary16"
	case Width32:
		return "binary32"
	case Width64:
		return "binary64"
	default:
		return "unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
