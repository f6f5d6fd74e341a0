package wire

import "github.com/plutusdata/cbor/errs"

// MajorType is the CBOR major type, the top 3 bits of the initial byte.
type MajorType uint8

const (
	MajorUnsigned MajorType = 0
	MajorNegative MajorType = 1
	MajorBytes    MajorType = 2
	MajorText     MajorType = 3
	MajorArray    MajorType = 4
	MajorMap      MajorType = 5
	MajorTag      MajorType = 6
	MajorSimple   MajorType = 7
)

// Additional-info sentinels (bottom 5 bits of the initial byte).
const (
	AIOneByte    = 24
	AITwoByte    = 25
	AIFourByte   = 26
	AIEightByte  = 27
	AIReservedLo = 28
	AIReservedHi = 30
	AIIndefinite = 31
)

// Break is the single-byte indefinite-length terminator, 0xFF.
const Break = 0xFF

// Header is a decoded CBOR initial byte.
type Header struct {
	Major MajorType
	AI    uint8
}

// ExtractHeader splits an initial byte into its major type and additional
// info: major = b>>5, ai = b&0x1F.
func ExtractHeader(b byte) Header {
	return Header{Major: MajorType(b >> 5), AI: b & 0x1F}
}

// ReadHeader reads one initial byte and splits it into major type and
// additional info.
func ReadHeader(r *Reader) (Header, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Header{}, err
	}

	return ExtractHeader(b), nil
}

// ReadArgument resolves the additional-info argument of a header into its
// numeric value, per RFC 8949 §3: 0..23 direct, 24/25/26/27 read 1/2/4/8
// follow-on bytes, 28..30 are reserved, 31 signals indefinite length (the
// caller must special-case this before calling ReadArgument).
func ReadArgument(r *Reader, ai uint8) (uint64, error) {
	switch {
	case ai < AIOneByte:
		return uint64(ai), nil
	case ai == AIOneByte:
		return r.Uint8()
	case ai == AITwoByte:
		return r.Uint16()
	case ai == AIFourByte:
		return r.Uint32()
	case ai == AIEightByte:
		return r.Uint64()
	case ai >= AIReservedLo && ai <= AIReservedHi:
		return 0, errs.ErrReserved
	default: // ai == AIIndefinite
		return 0, errs.ErrUnexpectedBreak
	}
}

// ArgumentWidth returns the number of header-argument bytes additional info
// ai consumes beyond the initial byte: 0 for direct values, 1/2/4/8 for the
// corresponding follow-on widths. The decoder's canonical-encoding check
// does not call it; that check compares against MinimalAI.
func ArgumentWidth(ai uint8) int {
	switch ai {
	case AIOneByte:
		return 1
	case AITwoByte:
		return 2
	case AIFourByte:
		return 4
	case AIEightByte:
		return 8
	default:
		return 0
	}
}

// MinimalAI returns the additional-info value that encodes v in the fewest
// bytes: direct (v itself) when v < 24, otherwise the narrowest follow-on
// width that can hold it.
func MinimalAI(v uint64) uint8 {
	switch {
	case v < AIOneByte:
		return uint8(v)
	case v <= 0xFF:
		return AIOneByte
	case v <= 0xFFFF:
		return AITwoByte
	case v <= 0xFFFFFFFF:
		return AIFourByte
	default:
		return AIEightByte
	}
}
