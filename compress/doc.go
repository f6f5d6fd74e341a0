// Package compress provides the compression codecs backing sourcemap.Archive,
// the optional compressed export format for large source maps.
//
// A source map (§6.3) is a flat list of entries, one per decoded CBOR value;
// for documents with many small values it can be considerably larger than
// the input it describes. sourcemap.Archive lets a caller opt into
// compressing the exported CBOR payload rather than reinventing a second wire format
// just for that purpose.
//
// # Architecture
//
// The package defines three small interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported algorithms
//
//   - None (format.CompressionNone): no compression, returns input unchanged.
//   - Zstd (format.CompressionZstd): best compression ratio; pure-Go
//     (klauspost/compress/zstd) by default, cgo-accelerated
//     (valyala/gozstd) when built with cgo enabled.
//   - S2 (format.CompressionS2): fast, Snappy-derived (klauspost/compress/s2).
//   - LZ4 (format.CompressionLZ4): fast decompression (pierrec/lz4/v4).
//
// Callers select an algorithm with GetCodec or CreateCodec; both return a
// Codec keyed off format.CompressionType, the same enum sourcemap.Archive
// stores alongside the compressed bytes so a reader can pick the matching
// decompressor without out-of-band information.
package compress
