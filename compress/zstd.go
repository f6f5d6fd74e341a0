package compress

// ZstdCompressor provides Zstandard compression for exported source-map archives.
//
// Zstd favors compression ratio over speed, which fits archives that are
// written once (at decode time) and read rarely (when a reader later wants
// to rehydrate the full source map), such as cold storage of a decoded
// document's source map or transmission over a bandwidth-limited link.
//
// Two implementations exist behind a build tag: zstd_pure.go (pure Go,
// default) and zstd_cgo.go (cgo-accelerated, built with the cgo tag).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
