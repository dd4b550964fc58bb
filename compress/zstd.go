package compress

// ZstdCompressor stores archives as a single Zstandard frame.
//
// Compress and Decompress live in zstd_pure.go (klauspost/compress) and
// zstd_gozstd.go (valyala/gozstd, enabled with the gozstd build tag).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// zstdLevel is the level used by both bindings. It matches klauspost's
// SpeedDefault.
const zstdLevel = 3
