package compress

import (
	"fmt"
	"math"

	"github.com/arloliu/ldfile/errs"
	"github.com/arloliu/ldfile/format"
)

// MaxImageSize is the largest container image a codec accepts or restores.
const MaxImageSize = math.MaxUint32

// Compressor compresses a complete container image.
type Compressor interface {
	// Compress appends the archive form of image to dst and returns the
	// extended slice.
	Compress(dst, image []byte) ([]byte, error)
}

// Decompressor restores a container image produced by the matching Compressor.
type Decompressor interface {
	// Decompress appends the image held in archive to dst. An empty archive
	// is an empty image. It returns ErrCorruptArchive if archive is damaged,
	// was produced by a different algorithm or exceeds MaxImageSize.
	Decompress(dst, archive []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes a single archive compression.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns compressed size / original size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// CreateCodec creates a new Codec for the compression type. target names the
// caller in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrUnsupportedCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// Compress appends the archive of image to dst with the codec for
// compressionType.
//
// Returns:
//   - []byte: dst extended by the archive
//   - Stats: image size and archive size; the archive size excludes len(dst)
//   - error: ErrUnsupportedCompression, or an image larger than MaxImageSize
func Compress(compressionType format.CompressionType, dst, image []byte) ([]byte, Stats, error) {
	stats := Stats{Algorithm: compressionType, OriginalSize: int64(len(image))}

	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, stats, err
	}
	if int64(len(image)) > MaxImageSize {
		return nil, stats, fmt.Errorf("%s compression failed: image of %d bytes exceeds %d",
			compressionType, len(image), int64(MaxImageSize))
	}

	out, err := codec.Compress(dst, image)
	if err != nil {
		return nil, stats, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}
	stats.CompressedSize = int64(len(out) - len(dst))

	return out, stats, nil
}

// Decompress appends the image held in archive to dst with the codec for
// compressionType.
func Decompress(compressionType format.CompressionType, dst, archive []byte) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(dst, archive)
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", compressionType, err)
	}

	return out, nil
}

// corrupt wraps a library decode error as ErrCorruptArchive.
func corrupt(err error) error {
	return fmt.Errorf("%w: %w", errs.ErrCorruptArchive, err)
}
