package compress

import (
	"fmt"
	"slices"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/ldfile/errs"
)

// S2Compressor stores archives as an S2 block. The block header carries the
// image size, so Decompress grows dst once.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress appends the S2 block of image to dst.
func (c S2Compressor) Compress(dst, image []byte) ([]byte, error) {
	n := s2.MaxEncodedLen(len(image))
	if n < 0 {
		return nil, s2.ErrTooLarge
	}

	start := len(dst)
	dst = slices.Grow(dst, n)
	block := s2.Encode(dst[start:start+n], image)

	return dst[:start+len(block)], nil
}

// Decompress appends the image held in an S2 block to dst.
func (c S2Compressor) Decompress(dst, archive []byte) ([]byte, error) {
	if len(archive) == 0 {
		return dst, nil
	}

	n, err := s2.DecodedLen(archive)
	if err != nil {
		return nil, corrupt(err)
	}
	if int64(n) > MaxImageSize {
		return nil, fmt.Errorf("%w: image of %d bytes", errs.ErrCorruptArchive, n)
	}

	start := len(dst)
	dst = slices.Grow(dst, n)
	image, err := s2.Decode(dst[start:start+n], archive)
	if err != nil {
		return nil, corrupt(err)
	}

	return dst[:start+len(image)], nil
}
