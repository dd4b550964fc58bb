//go:build gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/ldfile/errs"
)

// Compress appends the Zstandard frame of image to dst.
func (c ZstdCompressor) Compress(dst, image []byte) ([]byte, error) {
	return gozstd.CompressLevel(dst, image, zstdLevel), nil
}

// Decompress appends the image held in a Zstandard frame to dst.
func (c ZstdCompressor) Decompress(dst, archive []byte) ([]byte, error) {
	if len(archive) == 0 {
		return dst, nil
	}

	start := len(dst)
	out, err := gozstd.Decompress(dst, archive)
	if err != nil {
		return nil, corrupt(err)
	}
	if int64(len(out)-start) > MaxImageSize {
		return nil, fmt.Errorf("%w: image of %d bytes", errs.ErrCorruptArchive, len(out)-start)
	}

	return out, nil
}
