package compress

import (
	"fmt"
	"slices"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash table
// between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

const (
	// lz4SizeLen is the image size prefix in front of the block.
	lz4SizeLen = 4
	// lz4MaxRatio bounds the image size a block of a given length can claim.
	// A sequence restores at most 255 bytes per encoded length byte.
	lz4MaxRatio = 256
)

// LZ4Compressor stores archives as a single LZ4 block behind the image size.
//
// The raw block format does not record how large the input was; the prefix
// lets Decompress size its buffer exactly and reject blocks that restore a
// different number of bytes.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress appends the size prefix and LZ4 block of image to dst.
func (c LZ4Compressor) Compress(dst, image []byte) ([]byte, error) {
	dst = endian.Container().AppendUint32(dst, uint32(len(image))) //nolint: gosec
	if len(image) == 0 {
		return dst, nil
	}

	start := len(dst)
	bound := lz4.CompressBlockBound(len(image))
	dst = slices.Grow(dst, bound)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(image, dst[start:start+bound])
	if err != nil {
		return nil, err
	}

	return dst[:start+n], nil
}

// Decompress appends the image held in a size-prefixed LZ4 block to dst.
func (c LZ4Compressor) Decompress(dst, archive []byte) ([]byte, error) {
	if len(archive) == 0 {
		return dst, nil
	}
	if len(archive) < lz4SizeLen {
		return nil, fmt.Errorf("%w: %d byte lz4 archive", errs.ErrCorruptArchive, len(archive))
	}

	size := int64(endian.Container().Uint32(archive))
	block := archive[lz4SizeLen:]
	if size == 0 {
		if len(block) != 0 {
			return nil, fmt.Errorf("%w: %d trailing bytes after empty image", errs.ErrCorruptArchive, len(block))
		}

		return dst, nil
	}
	if size > int64(len(block))*lz4MaxRatio {
		return nil, fmt.Errorf("%w: %d byte block cannot hold a %d byte image",
			errs.ErrCorruptArchive, len(block), size)
	}

	start := len(dst)
	dst = slices.Grow(dst, int(size))
	n, err := lz4.UncompressBlock(block, dst[start:start+int(size)])
	if err != nil {
		return nil, corrupt(err)
	}
	if int64(n) != size {
		return nil, fmt.Errorf("%w: block restored %d of %d bytes", errs.ErrCorruptArchive, n, size)
	}

	return dst[:start+n], nil
}
