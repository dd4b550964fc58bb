package compress

// NoOpCompressor stores the image as is. It backs plain .ld files.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress appends image to dst unchanged.
func (c NoOpCompressor) Compress(dst, image []byte) ([]byte, error) {
	return append(dst, image...), nil
}

// Decompress appends archive to dst unchanged.
func (c NoOpCompressor) Decompress(dst, archive []byte) ([]byte, error) {
	return append(dst, archive...), nil
}
