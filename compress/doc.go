// Package compress provides the codecs used to store whole .ld containers as
// compressed archives.
//
// A container image is assembled in memory and handed to a Codec as a single
// block. Codecs append to a caller supplied slice, so the image and the archive
// can both live in pooled buffers. The algorithm is picked from the archive
// file extension (see format.CompressionFromPath):
//
//   - .ld: none
//   - .ld.zst / .ld.zstd: Zstandard frame
//   - .ld.s2: S2 block
//   - .ld.lz4: LZ4 block behind a 4-byte little-endian image size
//
// Images never exceed MaxImageSize, the reach of the container's 32-bit
// pointers; archives that decode beyond it are rejected as ErrCorruptArchive.
//
// Zstandard uses klauspost/compress by default. Building with the gozstd tag
// switches to the cgo binding from valyala/gozstd; both produce standard zstd
// frames, so archives written by one build read back in the other.
//
// All codecs are safe for concurrent use.
package compress
