// Package ldfile reads and writes .ld telemetry logs, plain or as compressed
// archives.
//
// The top-level functions wrap the ld package for the common case of loading
// a whole file into memory:
//
//	f, err := ldfile.Open("samples/Sample1.ld")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, lap := range ldfile.Laps(f) {
//	    fmt.Println(beacon.FormatLapTime(lap.LapTime))
//	}
//
// The archive compression is inferred from the file extension: ".ld" is
// stored as is, ".zst"/".zstd", ".s2" and ".lz4" wrap the container with the
// matching codec. For streaming access or partial reads, use ld.Reader directly.
package ldfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/arloliu/ldfile/beacon"
	"github.com/arloliu/ldfile/compress"
	"github.com/arloliu/ldfile/errs"
	"github.com/arloliu/ldfile/format"
	"github.com/arloliu/ldfile/internal/pool"
	"github.com/arloliu/ldfile/ld"
)

// Open reads the container at path.
//
// Plain .ld files are read through an ld.Reader on the open file. Archives are
// read into memory and decompressed first.
func Open(path string, opts ...ld.ReaderOption) (*ld.File, error) {
	ct := format.CompressionFromPath(path)
	if ct != format.CompressionNone {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errs.IO("open "+path, err)
		}

		return ReadBytes(data, ct, opts...)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open "+path, err)
	}
	defer fh.Close()

	r, err := ld.NewReader(fh, opts...)
	if err != nil {
		return nil, err
	}

	return r.ReadAll()
}

// ReadBytes decodes a container held in memory, compressed with ct.
//
// Archives are restored into a pooled buffer; the returned File does not
// reference data or the buffer.
func ReadBytes(data []byte, ct format.CompressionType, opts ...ld.ReaderOption) (*ld.File, error) {
	if ct == format.CompressionNone {
		return readImage(data, opts...)
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	image, err := compress.Decompress(ct, buf.B[:0], data)
	if err != nil {
		return nil, fmt.Errorf("ldfile: could not unpack archive: %w", err)
	}
	buf.B = image

	return readImage(image, opts...)
}

func readImage(image []byte, opts ...ld.ReaderOption) (*ld.File, error) {
	r, err := ld.NewReader(bytes.NewReader(image), opts...)
	if err != nil {
		return nil, err
	}

	return r.ReadAll()
}

// Encode serializes f and compresses it with ct.
//
// Returns:
//   - []byte: the encoded archive, owned by the caller
//   - compress.Stats: the container size before and after compression
//   - error: a Writer or codec error
func Encode(f *ld.File, ct format.CompressionType, opts ...ld.WriterOption) ([]byte, compress.Stats, error) {
	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if err := f.Encode(buf, opts...); err != nil {
		return nil, compress.Stats{}, err
	}

	out, stats, err := compress.Compress(ct, nil, buf.Bytes())
	if err != nil {
		return nil, stats, fmt.Errorf("ldfile: could not pack archive: %w", err)
	}

	return out, stats, nil
}

// WriteBytes serializes f and compresses it with ct.
func WriteBytes(f *ld.File, ct format.CompressionType, opts ...ld.WriterOption) ([]byte, error) {
	out, _, err := Encode(f, ct, opts...)
	return out, err
}

// Create writes f to path, compressed according to the path's extension.
// An existing file is truncated.
func Create(path string, f *ld.File, opts ...ld.WriterOption) error {
	data, err := WriteBytes(f, format.CompressionFromPath(path), opts...)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint: gosec
		return errs.IO("create "+path, err)
	}

	return nil
}

// Laps decodes the laps of f's marker channel. A file without a marker
// channel yields nil.
func Laps(f *ld.File) []beacon.Lap {
	return f.Laps()
}
