package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/arloliu/ldfile/errs"
	"github.com/arloliu/ldfile/format"
	"github.com/stretchr/testify/require"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// containerLike builds a buffer shaped like a container: a mostly empty
// header followed by slowly varying 16-bit samples.
func containerLike(samples int) []byte {
	buf := make([]byte, 1762, 1762+samples*2)
	buf[0] = 0x40
	for i := range samples {
		v := int16(1000 + (i%50)*3)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
	}

	return buf
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "archive")
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x7f), "archive")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Contains(t, err.Error(), "archive")
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionS2)
	require.NoError(t, err)
	require.IsType(t, S2Compressor{}, codec)

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestStats(t *testing.T) {
	s := Stats{OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, s.Ratio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)

	require.Zero(t, Stats{}.Ratio())
}

func TestCompressDecompress(t *testing.T) {
	data := containerLike(4096)

	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			out, stats, err := Compress(ct, nil, data)
			require.NoError(t, err)
			require.Equal(t, ct, stats.Algorithm)
			require.Equal(t, int64(len(data)), stats.OriginalSize)
			require.Equal(t, int64(len(out)), stats.CompressedSize)
			if ct != format.CompressionNone {
				require.Less(t, stats.Ratio(), 0.5)
			}

			back, err := Decompress(ct, nil, out)
			require.NoError(t, err)
			require.Equal(t, data, back)
		})
	}

	_, _, err := Compress(format.CompressionType(9), nil, data)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	_, err = Decompress(format.CompressionType(9), nil, data)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil, []byte{})
			require.NoError(t, err)

			decompressed, err := codec.Decompress(nil, compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)

			decompressed, err = codec.Decompress(nil, nil)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "single_byte", data: []byte{0x42}},
		{name: "header_only", data: containerLike(0)},
		{name: "short_session", data: containerLike(1024)},
		{name: "long_session", data: containerLike(256 * 1024)},
		{name: "repeated_pattern", data: bytes.Repeat([]byte("ABCD"), 100)},
		{name: "zeros", data: make([]byte, 1024*1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(nil, tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := codec.Decompress(nil, compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{name: "random_bytes", data: []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{name: "text_as_compressed", data: []byte("this is not compressed data")},
		{name: "corrupted_header", data: []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("NoOp codec doesn't validate data")
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(nil, input.data)
					require.ErrorIs(t, err, errs.ErrCorruptArchive)
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	data := containerLike(2048)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(nil, data)
			require.NoError(t, err)

			done := make(chan error, numGoroutines*2)
			for range numGoroutines {
				go func() {
					_, err := codec.Compress(nil, data)
					done <- err
				}()
				go func() {
					decompressed, err := codec.Decompress(nil, compressed)
					if err != nil {
						done <- err
						return
					}
					if !bytes.Equal(data, decompressed) {
						done <- fmt.Errorf("decompressed data mismatch")
						return
					}
					done <- nil
				}()
			}

			for range numGoroutines * 2 {
				require.NoError(t, <-done)
			}
		})
	}
}

func TestAllCodecs_AppendToDst(t *testing.T) {
	data := containerLike(512)
	prefix := []byte("archive:")

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			dst := append(make([]byte, 0, 16), prefix...)
			compressed, err := codec.Compress(dst, data)
			require.NoError(t, err)
			require.Equal(t, prefix, compressed[:len(prefix)])

			decompressed, err := codec.Decompress(append([]byte(nil), prefix...), compressed[len(prefix):])
			require.NoError(t, err)
			require.Equal(t, prefix, decompressed[:len(prefix)])
			require.Equal(t, data, decompressed[len(prefix):])
		})
	}
}

func TestCompress_StatsExcludeDst(t *testing.T) {
	data := containerLike(1024)
	dst := make([]byte, 100)

	out, stats, err := Compress(format.CompressionNone, dst, data)
	require.NoError(t, err)
	require.Len(t, out, 100+len(data))
	require.Equal(t, int64(len(data)), stats.CompressedSize)
	require.InDelta(t, 1.0, stats.Ratio(), 1e-9)
}

func TestLZ4_ImageSizePrefix(t *testing.T) {
	data := containerLike(1024)
	codec := NewLZ4Compressor()

	compressed, err := codec.Compress(nil, data)
	require.NoError(t, err)
	require.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(compressed))

	t.Run("size mismatch", func(t *testing.T) {
		damaged := bytes.Clone(compressed)
		binary.LittleEndian.PutUint32(damaged, uint32(len(data)-1))
		_, err := codec.Decompress(nil, damaged)
		require.ErrorIs(t, err, errs.ErrCorruptArchive)
	})

	t.Run("truncated block", func(t *testing.T) {
		_, err := codec.Decompress(nil, compressed[:len(compressed)/2])
		require.ErrorIs(t, err, errs.ErrCorruptArchive)
	})

	t.Run("short prefix", func(t *testing.T) {
		_, err := codec.Decompress(nil, compressed[:3])
		require.ErrorIs(t, err, errs.ErrCorruptArchive)
	})

	t.Run("bytes after empty image", func(t *testing.T) {
		_, err := codec.Decompress(nil, []byte{0, 0, 0, 0, 0x10})
		require.ErrorIs(t, err, errs.ErrCorruptArchive)
	})
}

func TestDecompress_CorruptArchive(t *testing.T) {
	data := containerLike(2048)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		t.Run(ct.String(), func(t *testing.T) {
			out, _, err := Compress(ct, nil, data)
			require.NoError(t, err)

			_, err = Decompress(ct, nil, out[:len(out)/2])
			require.ErrorIs(t, err, errs.ErrCorruptArchive)
		})
	}
}
