package sample

import (
	"fmt"
	"math"

	"github.com/x448/float16"

	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
	"github.com/arloliu/ldfile/format"
)

// Unmarshal decodes tightly packed samples of datatype dt from raw.
//
// Marker channels decode to I16 or I32 samples, F16 channels to F32 samples.
// TypeInvalid has no width and always yields an empty slice.
//
// Returns:
//   - []Sample: newly allocated samples, owned by the caller
//   - error: ErrTruncatedRecord if len(raw) is not a multiple of the sample width
func Unmarshal(engine endian.EndianEngine, raw []byte, dt format.Datatype) ([]Sample, error) {
	width := int(dt.Size())
	if width == 0 {
		return []Sample{}, nil
	}
	if len(raw)%width != 0 {
		return nil, fmt.Errorf("%w: %d bytes of %s samples", errs.ErrTruncatedRecord, len(raw), dt)
	}

	samples := make([]Sample, len(raw)/width)
	for i := range samples {
		b := raw[i*width:]
		switch dt {
		case format.TypeI8:
			samples[i] = I8(int8(b[0]))
		case format.TypeI16, format.TypeBeacon16:
			samples[i] = I16(int16(engine.Uint16(b)))
		case format.TypeI32, format.TypeBeacon32:
			samples[i] = I32(int32(engine.Uint32(b)))
		case format.TypeF16:
			samples[i] = F32(float16.Frombits(engine.Uint16(b)).Float32())
		case format.TypeF32:
			samples[i] = F32(math.Float32frombits(engine.Uint32(b)))
		}
	}

	return samples, nil
}

// Append encodes samples as datatype dt and appends them to dst.
//
// Every sample must have the Go type dt decodes to (see Unmarshal). A TypeInvalid
// channel accepts no samples.
//
// Returns:
//   - []byte: the extended buffer
//   - error: ErrSampleTypeMismatch for a sample of the wrong type
func Append(engine endian.EndianEngine, dst []byte, dt format.Datatype, samples []Sample) ([]byte, error) {
	for i, s := range samples {
		switch v := s.(type) {
		case I8:
			if dt != format.TypeI8 {
				return dst, mismatch(i, s, dt)
			}
			dst = append(dst, byte(v))
		case I16:
			if dt != format.TypeI16 && dt != format.TypeBeacon16 {
				return dst, mismatch(i, s, dt)
			}
			dst = engine.AppendUint16(dst, uint16(v))
		case I32:
			if dt != format.TypeI32 && dt != format.TypeBeacon32 {
				return dst, mismatch(i, s, dt)
			}
			dst = engine.AppendUint32(dst, uint32(v))
		case F32:
			switch dt { //nolint: exhaustive
			case format.TypeF16:
				dst = engine.AppendUint16(dst, float16.Fromfloat32(float32(v)).Bits())
			case format.TypeF32:
				dst = engine.AppendUint32(dst, math.Float32bits(float32(v)))
			default:
				return dst, mismatch(i, s, dt)
			}
		default:
			return dst, mismatch(i, s, dt)
		}
	}

	return dst, nil
}

func mismatch(i int, s Sample, dt format.Datatype) error {
	return fmt.Errorf("%w: sample %d is %T, channel is %s", errs.ErrSampleTypeMismatch, i, s, dt)
}
