// Package sample converts raw stored channel samples into engineering values.
//
// A Sample is one of I8, I16, I32 or F32, mirroring the representations a
// container can hold. Half precision (F16) channels are widened to F32 on read.
//
// The engineering value of a sample is
//
//	raw / scale * 10^-decPlaces * mul
//
// The channel's offset field is NOT applied. Callers that rely on offset
// correction will get numerically wrong results for channels with a non-zero offset.
package sample

import (
	"math"

	"github.com/arloliu/ldfile/section"
)

// Sample is a raw stored value. The set of implementations is closed.
type Sample interface {
	// Raw returns the stored value widened to float64, without scaling.
	Raw() float64

	sealed()
}

type (
	I8  int8
	I16 int16
	I32 int32
	F32 float32
)

func (v I8) Raw() float64  { return float64(v) }
func (v I16) Raw() float64 { return float64(v) }
func (v I32) Raw() float64 { return float64(v) }
func (v F32) Raw() float64 { return float64(v) }

func (I8) sealed()  {}
func (I16) sealed() {}
func (I32) sealed() {}
func (F32) sealed() {}

// Decode returns the engineering value of s for channel ch.
//
// The value is divided by the scale, multiplied by ten to the negative decimal
// place count and then by the multiplier. ch.Offset is ignored.
func Decode(s Sample, ch section.ChannelMetadata) float64 {
	v := s.Raw()
	v /= float64(ch.Scale)
	v *= math.Pow10(-int(ch.DecPlaces))
	v *= float64(ch.Mul)

	return v
}

// Values decodes every sample of a channel.
func Values(samples []Sample, ch section.ChannelMetadata) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = Decode(s, ch)
	}

	return values
}
