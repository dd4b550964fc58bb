package section

import (
	"fmt"

	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
	"github.com/arloliu/ldfile/format"
)

// ChannelFlag distinguishes ordinary data channels from the marker channel.
type ChannelFlag uint8

const (
	FlagDefault ChannelFlag = 0x0 // FlagDefault marks an ordinary data channel.
	FlagBeacon  ChannelFlag = 0x1 // FlagBeacon marks the lap marker channel.
)

func (f ChannelFlag) String() string {
	switch f {
	case FlagDefault:
		return "Default"
	case FlagBeacon:
		return "Beacon"
	default:
		return fmt.Sprintf("ChannelFlag(0x%x)", uint8(f))
	}
}

// ChannelMetadata is one block of the on-disk channel list.
//
// Blocks form a doubly linked list through PrevAddr and NextAddr. Sample data
// lives elsewhere in the file, at DataAddr.
type ChannelMetadata struct {
	PrevAddr uint32 // byte offset 0-3
	NextAddr uint32 // byte offset 4-7

	DataAddr  uint32 // byte offset 8-11
	DataCount uint32 // byte offset 12-15

	// Counter is an opaque per-block value. It is preserved as read.
	Counter uint16 // byte offset 16-17

	Datatype format.Datatype // type code and size at byte offset 18-21
	// SampleRate in Hz.
	SampleRate uint16 // byte offset 22-23

	// Offset is stored but not applied when decoding samples.
	Offset    uint16 // byte offset 24-25
	Mul       uint16 // byte offset 26-27
	Scale     uint16 // byte offset 28-29
	DecPlaces int16  // byte offset 30-31

	Name      string // max 32 chars
	ShortName string // max 8 chars
	Unit      string // max 12 chars

	Flag ChannelFlag // byte offset 84
}

// DataSize returns the size in bytes of the channel's sample data.
func (c ChannelMetadata) DataSize() uint32 {
	return c.DataCount * uint32(c.Datatype.Size())
}

// IsBeacon reports whether the channel can serve as the lap timing source: the
// flag must be FlagBeacon and the datatype a marker kind.
func (c ChannelMetadata) IsBeacon() bool {
	return c.Flag == FlagBeacon && c.Datatype.IsBeacon()
}

// Parse parses the block from exactly ChannelMetaSize bytes.
//
// Returns:
//   - error: ErrInvalidRecordSize, or an UnrecognizedDatatypeError for an unmapped type code
func (c *ChannelMetadata) Parse(data []byte) error {
	if len(data) != ChannelMetaSize {
		return errs.ErrInvalidRecordSize
	}

	engine := endian.Container()

	dt, err := format.FromCode(engine.Uint16(data[chTypeCodeOff:]), engine.Uint16(data[chTypeSizeOff:]))
	if err != nil {
		return err
	}

	c.PrevAddr = engine.Uint32(data[chPrevOff:])
	c.NextAddr = engine.Uint32(data[chNextOff:])
	c.DataAddr = engine.Uint32(data[chDataAddrOff:])
	c.DataCount = engine.Uint32(data[chDataCountOff:])
	c.Counter = engine.Uint16(data[chCounterOff:])
	c.Datatype = dt
	c.SampleRate = engine.Uint16(data[chSampleRateOff:])
	c.Offset = engine.Uint16(data[chOffsetOff:])
	c.Mul = engine.Uint16(data[chMulOff:])
	c.Scale = engine.Uint16(data[chScaleOff:])
	c.DecPlaces = int16(engine.Uint16(data[chDecPlacesOff:]))
	c.Name = fixedString(data[chNameOff : chNameOff+chanNameLen])
	c.ShortName = fixedString(data[chShortNameOff : chShortNameOff+chanShortLen])
	c.Unit = fixedString(data[chUnitOff : chUnitOff+chanUnitLen])
	c.Flag = ChannelFlag(data[chFlagOff])

	return nil
}

// Bytes serializes the block into a ChannelMetaSize byte slice.
func (c *ChannelMetadata) Bytes() []byte {
	return c.AppendBytes(make([]byte, 0, ChannelMetaSize))
}

// AppendBytes appends the serialized block to dst.
func (c *ChannelMetadata) AppendBytes(dst []byte) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, ChannelMetaSize)...)
	b := dst[start:]

	engine := endian.Container()

	engine.PutUint32(b[chPrevOff:], c.PrevAddr)
	engine.PutUint32(b[chNextOff:], c.NextAddr)
	engine.PutUint32(b[chDataAddrOff:], c.DataAddr)
	engine.PutUint32(b[chDataCountOff:], c.DataCount)
	engine.PutUint16(b[chCounterOff:], c.Counter)
	code, size := c.Datatype.Code()
	engine.PutUint16(b[chTypeCodeOff:], code)
	engine.PutUint16(b[chTypeSizeOff:], size)
	engine.PutUint16(b[chSampleRateOff:], c.SampleRate)
	engine.PutUint16(b[chOffsetOff:], c.Offset)
	engine.PutUint16(b[chMulOff:], c.Mul)
	engine.PutUint16(b[chScaleOff:], c.Scale)
	engine.PutUint16(b[chDecPlacesOff:], uint16(c.DecPlaces))
	putFixedString(b[chNameOff:chNameOff+chanNameLen], c.Name)
	putFixedString(b[chShortNameOff:chShortNameOff+chanShortLen], c.ShortName)
	putFixedString(b[chUnitOff:chUnitOff+chanUnitLen], c.Unit)
	b[chFlagOff] = byte(c.Flag)

	return dst
}

// ParseChannelMetadata parses a ChannelMetadata from at least ChannelMetaSize bytes.
func ParseChannelMetadata(data []byte) (ChannelMetadata, error) {
	if len(data) < ChannelMetaSize {
		return ChannelMetadata{}, errs.ErrTruncatedRecord
	}

	c := ChannelMetadata{}
	if err := c.Parse(data[:ChannelMetaSize]); err != nil {
		return ChannelMetadata{}, err
	}

	return c, nil
}
