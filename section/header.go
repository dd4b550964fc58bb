package section

import (
	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
)

// Header is the fixed-size record at the start of every container.
//
// Pointer fields are absolute byte offsets into the same file. The writer
// recomputes them from the layout it produces.
type Header struct {
	// ChannelMetaPtr points at the first channel metadata block. Byte offset 0x008.
	ChannelMetaPtr uint32
	// ChannelDataPtr points at the start of the sample data region. Byte offset 0x00c.
	ChannelDataPtr uint32
	// EventPtr points at the event record, zero when absent. Byte offset 0x024.
	EventPtr uint32

	DeviceSerial  uint32
	DeviceType    string // max 8 chars
	DeviceVersion uint16

	// NumChannels is the declared channel count. Byte offset 0x056.
	NumChannels uint32

	Date string // max 16 chars, as written by the logger
	Time string // max 16 chars

	Driver       string // max 64 chars
	VehicleID    string // max 64 chars
	Venue        string // max 64 chars
	Session      string // max 64 chars
	ShortComment string // max 64 chars
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidRecordSize if data is not HeaderSize bytes
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidRecordSize
	}

	engine := endian.Container()

	h.ChannelMetaPtr = engine.Uint32(data[hdrChannelMetaOff:])
	h.ChannelDataPtr = engine.Uint32(data[hdrChannelDataOff:])
	h.EventPtr = engine.Uint32(data[hdrEventOff:])
	h.DeviceSerial = engine.Uint32(data[hdrDeviceSerialOff:])
	h.DeviceType = fixedString(data[hdrDeviceTypeOff : hdrDeviceTypeOff+deviceTypeLen])
	h.DeviceVersion = engine.Uint16(data[hdrDeviceVersionOff:])
	h.NumChannels = engine.Uint32(data[hdrNumChannelsOff:])
	h.Date = fixedString(data[hdrDateOff : hdrDateOff+dateLen])
	h.Time = fixedString(data[hdrTimeOff : hdrTimeOff+dateLen])
	h.Driver = fixedString(data[hdrDriverOff : hdrDriverOff+nameLen])
	h.VehicleID = fixedString(data[hdrVehicleIDOff : hdrVehicleIDOff+nameLen])
	h.Venue = fixedString(data[hdrVenueOff : hdrVenueOff+nameLen])
	h.ShortComment = fixedString(data[hdrShortCommentOff : hdrShortCommentOff+nameLen])
	h.Session = fixedString(data[hdrSessionOff : hdrSessionOff+nameLen])

	return nil
}

// Bytes serializes the Header into a HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endian.Container()

	engine.PutUint32(b[hdrMarkerOff:], headerMarker)
	engine.PutUint32(b[hdrChannelMetaOff:], h.ChannelMetaPtr)
	engine.PutUint32(b[hdrChannelDataOff:], h.ChannelDataPtr)
	engine.PutUint32(b[hdrEventOff:], h.EventPtr)
	engine.PutUint16(b[hdrConstOff:], headerConstA)
	engine.PutUint16(b[hdrConstOff+2:], headerConstB)
	engine.PutUint16(b[hdrConstOff+4:], headerConstC)
	engine.PutUint32(b[hdrDeviceSerialOff:], h.DeviceSerial)
	putFixedString(b[hdrDeviceTypeOff:hdrDeviceTypeOff+deviceTypeLen], h.DeviceType)
	engine.PutUint16(b[hdrDeviceVersionOff:], h.DeviceVersion)
	engine.PutUint16(b[hdrConstDOff:], headerConstD)
	engine.PutUint32(b[hdrNumChannelsOff:], h.NumChannels)
	putFixedString(b[hdrDateOff:hdrDateOff+dateLen], h.Date)
	putFixedString(b[hdrTimeOff:hdrTimeOff+dateLen], h.Time)
	putFixedString(b[hdrDriverOff:hdrDriverOff+nameLen], h.Driver)
	putFixedString(b[hdrVehicleIDOff:hdrVehicleIDOff+nameLen], h.VehicleID)
	putFixedString(b[hdrVenueOff:hdrVenueOff+nameLen], h.Venue)
	engine.PutUint32(b[hdrProLogOff:], headerProLogMagic)
	putFixedString(b[hdrShortCommentOff:hdrShortCommentOff+nameLen], h.ShortComment)
	putFixedString(b[hdrSessionOff:hdrSessionOff+nameLen], h.Session)

	return b
}

// ParseHeader parses a Header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least HeaderSize bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrTruncatedRecord if data is shorter than HeaderSize
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrTruncatedRecord
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
