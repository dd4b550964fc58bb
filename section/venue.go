package section

import (
	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
)

// Venue describes the track.
type Venue struct {
	Name string // max 64 chars
	// Length is the track length in millimeters.
	Length int32
	// BestLap is the venue best lap in milliseconds.
	BestLap int32

	// VehicleAddr points at the vehicle record, zero when absent.
	VehicleAddr uint32
}

// Parse parses the venue from exactly VenueSize bytes.
func (v *Venue) Parse(data []byte) error {
	if len(data) != VenueSize {
		return errs.ErrInvalidRecordSize
	}

	engine := endian.Container()

	v.Name = fixedString(data[:nameLen])
	v.Length = int32(engine.Uint32(data[venLengthOff:]))
	v.BestLap = int32(engine.Uint32(data[venBestLapOff:]))
	v.VehicleAddr = engine.Uint32(data[venVehicleOff:])

	return nil
}

// Bytes serializes the Venue into a VenueSize byte slice.
func (v *Venue) Bytes() []byte {
	b := make([]byte, VenueSize)

	engine := endian.Container()

	putFixedString(b[:nameLen], v.Name)
	engine.PutUint32(b[venLengthOff:], uint32(v.Length))
	engine.PutUint32(b[venBestLapOff:], uint32(v.BestLap))
	engine.PutUint32(b[venVehicleOff:], v.VehicleAddr)

	return b
}

// ParseVenue parses a Venue from a byte slice of at least VenueSize bytes.
func ParseVenue(data []byte) (Venue, error) {
	if len(data) < VenueSize {
		return Venue{}, errs.ErrTruncatedRecord
	}

	v := Venue{}
	if err := v.Parse(data[:VenueSize]); err != nil {
		return Venue{}, err
	}

	return v, nil
}
