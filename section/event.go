package section

import (
	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
)

// Event describes the event a session belongs to.
type Event struct {
	Name    string // max 64 chars
	Session string // max 64 chars
	Comment string // max 1024 chars

	// VenueAddr points at the venue record, zero when absent.
	VenueAddr uint32
	// WeatherAddr points at a weather record. The record itself is not modeled.
	WeatherAddr uint32
}

// Parse parses the event from exactly EventSize bytes.
func (e *Event) Parse(data []byte) error {
	if len(data) != EventSize {
		return errs.ErrInvalidRecordSize
	}

	engine := endian.Container()

	e.Name = fixedString(data[:nameLen])
	e.Session = fixedString(data[evtSessionOff : evtSessionOff+nameLen])
	e.Comment = fixedString(data[evtCommentOff : evtCommentOff+commentLen])
	e.VenueAddr = engine.Uint32(data[evtVenueOff:])
	e.WeatherAddr = engine.Uint32(data[evtWeatherOff:])

	return nil
}

// Bytes serializes the Event into an EventSize byte slice.
func (e *Event) Bytes() []byte {
	b := make([]byte, EventSize)

	engine := endian.Container()

	putFixedString(b[:nameLen], e.Name)
	putFixedString(b[evtSessionOff:evtSessionOff+nameLen], e.Session)
	putFixedString(b[evtCommentOff:evtCommentOff+commentLen], e.Comment)
	engine.PutUint32(b[evtVenueOff:], e.VenueAddr)
	engine.PutUint32(b[evtWeatherOff:], e.WeatherAddr)

	return b
}

// ParseEvent parses an Event from a byte slice of at least EventSize bytes.
func ParseEvent(data []byte) (Event, error) {
	if len(data) < EventSize {
		return Event{}, errs.ErrTruncatedRecord
	}

	e := Event{}
	if err := e.Parse(data[:EventSize]); err != nil {
		return Event{}, err
	}

	return e, nil
}
