package ld

import (
	"io"

	"github.com/arloliu/ldfile/beacon"
	"github.com/arloliu/ldfile/sample"
	"github.com/arloliu/ldfile/section"
)

// Channel pairs a channel metadata block with its samples.
type Channel struct {
	Meta    section.ChannelMetadata
	Samples []sample.Sample
}

// Values returns the engineering values of the channel's samples.
func (c Channel) Values() []float64 {
	return sample.Values(c.Samples, c.Meta)
}

// File is a fully loaded container.
//
// Event, Venue and Vehicle are nil when the container does not carry them.
type File struct {
	Header   section.Header
	Event    *section.Event
	Venue    *section.Venue
	Vehicle  *section.Vehicle
	Channels []Channel
}

// ChannelList returns the metadata of every channel as a ChannelList.
func (f *File) ChannelList() ChannelList {
	l := newChannelList(len(f.Channels))
	for _, ch := range f.Channels {
		l.add(ch.Meta)
	}

	return l
}

// Channel returns the first channel named name.
func (f *File) Channel(name string) (Channel, bool) {
	for _, ch := range f.Channels {
		if ch.Meta.Name == name {
			return ch, true
		}
	}

	return Channel{}, false
}

// Beacon returns the lap marker channel, the first channel that qualifies as
// one in the ChannelList order.
func (f *File) Beacon() (Channel, bool) {
	i := beacon.FindIndex(f.ChannelList().channels)
	if i < 0 {
		return Channel{}, false
	}

	return f.Channels[i], true
}

// Laps decodes the laps of the marker channel. A file without a marker
// channel yields nil.
func (f *File) Laps() []beacon.Lap {
	ch, ok := f.Beacon()
	if !ok {
		return nil
	}

	return beacon.Laps(ch.Meta, ch.Samples)
}

// Encode writes f to w through a Writer.
func (f *File) Encode(w io.Writer, opts ...WriterOption) error {
	writer, err := NewWriter(w, f.Header, opts...)
	if err != nil {
		return err
	}

	if f.Event != nil {
		writer.WithEvent(*f.Event)
	}
	if f.Venue != nil {
		writer.WithVenue(*f.Venue)
	}
	if f.Vehicle != nil {
		writer.WithVehicle(*f.Vehicle)
	}
	for _, ch := range f.Channels {
		writer.WithChannel(ch.Meta, ch.Samples)
	}

	return writer.Finish()
}
