package ld

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
	"github.com/arloliu/ldfile/format"
	"github.com/arloliu/ldfile/internal/collision"
	"github.com/arloliu/ldfile/internal/hash"
	"github.com/arloliu/ldfile/internal/options"
	"github.com/arloliu/ldfile/internal/pool"
	"github.com/arloliu/ldfile/sample"
	"github.com/arloliu/ldfile/section"
)

// Writer serializes a container.
//
// Records and channels are collected by the With* builder steps; nothing is
// written until Finish, which lays out the whole file and writes it in a
// single call:
//
//	header | event | venue | vehicle | channel blocks | sample regions
//
// Every pointer in the header, the records and the channel blocks is
// recomputed from that layout.
//
// Note: The Writer is NOT reusable. After calling Finish, a new Writer must be created.
type Writer struct {
	w      io.Writer
	engine endian.EndianEngine
	logger *log.Logger

	header   section.Header
	event    *section.Event
	venue    *section.Venue
	vehicle  *section.Vehicle
	channels []Channel

	finished bool
}

// NewWriter creates a Writer that will write to w, starting from hdr.
//
// Returns:
//   - *Writer: the writer
//   - error: an invalid option
func NewWriter(w io.Writer, hdr section.Header, opts ...WriterOption) (*Writer, error) {
	cfg := &writerConfig{logger: discardLogger()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, fmt.Errorf("ld: could not create writer: %w", err)
	}

	return &Writer{
		w:      w,
		engine: endian.Container(),
		logger: cfg.logger,
		header: hdr,
	}, nil
}

// WithEvent sets the event record.
func (w *Writer) WithEvent(event section.Event) *Writer {
	w.event = &event
	return w
}

// WithVenue sets the venue record. It is only written together with an event.
func (w *Writer) WithVenue(venue section.Venue) *Writer {
	w.venue = &venue
	return w
}

// WithVehicle sets the vehicle record. It is only written together with a venue.
func (w *Writer) WithVehicle(vehicle section.Vehicle) *Writer {
	w.vehicle = &vehicle
	return w
}

// WithChannel appends a channel. Channels are written in the order they are added.
func (w *Writer) WithChannel(meta section.ChannelMetadata, samples []sample.Sample) *Writer {
	w.channels = append(w.channels, Channel{Meta: meta, Samples: samples})
	return w
}

// layout holds the computed record addresses of a container.
type layout struct {
	eventAddr   uint32
	venueAddr   uint32
	vehicleAddr uint32
	metaAddr    uint32
	dataAddr    uint32
	size        int64
}

// plan computes the layout and fixes up the channel blocks in place.
func (w *Writer) plan() (layout, error) {
	var l layout

	off := int64(section.HeaderSize)

	if w.venue != nil && w.event == nil {
		w.logger.Printf("venue %q dropped: no event record", w.venue.Name)
		w.venue = nil
	}
	if w.vehicle != nil && w.venue == nil {
		w.logger.Printf("vehicle %q dropped: no venue record", w.vehicle.ID)
		w.vehicle = nil
	}

	if w.event != nil {
		l.eventAddr = uint32(off)
		off += section.EventSize
	}
	if w.venue != nil {
		l.venueAddr = uint32(off)
		off += section.VenueSize
	}
	if w.vehicle != nil {
		l.vehicleAddr = uint32(off)
		off += section.VehicleSize
	}

	if len(w.channels) > 0 {
		l.metaAddr = uint32(off)
	}
	metaStart := off
	off += int64(len(w.channels)) * section.ChannelMetaSize
	l.dataAddr = uint32(off)

	names := collision.NewTracker(len(w.channels))
	for i := range w.channels {
		ch := &w.channels[i]

		if names.Track(ch.Meta.Name, hash.ChannelKey(ch.Meta.Name)) {
			w.logger.Printf("channel %q: name repeated, lookups return the first", ch.Meta.Name)
		}

		if ch.Meta.Datatype == format.TypeInvalid && len(ch.Samples) > 0 {
			w.logger.Printf("channel %q: %d samples dropped, invalid datatype", ch.Meta.Name, len(ch.Samples))
			ch.Samples = nil
		}

		count := uint32(len(ch.Samples)) //nolint: gosec
		if ch.Meta.DataCount != count {
			w.logger.Printf("channel %q: sample count corrected from %d to %d", ch.Meta.Name, ch.Meta.DataCount, count)
			ch.Meta.DataCount = count
		}

		ch.Meta.PrevAddr = 0
		if i > 0 {
			ch.Meta.PrevAddr = uint32(metaStart + int64(i-1)*section.ChannelMetaSize)
		}
		ch.Meta.NextAddr = 0
		if i < len(w.channels)-1 {
			ch.Meta.NextAddr = uint32(metaStart + int64(i+1)*section.ChannelMetaSize)
		}
		ch.Meta.DataAddr = uint32(off)

		off += int64(count) * int64(ch.Meta.Datatype.Size())
		if off > math.MaxUint32 {
			return layout{}, fmt.Errorf("%w: container exceeds 4GiB at channel %q", errs.ErrMalformed, ch.Meta.Name)
		}
	}
	l.size = off

	return l, nil
}

// Finish lays out and writes the container.
//
// A sample slice whose length disagrees with the block's DataCount wins, and
// samples of an invalid-datatype channel are dropped; both are logged.
// Strings longer than their field are truncated. On error the output may be
// partially written and must be discarded.
//
// Returns:
//   - error: ErrWriterFinished on a second call, ErrSampleTypeMismatch or ErrIO
func (w *Writer) Finish() error {
	if w.finished {
		return errs.ErrWriterFinished
	}
	w.finished = true

	l, err := w.plan()
	if err != nil {
		return fmt.Errorf("ld: could not lay out container: %w", err)
	}

	hdr := w.header
	hdr.EventPtr = l.eventAddr
	hdr.ChannelMetaPtr = l.metaAddr
	hdr.ChannelDataPtr = l.dataAddr
	hdr.NumChannels = uint32(len(w.channels)) //nolint: gosec

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)
	buf.Grow(int(l.size))

	_, _ = buf.Write(hdr.Bytes())

	if w.event != nil {
		event := *w.event
		event.VenueAddr = l.venueAddr
		event.WeatherAddr = 0
		_, _ = buf.Write(event.Bytes())
	}
	if w.venue != nil {
		venue := *w.venue
		venue.VehicleAddr = l.vehicleAddr
		_, _ = buf.Write(venue.Bytes())
	}
	if w.vehicle != nil {
		_, _ = buf.Write(w.vehicle.Bytes())
	}

	for i := range w.channels {
		buf.B = w.channels[i].Meta.AppendBytes(buf.B)
	}

	for _, ch := range w.channels {
		buf.B, err = sample.Append(w.engine, buf.B, ch.Meta.Datatype, ch.Samples)
		if err != nil {
			return fmt.Errorf("ld: could not encode channel %q: %w", ch.Meta.Name, err)
		}
	}

	if _, err := buf.WriteTo(w.w); err != nil {
		return fmt.Errorf("ld: could not write container: %w", errs.IO("write", err))
	}

	return nil
}
