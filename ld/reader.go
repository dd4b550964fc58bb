// Package ld reads and writes .ld telemetry containers.
//
// A container starts with a fixed header, optionally followed by event, venue
// and vehicle records, a doubly linked list of channel metadata blocks and the
// raw sample regions the blocks point at. Reader walks that structure on any
// io.ReadSeeker. Writer lays it out again from scratch, recomputing every
// pointer, so its output is always readable by Reader.
//
// Neither type is safe for concurrent use.
package ld

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
	"github.com/arloliu/ldfile/format"
	"github.com/arloliu/ldfile/internal/options"
	"github.com/arloliu/ldfile/sample"
	"github.com/arloliu/ldfile/section"
)

// Reader parses a container from a seekable stream.
//
// The header is read once and cached; every other read seeks to the record it
// needs, so callers can fetch a single channel's samples without touching the
// rest of the file.
type Reader struct {
	rs           io.ReadSeeker
	engine       endian.EndianEngine
	logger       *log.Logger
	channelLimit int

	size   int64 // stream size, -1 until known
	header *section.Header
}

// NewReader creates a Reader over rs.
//
// Returns:
//   - *Reader: the reader
//   - error: an invalid option
func NewReader(rs io.ReadSeeker, opts ...ReaderOption) (*Reader, error) {
	cfg := &readerConfig{logger: discardLogger()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, fmt.Errorf("ld: could not create reader: %w", err)
	}

	return &Reader{
		rs:           rs,
		engine:       endian.Container(),
		logger:       cfg.logger,
		channelLimit: cfg.channelLimit,
		size:         -1,
	}, nil
}

// streamSize returns the total size of the stream.
func (r *Reader) streamSize() (int64, error) {
	if r.size >= 0 {
		return r.size, nil
	}

	size, err := r.rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errs.IO("seek end", err)
	}
	r.size = size

	return size, nil
}

// readAt reads exactly n bytes at off. A short read is an ErrIO wrapping
// io.ErrUnexpectedEOF.
func (r *Reader) readAt(off int64, n int) ([]byte, error) {
	if _, err := r.rs.Seek(off, io.SeekStart); err != nil {
		return nil, errs.IO(fmt.Sprintf("seek 0x%x", off), err)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r.rs, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, errs.IO(fmt.Sprintf("read %d bytes at 0x%x", n, off), err)
	}

	return buf, nil
}

// readRecord reads a fixed-size record that a pointer field refers to.
func (r *Reader) readRecord(addr uint32, size int) ([]byte, error) {
	streamSize, err := r.streamSize()
	if err != nil {
		return nil, err
	}
	if int64(addr)+int64(size) > streamSize {
		return nil, fmt.Errorf("%w: 0x%x+%d beyond %d bytes", errs.ErrInvalidPointer, addr, size, streamSize)
	}

	return r.readAt(int64(addr), size)
}

// ReadHeader returns the header at offset 0.
//
// Returns:
//   - section.Header: the parsed header
//   - error: ErrTruncatedRecord if the stream is shorter than a header, ErrIO on a stream failure
func (r *Reader) ReadHeader() (section.Header, error) {
	if r.header != nil {
		return *r.header, nil
	}

	size, err := r.streamSize()
	if err != nil {
		return section.Header{}, fmt.Errorf("ld: could not read header: %w", err)
	}
	if size < section.HeaderSize {
		return section.Header{}, fmt.Errorf("ld: could not read header: %w: %d of %d bytes",
			errs.ErrTruncatedRecord, size, section.HeaderSize)
	}

	buf, err := r.readAt(0, section.HeaderSize)
	if err != nil {
		return section.Header{}, fmt.Errorf("ld: could not read header: %w", err)
	}

	hdr, err := section.ParseHeader(buf)
	if err != nil {
		return section.Header{}, fmt.Errorf("ld: could not parse header: %w", err)
	}
	r.header = &hdr

	return hdr, nil
}

// ReadEvent returns the event record, or nil when the header has no event pointer.
func (r *Reader) ReadEvent() (*section.Event, error) {
	hdr, err := r.ReadHeader()
	if err != nil {
		return nil, err
	}
	if hdr.EventPtr == 0 {
		return nil, nil //nolint: nilnil
	}

	buf, err := r.readRecord(hdr.EventPtr, section.EventSize)
	if err != nil {
		return nil, fmt.Errorf("ld: could not read event: %w", err)
	}

	event, err := section.ParseEvent(buf)
	if err != nil {
		return nil, fmt.Errorf("ld: could not parse event: %w", err)
	}

	return &event, nil
}

// ReadVenue returns the venue record, or nil when there is no event or the
// event has no venue pointer.
func (r *Reader) ReadVenue() (*section.Venue, error) {
	event, err := r.ReadEvent()
	if err != nil || event == nil || event.VenueAddr == 0 {
		return nil, err
	}

	buf, err := r.readRecord(event.VenueAddr, section.VenueSize)
	if err != nil {
		return nil, fmt.Errorf("ld: could not read venue: %w", err)
	}

	venue, err := section.ParseVenue(buf)
	if err != nil {
		return nil, fmt.Errorf("ld: could not parse venue: %w", err)
	}

	return &venue, nil
}

// ReadVehicle returns the vehicle record, or nil when there is no venue or the
// venue has no vehicle pointer.
func (r *Reader) ReadVehicle() (*section.Vehicle, error) {
	venue, err := r.ReadVenue()
	if err != nil || venue == nil || venue.VehicleAddr == 0 {
		return nil, err
	}

	buf, err := r.readRecord(venue.VehicleAddr, section.VehicleSize)
	if err != nil {
		return nil, fmt.Errorf("ld: could not read vehicle: %w", err)
	}

	vehicle, err := section.ParseVehicle(buf)
	if err != nil {
		return nil, fmt.Errorf("ld: could not parse vehicle: %w", err)
	}

	return &vehicle, nil
}

// maxChannels returns how many blocks ReadChannels may visit.
func (r *Reader) maxChannels(hdr section.Header) (int, error) {
	if r.channelLimit > 0 {
		return r.channelLimit, nil
	}
	if hdr.NumChannels > 0 {
		return int(hdr.NumChannels), nil
	}

	size, err := r.streamSize()
	if err != nil {
		return 0, err
	}

	return int(size / section.ChannelMetaSize), nil
}

// ReadChannels walks the channel metadata list from the header's list pointer.
//
// Traversal stops at a zero next pointer, at a block that was already visited
// (which covers self-references and longer cycles), or when the channel limit
// is reached. The last two cases are logged; the blocks read so far are
// returned without error.
//
// Returns:
//   - ChannelList: channels in traversal order, empty for a zero list pointer
//   - error: ErrInvalidPointer, ErrIO or an unrecognized datatype in a block
func (r *Reader) ReadChannels() (ChannelList, error) {
	hdr, err := r.ReadHeader()
	if err != nil {
		return ChannelList{}, err
	}

	limit, err := r.maxChannels(hdr)
	if err != nil {
		return ChannelList{}, fmt.Errorf("ld: could not read channels: %w", err)
	}

	list := newChannelList(min(limit, 1024))
	visited := make(map[uint32]struct{}, min(limit, 1024))

	for addr := hdr.ChannelMetaPtr; addr != 0; {
		if list.Len() >= limit {
			r.logger.Printf("channel list truncated at %d blocks, next block 0x%x", limit, addr)
			break
		}
		if _, seen := visited[addr]; seen {
			r.logger.Printf("channel list revisits block 0x%x after %d blocks", addr, list.Len())
			break
		}
		visited[addr] = struct{}{}

		buf, err := r.readRecord(addr, section.ChannelMetaSize)
		if err != nil {
			return ChannelList{}, fmt.Errorf("ld: could not read channel block %d: %w", list.Len(), err)
		}

		meta, err := section.ParseChannelMetadata(buf)
		if err != nil {
			return ChannelList{}, fmt.Errorf("ld: could not parse channel block at 0x%x: %w", addr, err)
		}
		list.add(meta)

		addr = meta.NextAddr
	}

	return list, nil
}

// ChannelData reads and decodes the samples of ch.
//
// Channels with the invalid datatype carry no samples and yield an empty slice.
//
// Returns:
//   - []sample.Sample: DataCount samples, owned by the caller
//   - error: ErrSpanOutOfBounds if the sample span exceeds the stream, ErrIO on a short read
func (r *Reader) ChannelData(ch section.ChannelMetadata) ([]sample.Sample, error) {
	if ch.Datatype == format.TypeInvalid {
		r.logger.Printf("channel %q has an invalid datatype, no samples read", ch.Name)
		return []sample.Sample{}, nil
	}

	span := int64(ch.DataCount) * int64(ch.Datatype.Size())
	if span == 0 {
		return []sample.Sample{}, nil
	}

	size, err := r.streamSize()
	if err != nil {
		return nil, fmt.Errorf("ld: could not read channel %q: %w", ch.Name, err)
	}
	if int64(ch.DataAddr)+span > size {
		return nil, fmt.Errorf("ld: could not read channel %q: %w: 0x%x+%d beyond %d bytes",
			ch.Name, errs.ErrSpanOutOfBounds, ch.DataAddr, span, size)
	}

	raw, err := r.readAt(int64(ch.DataAddr), int(span))
	if err != nil {
		return nil, fmt.Errorf("ld: could not read channel %q: %w", ch.Name, err)
	}

	samples, err := sample.Unmarshal(r.engine, raw, ch.Datatype)
	if err != nil {
		return nil, fmt.Errorf("ld: could not decode channel %q: %w", ch.Name, err)
	}

	return samples, nil
}

// ReadAll reads the header, the optional records and every channel with its samples.
func (r *Reader) ReadAll() (*File, error) {
	hdr, err := r.ReadHeader()
	if err != nil {
		return nil, err
	}

	f := &File{Header: hdr}
	if f.Event, err = r.ReadEvent(); err != nil {
		return nil, err
	}
	if f.Venue, err = r.ReadVenue(); err != nil {
		return nil, err
	}
	if f.Vehicle, err = r.ReadVehicle(); err != nil {
		return nil, err
	}

	list, err := r.ReadChannels()
	if err != nil {
		return nil, err
	}

	f.Channels = make([]Channel, 0, list.Len())
	for _, meta := range list.channels {
		samples, err := r.ChannelData(meta)
		if err != nil {
			return nil, err
		}
		f.Channels = append(f.Channels, Channel{Meta: meta, Samples: samples})
	}

	return f, nil
}
