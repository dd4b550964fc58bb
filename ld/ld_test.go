package ld

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/format"
	"github.com/arloliu/ldfile/sample"
	"github.com/arloliu/ldfile/section"
)

const (
	offEventPtr    = 0x024
	offNumChannels = 0x056

	offBlockNext      = 4
	offBlockDataCount = 12
	offBlockTypeCode  = 18
)

func testHeader() section.Header {
	return section.Header{
		DeviceSerial:  12007,
		DeviceType:    "ADL",
		DeviceVersion: 420,
		Date:          "23/11/2005",
		Time:          "09:53:00",
		Driver:        "Jane Doe",
		VehicleID:     "Formula 3",
		Venue:         "Calder",
		Session:       "2",
		ShortComment:  "Race",
	}
}

func testEvent() section.Event {
	return section.Event{Name: "F3 Round 7", Session: "Race 2", Comment: "dry, 21C"}
}

func testVenue() section.Venue {
	return section.Venue{Name: "Calder", Length: 2280000, BestLap: 63682}
}

func testVehicle() section.Vehicle {
	return section.Vehicle{
		ID:         "F3 #12",
		Desc:       "Dallara F305",
		EngineID:   "Opel",
		Weight:     550,
		FuelTank:   425,
		Type:       "Open wheel",
		DriveType:  "RWD",
		GearRatios: [section.GearCount]int16{3800, 2923, 2000, 1588, 1320, 1136, 1000},
		TrackWidth: 1500,
		WheelBase:  2750,
	}
}

func testMeta(name string, dt format.Datatype, count uint32) section.ChannelMetadata {
	return section.ChannelMetadata{
		DataCount:  count,
		Counter:    0x2ee1,
		Datatype:   dt,
		SampleRate: 10,
		Mul:        1,
		Scale:      1,
		DecPlaces:  1,
		Name:       name,
		ShortName:  name[:min(len(name), 8)],
		Unit:       "C",
	}
}

func testChannels() []Channel {
	beaconMeta := testMeta("Beacon", format.TypeBeacon16, 4)
	beaconMeta.Flag = section.FlagBeacon
	beaconMeta.Unit = ""

	return []Channel{
		{Meta: testMeta("Water Temp", format.TypeI16, 3), Samples: []sample.Sample{sample.I16(801), sample.I16(805), sample.I16(-12)}},
		{Meta: testMeta("Gear", format.TypeI8, 2), Samples: []sample.Sample{sample.I8(3), sample.I8(-1)}},
		{Meta: testMeta("Engine RPM", format.TypeI32, 2), Samples: []sample.Sample{sample.I32(123456), sample.I32(-7)}},
		{Meta: testMeta("Lambda", format.TypeF16, 3), Samples: []sample.Sample{sample.F32(1.5), sample.F32(-2.25), sample.F32(0)}},
		{Meta: testMeta("Throttle Pos", format.TypeF32, 2), Samples: []sample.Sample{sample.F32(99.125), sample.F32(0.5)}},
		{Meta: beaconMeta, Samples: []sample.Sample{sample.I16(100), sample.I16(-32767), sample.I16(0x4000 + 136), sample.I16(100)}},
	}
}

// encode writes a container with every record and the test channels.
func encode(t *testing.T, channels []Channel) []byte {
	t.Helper()

	var out bytes.Buffer
	w, err := NewWriter(&out, testHeader())
	require.NoError(t, err)

	w.WithEvent(testEvent()).WithVenue(testVenue()).WithVehicle(testVehicle())
	for _, ch := range channels {
		w.WithChannel(ch.Meta, ch.Samples)
	}
	require.NoError(t, w.Finish())

	return out.Bytes()
}

// encodeChannelsOnly writes a container without event, venue or vehicle, so
// the channel blocks start right after the header.
func encodeChannelsOnly(t *testing.T, channels []Channel) []byte {
	t.Helper()

	var out bytes.Buffer
	w, err := NewWriter(&out, testHeader())
	require.NoError(t, err)
	for _, ch := range channels {
		w.WithChannel(ch.Meta, ch.Samples)
	}
	require.NoError(t, w.Finish())

	return out.Bytes()
}

func blockAddr(i int) int {
	return section.HeaderSize + i*section.ChannelMetaSize
}

func putUint32(data []byte, off int, v uint32) {
	endian.Container().PutUint32(data[off:], v)
}

func newTestReader(t *testing.T, data []byte, opts ...ReaderOption) *Reader {
	t.Helper()

	r, err := NewReader(bytes.NewReader(data), opts...)
	require.NoError(t, err)

	return r
}

// shortReader reports the full stream size but stops reading at limit.
type shortReader struct {
	*bytes.Reader
	limit int64
}

func (s *shortReader) Read(p []byte) (int, error) {
	pos, _ := s.Reader.Seek(0, io.SeekCurrent)
	if pos >= s.limit {
		return 0, io.EOF
	}
	if int64(len(p)) > s.limit-pos {
		p = p[:s.limit-pos]
	}

	return s.Reader.Read(p)
}

type failingWriter struct {
	err error
}

func (f failingWriter) Write(p []byte) (int, error) {
	return 0, f.err
}
