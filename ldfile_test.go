package ldfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ldfile/beacon"
	"github.com/arloliu/ldfile/errs"
	"github.com/arloliu/ldfile/format"
	"github.com/arloliu/ldfile/ld"
	"github.com/arloliu/ldfile/sample"
	"github.com/arloliu/ldfile/section"
)

var testLaps = []beacon.Lap{
	{LapTime: 61250, Sectors: []int32{}},
	{LapTime: 58004, Sectors: []int32{20001, 19000}},
	{LapTime: 40746, Sectors: []int32{10000}},
}

func testFile(t *testing.T) *ld.File {
	t.Helper()

	markers, err := beacon.Encode(testLaps, 10, format.TypeBeacon16)
	require.NoError(t, err)

	speed := make([]sample.Sample, len(markers))
	for i := range speed {
		speed[i] = sample.I16(1200 + i%300)
	}

	return &ld.File{
		Header: section.Header{
			DeviceSerial: 12007,
			DeviceType:   "ADL",
			NumChannels:  2,
			Date:         "23/11/2005",
			Time:         "09:53:00",
			Driver:       "Jane Doe",
			Venue:        "Calder",
		},
		Event: &section.Event{Name: "F3 Round 7", Session: "Race 2"},
		Venue: &section.Venue{Name: "Calder", Length: 2280000},
		Channels: []ld.Channel{
			{
				Meta: section.ChannelMetadata{
					DataCount: uint32(len(speed)), Datatype: format.TypeI16, SampleRate: 10,
					Mul: 1, Scale: 1, DecPlaces: 1, Name: "Ground Speed", ShortName: "Gnd Spd", Unit: "km/h",
				},
				Samples: speed,
			},
			{
				Meta: section.ChannelMetadata{
					DataCount: uint32(len(markers)), Datatype: format.TypeBeacon16, SampleRate: 10,
					Mul: 1, Scale: 1, Name: "Beacon", ShortName: "Beacon", Flag: section.FlagBeacon,
				},
				Samples: markers,
			},
		},
	}
}

func TestCreateOpen(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"session.ld", "session.ld.zst", "session.ld.s2", "session.ld.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Create(path, testFile(t)))

			f, err := Open(path)
			require.NoError(t, err)
			require.Equal(t, "Jane Doe", f.Header.Driver)
			require.NotNil(t, f.Venue)
			require.Nil(t, f.Vehicle)
			require.Len(t, f.Channels, 2)
			require.Equal(t, testFile(t).Channels[0].Samples, f.Channels[0].Samples)

			require.Equal(t, testLaps, Laps(f))
		})
	}
}

func TestCreate_CompressesArchives(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.ld")
	packed := filepath.Join(dir, "a.ld.zst")

	require.NoError(t, Create(plain, testFile(t)))
	require.NoError(t, Create(packed, testFile(t)))

	plainInfo, err := os.Stat(plain)
	require.NoError(t, err)
	packedInfo, err := os.Stat(packed)
	require.NoError(t, err)
	require.Less(t, packedInfo.Size(), plainInfo.Size())
}

func TestEncode_Stats(t *testing.T) {
	out, stats, err := Encode(testFile(t), format.CompressionS2)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, stats.Algorithm)
	require.Equal(t, int64(len(out)), stats.CompressedSize)
	require.Greater(t, stats.OriginalSize, stats.CompressedSize)

	plain, stats, err := Encode(testFile(t), format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, stats.OriginalSize, int64(len(plain)))
}

func TestReadWriteBytes(t *testing.T) {
	data, err := WriteBytes(testFile(t), format.CompressionLZ4)
	require.NoError(t, err)

	f, err := ReadBytes(data, format.CompressionLZ4)
	require.NoError(t, err)
	require.Len(t, f.Channels, 2)

	_, err = ReadBytes(data, format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = ReadBytes([]byte("not a container"), format.CompressionNone)
	require.ErrorIs(t, err, errs.ErrTruncatedRecord)
	require.ErrorIs(t, err, errs.ErrMalformed)

	_, err = ReadBytes([]byte("not an archive"), format.CompressionZstd)
	require.ErrorIs(t, err, errs.ErrCorruptArchive)
}

func TestReadBytes_DetachedFromArchive(t *testing.T) {
	first := testFile(t)
	data, err := WriteBytes(first, format.CompressionS2)
	require.NoError(t, err)

	got, err := ReadBytes(data, format.CompressionS2)
	require.NoError(t, err)

	// a second archive restored through the same buffer pool
	second := testFile(t)
	second.Header.Driver = "Someone Else"
	second.Channels = second.Channels[1:]
	other, err := WriteBytes(second, format.CompressionS2)
	require.NoError(t, err)
	_, err = ReadBytes(other, format.CompressionS2)
	require.NoError(t, err)

	want, err := ReadBytes(data, format.CompressionS2)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, first.Header.Driver, got.Header.Driver)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.ld"))
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(filepath.Join(t.TempDir(), "missing.ld.zst"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLaps_NoBeacon(t *testing.T) {
	f := testFile(t)
	f.Channels = f.Channels[:1]
	require.Nil(t, Laps(f))
}
