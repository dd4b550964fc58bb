package ld

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ldfile/beacon"
	"github.com/arloliu/ldfile/format"
	"github.com/arloliu/ldfile/sample"
	"github.com/arloliu/ldfile/section"
)

func TestBeaconChannelThroughContainer(t *testing.T) {
	laps := []beacon.Lap{
		{LapTime: 94136, Sectors: []int32{43547, 36838}},
		{LapTime: 65163, Sectors: []int32{18894, 32856}},
		{LapTime: 63682, Sectors: []int32{18301, 31888}},
		{LapTime: 65192, Sectors: []int32{19027, 32806}},
		{LapTime: 63759, Sectors: []int32{18331, 31666}},
		{LapTime: 102068, Sectors: []int32{21935, 33752}},
	}
	samples, err := beacon.Encode(laps, 1, format.TypeBeacon16)
	require.NoError(t, err)

	meta := section.ChannelMetadata{
		DataCount:  uint32(len(samples)),
		Datatype:   format.TypeBeacon16,
		SampleRate: 1,
		Mul:        1,
		Scale:      1,
		Name:       "Beacon",
		ShortName:  "Beacon",
		Flag:       section.FlagBeacon,
	}

	var out bytes.Buffer
	w, err := NewWriter(&out, testHeader())
	require.NoError(t, err)
	w.WithChannel(testMeta("Speed", format.TypeI16, 0), nil).WithChannel(meta, samples)
	require.NoError(t, w.Finish())

	r := newTestReader(t, out.Bytes())
	list, err := r.ReadChannels()
	require.NoError(t, err)

	ch, ok := list.Beacon()
	require.True(t, ok)
	found, ok := beacon.FindChannel(list.All())
	require.True(t, ok)
	require.Equal(t, ch, found)

	data, err := r.ChannelData(ch)
	require.NoError(t, err)
	require.Len(t, data, 454)
	require.Equal(t, laps, beacon.Laps(ch, data))

	f, err := r.ReadAll()
	require.NoError(t, err)
	require.Equal(t, laps, f.Laps())
}

func TestFile_Beacon(t *testing.T) {
	// a plain channel sharing the marker channel's name comes first
	decoy := Channel{Meta: testMeta("Beacon", format.TypeI16, 1), Samples: []sample.Sample{sample.I16(100)}}
	marker := Channel{
		Meta: section.ChannelMetadata{
			DataCount: 1, Datatype: format.TypeBeacon16, SampleRate: 1, Mul: 1, Scale: 1,
			Name: "Beacon", Flag: section.FlagBeacon,
		},
		Samples: []sample.Sample{sample.I16(0)},
	}

	f := &File{Channels: []Channel{decoy, marker}}
	got, ok := f.Beacon()
	require.True(t, ok)
	require.Equal(t, marker, got)
	require.Equal(t, []beacon.Lap{{LapTime: 1000, Sectors: []int32{}}}, f.Laps())

	f.Channels = f.Channels[:1]
	_, ok = f.Beacon()
	require.False(t, ok)
	require.Nil(t, f.Laps())
}
