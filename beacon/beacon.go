// Package beacon reconstructs lap and sector times from the marker channel
// of a container, and builds marker channels from known laps.
//
// The marker channel idles at a small baseline. Each timing event is a pulse:
// the value drops far below zero, then jumps to 0x4000 plus the number of
// milliseconds between the last whole second and the event, then returns to
// the baseline. A return to 100 closes a lap, a return to 56 records a sector
// split.
package beacon

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/arloliu/ldfile/format"
	"github.com/arloliu/ldfile/sample"
	"github.com/arloliu/ldfile/section"
)

const (
	// lowFloor bounds the normal envelope from below.
	lowFloor = math.MinInt8
	// flankBias is added to the millisecond offset on the rising edge.
	flankBias = 0x4000
	// sectorMarker is the baseline value that follows a sector split.
	sectorMarker = 56
	// lapMarker is the baseline value that follows a lap boundary.
	lapMarker = 100
	// lastLow is the reference for the deepest trough. It is never updated.
	lastLow = math.MinInt32
)

// Lap is one lap. The first lap of a session is the out-lap and the last one
// the in-lap.
type Lap struct {
	// LapTime in milliseconds.
	LapTime int32
	// Sectors holds the sector times in milliseconds, excluding the final
	// sector. The count may differ from lap to lap.
	Sectors []int32
}

// Duration returns the lap time as a time.Duration.
func (l Lap) Duration() time.Duration {
	return time.Duration(l.LapTime) * time.Millisecond
}

// FinalSector returns the time of the last sector, which is not stored.
func (l Lap) FinalSector() int32 {
	final := l.LapTime
	for _, s := range l.Sectors {
		final -= s
	}

	return final
}

// FindIndex returns the index of the first channel flagged as beacon whose
// datatype is a marker kind, or -1 when there is none.
func FindIndex(channels []section.ChannelMetadata) int {
	return slices.IndexFunc(channels, section.ChannelMetadata.IsBeacon)
}

// FindChannel returns the first channel flagged as beacon whose datatype is a
// marker kind.
func FindChannel(channels []section.ChannelMetadata) (section.ChannelMetadata, bool) {
	i := FindIndex(channels)
	if i < 0 {
		return section.ChannelMetadata{}, false
	}

	return channels[i], true
}

type timestamp struct {
	ms     int64
	sector bool
}

// Laps decodes the laps encoded in a marker channel.
//
// It never fails. A channel that is not a marker channel yields a single lap
// spanning its recorded duration, and so does a marker channel without pulses.
// A zero sample rate yields a single zero-length lap. Float and 8-bit samples
// are read as zero.
func Laps(ch section.ChannelMetadata, samples []sample.Sample) []Lap {
	if ch.SampleRate == 0 {
		return []Lap{{Sectors: []int32{}}}
	}
	rate := int64(ch.SampleRate)

	if !ch.IsBeacon() {
		return []Lap{{LapTime: int32(int64(ch.DataCount) * 1000 / rate), Sectors: []int32{}}}
	}

	var stamps []timestamp
	lastNormal := int64(0)

	for i, s := range samples {
		index := int64(i)
		v := markerValue(s)

		switch {
		case v > lowFloor && v < flankBias:
			// returning from a pulse: the baseline tells a sector from a lap
			if lastNormal != index-1 && v == sectorMarker && len(stamps) > 0 {
				stamps[len(stamps)-1].sector = true
			}
			lastNormal = index
		case v < lastLow/2:
			// trough of the pulse
		case v < 0:
			// first step down
		default:
			ms := (lastNormal/rate)*1000 + (v - flankBias)
			// a peak spanning several samples yields the same timestamp
			if len(stamps) == 0 || stamps[len(stamps)-1].ms != ms {
				stamps = append(stamps, timestamp{ms: ms})
			}
		}
	}

	laps := make([]Lap, 0, len(stamps)+1)
	sectors := []int32{}
	var lastLap, lastSector int64

	for _, ts := range stamps {
		if ts.sector {
			sectors = append(sectors, int32(ts.ms-lastSector))
			lastSector = ts.ms

			continue
		}

		laps = append(laps, Lap{LapTime: int32(ts.ms - lastLap), Sectors: sectors})
		sectors = []int32{}
		lastLap = ts.ms
		lastSector = ts.ms
	}

	inLap := int64(len(samples))*1000/rate - lastLap
	laps = append(laps, Lap{LapTime: int32(inLap), Sectors: sectors})

	return laps
}

func markerValue(s sample.Sample) int64 {
	switch v := s.(type) {
	case sample.I16:
		return int64(v)
	case sample.I32:
		return int64(v)
	default:
		return 0
	}
}

// FlyingLaps drops the out-lap and the in-lap.
func FlyingLaps(laps []Lap) []Lap {
	if len(laps) <= 2 {
		return []Lap{}
	}

	return laps[1 : len(laps)-1]
}

// FormatLapTime formats milliseconds as MM:SS.mmm.
func FormatLapTime(ms int32) string {
	sign := ""
	v := int64(ms)
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%02d:%02d.%03d", sign, v/60000, v/1000%60, v%1000)
}

// Encode builds the samples of a marker channel that decodes back to laps at
// the given sample rate.
//
// Each boundary is placed on the sample at its last whole second, so
// boundaries must be at least four samples apart. The session length is the
// sum of the lap times, truncated to whole sample periods, which also
// truncates the in-lap when the total is not a multiple of the period.
//
// Returns:
//   - []sample.Sample: I16 samples for TypeBeacon16, I32 samples for TypeBeacon32
//   - error: invalid laps, a zero rate or a non-marker datatype
func Encode(laps []Lap, rate uint16, dt format.Datatype) ([]sample.Sample, error) {
	if rate == 0 {
		return nil, fmt.Errorf("beacon: sample rate must be positive")
	}
	if !dt.IsBeacon() {
		return nil, fmt.Errorf("beacon: %s is not a marker datatype", dt)
	}

	type event struct {
		ms     int64
		sector bool
	}

	var events []event
	var total int64
	for i, lap := range laps {
		if lap.LapTime <= 0 {
			return nil, fmt.Errorf("beacon: lap %d has non-positive time %d", i, lap.LapTime)
		}
		if lap.FinalSector() <= 0 {
			return nil, fmt.Errorf("beacon: lap %d sectors exceed the lap time", i)
		}

		at := total
		for _, s := range lap.Sectors {
			if s <= 0 {
				return nil, fmt.Errorf("beacon: lap %d has non-positive sector %d", i, s)
			}
			at += int64(s)
			events = append(events, event{ms: at, sector: true})
		}
		total += int64(lap.LapTime)

		// the last lap is the in-lap and ends with the session
		if i < len(laps)-1 {
			events = append(events, event{ms: total})
		}
	}

	r := int64(rate)
	values := make([]int64, total*r/1000)

	baseline := int64(0)
	low := int64(math.MinInt16 + 1)
	next := int64(0)

	for _, ev := range events {
		idx := ev.ms / 1000 * r
		if idx < next || idx+3 >= int64(len(values)) {
			return nil, fmt.Errorf("beacon: event at %d ms is too close to its neighbour", ev.ms)
		}

		for ; next <= idx; next++ {
			values[next] = baseline
		}

		values[idx+1] = low
		values[idx+2] = flankBias + ev.ms%1000

		baseline = lapMarker
		low++
		if ev.sector {
			baseline = sectorMarker
			low++
		}
		values[idx+3] = baseline
		next = idx + 4
	}
	for ; next < int64(len(values)); next++ {
		values[next] = baseline
	}

	samples := make([]sample.Sample, len(values))
	for i, v := range values {
		if dt == format.TypeBeacon32 {
			samples[i] = sample.I32(v)
		} else {
			samples[i] = sample.I16(v)
		}
	}

	return samples, nil
}
