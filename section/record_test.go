package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ldfile/errs"
)

func TestEvent_ParseBytes(t *testing.T) {
	original := Event{
		Name:        "Round 3",
		Session:     "Qualifying",
		Comment:     "dry, 24C",
		VenueAddr:   4036,
		WeatherAddr: 0,
	}

	data := original.Bytes()
	require.Len(t, data, EventSize)

	parsed, err := ParseEvent(data)
	require.NoError(t, err)
	require.Equal(t, original, parsed)

	_, err = ParseEvent(data[:EventSize-4])
	require.ErrorIs(t, err, errs.ErrTruncatedRecord)
}

func TestVenue_ParseBytes(t *testing.T) {
	original := Venue{
		Name:        "Calder",
		Length:      2280000,
		BestLap:     -1,
		VehicleAddr: 5138,
	}

	data := original.Bytes()
	require.Len(t, data, VenueSize)

	parsed, err := ParseVenue(data)
	require.NoError(t, err)
	require.Equal(t, original, parsed)

	require.ErrorIs(t, (&Venue{}).Parse(data[:10]), errs.ErrInvalidRecordSize)
}

func TestVehicle_ParseBytes(t *testing.T) {
	original := Vehicle{
		ID:         "F3 #12",
		Desc:       "Dallara F305",
		EngineID:   "Opel",
		Weight:     550,
		FuelTank:   425,
		Type:       "Open wheel",
		DriveType:  "RWD",
		Comment:    "baseline setup",
		GearRatios: [GearCount]int16{3800, 2923, 2000, 1588, 1320, 1136, 1000},
		TrackWidth: 1500,
		WheelBase:  2750,
	}

	data := original.Bytes()
	require.Len(t, data, VehicleSize)

	parsed, err := ParseVehicle(data)
	require.NoError(t, err)
	require.Equal(t, original, parsed)
}

func TestVehicle_FloatRatios(t *testing.T) {
	ratios := []float64{3.8, 2.923, 2.0, 1.588, 1.32, 1.136, 1.0}

	v := Vehicle{}.WithFloatRatios(ratios)
	require.Equal(t, [GearCount]int16{3800, 2923, 2000, 1588, 1320, 1136, 1000}, v.GearRatios)

	got := v.FloatRatios()
	for i, r := range ratios {
		require.InDelta(t, r, got[i], 1e-9, "gear %d", i)
	}
	for i := len(ratios); i < GearCount; i++ {
		require.True(t, math.IsNaN(got[i]), "gear %d should be absent", i)
	}
}

func TestVehicle_WithFloatRatiosEdgeCases(t *testing.T) {
	t.Run("Rounds instead of truncating", func(t *testing.T) {
		v := Vehicle{}.WithFloatRatios([]float64{1.0006, 2.9996, 0.0014})
		require.Equal(t, int16(1001), v.GearRatios[0])
		require.Equal(t, int16(3000), v.GearRatios[1])
		require.Equal(t, int16(1), v.GearRatios[2])
	})

	t.Run("Absent gears", func(t *testing.T) {
		v := Vehicle{GearRatios: [GearCount]int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}}
		v = v.WithFloatRatios([]float64{0, math.NaN(), math.Inf(1), 5e-324, 1.5})
		require.Equal(t, [GearCount]int16{0, 0, 0, 0, 1500}, v.GearRatios)
	})

	t.Run("All eleven slots", func(t *testing.T) {
		ratios := make([]float64, 13)
		for i := range ratios {
			ratios[i] = float64(i + 1)
		}
		v := Vehicle{}.WithFloatRatios(ratios)
		require.Equal(t, int16(11000), v.GearRatios[10])
	})

	t.Run("Saturates", func(t *testing.T) {
		v := Vehicle{}.WithFloatRatios([]float64{40, -40})
		require.Equal(t, int16(math.MaxInt16), v.GearRatios[0])
		require.Equal(t, int16(math.MinInt16), v.GearRatios[1])
	})

	t.Run("Receiver untouched", func(t *testing.T) {
		orig := Vehicle{GearRatios: [GearCount]int16{4100}}
		_ = orig.WithFloatRatios([]float64{3.5})
		require.Equal(t, int16(4100), orig.GearRatios[0])
	})
}

func TestVehicle_FuelTank(t *testing.T) {
	v := Vehicle{}.WithFuelTankLiters(42.46)
	require.Equal(t, int16(425), v.FuelTank)
	require.InDelta(t, 42.5, v.FuelTankLiters(), 1e-9)

	v = v.WithFuelTankLiters(0.04)
	require.Equal(t, int16(0), v.FuelTank)
}
