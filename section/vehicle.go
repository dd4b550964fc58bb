package section

import (
	"math"

	"github.com/arloliu/ldfile/endian"
	"github.com/arloliu/ldfile/errs"
)

// GearCount is the number of gear ratio slots: index 0 is the final drive,
// 1-10 are gears 1-10.
const GearCount = gearRatioLen

// Vehicle describes the car the session was logged on.
type Vehicle struct {
	ID       string // max 64 chars
	Desc     string // max 64 chars
	EngineID string // max 64 chars

	// Weight in kg.
	Weight int16
	// FuelTank capacity in tenths of a liter.
	FuelTank int16

	Type      string // max 32 chars
	DriveType string // max 32 chars
	Comment   string // max 1024 chars

	// GearRatios are stored in thousandths. A zero slot means the gear is absent.
	GearRatios [GearCount]int16

	// TrackWidth in mm.
	TrackWidth int16
	// WheelBase in mm.
	WheelBase int16
}

// FloatRatios returns the gear ratios as real values. Absent gears are NaN.
func (v Vehicle) FloatRatios() [GearCount]float64 {
	var ratios [GearCount]float64
	for i, r := range v.GearRatios {
		if r == 0 {
			ratios[i] = math.NaN()
			continue
		}
		ratios[i] = float64(r) * math.Pow10(-3)
	}

	return ratios
}

// WithFloatRatios returns a copy of v with the gear ratios replaced.
//
// Slots beyond len(ratios) are cleared. Zero, NaN, infinite or subnormal values
// mark the gear as absent. Values are rounded to the nearest thousandth.
func (v Vehicle) WithFloatRatios(ratios []float64) Vehicle {
	v.GearRatios = [GearCount]int16{}
	for i, r := range ratios {
		if i >= GearCount {
			break
		}
		if !isNormal(r) {
			continue
		}
		v.GearRatios[i] = toFixed16(r, 3)
	}

	return v
}

// FuelTankLiters returns the fuel tank capacity in liters.
func (v Vehicle) FuelTankLiters() float64 {
	return float64(v.FuelTank) * math.Pow10(-1)
}

// WithFuelTankLiters returns a copy of v with the fuel tank capacity set, rounded
// to the nearest tenth of a liter.
func (v Vehicle) WithFuelTankLiters(liters float64) Vehicle {
	v.FuelTank = toFixed16(liters, 1)
	return v
}

func isNormal(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}

	return math.Abs(f) >= 0x1p-1022
}

// toFixed16 scales f by 10^decPlaces, rounds and saturates to the int16 range.
func toFixed16(f float64, decPlaces int) int16 {
	if math.IsNaN(f) {
		return 0
	}

	r := math.Round(f * math.Pow10(decPlaces))
	switch {
	case r > math.MaxInt16:
		return math.MaxInt16
	case r < math.MinInt16:
		return math.MinInt16
	default:
		return int16(r)
	}
}

// Parse parses the vehicle from exactly VehicleSize bytes.
func (v *Vehicle) Parse(data []byte) error {
	if len(data) != VehicleSize {
		return errs.ErrInvalidRecordSize
	}

	engine := endian.Container()

	v.ID = fixedString(data[:nameLen])
	v.Desc = fixedString(data[vehDescOff : vehDescOff+nameLen])
	v.EngineID = fixedString(data[vehEngineIDOff : vehEngineIDOff+nameLen])
	v.Weight = int16(engine.Uint16(data[vehWeightOff:]))
	v.FuelTank = int16(engine.Uint16(data[vehFuelTankOff:]))
	v.Type = fixedString(data[vehTypeOff : vehTypeOff+typeLen])
	v.DriveType = fixedString(data[vehDriveTypeOff : vehDriveTypeOff+typeLen])
	v.Comment = fixedString(data[vehCommentOff : vehCommentOff+commentLen])
	for i := range v.GearRatios {
		v.GearRatios[i] = int16(engine.Uint16(data[vehGearRatioOff+2*i:]))
	}
	v.TrackWidth = int16(engine.Uint16(data[vehTrackWidthOff:]))
	v.WheelBase = int16(engine.Uint16(data[vehWheelBaseOff:]))

	return nil
}

// Bytes serializes the Vehicle into a VehicleSize byte slice.
func (v *Vehicle) Bytes() []byte {
	b := make([]byte, VehicleSize)

	engine := endian.Container()

	putFixedString(b[:nameLen], v.ID)
	putFixedString(b[vehDescOff:vehDescOff+nameLen], v.Desc)
	putFixedString(b[vehEngineIDOff:vehEngineIDOff+nameLen], v.EngineID)
	engine.PutUint16(b[vehWeightOff:], uint16(v.Weight))
	engine.PutUint16(b[vehFuelTankOff:], uint16(v.FuelTank))
	putFixedString(b[vehTypeOff:vehTypeOff+typeLen], v.Type)
	putFixedString(b[vehDriveTypeOff:vehDriveTypeOff+typeLen], v.DriveType)
	putFixedString(b[vehCommentOff:vehCommentOff+commentLen], v.Comment)
	for i, r := range v.GearRatios {
		engine.PutUint16(b[vehGearRatioOff+2*i:], uint16(r))
	}
	engine.PutUint16(b[vehTrackWidthOff:], uint16(v.TrackWidth))
	engine.PutUint16(b[vehWheelBaseOff:], uint16(v.WheelBase))

	return b
}

// ParseVehicle parses a Vehicle from a byte slice of at least VehicleSize bytes.
func ParseVehicle(data []byte) (Vehicle, error) {
	if len(data) < VehicleSize {
		return Vehicle{}, errs.ErrTruncatedRecord
	}

	v := Vehicle{}
	if err := v.Parse(data[:VehicleSize]); err != nil {
		return Vehicle{}, err
	}

	return v, nil
}
