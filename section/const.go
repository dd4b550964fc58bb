package section

// Fixed record sizes in bytes.
const (
	HeaderSize      = 1762
	EventSize       = 1160
	VenueSize       = 1102
	VehicleSize     = 1310
	ChannelMetaSize = 124
)

// Constants written into every header. Their meaning is unknown, but readers in
// the wild expect them.
const (
	headerMarker      uint32 = 0x40
	headerConstA      uint16 = 0x0001
	headerConstB      uint16 = 0x4240
	headerConstC      uint16 = 0x000f
	headerConstD      uint16 = 0xadb0
	headerProLogMagic uint32 = 0xc81a4
)

// Header field offsets.
const (
	hdrMarkerOff        = 0x000
	hdrChannelMetaOff   = 0x008
	hdrChannelDataOff   = 0x00c
	hdrEventOff         = 0x024
	hdrConstOff         = 0x040
	hdrDeviceSerialOff  = 0x046
	hdrDeviceTypeOff    = 0x04a
	hdrDeviceVersionOff = 0x052
	hdrConstDOff        = 0x054
	hdrNumChannelsOff   = 0x056
	hdrDateOff          = 0x05e
	hdrTimeOff          = 0x07e
	hdrDriverOff        = 0x09e
	hdrVehicleIDOff     = 0x0de
	hdrVenueOff         = 0x15e
	hdrProLogOff        = 0x5de
	hdrShortCommentOff  = 0x624
	hdrSessionOff       = 0x664
)

// Fixed string widths.
const (
	deviceTypeLen = 8
	dateLen       = 16
	nameLen       = 64
	typeLen       = 32
	commentLen    = 1024
	chanNameLen   = 32
	chanShortLen  = 8
	chanUnitLen   = 12
	gearRatioLen  = 11
)

// Event, venue and vehicle field offsets.
const (
	evtSessionOff = 64
	evtCommentOff = 128
	evtVenueOff   = 1152
	evtWeatherOff = 1156

	venLengthOff  = 64
	venBestLapOff = 68
	venVehicleOff = 1098

	vehDescOff       = 64
	vehEngineIDOff   = 128
	vehWeightOff     = 192
	vehFuelTankOff   = 194
	vehTypeOff       = 196
	vehDriveTypeOff  = 228
	vehCommentOff    = 260
	vehGearRatioOff  = 1284
	vehTrackWidthOff = 1306
	vehWheelBaseOff  = 1308
)

// Channel metadata block offsets.
const (
	chPrevOff       = 0
	chNextOff       = 4
	chDataAddrOff   = 8
	chDataCountOff  = 12
	chCounterOff    = 16
	chTypeCodeOff   = 18
	chTypeSizeOff   = 20
	chSampleRateOff = 22
	chOffsetOff     = 24
	chMulOff        = 26
	chScaleOff      = 28
	chDecPlacesOff  = 30
	chNameOff       = 32
	chShortNameOff  = 64
	chUnitOff       = 72
	chFlagOff       = 84
)
