package format

import (
	"path/filepath"
	"strings"

	"github.com/arloliu/ldfile/errs"
)

type (
	// Datatype is the logical storage kind of a channel's samples.
	Datatype uint8
	// CompressionType selects the codec applied to a whole container archive.
	CompressionType uint8
)

const (
	TypeInvalid  Datatype = iota // TypeInvalid is a zero-width kind written by some exporters.
	TypeBeacon16                 // TypeBeacon16 is the 16-bit marker signal.
	TypeBeacon32                 // TypeBeacon32 is the 32-bit marker signal.
	TypeI8                       // TypeI8 is a signed 8-bit integer.
	TypeI16                      // TypeI16 is a signed 16-bit integer.
	TypeI32                      // TypeI32 is a signed 32-bit integer.
	TypeF16                      // TypeF16 is an IEEE-754 half precision float.
	TypeF32                      // TypeF32 is an IEEE-754 single precision float.
)

// Type codes as written by the reference logger.
const (
	CodeBeacon  uint16 = 0
	CodeInteger uint16 = 3
	CodeFloat   uint16 = 7

	// TypeInvalid is written as one of the exporter pairs so it reads back as TypeInvalid.
	codeInvalid uint16 = 15
	sizeInvalid uint16 = 5
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

type codeKey struct {
	code uint16
	size uint16
}

// datatypeTable is the read compatibility surface. Several codes map to the same
// logical kind and a few exporter specific pairs map to TypeInvalid.
var datatypeTable = map[codeKey]Datatype{
	{0, 2}: TypeBeacon16,
	{0, 4}: TypeBeacon32,
	{3, 1}: TypeI8, // DAMP plugin
	{3, 2}: TypeI16,
	{3, 4}: TypeI32,
	{5, 2}: TypeI16, // seen in logger firmware dumps from 2016
	{5, 4}: TypeI32,
	{7, 2}: TypeF16,
	{7, 4}: TypeF32,

	// iRacing mu exporter: Damper Pos FL/FR/RL, zero samples.
	{17536, 5}: TypeInvalid,
	{6566, 5}:  TypeInvalid,
	{29813, 5}: TypeInvalid,
	// iRacing mu exporter: Damper Pos RR. Possibly a 40-bit beacon.
	{0, 5}: TypeInvalid,
	// iRacing mu exporter: Ride Height Center, zero samples.
	{15, 5}: TypeInvalid,
}

// FromCode maps a stored (type code, byte size) pair to a Datatype.
//
// Pairs outside the compatibility table return *errs.UnrecognizedDatatypeError.
func FromCode(code, size uint16) (Datatype, error) {
	if dt, ok := datatypeTable[codeKey{code, size}]; ok {
		return dt, nil
	}

	return TypeInvalid, &errs.UnrecognizedDatatypeError{Code: code, Size: size}
}

// Size returns the number of bytes one sample occupies on disk.
func (d Datatype) Size() uint16 {
	switch d {
	case TypeI8:
		return 1
	case TypeBeacon16, TypeI16, TypeF16:
		return 2
	case TypeBeacon32, TypeI32, TypeF32:
		return 4
	default:
		return 0
	}
}

// Code returns the (type code, byte size) pair written for d.
// FromCode(d.Code()) always yields d.
func (d Datatype) Code() (code, size uint16) {
	switch d {
	case TypeBeacon16, TypeBeacon32:
		return CodeBeacon, d.Size()
	case TypeI8, TypeI16, TypeI32:
		return CodeInteger, d.Size()
	case TypeF16, TypeF32:
		return CodeFloat, d.Size()
	default:
		return codeInvalid, sizeInvalid
	}
}

// IsBeacon reports whether d is one of the marker signal kinds.
func (d Datatype) IsBeacon() bool {
	return d == TypeBeacon16 || d == TypeBeacon32
}

func (d Datatype) String() string {
	switch d {
	case TypeInvalid:
		return "Invalid"
	case TypeBeacon16:
		return "Beacon16"
	case TypeBeacon32:
		return "Beacon32"
	case TypeI8:
		return "I8"
	case TypeI16:
		return "I16"
	case TypeI32:
		return "I32"
	case TypeF16:
		return "F16"
	case TypeF32:
		return "F32"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// CompressionFromPath infers the archive compression from a file extension.
// Unknown extensions, including a plain ".ld", are CompressionNone.
func CompressionFromPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}
