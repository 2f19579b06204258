// cat/common/common.go
package common

import (
	"math"

	"github.com/davidkohl/gobelix/asterix"
)

// Package common holds the decode helpers and scalings shared by every
// category package: SAC/SIC, WGS-84 position, flight level and
// time-of-day all use the same wire layout across categories (spec.md
// §4.C "shared item kinds"). Each category package wires these into its
// own FRN table rather than sharing UAP rows, since FRN numbering is
// category-specific.

// DataSourceIdentifier decodes I0xx/010: one octet SAC, one octet SIC.
func DataSourceIdentifier(data []byte) asterix.DataSourceIdentifier {
	return asterix.DataSourceIdentifier{SAC: data[0], SIC: data[1]}
}

// FlightLevelResolution is the LSB of every 1/4-FL encoded item.
const FlightLevelResolution = 0.25

// FlightLevel decodes a 2-byte two's-complement 1/4-FL quantity
// (grounded on the flightlevel.go item shared by the track categories).
func FlightLevel(data []byte) float64 {
	raw := int16(uint16(data[0])<<8 | uint16(data[1]))
	return float64(raw) * FlightLevelResolution
}

// WGS84Resolution is the LSB of the 24-bit WGS-84 lat/lon encoding
// (180 / 2^23 degrees).
const WGS84Resolution = 180.0 / (1 << 23)

// WGS84Position decodes a 6-byte WGS-84 position: two 24-bit two's
// complement values, latitude then longitude, each in WGS84Resolution
// degree units.
func WGS84Position(data []byte) (latDeg, lonDeg float64) {
	latRaw := signExtend24(uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]))
	lonRaw := signExtend24(uint32(data[3])<<16 | uint32(data[4])<<8 | uint32(data[5]))
	return float64(latRaw) * WGS84Resolution, float64(lonRaw) * WGS84Resolution
}

func signExtend24(raw uint32) int32 {
	if raw&0x800000 != 0 {
		return int32(raw) - (1 << 24)
	}
	return int32(raw)
}

// DegToRad converts a decoded degree value to radians (the core
// decoder's report model stores angles in SI units throughout).
func DegToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// TruncatedToDResolution is the LSB of a 2-byte truncated time-of-day
// field: 1/128 second.
const TruncatedToDResolution = 1.0 / 128.0

// TruncatedTimeOfDay decodes a 2-byte truncated (16-bit) time-of-day
// field in seconds.
func TruncatedTimeOfDay(data []byte) float64 {
	raw := uint16(data[0])<<8 | uint16(data[1])
	return float64(raw) * TruncatedToDResolution
}

// FullTimeOfDayResolution is the LSB of a 3-byte full time-of-day field.
const FullTimeOfDayResolution = 1.0 / 128.0

// FullTimeOfDay decodes a 3-byte time-of-day field (used by the system
// track categories) in seconds since midnight.
func FullTimeOfDay(data []byte) float64 {
	raw := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	return float64(raw) * FullTimeOfDayResolution
}
