// Package cat020 implements ASTERIX Category 020, multilateration
// target reports, version 1.10, grounded on the teacher's
// cat/cat020/uap/uap_v110.go 26-FRN table and the corresponding
// cat/cat020/dataitems/v110 and v10 items.
package cat020

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version110 = "1.10"

// Register builds the Cat020 v1.10 UAP and registers it with dec.
func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat020 UAP: %w", err)
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat020, Version110, 4, asterix.KindMlat, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorTargetReportDescriptor()},
		{FRN: 3, Descriptor: descriptorTimeOfDay()},
		{FRN: 4, Descriptor: descriptorPositionWGS84()},
		{FRN: 5, Descriptor: descriptorPositionCartesian()},
		{FRN: 6, Descriptor: descriptorTrackNumber()},
		{FRN: 7, Descriptor: descriptorTrackStatus()},
		{FRN: 8, Descriptor: descriptorMode3ACode()},
		{FRN: 9, Descriptor: descriptorCalculatedTrackVelocity()},
		{FRN: 10, Descriptor: descriptorFlightLevel()},
		{FRN: 11, Descriptor: descriptorModeCCode()},
		{FRN: 12, Descriptor: descriptorTargetAddress()},
		{FRN: 13, Descriptor: descriptorTargetIdentification()},
		{FRN: 14, Descriptor: descriptorMeasuredHeight()},
		{FRN: 15, Descriptor: descriptorGeometricHeight()},
		{FRN: 16, Descriptor: consumeFixed("I020/210", 2)},
		{FRN: 17, Descriptor: consumeFixed("I020/300", 1)},
		{FRN: 18, Descriptor: consumeFixed("I020/310", 1)},
		{FRN: 19, Descriptor: errorCompound("I020/500")},
		{FRN: 20, Descriptor: asterix.Descriptor{ID: "I020/400", Kind: asterix.Repetitive, ElemLen: 1, Decode: noopDecode}},
		{FRN: 21, Descriptor: asterix.Descriptor{ID: "I020/250", Kind: asterix.Repetitive, ElemLen: 8, Decode: noopDecode}},
		{FRN: 22, Descriptor: consumeFixed("I020/230", 2)},
		{FRN: 23, Descriptor: consumeFixed("I020/260", 7)},
		{FRN: 24, Descriptor: asterix.Descriptor{ID: "I020/030", Kind: asterix.Variable, Decode: noopDecode}},
		{FRN: 25, Descriptor: consumeFixed("I020/055", 1)},
		{FRN: 26, Descriptor: consumeFixed("I020/050", 2)},
	})
}

func noopDecode(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
	return asterix.OK, nil
}

// consumeFixed builds a Fixed descriptor that is walked for cursor
// alignment but has no home on MlatReport.
func consumeFixed(id string, length int) asterix.Descriptor {
	return asterix.Descriptor{ID: id, Kind: asterix.Fixed, Len: length, Decode: noopDecode}
}

// errorCompound marks a Compound item whose subfield layout is not
// implemented: decoding fails explicitly rather than guessing at
// subfield wire lengths and risking a corrupted cursor (same rule
// applied to cat062's unsupported I062/380 subfields).
func errorCompound(id string) asterix.Descriptor {
	return asterix.Descriptor{
		ID: id, Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			return asterix.Error, fmt.Errorf("%s: subfield layout not supported", id)
		},
	}
}

func descriptorDataSourceIdentifier() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Mlat().DataSource = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

// descriptorTargetReportDescriptor implements I020/020: a primary octet
// plus an optional FX-chained extension octet. No field on MlatReport
// maps onto its TYP/source flags directly; consumed for alignment only.
func descriptorTargetReportDescriptor() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/020", Kind: asterix.Variable,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			return asterix.OK, nil
		},
	}
}

func descriptorTimeOfDay() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/140", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			rec.Mlat().TimeOfDayS = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

// descriptorPositionWGS84 implements I020/041: 32-bit two's-complement
// lat/lon, LSB 180/2^31 degrees (confirmed in the teacher's own
// PositionWGS84.Decode).
func descriptorPositionWGS84() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/041", Kind: asterix.Fixed, Len: 8,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rawLat := int32(uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]))
			rawLon := int32(uint32(data[4])<<24 | uint32(data[5])<<16 | uint32(data[6])<<8 | uint32(data[7]))
			const lsb = 180.0 / 2147483648.0
			rec.Mlat().PositionWGS84 = asterix.Some(struct{ LatR, LonR float64 }{
				LatR: common.DegToRad(float64(rawLat) * lsb),
				LonR: common.DegToRad(float64(rawLon) * lsb),
			})
			return asterix.OK, nil
		},
	}
}

// descriptorPositionCartesian implements I020/042: 24-bit two's-
// complement X/Y, LSB 0.5m.
func descriptorPositionCartesian() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/042", Kind: asterix.Fixed, Len: 6,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rawX := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
			rawY := uint32(data[3])<<16 | uint32(data[4])<<8 | uint32(data[5])
			x := asterix.SignExtend(rawX, 24)
			y := asterix.SignExtend(rawY, 24)
			rec.Mlat().PositionCartesian = asterix.Some(asterix.CartesianPosition{
				X: float64(x) * 0.5,
				Y: float64(y) * 0.5,
			})
			return asterix.OK, nil
		},
	}
}

func descriptorTrackNumber() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/161", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Mlat().TrackNumber = asterix.Some(uint16(data[0])<<8 | uint16(data[1]))
			return asterix.OK, nil
		},
	}
}

// descriptorTrackStatus implements I020/170: a primary octet plus FX-
// chained extensions (CNF/TRE/CST/MAH/...); only the primary octet is
// surfaced, matching MlatReport.TrackStatus's single-byte shape.
func descriptorTrackStatus() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/170", Kind: asterix.Variable,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Mlat().TrackStatus = asterix.Some(data[0])
			return asterix.OK, nil
		},
	}
}

func descriptorMode3ACode() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/070", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			validated := data[0]&0x80 == 0
			if validated {
				rec.Mlat().Mode3A = asterix.Some(decodeOctalMode3A(data[0], data[1]))
			}
			return asterix.OK, nil
		},
	}
}

// decodeOctalMode3A extracts the 12-bit Mode-3A code as 4 octal digits
// rendered in decimal (same convention used by cat021/cat062; cat001 and
// cat048 store the raw binary code instead).
func decodeOctalMode3A(b0, b1 byte) uint16 {
	raw := uint16(b0&0x0F)<<8 | uint16(b1)
	d3 := (raw >> 9) & 0x07
	d2 := (raw >> 6) & 0x07
	d1 := (raw >> 3) & 0x07
	d0 := raw & 0x07
	return d3*1000 + d2*100 + d1*10 + d0
}

func descriptorCalculatedTrackVelocity() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/202", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			vx := int16(uint16(data[0])<<8 | uint16(data[1]))
			vy := int16(uint16(data[2])<<8 | uint16(data[3]))
			rec.Mlat().Velocity = asterix.Some(asterix.Velocity{
				Cartesian: asterix.Some(asterix.CartesianVelocity{
					VxMS: float64(vx) * 0.25,
					VyMS: float64(vy) * 0.25,
				}),
			})
			return asterix.OK, nil
		},
	}
}

func descriptorFlightLevel() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/090", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Mlat().ModeCFeet = asterix.Some(float64(raw) * 0.25 * 100.0) // FL (LSB 1/4 FL) -> feet
			return asterix.OK, nil
		},
	}
}

// descriptorModeCCode implements I020/100: V/G flags plus the Mode-C
// reply in Gray code across bits 28-17, and quality pulse flags across
// bits 12-1. Gray-to-binary conversion is intentionally not decoded
// here, mirroring cat048's I048/100 scoping decision (same rationale:
// Gray-coded altitude is a legacy transponder path superseded by
// I020/090's binary flight level). The V/G flags are not exposed either:
// the item is consumed for cursor alignment only.
func descriptorModeCCode() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/100", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			return asterix.OK, nil
		},
	}
}

func descriptorTargetAddress() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/220", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			addr := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
			rec.Mlat().TargetAddress = asterix.Some(addr)
			return asterix.OK, nil
		},
	}
}

// descriptorTargetIdentification implements I020/245: a 1-byte STI flag
// plus a 6-byte ICAO-packed callsign/registration, same packing as
// I048/240 and I062/245.
func descriptorTargetIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/245", Kind: asterix.Fixed, Len: 7,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Mlat().TargetIdentification = asterix.Some(asterix.ICAO8(data[1:7]))
			return asterix.OK, nil
		},
	}
}

// descriptorMeasuredHeight implements I020/110: 14-bit two's-complement
// height above MSL, LSB 6.25 feet.
func descriptorMeasuredHeight() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/110", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := asterix.SignExtend(uint32(data[0])<<8|uint32(data[1]), 14)
			rec.Mlat().GeometricAltM = asterix.Some(float64(raw) * 6.25 * 0.3048)
			return asterix.OK, nil
		},
	}
}

func descriptorGeometricHeight() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I020/105", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Mlat().GeometricAltM = asterix.Some(float64(raw) * 6.25 * 0.3048)
			return asterix.OK, nil
		},
	}
}
