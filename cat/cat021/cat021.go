// Package cat021 implements ASTERIX Category 021, ADS-B target
// reports, version 2.6, grounded on the teacher's
// cat/cat021/uap/uap_v26.go 42-FRN table and the corresponding
// cat/cat021/dataitems/v26 items.
package cat021

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version26 = "2.6"

func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat021 UAP: %w", err)
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat021, Version26, 6, asterix.KindAds, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorTargetReportDescriptor()},
		{FRN: 3, Descriptor: consumeFixed("I021/161", 2)},
		{FRN: 4, Descriptor: consumeFixed("I021/015", 1)},
		{FRN: 5, Descriptor: descriptorTimeOfApplicabilityPosition()},
		{FRN: 6, Descriptor: descriptorPositionWGS84()},
		{FRN: 7, Descriptor: consumeFixed("I021/131", 8)},
		{FRN: 8, Descriptor: consumeFixed("I021/072", 3)},
		{FRN: 9, Descriptor: consumeFixed("I021/150", 2)},
		{FRN: 10, Descriptor: descriptorTrueAirSpeed()},
		{FRN: 11, Descriptor: descriptorTargetAddress()},
		{FRN: 12, Descriptor: consumeFixed("I021/073", 3)},
		{FRN: 13, Descriptor: consumeFixed("I021/074", 4)},
		{FRN: 14, Descriptor: consumeFixed("I021/075", 3)},
		{FRN: 15, Descriptor: consumeFixed("I021/076", 4)},
		{FRN: 16, Descriptor: descriptorGeometricHeight()},
		{FRN: 17, Descriptor: descriptorQualityIndicators()},
		{FRN: 18, Descriptor: descriptorMOPSVersion()},
		{FRN: 19, Descriptor: descriptorMode3ACode()},
		{FRN: 20, Descriptor: consumeFixed("I021/230", 2)},
		{FRN: 21, Descriptor: descriptorFlightLevel()},
		{FRN: 22, Descriptor: descriptorMagneticHeading()},
		{FRN: 23, Descriptor: descriptorTargetStatus()},
		{FRN: 24, Descriptor: descriptorBarometricVerticalRate()},
		{FRN: 25, Descriptor: consumeFixed("I021/157", 2)},
		{FRN: 26, Descriptor: consumeFixed("I021/160", 4)},
		{FRN: 27, Descriptor: consumeFixed("I021/165", 2)},
		{FRN: 28, Descriptor: consumeFixed("I021/077", 3)},
		{FRN: 29, Descriptor: descriptorTargetIdentification()},
		{FRN: 30, Descriptor: descriptorEmitterCategory()},
		{FRN: 31, Descriptor: errorCompound("I021/220")},
		{FRN: 32, Descriptor: consumeFixed("I021/146", 2)},
		{FRN: 33, Descriptor: consumeFixed("I021/148", 2)},
		{FRN: 34, Descriptor: errorCompound("I021/110")},
		{FRN: 35, Descriptor: consumeFixed("I021/016", 1)},
		{FRN: 36, Descriptor: consumeFixed("I021/008", 1)},
		{FRN: 37, Descriptor: asterix.Descriptor{ID: "I021/271", Kind: asterix.Variable, Decode: noopDecode}},
		{FRN: 38, Descriptor: consumeFixed("I021/132", 1)},
		{FRN: 39, Descriptor: asterix.Descriptor{ID: "I021/250", Kind: asterix.Repetitive, ElemLen: 8, Decode: noopDecode}},
		{FRN: 40, Descriptor: consumeFixed("I021/260", 7)},
		{FRN: 41, Descriptor: consumeFixed("I021/400", 1)},
		{FRN: 42, Descriptor: descriptorDataAges()},
	})
}

func noopDecode(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
	return asterix.OK, nil
}

// consumeFixed builds a Fixed descriptor that is walked for alignment
// but has no home on AdsReport.
func consumeFixed(id string, length int) asterix.Descriptor {
	return asterix.Descriptor{ID: id, Kind: asterix.Fixed, Len: length, Decode: noopDecode}
}

// errorCompound marks a Compound item whose subfield layout is not
// implemented: rather than guess at wire lengths and risk silently
// corrupting the cursor, decoding fails explicitly (same rule as
// I062/380's unsupported subfields).
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
		ID: "I021/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Ads().DataSource = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

// descriptorTargetReportDescriptor implements I021/040: a primary octet
// plus up to four FX-chained extension octets. No single AdsReport
// field corresponds to its ATP/ARC/RAB/... bits; walked for alignment.
func descriptorTargetReportDescriptor() asterix.Descriptor {
	return asterix.Descriptor{ID: "I021/040", Kind: asterix.Variable, Decode: noopDecode}
}

func descriptorTimeOfApplicabilityPosition() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/071", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			rec.Ads().TimeOfDayS = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

// descriptorPositionWGS84 implements I021/130: 24-bit two's-complement
// lat/lon, LSB 180/2^23 degrees, grounded on the teacher's
// dataitems/v26/position.go.
func descriptorPositionWGS84() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/130", Kind: asterix.Fixed, Len: 6,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rawLat := asterix.SignExtend(uint32(data[0])<<16|uint32(data[1])<<8|uint32(data[2]), 24)
			rawLon := asterix.SignExtend(uint32(data[3])<<16|uint32(data[4])<<8|uint32(data[5]), 24)
			const lsb = 180.0 / 8388608.0
			rec.Ads().PositionWGS84 = asterix.Some(struct{ LatR, LonR float64 }{
				LatR: common.DegToRad(float64(rawLat) * lsb),
				LonR: common.DegToRad(float64(rawLon) * lsb),
			})
			return asterix.OK, nil
		},
	}
}

// descriptorTrueAirSpeed implements I021/151: RE bit + 15-bit speed in
// knots, converted to m/s.
func descriptorTrueAirSpeed() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/151", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := uint16(data[0]&0x7F)<<8 | uint16(data[1])
			rec.Ads().TrueAirspeedMS = asterix.Some(float64(raw) * 0.514444)
			return asterix.OK, nil
		},
	}
}

func descriptorTargetAddress() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/080", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			addr := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
			rec.Ads().TargetAddress = asterix.Some(addr)
			return asterix.OK, nil
		},
	}
}

// descriptorGeometricHeight implements I021/140: 16-bit signed, LSB
// 6.25ft, same convention as I020/105/110.
func descriptorGeometricHeight() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/140", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Ads().GeometricAltM = asterix.Some(float64(raw) * 6.25 * 0.3048)
			return asterix.OK, nil
		},
	}
}

// descriptorQualityIndicators implements I021/090: a primary octet
// (NUCr/NACv, NUCp/NIC) plus up to 3 FX-chained extensions. Only the
// primary octet's two fields are surfaced; the rest is walked for
// alignment, grounded on dataitems/v26/target_quality_indicators.go.
func descriptorQualityIndicators() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/090", Kind: asterix.Variable,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			if rec.Ads().QualityIndicators == nil {
				rec.Ads().QualityIndicators = map[string]int{}
			}
			rec.Ads().QualityIndicators["nucr_nacv"] = int((data[0] >> 5) & 0x07)
			rec.Ads().QualityIndicators["nucp_nic"] = int((data[0] >> 1) & 0x0F)
			return asterix.OK, nil
		},
	}
}

// descriptorMOPSVersion implements I021/210: bit7 VNS, bits6-4 VN,
// bits3-1 LTT, grounded on dataitems/v26/target_mops_version.go. VN is
// stored as AdsReport.MOPSVersion's raw octet (VNS/VN/LTT packed as in
// the wire form) since the report type only has room for one byte.
func descriptorMOPSVersion() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/210", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Ads().MOPSVersion = asterix.Some(data[0])
			return asterix.OK, nil
		},
	}
}

func descriptorMode3ACode() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/070", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			if data[0]&0xF0 != 0 {
				return asterix.Error, fmt.Errorf("I021/070: reserved bits not zero")
			}
			rec.Ads().Mode3A = asterix.Some(decodeOctalMode3A(data[0], data[1]))
			return asterix.OK, nil
		},
	}
}

func decodeOctalMode3A(b0, b1 byte) uint16 {
	raw := uint16(b0&0x0F)<<8 | uint16(b1)
	d3 := (raw >> 9) & 0x07
	d2 := (raw >> 6) & 0x07
	d1 := (raw >> 3) & 0x07
	d0 := raw & 0x07
	return d3*1000 + d2*100 + d1*10 + d0
}

func descriptorFlightLevel() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/145", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Ads().BarometricAltFL = asterix.Some(float64(raw) * 0.25)
			return asterix.OK, nil
		},
	}
}

// descriptorMagneticHeading implements I021/152: 16-bit unsigned, LSB
// 360/2^16 degrees, grounded on dataitems/v26/magnetic_heading.go.
func descriptorMagneticHeading() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/152", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := uint16(data[0])<<8 | uint16(data[1])
			deg := float64(raw) * (360.0 / 65536.0)
			rec.Ads().MagneticHeadingR = asterix.Some(common.DegToRad(deg))
			return asterix.OK, nil
		},
	}
}

func descriptorTargetStatus() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/200", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Ads().TargetStatus = asterix.Some(data[0])
			return asterix.OK, nil
		},
	}
}

// descriptorBarometricVerticalRate implements I021/155: RE bit + 15-bit
// two's-complement rate, LSB 6.25 ft/min, converted to m/s.
func descriptorBarometricVerticalRate() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/155", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := asterix.SignExtend(uint32(data[0]&0x7F)<<8|uint32(data[1]), 15)
			ftPerMin := float64(raw) * 6.25
			rec.Ads().BarometricVerticalRateMS = asterix.Some(ftPerMin * 0.3048 / 60.0)
			return asterix.OK, nil
		},
	}
}

// descriptorTargetIdentification implements I021/170: 6-byte ICAO-
// packed callsign, same packing as I048/240/I062/245/I020/245 (without
// the leading STI byte those carry).
func descriptorTargetIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/170", Kind: asterix.Fixed, Len: 6,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Ads().TargetIdentification = asterix.Some(asterix.ICAO8(data))
			return asterix.OK, nil
		},
	}
}

func descriptorEmitterCategory() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/020", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Ads().EmitterCategory = asterix.Some(data[0])
			return asterix.OK, nil
		},
	}
}

// descriptorDataAges implements I021/295: a run of FX-chained FSPEC
// octets, each subfield being a single 1/10s age byte, grounded on the
// teacher's dataitems/v26/data_ages.go. Ages are consumed for cursor
// alignment; AdsReport has no per-field age slots.
func descriptorDataAges() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I021/295", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			for {
				if c >= len(payload) {
					return asterix.Error, fmt.Errorf("I021/295: FSPEC runs past end of record")
				}
				b := payload[c]
				c++
				n := popcount7(b)
				if c+n > len(payload) {
					return asterix.Error, fmt.Errorf("I021/295: age subfields run past end of record")
				}
				c += n
				if b&0x01 == 0 {
					break
				}
			}
			*cursor = c
			return asterix.OK, nil
		},
	}
}

func popcount7(b byte) int {
	n := 0
	for bit := 7; bit >= 1; bit-- {
		if b&(1<<uint(bit)) != 0 {
			n++
		}
	}
	return n
}
