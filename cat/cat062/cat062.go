// Package cat062 implements ASTERIX Category 062, system track data
// (SDPS output), version 1.20, grounded on the teacher's
// cat/cat062/dataitems/v120 and v117 items and cat/cat062/uap/uap_v120.go's
// 35-FRN table. Several items that v120 references are only physically
// present under the v117 directory (the two UAP versions share most of
// their data-item definitions); both are read for grounding, but v1.20
// is the consolidated wire format, matching the teacher's own
// LatestVersion().
package cat062

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version120 = "1.20"

// Register builds the Cat062 v1.20 UAP and registers it with dec.
func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat062 UAP: %w", err)
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat062, Version120, 5, asterix.KindTrack, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 3, Descriptor: descriptorServiceIdentification()},
		{FRN: 4, Descriptor: descriptorTimeOfTrackInformation()},
		{FRN: 5, Descriptor: descriptorCalculatedTrackPositionWGS84()},
		{FRN: 6, Descriptor: descriptorCalculatedTrackPositionCartesian()},
		{FRN: 7, Descriptor: descriptorCalculatedTrackVelocity()},
		{FRN: 8, Descriptor: descriptorCalculatedAcceleration()},
		{FRN: 9, Descriptor: descriptorTrackMode3ACode()},
		{FRN: 10, Descriptor: descriptorTargetIdentification()},
		{FRN: 11, Descriptor: descriptorAircraftDerivedData()},
		{FRN: 12, Descriptor: descriptorTrackNumber()},
		{FRN: 13, Descriptor: descriptorTrackStatus()},
		{FRN: 14, Descriptor: descriptorSystemTrackUpdateAges()},
		{FRN: 15, Descriptor: descriptorModeOfMovement()},
		{FRN: 16, Descriptor: descriptorTrackDataAges()},
		{FRN: 17, Descriptor: descriptorMeasuredFlightLevel()},
		{FRN: 18, Descriptor: descriptorCalculatedTrackGeometricAltitude()},
		{FRN: 19, Descriptor: descriptorCalculatedTrackBarometricAltitude()},
		{FRN: 20, Descriptor: descriptorCalculatedRateOfClimbDescent()},
		{FRN: 21, Descriptor: descriptorFlightPlanRelatedData()},
		{FRN: 22, Descriptor: descriptorTargetSizeOrientation()},
		{FRN: 23, Descriptor: descriptorVehicleFleetIdentification()},
		{FRN: 24, Descriptor: descriptorMode5DataReports()},
		{FRN: 25, Descriptor: descriptorTrackMode2Code()},
		{FRN: 26, Descriptor: descriptorComposedTrackNumber()},
		{FRN: 27, Descriptor: descriptorEstimatedAccuracies()},
		{FRN: 28, Descriptor: descriptorMeasuredInformation()},
		{FRN: 34, Descriptor: descriptorReservedExpansion()},
		{FRN: 35, Descriptor: descriptorSpecialPurpose()},
	})
}

// descriptorDataSourceIdentifier implements I062/010: SAC/SIC of the
// system producing this track.
func descriptorDataSourceIdentifier() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			ctx.RememberSACSIC(common.DataSourceIdentifier(data))
			return asterix.OK, nil
		},
	}
}

func descriptorServiceIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/015", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Track().ServiceID = asterix.Some(data[0])
			return asterix.OK, nil
		},
	}
}

// descriptorTimeOfTrackInformation implements I062/070: elapsed time
// since midnight UTC, LSB 1/128s over 3 octets (matches cat048's ToD
// encoding).
func descriptorTimeOfTrackInformation() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/070", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			rec.Track().TimeOfDayS = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

func descriptorCalculatedTrackPositionWGS84() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/105", Kind: asterix.Fixed, Len: 8,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rawLat := int32(uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]))
			rawLon := int32(uint32(data[4])<<24 | uint32(data[5])<<16 | uint32(data[6])<<8 | uint32(data[7]))
			const lsb = 180.0 / float64(int64(1)<<25)
			rec.Track().CalculatedWGS84 = asterix.Some(struct{ LatR, LonR float64 }{
				LatR: common.DegToRad(float64(rawLat) * lsb),
				LonR: common.DegToRad(float64(rawLon) * lsb),
			})
			return asterix.OK, nil
		},
	}
}

// descriptorCalculatedTrackPositionCartesian implements I062/100: 24-bit
// two's-complement X/Y in 0.5m units.
func descriptorCalculatedTrackPositionCartesian() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/100", Kind: asterix.Fixed, Len: 6,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rawX := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
			rawY := uint32(data[3])<<16 | uint32(data[4])<<8 | uint32(data[5])
			x := asterix.SignExtend(rawX, 24)
			y := asterix.SignExtend(rawY, 24)
			rec.Track().CalculatedCartesian = asterix.Some(asterix.CartesianPosition{
				X: float64(x) * 0.5,
				Y: float64(y) * 0.5,
			})
			return asterix.OK, nil
		},
	}
}

func descriptorCalculatedTrackVelocity() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/185", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			vx := int16(uint16(data[0])<<8 | uint16(data[1]))
			vy := int16(uint16(data[2])<<8 | uint16(data[3]))
			rec.Track().CalculatedVelocity = asterix.Some(asterix.Velocity{
				Cartesian: asterix.Some(asterix.CartesianVelocity{
					VxMS: float64(vx) * 0.25,
					VyMS: float64(vy) * 0.25,
				}),
			})
			return asterix.OK, nil
		},
	}
}

// descriptorCalculatedAcceleration implements I062/210: Ax/Ay, 1-byte
// signed each, LSB 0.25 m/s².
func descriptorCalculatedAcceleration() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/210", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			t := rec.Track()
			t.AccelerationXMS2 = asterix.Some(float64(int8(data[0])) * 0.25)
			t.AccelerationYMS2 = asterix.Some(float64(int8(data[1])) * 0.25)
			return asterix.OK, nil
		},
	}
}

// descriptorTrackMode3ACode implements I062/060: V/G/CH flags plus a
// 4-digit octal-representable Mode-3A code, same decimal-encoded-octal
// convention used by cat020/cat021 (cat001 and cat048 store the raw
// binary code instead).
func descriptorTrackMode3ACode() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/060", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			validated := data[0]&0x80 == 0
			code := decodeOctalMode3A(data[0], data[1])
			t := rec.Track()
			if validated {
				t.LastMode3A = asterix.Some(code)
			}
			return asterix.OK, nil
		},
	}
}

// decodeOctalMode3A extracts the 12-bit Mode-3A code (4 octal digits,
// bit 13 spare) and renders it as a decimal number whose digits equal
// the octal digits (e.g. raw 0x0A88, octal 5210, displays as 5210).
func decodeOctalMode3A(b0, b1 byte) uint16 {
	raw := uint16(b0&0x0F)<<8 | uint16(b1)
	d3 := (raw >> 9) & 0x07
	d2 := (raw >> 6) & 0x07
	d1 := (raw >> 3) & 0x07
	d0 := raw & 0x07
	return d3*1000 + d2*100 + d1*10 + d0
}

// descriptorTargetIdentification implements I062/245: a 2-bit STI
// identification-source flag plus an 8-character ICAO-packed callsign
// or registration, same 6-bit alphabet as I048/240.
func descriptorTargetIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/245", Kind: asterix.Fixed, Len: 7,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			ident := asterix.ICAO8(data[1:7])
			rec.Track().AircraftIdentification = asterix.Some(ident)
			return asterix.OK, nil
		},
	}
}

// descriptorAircraftDerivedData implements I062/380, a large FSPEC-style
// compound item. The teacher's own implementation is already a stub
// that does not faithfully decode every subfield; this narrows the
// scope further to subfield #1 (target address), the only one with a
// direct home on Track, matching the "deliberately scoped subset"
// precedent used elsewhere in this category.
func descriptorAircraftDerivedData() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/380", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			var primary []byte
			for {
				if c >= len(payload) {
					return asterix.Error, fmt.Errorf("I062/380: FSPEC runs past end of record")
				}
				b := payload[c]
				primary = append(primary, b)
				c++
				if b&0x01 == 0 {
					break
				}
			}
			// Subfield #1 (bit 8 of the first octet) is the 3-byte ICAO
			// 24-bit aircraft address.
			if len(primary) > 0 && primary[0]&0x80 != 0 {
				if c+3 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/380: target address runs past end of record")
				}
				addr := uint32(payload[c])<<16 | uint32(payload[c+1])<<8 | uint32(payload[c+2])
				rec.Track().AircraftAddress = asterix.Some(addr)
				c += 3
			}
			// Subfields #2-#21 (target identification, magnetic heading,
			// ground speed, BDS registers, met info, trajectory intent, ...)
			// have no individual home on Track, and their wire lengths vary
			// per subfield; rather than guess at lengths and risk silently
			// misaligning the rest of the record, any primary bit beyond #1
			// being set is reported as an error.
			for i, b := range primary {
				mask := byte(0xFE)
				if i == 0 {
					mask = 0x7E // bit 8 (#1) already handled above
				}
				if b&mask != 0 {
					return asterix.Error, fmt.Errorf("I062/380: subfields #2-#21 not supported")
				}
			}
			*cursor = c
			return asterix.OK, nil
		},
	}
}

func descriptorTrackNumber() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/040", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			t := rec.Track()
			t.TrackNumber = uint16(data[0])<<8 | uint16(data[1])
			t.TrackNumberBits = 16
			return asterix.OK, nil
		},
	}
}

// descriptorTrackStatus implements I062/080: a primary octet (MON/SPI/
// MRH/SRC/CNF) plus up to five FX-chained extension octets. Modelled as
// Variable/uncapped like cat063's I063/060, since the number of
// extension octets actually present varies by sensor and there is no
// fixed wire-length to cap at.
func descriptorTrackStatus() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/080", Kind: asterix.Variable,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			t := rec.Track()
			mrh := data[0]&0x20 != 0
			src := (data[0] >> 3) & 0x07
			if mrh {
				t.AltitudeSource = "geometric"
			} else {
				switch src {
				case 1:
					t.AltitudeSource = "gnss"
				case 2:
					t.AltitudeSource = "3d-radar"
				case 3:
					t.AltitudeSource = "triangulation"
				case 7:
					t.AltitudeSource = "multilateration"
				default:
					t.AltitudeSource = "barometric"
				}
			}
			return asterix.OK, nil
		},
	}
}

// descriptorSystemTrackUpdateAges implements I062/290, a compound item
// of up to two FSPEC-style primary octets. Only the PSR/SSR/Mode-A/
// Mode-C age subfields are promoted to Track's Age* fields, since
// those are the ones with a fixed home there; the remainder (e.g. Mode
// S, ADS-B, loop age) are read to keep the cursor correctly advanced
// but not individually exposed.
func descriptorSystemTrackUpdateAges() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/290", Kind: asterix.Compound,
		Read: readAgeFSPEC,
	}
}

// readAgeFSPEC decodes the shared layout of I062/290 (system track
// update ages) and I062/295 (track data ages): an FSPEC-style primary
// octet chain where every set bit except the FX bit selects a 1-byte
// age subfield (LSB 0.25s), except subfield #5 which is 2 bytes.
func readAgeFSPEC(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
	c := *cursor
	t := rec.Track()
	bitIndex := 0
	for {
		if c >= len(payload) {
			return asterix.Error, fmt.Errorf("age subfield FSPEC runs past end of record")
		}
		b := payload[c]
		c++
		for bit := 7; bit >= 1; bit-- {
			fieldNo := bitIndex
			bitIndex++
			if b&(1<<uint(bit)) == 0 {
				continue
			}
			length := 1
			if fieldNo == 4 { // subfield #5 (0-indexed 4) is 2 bytes
				length = 2
			}
			if c+length > len(payload) {
				return asterix.Error, fmt.Errorf("age subfield runs past end of record")
			}
			var age float64
			if length == 1 {
				age = float64(payload[c]) * 0.25
			} else {
				age = float64(uint16(payload[c])<<8|uint16(payload[c+1])) * 0.25
			}
			switch fieldNo {
			case 0:
				t.AgePSR = asterix.Some(age)
			case 1:
				t.AgeSSR = asterix.Some(age)
			case 2:
				t.AgeModeA = asterix.Some(age)
			case 3:
				t.AgeModeC = asterix.Some(age)
			}
			c += length
		}
		if b&0x01 == 0 {
			break
		}
	}
	*cursor = c
	return asterix.OK, nil
}

func descriptorModeOfMovement() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/200", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Track().Mode = asterix.ModeOfMovement{
				Transversal:  int((data[0] >> 6) & 0x03),
				Longitudinal: int((data[0] >> 4) & 0x03),
				Vertical:     int((data[0] >> 2) & 0x03),
			}
			return asterix.OK, nil
		},
	}
}

func descriptorTrackDataAges() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/295", Kind: asterix.Compound,
		Read: readAgeFSPEC,
	}
}

func descriptorMeasuredFlightLevel() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/136", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Track().AltitudeFL = asterix.Some(float64(raw) * 0.25)
			return asterix.OK, nil
		},
	}
}

func descriptorCalculatedTrackGeometricAltitude() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/130", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Track().GeometricAltM = asterix.Some(float64(raw) * 6.25 * 0.3048) // ft -> m
			return asterix.OK, nil
		},
	}
}

func descriptorCalculatedTrackBarometricAltitude() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/135", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16((uint16(data[0]&0x7F) << 8) | uint16(data[1]))
			t := rec.Track()
			t.AltitudeFL = asterix.Some(float64(raw) * 0.25)
			if t.AltitudeSource == "" {
				t.AltitudeSource = "barometric"
			}
			return asterix.OK, nil
		},
	}
}

func descriptorCalculatedRateOfClimbDescent() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/220", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			ftMin := float64(raw) * 6.25
			rec.Track().RateOfClimbMS = asterix.Some(ftMin * 0.3048 / 60.0)
			return asterix.OK, nil
		},
	}
}

// descriptorFlightPlanRelatedData implements I062/390, a 3-octet FSPEC
// compound item with 18 possible subfields. Only the subset that maps
// onto an existing Track field is decoded (callsign, departure/
// destination airport, cleared flight level, wake-turbulence category,
// control position); the rest (runway, stand, SID/STAR, timestamps,
// pre-emergency data) are skipped using their known fixed/repetitive
// shapes to keep the cursor aligned, following the same deliberately-
// scoped-subset precedent as cat048's I048/120 and this package's
// I062/380/I062/290.
func descriptorFlightPlanRelatedData() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/390", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			t := rec.Track()
			var octets []byte
			for {
				if c >= len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: FSPEC runs past end of record")
				}
				b := payload[c]
				octets = append(octets, b)
				c++
				if b&0x01 == 0 || len(octets) == 3 {
					break
				}
			}
			bits := func(n int) bool {
				octIdx := n / 7
				bitIdx := 7 - (n % 7)
				if octIdx >= len(octets) {
					return false
				}
				return octets[octIdx]&(1<<uint(bitIdx)) != 0
			}
			// #1 SAC/SIC (2 bytes)
			if bits(0) {
				if c+2 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: SAC/SIC runs past end of record")
				}
				c += 2
			}
			// #2 callsign (7 bytes)
			if bits(1) {
				if c+7 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: callsign runs past end of record")
				}
				t.Callsign = asterix.Some(trimTrailingSpaces(string(payload[c : c+7])))
				c += 7
			}
			// #3 IFPS id (4 bytes) — skipped, no Track home
			if bits(2) {
				if c+4 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: IFPS id runs past end of record")
				}
				c += 4
			}
			// #4 flight category byte — skipped
			if bits(3) {
				if c+1 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: flight category runs past end of record")
				}
				c++
			}
			// #5 type of aircraft (4 bytes) — skipped
			if bits(4) {
				if c+4 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: type of aircraft runs past end of record")
				}
				c += 4
			}
			// #6 wake turbulence category (1 byte)
			if bits(5) {
				if c+1 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: wake turbulence runs past end of record")
				}
				t.WakeTurbulenceCat = asterix.Some(string(payload[c]))
				c++
			}
			// #7 departure airport (4 bytes)
			if bits(6) {
				if c+4 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: departure airport runs past end of record")
				}
				t.DepartureAirport = asterix.Some(string(payload[c : c+4]))
				c += 4
			}
			// #8 destination airport (4 bytes)
			if bits(7) {
				if c+4 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: destination airport runs past end of record")
				}
				t.DestinationAirport = asterix.Some(string(payload[c : c+4]))
				c += 4
			}
			// #9 runway (3 bytes) — skipped
			if bits(8) {
				if c+3 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: runway runs past end of record")
				}
				c += 3
			}
			// #10 cleared flight level (2 bytes)
			if bits(9) {
				if c+2 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: cleared flight level runs past end of record")
				}
				raw := int16(uint16(payload[c])<<8 | uint16(payload[c+1]))
				t.ClearedFlightLevel = asterix.Some(float64(raw) * 0.25)
				c += 2
			}
			// #11 control centre/position (2 bytes)
			if bits(10) {
				if c+2 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: control position runs past end of record")
				}
				t.ControlPosition = asterix.Some(fmt.Sprintf("%d/%d", payload[c], payload[c+1]))
				c += 2
			}
			// #12 time list (repetitive, 1-byte rep factor + 4 bytes/entry) — skipped
			if bits(11) {
				if c >= len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: time list runs past end of record")
				}
				rep := int(payload[c])
				c++
				if c+rep*4 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: time list entries run past end of record")
				}
				c += rep * 4
			}
			// #13 aircraft stand (6 bytes) — skipped
			if bits(12) {
				if c+6 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: aircraft stand runs past end of record")
				}
				c += 6
			}
			// #14 stand status byte — skipped
			if bits(13) {
				if c+1 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: stand status runs past end of record")
				}
				c++
			}
			// #15 SID (7 bytes) — skipped
			if bits(14) {
				if c+7 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: SID runs past end of record")
				}
				c += 7
			}
			// #16 STAR (7 bytes) — skipped
			if bits(15) {
				if c+7 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: STAR runs past end of record")
				}
				c += 7
			}
			// #17 pre-emergency Mode-3A (2 bytes) — skipped
			if bits(16) {
				if c+2 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: pre-emergency mode 3a runs past end of record")
				}
				c += 2
			}
			// #18 pre-emergency callsign (7 bytes) — skipped
			if bits(17) {
				if c+7 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/390: pre-emergency callsign runs past end of record")
				}
				c += 7
			}
			*cursor = c
			return asterix.OK, nil
		},
	}
}

func trimTrailingSpaces(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}

// descriptorTargetSizeOrientation implements I062/270: a first octet
// plus up to two FX-chained extension octets, none of which have a
// fixed home on Track; the item is consumed for cursor alignment only.
func descriptorTargetSizeOrientation() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/270", Kind: asterix.Variable,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			return asterix.OK, nil
		},
	}
}

func descriptorVehicleFleetIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/300", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			return asterix.OK, nil
		},
	}
}

// descriptorMode5DataReports implements I062/110, a compound item whose
// primary byte's SUM/PMN/POS/GA/EM1/TOS/XP bits select variable-length
// subfields (1,4,6,2,2,1,1 bytes). None map onto Track directly; the
// item is read generically to keep later FRNs aligned.
func descriptorMode5DataReports() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/110", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			if c >= len(payload) {
				return asterix.Error, fmt.Errorf("I062/110: primary byte runs past end of record")
			}
			primary := payload[c]
			c++
			lens := []struct {
				bit int
				n   int
			}{{7, 1}, {6, 4}, {5, 6}, {4, 2}, {3, 2}, {2, 1}, {1, 1}}
			for _, l := range lens {
				if primary&(1<<uint(l.bit)) != 0 {
					if c+l.n > len(payload) {
						return asterix.Error, fmt.Errorf("I062/110: subfield runs past end of record")
					}
					c += l.n
				}
			}
			*cursor = c
			return asterix.OK, nil
		},
	}
}

func descriptorTrackMode2Code() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/120", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			return asterix.OK, nil
		},
	}
}

// descriptorComposedTrackNumber implements I062/510: a 3-byte master
// track number plus FX-chained 3-byte slave track numbers, none of
// which have an individual home on Track beyond the primary
// TrackNumber already set by I062/040; consumed for alignment only.
func descriptorComposedTrackNumber() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/510", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			for {
				if c+3 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/510: entry runs past end of record")
				}
				fx := payload[c+2]&0x01 != 0
				c += 3
				if !fx {
					break
				}
			}
			*cursor = c
			return asterix.OK, nil
		},
	}
}

// descriptorEstimatedAccuracies implements I062/500, a compound item
// with a 2-octet FSPEC chain and 8 subfields. No subfield is surfaced
// on Track; all are consumed to keep the cursor aligned, following the same scoped-subset precedent used throughout
// this category.
func descriptorEstimatedAccuracies() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/500", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			var octets []byte
			for {
				if c >= len(payload) {
					return asterix.Error, fmt.Errorf("I062/500: FSPEC runs past end of record")
				}
				b := payload[c]
				octets = append(octets, b)
				c++
				if b&0x01 == 0 || len(octets) == 2 {
					break
				}
			}
			bits := func(n int) bool {
				octIdx := n / 7
				bitIdx := 7 - (n % 7)
				if octIdx >= len(octets) {
					return false
				}
				return octets[octIdx]&(1<<uint(bitIdx)) != 0
			}
			lens := []int{4, 2, 4, 1, 1, 2, 2, 1}
			for i, n := range lens {
				if bits(i) {
					if c+n > len(payload) {
						return asterix.Error, fmt.Errorf("I062/500: subfield runs past end of record")
					}
					c += n
				}
			}
			*cursor = c
			return asterix.OK, nil
		},
	}
}

// descriptorMeasuredInformation implements I062/340, a single-octet
// FSPEC compound item (no further extensions). Only the sensor SAC/SIC
// subfield updates LastUpdatingSensor; the rest are consumed to keep
// the cursor aligned.
func descriptorMeasuredInformation() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I062/340", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			if c >= len(payload) {
				return asterix.Error, fmt.Errorf("I062/340: FSPEC octet runs past end of record")
			}
			primary := payload[c]
			c++
			t := rec.Track()
			if primary&0x80 != 0 { // #1 SAC/SIC
				if c+2 > len(payload) {
					return asterix.Error, fmt.Errorf("I062/340: SAC/SIC runs past end of record")
				}
				t.LastUpdatingSensor = asterix.Some(common.DataSourceIdentifier(payload[c : c+2]))
				c += 2
			}
			lens := []struct {
				bit int
				n   int
			}{{6, 4}, {5, 2}, {4, 2}, {3, 2}, {2, 1}}
			for _, l := range lens {
				if primary&(1<<uint(l.bit)) != 0 {
					if c+l.n > len(payload) {
						return asterix.Error, fmt.Errorf("I062/340: subfield runs past end of record")
					}
					c += l.n
				}
			}
			*cursor = c
			return asterix.OK, nil
		},
	}
}

// descriptorReservedExpansion and descriptorSpecialPurpose implement
// RE062/SP062 using the same length-prefixed-blob convention as
// cat048's RE048/SP048 and cat063's RE063/SP063 (the length octet's
// value includes itself).
func descriptorReservedExpansion() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "RE062", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			blob, next, err := readLengthPrefixed(payload, *cursor)
			if err != nil {
				return asterix.Error, fmt.Errorf("RE062: %w", err)
			}
			*cursor = next
			rec.Track().ReservedExpansion = blob
			return asterix.OK, nil
		},
	}
}

func descriptorSpecialPurpose() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "SP062", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			blob, next, err := readLengthPrefixed(payload, *cursor)
			if err != nil {
				return asterix.Error, fmt.Errorf("SP062: %w", err)
			}
			*cursor = next
			rec.Track().SpecialPurpose = blob
			return asterix.OK, nil
		},
	}
}

func readLengthPrefixed(payload []byte, cursor int) ([]byte, int, error) {
	if cursor >= len(payload) {
		return nil, cursor, fmt.Errorf("length octet runs past end of record")
	}
	total := int(payload[cursor])
	end := cursor + total
	if total == 0 || end > len(payload) {
		return nil, cursor, fmt.Errorf("declared length %d runs past end of record", total)
	}
	return append([]byte(nil), payload[cursor:end]...), end, nil
}
