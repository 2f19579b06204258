// Package cat048 implements ASTERIX Category 048, monoradar target
// reports, version 1.32 (EUROCONTROL SUR.ET1.ST05.2000-STD-04-01),
// grounded on the teacher's cat/cat048/dataitems/v132 items and
// cat/cat048/uap/uap_v132.go's FRN table.
package cat048

import (
	"fmt"
	"strings"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

// Version132 is the only version implemented.
const Version132 = "1.32"

const nauticalMileM = 1852.0

// Register builds the Cat048 v1.32 UAP and registers it with dec.
func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat048 UAP: %w", err)
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat048, Version132, 4, asterix.KindPlot, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorTimeOfDay()},
		{FRN: 3, Descriptor: descriptorTargetReportDescriptor()},
		{FRN: 4, Descriptor: descriptorMeasuredPosition()},
		{FRN: 5, Descriptor: descriptorMode3ACode()},
		{FRN: 6, Descriptor: descriptorFlightLevel()},
		{FRN: 7, Descriptor: descriptorRadarPlotCharacteristics()},
		{FRN: 8, Descriptor: descriptorAircraftAddress()},
		{FRN: 9, Descriptor: descriptorAircraftIdentification()},
		{FRN: 10, Descriptor: descriptorBDSRegisterData()},
		{FRN: 11, Descriptor: descriptorTrackNumber()},
		{FRN: 12, Descriptor: descriptorCalculatedPosition()},
		{FRN: 13, Descriptor: descriptorCalculatedTrackVelocity()},
		{FRN: 14, Descriptor: descriptorTrackStatus()},
		{FRN: 15, Descriptor: descriptorTrackQuality()},
		{FRN: 16, Descriptor: descriptorWarningErrorConditions()},
		{FRN: 17, Descriptor: descriptorMode3ACodeConfidence()},
		{FRN: 18, Descriptor: descriptorModeCCodeAndConfidence()},
		{FRN: 19, Descriptor: descriptorHeight3D()},
		{FRN: 20, Descriptor: descriptorRadialDopplerSpeed()},
		{FRN: 21, Descriptor: descriptorCommCapability()},
		{FRN: 22, Descriptor: descriptorACASResolutionAdvisory()},
		{FRN: 23, Descriptor: descriptorMode1Code()},
		{FRN: 24, Descriptor: descriptorMode2Code()},
		{FRN: 25, Descriptor: descriptorMode1CodeConfidence()},
		{FRN: 26, Descriptor: descriptorMode2CodeConfidence()},
		{FRN: 27, Descriptor: descriptorSpecialPurposeField()},
		{FRN: 28, Descriptor: descriptorReservedExpansion()},
	})
}

func descriptorDataSourceIdentifier() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Plot().DataSource = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

func descriptorTimeOfDay() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/140", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			rec.Plot().TimeOfDay = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

// detectionFromTYP maps I048/020's 3-bit TYP subfield onto the shared
// DetectionType enum (spec.md §3). TYP 6/7 (ModeS all-/roll-call plus
// PSR) both collapse onto DetectionModeSCombined; the wire distinction
// between all-call and roll-call combined plots is not carried by the
// report model.
func detectionFromTYP(typ uint8) asterix.DetectionType {
	switch typ {
	case 1:
		return asterix.DetectionPSR
	case 2:
		return asterix.DetectionSSR
	case 3:
		return asterix.DetectionCombined
	case 4:
		return asterix.DetectionModeSAllCall
	case 5:
		return asterix.DetectionModeSRollCall
	case 6, 7:
		return asterix.DetectionModeSCombined
	default:
		return asterix.DetectionUnknown
	}
}

// descriptorTargetReportDescriptor implements I048/020: a primary octet
// (TYP/SIM/RDP/SPI/RAB) followed by up to five FX-chained extension
// octets. The first extension (TST/ERR/XPP/ME/MI/FOE) is stored on the
// plot directly; the Mode-S/ACAS capability bits carried by the
// remaining four extensions have no dedicated field on Plot and are
// folded into Capability by name, populated only when their EP
// ("element populated") bit is set.
func descriptorTargetReportDescriptor() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/020", Kind: asterix.Variable, VarCap: 6,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			p := rec.Plot()

			typ := (data[0] >> 5) & 0x07
			sim := data[0]&0x10 != 0
			spi := data[0]&0x04 != 0
			rab := data[0]&0x02 != 0

			if typ != 0 {
				p.Detection = asterix.Some(detectionFromTYP(typ))
			}
			p.Simulated = sim
			p.SPI = spi
			p.FromFixedAntenna = rab

			if len(data) < 2 {
				return asterix.OK, nil
			}
			p.Test = data[1]&0x80 != 0

			capMap := p.Capability
			if capMap == nil {
				capMap = make(map[string]bool)
			}
			if len(data) >= 3 {
				b := data[2]
				if b&0x80 != 0 {
					capMap["ADSB_VAL"] = b&0x40 != 0
				}
				if b&0x20 != 0 {
					capMap["SCN_VAL"] = b&0x10 != 0
				}
				if b&0x08 != 0 {
					capMap["PAI_VAL"] = b&0x04 != 0
				}
			}
			if len(data) >= 4 {
				b := data[3]
				if b&0x08 != 0 {
					capMap["POXPR_VAL"] = b&0x04 != 0
				}
			}
			if len(data) >= 5 {
				b := data[4]
				if b&0x20 != 0 {
					capMap["DTFXPR_VAL"] = b&0x10 != 0
				}
				if b&0x08 != 0 {
					capMap["DTFACT_VAL"] = b&0x04 != 0
				}
			}
			if len(data) >= 6 {
				b := data[5]
				if b&0x80 != 0 {
					capMap["IRMXPR_VAL"] = b&0x40 != 0
				}
				if b&0x20 != 0 {
					capMap["IRMACT_VAL"] = b&0x10 != 0
				}
			}
			if len(capMap) > 0 {
				p.Capability = capMap
			}
			return asterix.OK, nil
		},
	}
}

// descriptorMeasuredPosition implements I048/040: measured position in
// polar coordinates, RHO (LSB 1/256 NM — finer than cat001's 1/128 NM)
// and THETA (LSB 360/2^16 deg).
func descriptorMeasuredPosition() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/040", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rhoRaw := uint16(data[0])<<8 | uint16(data[1])
			thetaRaw := uint16(data[2])<<8 | uint16(data[3])
			rangeM := float64(rhoRaw) / 256.0 * nauticalMileM
			azimuthR := common.DegToRad(float64(thetaRaw) * 360.0 / 65536.0)
			rec.Plot().MeasuredPolar = asterix.Some(asterix.PolarPosition{RangeM: rangeM, AzimuthR: azimuthR})
			return asterix.OK, nil
		},
	}
}

func decode12BitCode(data []byte) (code uint16, v, g, l bool) {
	v = data[0]&0x80 != 0
	g = data[0]&0x40 != 0
	l = data[0]&0x20 != 0
	code = (uint16(data[0]&0x0F) << 8) | uint16(data[1])
	return
}

// descriptorMode3ACode implements I048/070: Mode-3/A code, V/G/L flags
// plus a 12-bit octal code (same binary layout as cat001's I001/070).
func descriptorMode3ACode() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/070", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			code, v, g, _ := decode12BitCode(data)
			p := rec.Plot()
			p.Mode3A = asterix.Some(code)
			p.Mode3AGarbled = g
			p.Mode3AInvalid = v
			return asterix.OK, nil
		},
	}
}

// descriptorFlightLevel implements I048/090: flight level in binary
// representation, V/G flags plus a 14-bit two's-complement value in
// 1/4 FL units. Stored on the shared Mode-C fields since this is the
// same altitude source cat001 carries through I001/090.
func descriptorFlightLevel() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/090", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			v := data[0]&0x80 != 0
			g := data[0]&0x40 != 0
			raw := (uint32(data[0]&0x3F) << 8) | uint32(data[1])
			fl := float64(asterix.SignExtend(raw, 14)) / 4.0
			p := rec.Plot()
			p.ModeCFeet = asterix.Some(fl * 100.0)
			p.ModeCGarbled = g
			p.ModeCInvalid = v
			return asterix.OK, nil
		},
	}
}

// descriptorRadarPlotCharacteristics implements I048/130: a single
// presence octet (SRL/SRR/SAM/PRL/PAM/RPD/APD) selecting which
// single-byte subfields follow. Unlike I001/130 this primary octet is
// not FSPEC-chained — the teacher rejects a set FX bit outright, so the
// decoder does the same rather than invent an undefined extension.
func descriptorRadarPlotCharacteristics() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/130", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			if *cursor >= len(payload) {
				return asterix.Error, fmt.Errorf("I048/130: primary subfield runs past end of record")
			}
			primary := payload[*cursor]
			*cursor++
			if primary&0x01 != 0 {
				return asterix.Error, fmt.Errorf("I048/130: FX bit set in primary subfield, but extensions are not defined")
			}

			values := make(map[string]float64)
			readByte := func(name string, scale func(int8) float64) error {
				if *cursor >= len(payload) {
					return fmt.Errorf("I048/130: subfield %s runs past end of record", name)
				}
				values[name] = scale(int8(payload[*cursor]))
				*cursor++
				return nil
			}
			if primary&0x80 != 0 {
				if err := readByte("SSRRunLength", func(b int8) float64 { return float64(uint8(b)) * 360.0 / 8192.0 }); err != nil {
					return asterix.Error, err
				}
			}
			if primary&0x40 != 0 {
				if err := readByte("NumberOfReceivedReplies", func(b int8) float64 { return float64(uint8(b)) }); err != nil {
					return asterix.Error, err
				}
			}
			if primary&0x20 != 0 {
				if err := readByte("SSRAmplitude", func(b int8) float64 { return float64(b) }); err != nil {
					return asterix.Error, err
				}
			}
			if primary&0x10 != 0 {
				if err := readByte("PSRRunLength", func(b int8) float64 { return float64(uint8(b)) * 360.0 / 8192.0 }); err != nil {
					return asterix.Error, err
				}
			}
			if primary&0x08 != 0 {
				if err := readByte("PSRAmplitude", func(b int8) float64 { return float64(b) }); err != nil {
					return asterix.Error, err
				}
			}
			if primary&0x04 != 0 {
				if err := readByte("DifferenceRangePSRSSR", func(b int8) float64 { return float64(b) / 256.0 }); err != nil {
					return asterix.Error, err
				}
			}
			if primary&0x02 != 0 {
				if err := readByte("DifferenceAzimuthPSRSSR", func(b int8) float64 { return float64(b) * 360.0 / 16384.0 }); err != nil {
					return asterix.Error, err
				}
			}
			rec.Plot().RadarPlotCharacteristics = values
			return asterix.OK, nil
		},
	}
}

func descriptorAircraftAddress() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/220", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			addr := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
			rec.Plot().AircraftAddress = asterix.Some(addr)
			return asterix.OK, nil
		},
	}
}

// descriptorAircraftIdentification implements I048/240: 6 bytes of
// packed 6-bit ICAO characters, reusing the shared ICAO8 unpacker
// (bitreader.go) rather than reimplementing the bit-packing locally.
func descriptorAircraftIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/240", Kind: asterix.Fixed, Len: 6,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			ident := strings.TrimRight(asterix.ICAO8(data), " ")
			rec.Plot().AircraftIdentification = asterix.Some(ident)
			return asterix.OK, nil
		},
	}
}

// descriptorBDSRegisterData implements I048/250: a repetition count
// followed by N 8-byte Comm-B register entries (7 data bytes plus a
// BDS1/BDS2 nibble pair address byte).
func descriptorBDSRegisterData() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/250", Kind: asterix.Repetitive, ElemLen: 8,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rep := int(data[0])
			regs := make([]asterix.BDSRegister, 0, rep)
			for i := 0; i < rep; i++ {
				off := 1 + i*8
				var reg asterix.BDSRegister
				copy(reg.Data[:], data[off:off+7])
				reg.Address = data[off+7]
				regs = append(regs, reg)
			}
			rec.Plot().BDSRegisters = regs
			return asterix.OK, nil
		},
	}
}

// descriptorTrackNumber implements I048/161: 12-bit track number, top
// 4 bits spare.
func descriptorTrackNumber() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/161", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			num := (uint16(data[0]&0x0F) << 8) | uint16(data[1])
			rec.Plot().TrackNumber = asterix.Some(num)
			return asterix.OK, nil
		},
	}
}

// descriptorCalculatedPosition implements I048/042: Cartesian X/Y,
// each a 16-bit two's-complement value with LSB 1/128 NM.
func descriptorCalculatedPosition() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/042", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			x := float64(int16(uint16(data[0])<<8|uint16(data[1]))) / 128.0 * nauticalMileM
			y := float64(int16(uint16(data[2])<<8|uint16(data[3]))) / 128.0 * nauticalMileM
			rec.Plot().CalculatedCartesian = asterix.Some(asterix.CartesianPosition{X: x, Y: y})
			return asterix.OK, nil
		},
	}
}

// descriptorCalculatedTrackVelocity implements I048/200: ground speed
// (LSB 2^-14 NM/s) and heading (LSB 360/2^16 deg) in polar form.
func descriptorCalculatedTrackVelocity() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/200", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			speedRaw := uint16(data[0])<<8 | uint16(data[1])
			headingRaw := uint16(data[2])<<8 | uint16(data[3])
			speedMS := float64(speedRaw) / 16384.0 * nauticalMileM
			headingR := common.DegToRad(float64(headingRaw) * 360.0 / 65536.0)
			rec.Plot().TrackVelocity = asterix.Some(asterix.Velocity{
				Polar: asterix.Some(asterix.PolarVelocity{SpeedMS: speedMS, HeadingR: headingR}),
			})
			return asterix.OK, nil
		},
	}
}

// descriptorTrackStatus implements I048/170: a primary octet (CNF/RAD/
// DOU/MAH/CDM) plus an optional extension octet (TRE/GHO/SUP/TCC, no
// further FX).
func descriptorTrackStatus() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/170", Kind: asterix.Variable, VarCap: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			p := rec.Plot()
			status := map[string]bool{
				"CNF": data[0]&0x80 != 0,
				"DOU": data[0]&0x08 != 0,
				"MAH": data[0]&0x04 != 0,
			}
			p.TrackSensorType = asterix.Some((data[0] >> 5) & 0x03)
			p.TrackVertMode = asterix.Some((data[0] >> 1) & 0x03)
			if len(data) > 1 {
				status["TRE"] = data[1]&0x80 != 0
				status["GHO"] = data[1]&0x40 != 0
				status["SUP"] = data[1]&0x20 != 0
				status["TCC"] = data[1]&0x10 != 0
			}
			p.TrackStatus = status
			return asterix.OK, nil
		},
	}
}

// descriptorTrackQuality implements I048/210: four single-byte sigma
// values (X/Y position, speed, heading), each converted to SI units.
func descriptorTrackQuality() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/210", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Plot().TrackQuality = map[string]float64{
				"SigmaX": float64(data[0]) / 128.0 * nauticalMileM,
				"SigmaY": float64(data[1]) / 128.0 * nauticalMileM,
				"SigmaV": float64(data[2]) * 16384.0 * nauticalMileM / 268435456.0, // 2^-14 NM/s
				"SigmaH": common.DegToRad(float64(data[3]) * 360.0 / 4096.0),
			}
			return asterix.OK, nil
		},
	}
}

// descriptorWarningErrorConditions implements I048/030: an FX-chained
// sequence of 7-bit warning/error condition codes, identical wire shape
// to cat001's I001/030.
func descriptorWarningErrorConditions() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/030", Kind: asterix.Variable, VarCap: 8,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			codes := make([]uint8, 0, len(data))
			for _, b := range data {
				codes = append(codes, b>>1&0x7F)
			}
			rec.Plot().WEC = codes
			return asterix.OK, nil
		},
	}
}

func descriptorMode3ACodeConfidence() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/080", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Plot().Mode3AConfidence = asterix.Some(uint16(data[0])<<8 | uint16(data[1]))
			return asterix.OK, nil
		},
	}
}

// descriptorModeCCodeAndConfidence implements I048/100. The code octets
// carry the raw transponder pulses re-ordered into "Gray notation", not
// a binary altitude — the teacher never converts this to feet, and
// I048/090 already supplies the authoritative binary flight level, so
// only the quality-pulse confidence bitmap is kept.
func descriptorModeCCodeAndConfidence() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/100", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			p := rec.Plot()
			p.ModeCGarbled = data[0]&0x40 != 0
			p.ModeCInvalid = data[0]&0x80 != 0
			p.ModeCConfidence = asterix.Some(uint16(data[2])<<8 | uint16(data[3]))
			return asterix.OK, nil
		},
	}
}

// descriptorHeight3D implements I048/110: 14-bit two's-complement
// height above the radar's reference, LSB 25 ft.
func descriptorHeight3D() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/110", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := (uint32(data[0]&0x3F) << 8) | uint32(data[1])
			ft := float64(asterix.SignExtend(raw, 14)) * 25.0
			rec.Plot().Height3DFeet = asterix.Some(ft)
			return asterix.OK, nil
		},
	}
}

// descriptorRadialDopplerSpeed implements I048/120: a single presence
// octet selecting either a calculated (CAL) or raw (RDS) Doppler speed
// subfield — never both, matching the teacher's own rejection of
// records carrying both — followed by the selected subfield.
// Extensions of the primary octet are undefined, same as I048/130.
func descriptorRadialDopplerSpeed() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/120", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			if *cursor >= len(payload) {
				return asterix.Error, fmt.Errorf("I048/120: primary subfield runs past end of record")
			}
			primary := payload[*cursor]
			*cursor++
			if primary&0x01 != 0 {
				return asterix.Error, fmt.Errorf("I048/120: FX bit set in primary subfield, but extensions are not defined")
			}
			cal := primary&0x80 != 0
			rds := primary&0x40 != 0
			if cal && rds {
				return asterix.Error, fmt.Errorf("I048/120: both calculated and raw doppler speed subfields present, which is not allowed")
			}

			p := rec.Plot()
			if cal {
				if *cursor+2 > len(payload) {
					return asterix.Error, fmt.Errorf("I048/120: calculated doppler speed subfield runs past end of record")
				}
				d := payload[*cursor : *cursor+2]
				*cursor += 2
				invalid := d[0]&0x80 != 0
				raw := (uint32(d[0]&0x03) << 8) | uint32(d[1])
				speed := float64(asterix.SignExtend(raw, 10))
				if !invalid {
					p.DopplerSpeedMS = asterix.Some(speed)
				}
			}
			if rds {
				if *cursor >= len(payload) {
					return asterix.Error, fmt.Errorf("I048/120: raw doppler speed subfield runs past end of record")
				}
				rep := int(payload[*cursor])
				*cursor++
				if *cursor+rep*6 > len(payload) {
					return asterix.Error, fmt.Errorf("I048/120: raw doppler speed entries run past end of record")
				}
				for i := 0; i < rep; i++ {
					off := *cursor + i*6
					if i == 0 {
						speed := int16(uint16(payload[off])<<8 | uint16(payload[off+1]))
						ambig := uint16(payload[off+2])<<8 | uint16(payload[off+3])
						p.DopplerSpeedMS = asterix.Some(float64(speed))
						p.DopplerAmbiguousMS = asterix.Some(float64(ambig))
					}
				}
				*cursor += rep * 6
			}
			return asterix.OK, nil
		},
	}
}

// descriptorCommCapability implements I048/230: transponder
// communications/ACAS capability (COM/STAT enums, SI/MSSC/ARC/AIC/B1A
// flags) and the B1B data-link-capability nibble.
func descriptorCommCapability() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/230", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			p := rec.Plot()
			p.CommCapability = asterix.Some((data[0] >> 5) & 0x07)
			p.FlightStatus = asterix.Some((data[0] >> 2) & 0x07)
			capMap := p.Capability
			if capMap == nil {
				capMap = make(map[string]bool)
			}
			capMap["SI"] = data[0]&0x02 != 0
			capMap["MSSC"] = data[1]&0x80 != 0
			capMap["ARC"] = data[1]&0x40 != 0
			capMap["AIC"] = data[1]&0x20 != 0
			capMap["B1A"] = data[1]&0x10 != 0
			p.Capability = capMap
			p.BDS10 = asterix.Some(data[1] & 0x0F)
			return asterix.OK, nil
		},
	}
}

// descriptorACASResolutionAdvisory implements I048/260: a 7-byte opaque
// ACAS resolution advisory report. The teacher's UAP referenced a
// cat048.ACASResolutionAdvisory type that was never implemented
// anywhere in its dataitems tree; this is freshly grounded on
// original_source/src/astx_048.cpp's proc_i048_260, which stores the
// seven octets verbatim with no further structure.
func descriptorACASResolutionAdvisory() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/260", Kind: asterix.Fixed, Len: 7,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Plot().ACASRA = asterix.Some(asterix.ACASResolutionAdvisory{Raw: append([]byte(nil), data...)})
			return asterix.OK, nil
		},
	}
}

// descriptorMode1Code implements I048/055: V/G/L flags plus a 2-octal-
// digit 5-bit code.
func descriptorMode1Code() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/055", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			a := (data[0] & 0x1C) >> 2
			b := data[0] & 0x03
			code := uint16(a)*10 + uint16(b)
			rec.Plot().Mode1 = asterix.Some(code)
			return asterix.OK, nil
		},
	}
}

// descriptorMode2Code implements I048/050. The teacher's UAP referenced
// a cat048.Mode2Code type that was never implemented anywhere in its
// dataitems tree; this is freshly grounded on
// original_source/src/astx_048.cpp's proc_i048_050, which packs the
// 12-bit code identically to cat001's decode12BitCode and stores it
// only when the code is nonzero or the V bit is clear (I001/050, by
// contrast, stores its code unconditionally, see DESIGN.md).
func descriptorMode2Code() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/050", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			code, v, _, _ := decode12BitCode(data)
			if code != 0 || !v {
				rec.Plot().Mode2 = asterix.Some(code)
			}
			return asterix.OK, nil
		},
	}
}

func descriptorMode1CodeConfidence() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/065", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Plot().Mode1Confidence = asterix.Some(uint16(data[0]))
			return asterix.OK, nil
		},
	}
}

func descriptorMode2CodeConfidence() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I048/060", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Plot().Mode2Confidence = asterix.Some(uint16(data[0])<<8 | uint16(data[1]))
			return asterix.OK, nil
		},
	}
}

// descriptorSpecialPurposeField implements SP048: a length-prefixed
// opaque blob (the length octet itself counts toward the stored byte
// count, matching the teacher's convention for this field).
func descriptorSpecialPurposeField() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "SP048", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			blob, next, err := readLengthPrefixed(payload, *cursor)
			if err != nil {
				return asterix.Error, fmt.Errorf("SP048: %w", err)
			}
			*cursor = next
			rec.Plot().SpecialPurpose = blob
			return asterix.OK, nil
		},
	}
}

// descriptorReservedExpansion implements RE048, wire-identical to SP048.
func descriptorReservedExpansion() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "RE048", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			blob, next, err := readLengthPrefixed(payload, *cursor)
			if err != nil {
				return asterix.Error, fmt.Errorf("RE048: %w", err)
			}
			*cursor = next
			rec.Plot().ReservedExpansion = blob
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
