// cat/cat001/cat001.go
package cat001

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

// Version12 is the only version implemented (EUROCONTROL Cat001 Part 2a
// ed. 1.2), grounded on the teacher's cat/cat001/dataitems/v12 items and
// original_source/src/astx_001.cpp.
const Version12 = "1.2"

// nauticalMileM is the conversion factor gobelix's dataitems never
// needed (it stopped at NM/degrees); the report model stores SI units
// throughout (spec.md §3 "engineering-unit scalings").
const nauticalMileM = 1852.0

// Register builds both of category 1's UAPs and wires the plot profile
// into dec as the default. The track profile is captured by the
// I001/020 decode closure and swapped into the DecoderContext at
// runtime when a record's first octet carries the track-report TYP
// range (spec.md §3 invariant 2, grounded on astx_001.cpp's plot/track
// TYP discrimination).
func Register(dec *asterix.Decoder) error {
	track, err := newTrackUAP()
	if err != nil {
		return fmt.Errorf("cat001 track UAP: %w", err)
	}
	plot, err := newPlotUAP(track)
	if err != nil {
		return fmt.Errorf("cat001 plot UAP: %w", err)
	}
	return dec.Register(plot)
}

func newPlotUAP(track *asterix.UAP) (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat001, Version12, 2, asterix.KindPlot, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorTargetReportDescriptor(track)},
		{FRN: 3, Descriptor: descriptorPositionPolar()},
		{FRN: 4, Descriptor: descriptorMode3A()},
		{FRN: 5, Descriptor: descriptorModeC()},
		{FRN: 6, Descriptor: descriptorRadarPlotCharacteristics()},
		{FRN: 7, Descriptor: descriptorTruncatedToD()},
		{FRN: 8, Descriptor: descriptorMode2()},
		{FRN: 9, Descriptor: descriptorDopplerSpeed()},
		{FRN: 10, Descriptor: descriptorReceivedPower()},
		{FRN: 11, Descriptor: descriptorMode3AConfidence()},
		{FRN: 12, Descriptor: descriptorModeCConfidence()},
		{FRN: 13, Descriptor: descriptorMode2Confidence()},
		{FRN: 14, Descriptor: descriptorWarningErrorConditions()},
	})
}

// newTrackUAP builds category 1's track profile. It reuses the same FRN
// layout as the plot profile (EUROCONTROL Cat001 defines one wire
// format; the plot/track split is this decoder's own redesign, spec.md
// §3 invariant 2) but freezes into a Track rather than a Plot.
func newTrackUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat001, Version12, 2, asterix.KindTrack, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorTargetReportDescriptor(nil)},
		{FRN: 3, Descriptor: descriptorPositionPolar()},
		{FRN: 4, Descriptor: descriptorMode3A()},
		{FRN: 5, Descriptor: descriptorModeC()},
		{FRN: 7, Descriptor: descriptorTruncatedToD()},
	})
}

// descriptorDataSourceIdentifier implements I001/010: SAC/SIC, fixed 2
// bytes. It both stamps the current report and feeds the data block's
// SAC/SIC inheritance chain (spec.md §3 invariant 6).
func descriptorDataSourceIdentifier() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Plot().DataSource = asterix.Some(dsi)
			rec.Track().LastUpdatingSensor = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

// descriptorTargetReportDescriptor implements I001/020: TYP/SIM/SSR/ANT/
// SPI in the first octet, RAB/TST in an optional extension octet. TYP's
// high bit (values 4-7) selects the track profile for the remainder of
// this record.
func descriptorTargetReportDescriptor(track *asterix.UAP) asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/020", Kind: asterix.Variable, VarCap: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			typ := (data[0] >> 5) & 0x07
			sim := data[0]&0x10 != 0
			ssr := data[0]&0x08 != 0
			spi := data[0]&0x02 != 0

			if typ >= 4 && track != nil {
				ctx.SetActiveCat001UAP(track)
			}

			detect := asterix.DetectionPSR
			if ssr {
				detect = asterix.DetectionSSR
			}

			var rab, tst bool
			if len(data) > 1 {
				rab = data[1]&0x80 != 0
				tst = data[1]&0x40 != 0
			}

			p := rec.Plot()
			p.Detection = asterix.Some(detect)
			p.Simulated = sim
			p.SPI = spi
			p.FromFixedAntenna = rab
			p.Test = tst
			return asterix.OK, nil
		},
	}
}

// descriptorPositionPolar implements I001/040: measured position in
// polar coordinates, RHO (LSB 1/128 NM) and THETA (LSB 360/2^16 deg).
func descriptorPositionPolar() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/040", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rhoRaw := uint16(data[0])<<8 | uint16(data[1])
			thetaRaw := uint16(data[2])<<8 | uint16(data[3])
			rangeM := float64(rhoRaw) / 128.0 * nauticalMileM
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

// descriptorMode3A implements I001/070: Mode-3/A code, V/G/L flags plus
// a 12-bit octal code.
func descriptorMode3A() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/070", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			code, _, g, _ := decode12BitCode(data)
			p := rec.Plot()
			p.Mode3A = asterix.Some(code)
			p.Mode3AGarbled = g
			return asterix.OK, nil
		},
	}
}

func descriptorMode2() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/050", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			code, _, _, _ := decode12BitCode(data)
			rec.Plot().Mode2 = asterix.Some(code)
			return asterix.OK, nil
		},
	}
}

func descriptorMode3AConfidence() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/080", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Plot().Mode3AConfidence = asterix.Some(uint16(data[0])<<8 | uint16(data[1]))
			return asterix.OK, nil
		},
	}
}

func descriptorMode2Confidence() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/060", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Plot().Mode2Confidence = asterix.Some(uint16(data[0])<<8 | uint16(data[1]))
			return asterix.OK, nil
		},
	}
}

// descriptorModeC implements I001/090: Mode-C code, V/G flags plus a
// 14-bit two's-complement flight level in 1/4 FL units.
func descriptorModeC() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/090", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			g := data[0]&0x40 != 0
			raw := (uint32(data[0]&0x3F) << 8) | uint32(data[1])
			fl := float64(asterix.SignExtend(raw, 14)) / 4.0
			p := rec.Plot()
			p.ModeCFeet = asterix.Some(fl * 100.0)
			p.ModeCGarbled = g
			return asterix.OK, nil
		},
	}
}

func descriptorModeCConfidence() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/100", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := (uint32(data[2]&0x3F) << 8) | uint32(data[3])
			fl := float64(asterix.SignExtend(raw, 14)) / 4.0
			rec.Plot().ModeCConfidence = asterix.Some(uint16(fl))
			return asterix.OK, nil
		},
	}
}

// descriptorRadarPlotCharacteristics implements I001/130: an Extended
// item whose presence octet selects which single-byte subfields follow
// (SSR/PSR run lengths, amplitude, plot diffs). Subfield values are
// stored by name rather than by FRN-like position since their count
// varies per record.
func descriptorRadarPlotCharacteristics() asterix.Descriptor {
	names := []string{"SSRRunLength", "NumberOfReceivedReplies", "AmplitudeOfReceivedReplies", "PSRRunLength", "PSRAmplitude", "DifferenceRangePSRSSR", "DifferenceAzimuthPSRSSR"}
	return asterix.Descriptor{
		ID: "I001/130", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			selected, next, err := asterix.CompoundPrimary(payload, *cursor)
			if err != nil {
				return asterix.Error, err
			}
			*cursor = next
			values := make(map[string]float64, len(selected))
			for _, idx := range selected {
				if *cursor >= len(payload) {
					return asterix.Error, fmt.Errorf("I001/130: subfield runs past end of record")
				}
				v := float64(payload[*cursor])
				*cursor++
				if idx >= 1 && idx <= len(names) {
					values[names[idx-1]] = v
				}
			}
			rec.Plot().RadarPlotCharacteristics = values
			return asterix.OK, nil
		},
	}
}

// descriptorTruncatedToD implements I001/141: 16-bit time of day, LSB
// 1/128 second, extended by fill-up from the data block's last full ToD
// (spec.md §3 invariant 7 — though cat001 only ever carries the
// truncated form, so FillUpToD here simply seeds/normalises it).
func descriptorTruncatedToD() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/141", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.TruncatedTimeOfDay(data)
			if full, ok := ctx.FillUpToD(tod); ok {
				tod = full
			}
			ctx.RememberToD(tod)
			rec.Plot().TimeOfDay = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

func descriptorDopplerSpeed() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/120", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int8(data[0])
			rec.Plot().DopplerSpeedMS = asterix.Some(float64(raw) * 0.5144444) // LSB = 1 kt
			return asterix.OK, nil
		},
	}
}

func descriptorReceivedPower() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/131", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Plot().ReceivedPowerDBM = asterix.Some(float64(int8(data[0])))
			return asterix.OK, nil
		},
	}
}

// descriptorWarningErrorConditions implements I001/030: an FX-chained
// sequence of 7-bit warning/error condition codes, one byte per code
// plus extension bit.
func descriptorWarningErrorConditions() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I001/030", Kind: asterix.Variable, VarCap: 8,
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
