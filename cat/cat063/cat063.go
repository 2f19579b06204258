// Package cat063 implements ASTERIX Category 063, sensor status reports,
// version 1.6 (EUROCONTROL SUR.ET1.ST05.2000-STD-16-01), grounded on the
// teacher's cat/cat063/dataitems/v16 items and cat/cat063/uap/uap_v16.go's
// FRN table.
package cat063

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version16 = "1.6"

const nauticalMileM = 1852.0
const azimuthLSB = 360.0 / 65536.0

// Register builds the Cat063 v1.6 UAP and registers it with dec.
func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat063 UAP: %w", err)
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat063, Version16, 2, asterix.KindSensorStatus, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorServiceIdentification()},
		{FRN: 3, Descriptor: descriptorTimeOfMessage()},
		{FRN: 4, Descriptor: descriptorSensorIdentifier()},
		{FRN: 5, Descriptor: descriptorSensorConfigurationAndStatus()},
		{FRN: 6, Descriptor: descriptorTimeStampingBias()},
		{FRN: 7, Descriptor: descriptorSSRRangeGainAndBias()},
		{FRN: 8, Descriptor: descriptorSSRAzimuthBias()},
		{FRN: 9, Descriptor: descriptorPSRRangeGainAndBias()},
		{FRN: 10, Descriptor: descriptorPSRAzimuthBias()},
		{FRN: 11, Descriptor: descriptorPSRElevationBias()},
		{FRN: 13, Descriptor: descriptorReservedExpansion()},
		{FRN: 14, Descriptor: descriptorSpecialPurpose()},
	})
}

// descriptorDataSourceIdentifier implements I063/010: SAC/SIC of the
// system sending this status message. Distinct from I063/050 (the
// sensor the status actually describes) — there is no dedicated Plot-
// like slot for "sender" on SensorStatus, so this only feeds the
// SAC/SIC inheritance chain.
func descriptorDataSourceIdentifier() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			ctx.RememberSACSIC(common.DataSourceIdentifier(data))
			return asterix.OK, nil
		},
	}
}

func descriptorServiceIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/015", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Status().ServiceID = asterix.Some(data[0])
			return asterix.OK, nil
		},
	}
}

func descriptorTimeOfMessage() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/030", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			rec.Status().ReportingTimeS = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

// descriptorSensorIdentifier implements I063/050: SAC/SIC of the sensor
// this status report describes.
func descriptorSensorIdentifier() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/050", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Status().SensorID = common.DataSourceIdentifier(data)
			return asterix.OK, nil
		},
	}
}

// descriptorSensorConfigurationAndStatus implements I063/060: a primary
// octet (connection status + NOGO flags) plus an optional extension
// octet (overload/disconnect flags). Connected reflects the primary
// connection-status enum (0 = operational); the individual NOGO and
// overload bits are kept in StatusFlags since there is no fixed-shape
// field for them. No further extension octets are defined in v1.6; any
// that appear are consumed by the FX chain but otherwise ignored.
func descriptorSensorConfigurationAndStatus() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/060", Kind: asterix.Variable,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			s := rec.Status()
			con := (data[0] >> 6) & 0x03
			s.Connected = con == 0
			flags := map[string]bool{
				"PSR": data[0]&0x20 != 0,
				"SSR": data[0]&0x10 != 0,
				"MDS": data[0]&0x08 != 0,
				"ADS": data[0]&0x04 != 0,
				"MLT": data[0]&0x02 != 0,
			}
			if len(data) > 1 {
				flags["OPS"] = data[1]&0x80 != 0
				flags["ODP"] = data[1]&0x40 != 0
				flags["OXT"] = data[1]&0x20 != 0
				flags["MSC"] = data[1]&0x10 != 0
				flags["TSV"] = data[1]&0x08 != 0
				flags["NPW"] = data[1]&0x04 != 0
			}
			s.StatusFlags = flags
			return asterix.OK, nil
		},
	}
}

func descriptorTimeStampingBias() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/070", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Status().TimestampBiasS = asterix.Some(float64(raw) / 1000.0) // LSB 1 ms
			return asterix.OK, nil
		},
	}
}

func descriptorSSRRangeGainAndBias() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/080", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			gainRaw := int16(uint16(data[0])<<8 | uint16(data[1]))
			biasRaw := int16(uint16(data[2])<<8 | uint16(data[3]))
			s := rec.Status()
			s.SSRRangeGain = asterix.Some(float64(gainRaw) * 1e-5)
			s.SSRRangeBiasM = asterix.Some(float64(biasRaw) / 128.0 * nauticalMileM)
			return asterix.OK, nil
		},
	}
}

func descriptorSSRAzimuthBias() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/081", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Status().SSRAzimuthBiasR = asterix.Some(common.DegToRad(float64(raw) * azimuthLSB))
			return asterix.OK, nil
		},
	}
}

func descriptorPSRRangeGainAndBias() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/090", Kind: asterix.Fixed, Len: 4,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			gainRaw := int16(uint16(data[0])<<8 | uint16(data[1]))
			biasRaw := int16(uint16(data[2])<<8 | uint16(data[3]))
			s := rec.Status()
			s.PSRRangeGain = asterix.Some(float64(gainRaw) * 1e-5)
			s.PSRRangeBiasM = asterix.Some(float64(biasRaw) / 128.0 * nauticalMileM)
			return asterix.OK, nil
		},
	}
}

func descriptorPSRAzimuthBias() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/091", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Status().PSRAzimuthBiasR = asterix.Some(common.DegToRad(float64(raw) * azimuthLSB))
			return asterix.OK, nil
		},
	}
}

func descriptorPSRElevationBias() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I063/092", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := int16(uint16(data[0])<<8 | uint16(data[1]))
			rec.Status().PSRElevationBiasR = asterix.Some(common.DegToRad(float64(raw) * azimuthLSB))
			return asterix.OK, nil
		},
	}
}

func descriptorReservedExpansion() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "RE063", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			blob, next, err := readLengthPrefixed(payload, *cursor)
			if err != nil {
				return asterix.Error, fmt.Errorf("RE063: %w", err)
			}
			*cursor = next
			rec.Status().ReservedExpansion = blob
			return asterix.OK, nil
		},
	}
}

func descriptorSpecialPurpose() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "SP063", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			blob, next, err := readLengthPrefixed(payload, *cursor)
			if err != nil {
				return asterix.Error, fmt.Errorf("SP063: %w", err)
			}
			*cursor = next
			rec.Status().SpecialPurpose = blob
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
