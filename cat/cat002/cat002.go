// Package cat002 implements ASTERIX Category 002, monoradar service
// messages (sector crossings, antenna markers, station status), version
// 1.0 (EUROCONTROL SUR.ET1.ST05.2000-STD-01a-01).
package cat002

import (
	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version10 = "1.0"

// messageKinds maps the I002/000 message type code to the decoder's
// unified ServiceMessageKind (spec.md §3 "Typed Report Model").
var messageKinds = map[uint8]asterix.ServiceMessageKind{
	1: asterix.ServiceNorthMarker,
	2: asterix.ServiceSectorCrossing,
	3: asterix.ServiceSouthMarker,
	8: asterix.ServiceActivationBlindZone,
	9: asterix.ServiceStopBlindZone,
}

// Register builds the Cat002 v1.0 UAP and registers it with dec.
func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return err
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	fields := []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorMessageType()},
		{FRN: 3, Descriptor: descriptorSectorNumber()},
		{FRN: 4, Descriptor: descriptorTimeOfDay()},
		{FRN: 5, Descriptor: descriptorAntennaRotationSpeed()},
		{FRN: 6, Descriptor: descriptorStationConfigurationStatus()},
		{FRN: 7, Descriptor: descriptorStationProcessingMode()},
	}
	return asterix.NewUAP(asterix.Cat002, Version10, 1, asterix.KindService, fields)
}

func descriptorDataSourceIdentifier() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I002/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Service().DataSource = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

func descriptorMessageType() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I002/000", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Service().Kind_ = messageKinds[data[0]]
			return asterix.OK, nil
		},
	}
}

// sectorNumberResolution is the LSB of I002/020 (spec.md design notes §9:
// sector numbers are carried as a raw 0-255 count, not pre-converted to
// degrees, so callers can pick either representation).
const sectorNumberResolution = 360.0 / 256.0

func descriptorSectorNumber() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I002/020", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Service().SectorNumber = asterix.Some(data[0])
			return asterix.OK, nil
		},
	}
}

func descriptorTimeOfDay() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I002/030", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			return asterix.OK, nil
		},
	}
}

func descriptorAntennaRotationSpeed() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I002/041", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := uint16(data[0])<<8 | uint16(data[1])
			rec.Service().AntennaRotationS = asterix.Some(float64(raw) / 128.0)
			return asterix.OK, nil
		},
	}
}

func descriptorStationConfigurationStatus() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I002/050", Kind: asterix.Variable, VarCap: 8,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Service().StationConfiguration = append([]byte(nil), data...)
			return asterix.OK, nil
		},
	}
}

func descriptorStationProcessingMode() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I002/060", Kind: asterix.Variable, VarCap: 8,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Service().StationProcessingMode = append([]byte(nil), data...)
			return asterix.OK, nil
		},
	}
}
