// Package cat034 implements ASTERIX Category 034, monoradar service
// messages, version 1.29, grounded on the teacher's
// cat/cat034/uap/uap_v129.go 7-FRN table and the corresponding
// cat/cat034/dataitems/v129 items.
package cat034

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version129 = "1.29"

func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat034 UAP: %w", err)
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat034, Version129, 1, asterix.KindService, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorMessageType()},
		{FRN: 3, Descriptor: descriptorTimeOfDay()},
		{FRN: 4, Descriptor: descriptorSectorNumber()},
		{FRN: 5, Descriptor: descriptorAntennaRotationPeriod()},
		{FRN: 6, Descriptor: descriptorSystemConfigurationStatus()},
		{FRN: 7, Descriptor: descriptorSystemProcessingMode()},
	})
}

func descriptorDataSourceIdentifier() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I034/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Service().DataSource = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

// descriptorMessageType implements I034/000: a single octet, 1=North
// marker, 2=Sector crossing, 3=South marker, 4=New sector. Grounded on
// the teacher's dataitems/v129/message_type.go. ServiceMessageKind has
// no distinct "new sector" constant, so message type 4 is mapped onto
// ServiceSectorCrossing (an azimuth-crossing event either way).
func descriptorMessageType() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I034/000", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			svc := rec.Service()
			switch data[0] {
			case 1:
				svc.Kind_ = asterix.ServiceNorthMarker
			case 2, 4:
				svc.Kind_ = asterix.ServiceSectorCrossing
			case 3:
				svc.Kind_ = asterix.ServiceSouthMarker
			default:
				return asterix.Error, fmt.Errorf("I034/000: invalid message type %d", data[0])
			}
			return asterix.OK, nil
		},
	}
}

func descriptorTimeOfDay() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I034/030", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			ctx.RememberToD(common.FullTimeOfDay(data))
			return asterix.OK, nil
		},
	}
}

// descriptorSectorNumber implements I034/020: single byte, LSB
// 360/256 deg.
func descriptorSectorNumber() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I034/020", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Service().SectorNumber = asterix.Some(data[0])
			return asterix.OK, nil
		},
	}
}

// descriptorAntennaRotationPeriod implements I034/041: 16-bit unsigned,
// LSB 1/128 s.
func descriptorAntennaRotationPeriod() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I034/041", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			raw := uint16(data[0])<<8 | uint16(data[1])
			rec.Service().AntennaRotationS = asterix.Some(float64(raw) / 128.0)
			return asterix.OK, nil
		},
	}
}

// descriptorSystemConfigurationStatus implements I034/050: a primary
// FSPEC octet, a mandatory COM byte, and optional PSR/SSR/MDS bytes
// gated by fspec bits 0x40/0x20/0x10, grounded on the teacher's
// dataitems/v129/system_config_status.go. The subfield bytes present
// (in wire order) are packed onto ServiceMessage.StationConfiguration.
func descriptorSystemConfigurationStatus() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I034/050", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			if c >= len(payload) {
				return asterix.Error, fmt.Errorf("I034/050: missing FSPEC octet")
			}
			fspec := payload[c]
			c++
			n := 1
			if fspec&0x40 != 0 {
				n++
			}
			if fspec&0x20 != 0 {
				n++
			}
			if fspec&0x10 != 0 {
				n++
			}
			if c+n > len(payload) {
				return asterix.Error, fmt.Errorf("I034/050: subfields run past end of record")
			}
			rec.Service().StationConfiguration = append([]byte(nil), payload[c:c+n]...)
			*cursor = c + n
			return asterix.OK, nil
		},
	}
}

// descriptorSystemProcessingMode implements I034/060: the same layout
// as I034/050 but with all four subfields (COM/PSR/SSR/MDS) optional,
// gated by fspec bits 0x80/0x40/0x20/0x10.
func descriptorSystemProcessingMode() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I034/060", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			if c >= len(payload) {
				return asterix.Error, fmt.Errorf("I034/060: missing FSPEC octet")
			}
			fspec := payload[c]
			c++
			n := 0
			for _, bit := range []byte{0x80, 0x40, 0x20, 0x10} {
				if fspec&bit != 0 {
					n++
				}
			}
			if c+n > len(payload) {
				return asterix.Error, fmt.Errorf("I034/060: subfields run past end of record")
			}
			rec.Service().StationProcessingMode = append([]byte(nil), payload[c:c+n]...)
			*cursor = c + n
			return asterix.OK, nil
		},
	}
}
