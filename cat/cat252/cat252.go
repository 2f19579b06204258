// Package cat252 implements ASTERIX Category 252, ARTAS service messages
// (connection/service-control reports exchanged between ARTAS and its
// clients), grounded on original_source/src/astx_252.cpp's
// load_std_uap()/init_desc() 6-item FRN table — the smallest UAP in this
// tree. It freezes into the same asterix.ServiceMessage type as cat034,
// following cat034's own precedent for packing an opaque status blob
// rather than inventing new ServiceMessage fields for a single category's
// vocabulary.
package cat252

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version = "5.0"

func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat252 UAP: %w", err)
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat252, Version, 1, asterix.KindService, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorServerIdentification()},
		{FRN: 2, Descriptor: consumeFixed("I252/015", 2)},
		{FRN: 3, Descriptor: descriptorTimeOfMessage()},
		{FRN: 4, Descriptor: descriptorTypeOfMessage()},
		{FRN: 5, Descriptor: descriptorServiceIdentification()},
		{FRN: 6, Descriptor: asterix.Descriptor{ID: "I252/330", Kind: asterix.Repetitive, ElemLen: 2, Decode: noopDecode}},
	})
}

func noopDecode(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
	return asterix.OK, nil
}

func consumeFixed(id string, length int) asterix.Descriptor {
	return asterix.Descriptor{ID: id, Kind: asterix.Fixed, Len: length, Decode: noopDecode}
}

// descriptorServerIdentification implements I252/010, the ARTAS server's
// SAC/SIC (proc_i252_010's "Server Identification Tag").
func descriptorServerIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I252/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Service().DataSource = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

// descriptorTimeOfMessage implements I252/020, the same 3-octet 1/128s
// layout as I030/020 and I032/020 (proc_i252_020). ServiceMessage carries
// no time-of-day field of its own, so this only feeds the context's ToD
// inheritance for later records in the block.
func descriptorTimeOfMessage() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I252/020", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			ctx.RememberToD(common.FullTimeOfDay(data))
			return asterix.OK, nil
		},
	}
}

// descriptorTypeOfMessage implements I252/035 (proc_i252_035): a single
// octet split into a 4-bit family (1=connection management, 2=track
// service, 3=server message, 4=sensor information) and a 4-bit nature
// specific to that family. Packed as a 1-byte opaque blob onto
// StationProcessingMode, the same convention cat034 uses for its own
// mode-of-operation octet.
func descriptorTypeOfMessage() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I252/035", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Service().StationProcessingMode = append([]byte(nil), data...)
			return asterix.OK, nil
		},
	}
}

// descriptorServiceIdentification implements I252/110, proc_i252_110's
// variable-length service-bitmask item (BS/C1 in octet 1; C2-C5 in
// octet 2). Packed raw onto StationConfiguration, the opaque-blob field
// cat034 uses for its own station configuration status item.
func descriptorServiceIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I252/110", Kind: asterix.Variable,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Service().StationConfiguration = append([]byte(nil), data...)
			return asterix.OK, nil
		},
	}
}
