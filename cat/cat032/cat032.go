// Package cat032 implements ASTERIX Category 032, ARTAS service
// messages, grounded on original_source/src/astx_032.cpp's
// load_std_uap()/init_desc() 19-item FRN table. This is the category
// the track-number-bits runtime switch (options.cpp's track_number_bits
// global, surfaced on this decoder as asterix.WithTrackNumberBits) was
// built for: proc_i032_040 decodes I032/040 as 12-bit when the switch
// is set and plain 16-bit otherwise; cat030's I030/040 follows the same
// switch.
package cat032

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version = "7.0"

func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat032 UAP: %w", err)
	}
	return dec.Register(uap)
}

func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat032, Version, 3, asterix.KindTrack, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorServerIdentification()},
		{FRN: 2, Descriptor: consumeFixed("I032/015", 2)},
		{FRN: 3, Descriptor: consumeFixed("I032/018", 2)},
		{FRN: 4, Descriptor: consumeFixed("I032/035", 1)},
		{FRN: 5, Descriptor: descriptorTimeOfMessage()},
		{FRN: 6, Descriptor: descriptorTrackNumber()},
		{FRN: 7, Descriptor: errorCompound("I032/050")},
		{FRN: 8, Descriptor: consumeFixed("I032/060", 2)},
		{FRN: 9, Descriptor: consumeFixed("I032/400", 7)},
		{FRN: 10, Descriptor: consumeFixed("I032/410", 2)},
		{FRN: 11, Descriptor: consumeFixed("I032/420", 1)},
		{FRN: 12, Descriptor: consumeFixed("I032/440", 4)},
		{FRN: 13, Descriptor: consumeFixed("I032/450", 4)},
		{FRN: 14, Descriptor: consumeFixed("I032/480", 2)},
		{FRN: 15, Descriptor: consumeFixed("I032/490", 2)},
		{FRN: 16, Descriptor: consumeFixed("I032/430", 4)},
		{FRN: 17, Descriptor: consumeFixed("I032/435", 1)},
		{FRN: 18, Descriptor: asterix.Descriptor{ID: "I032/460", Kind: asterix.Repetitive, ElemLen: 2, Decode: noopDecode}},
		{FRN: 19, Descriptor: errorCompound("I032/500")},
	})
}

func noopDecode(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
	return asterix.OK, nil
}

func consumeFixed(id string, length int) asterix.Descriptor {
	return asterix.Descriptor{ID: id, Kind: asterix.Fixed, Len: length, Decode: noopDecode}
}

// errorCompound marks I032/050 and I032/500, the two items astx_032.cpp
// reads through an "immediate" read_fptr taking an extra pos_ptr
// argument (a variable-length substructure this pass has no confirmed
// subfield layout for).
func errorCompound(id string) asterix.Descriptor {
	return asterix.Descriptor{
		ID: id, Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			return asterix.Error, fmt.Errorf("%s: subfield layout not supported", id)
		},
	}
}

// descriptorServerIdentification implements I032/010: the ARTAS server's
// own SAC/SIC, proc_i032_010's "Server Identification Tag".
func descriptorServerIdentification() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I032/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Track().LastUpdatingSensor = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

// descriptorTimeOfMessage implements I032/020, identical in layout and
// scaling to cat030's I030/020 (both are proc_i032_020/proc_i030_020,
// LSB 1/128s over 3 octets).
func descriptorTimeOfMessage() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I032/020", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			rec.Track().TimeOfDayS = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

// descriptorTrackNumber implements I032/040. proc_i032_040 switches
// between a 12-bit track number (bit 4 of the first octet is the
// numbering-indicator, low nibble + second octet form the number — "NOT
// as defined in the ASTERIX standards document; but this was the
// factual implementation of ARTAS for a long time") and a plain 16-bit
// number, gated at runtime by options.cpp's track_number_bits global.
// This decoder surfaces that as DecoderContext.TrackNumberBits, set via
// asterix.WithTrackNumberBits (default 16, matching the source's
// default).
func descriptorTrackNumber() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I032/040", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			t := rec.Track()
			if ctx.TrackNumberBits == 12 {
				t.TrackNumber = uint16(data[0]&0x0F)<<8 | uint16(data[1])
				t.TrackNumberBits = 12
			} else {
				t.TrackNumber = uint16(data[0])<<8 | uint16(data[1])
				t.TrackNumberBits = 16
			}
			return asterix.OK, nil
		},
	}
}
