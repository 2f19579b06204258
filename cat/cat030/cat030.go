// Package cat030 implements ASTERIX Category 030, ARTAS system track
// data, grounded on original_source/src/astx_030.cpp's load_std_uap()/
// init_desc() FRN table (52 items, M_MAX_FRN 56) and the proc_i030_*
// item functions. Unlike the categories ported from the teacher's own
// UAP tables, cat030 has no gobelix precedent at all: every FRN here is
// grounded directly on the original C++ decoder.
package cat030

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version = "7.0"

func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat030 UAP: %w", err)
	}
	return dec.Register(uap)
}

// newUAP wires all 52 FRNs load_std_uap() assigns. Only the items whose
// decode routine was read in full (proc_i030_040 Track Number,
// proc_i030_020 Time of Message, plus SAC/SIC and SPF by the same
// length-prefixed-blob convention used everywhere else) are homed onto
// Track; the rest are walked at their init_desc()-confirmed fixed/
// repetitive/variable width so every FRN a real record sets still
// resolves, matching the "no silent FRN gaps" rule applied to every
// other category in this tree.
func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat030, Version, 8, asterix.KindTrack, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: consumeFixed("I030/015", 2)},
		{FRN: 3, Descriptor: asterix.Descriptor{ID: "I030/030", Kind: asterix.Variable, Decode: noopDecode}},
		{FRN: 4, Descriptor: consumeFixed("I030/035", 1)},
		{FRN: 5, Descriptor: descriptorTrackNumber()},
		{FRN: 6, Descriptor: consumeFixed("I030/070", 3)},
		{FRN: 7, Descriptor: consumeFixed("I030/170", 4)},
		{FRN: 8, Descriptor: consumeFixed("I030/100", 4)},
		{FRN: 9, Descriptor: consumeFixed("I030/180", 4)},
		{FRN: 10, Descriptor: consumeFixed("I030/181", 4)},
		{FRN: 11, Descriptor: consumeFixed("I030/060", 2)},
		{FRN: 12, Descriptor: consumeFixed("I030/150", 2)},
		{FRN: 13, Descriptor: consumeFixed("I030/130", 2)},
		{FRN: 14, Descriptor: consumeFixed("I030/160", 2)},
		{FRN: 15, Descriptor: asterix.Descriptor{ID: "I030/080", Kind: asterix.Variable, Decode: noopDecode}},
		{FRN: 16, Descriptor: consumeFixed("I030/090", 1)},
		{FRN: 17, Descriptor: consumeFixed("I030/200", 1)},
		{FRN: 18, Descriptor: consumeFixed("I030/220", 2)},
		{FRN: 19, Descriptor: consumeFixed("I030/240", 1)},
		{FRN: 20, Descriptor: consumeFixed("I030/290", 2)},
		{FRN: 21, Descriptor: consumeFixed("I030/260", 2)},
		{FRN: 22, Descriptor: consumeFixed("I030/360", 4)},
		{FRN: 23, Descriptor: consumeFixed("I030/140", 2)},
		{FRN: 24, Descriptor: consumeFixed("I030/340", 2)},
		{FRN: 25, Descriptor: descriptorSpecialPurpose()},
		{FRN: 26, Descriptor: consumeFixed("I030/390", 2)},
		{FRN: 27, Descriptor: consumeFixed("I030/400", 7)},
		{FRN: 28, Descriptor: consumeFixed("I030/410", 2)},
		{FRN: 29, Descriptor: consumeFixed("I030/440", 4)},
		{FRN: 30, Descriptor: consumeFixed("I030/450", 4)},
		{FRN: 31, Descriptor: consumeFixed("I030/435", 1)},
		{FRN: 32, Descriptor: consumeFixed("I030/430", 4)},
		{FRN: 33, Descriptor: asterix.Descriptor{ID: "I030/460", Kind: asterix.Repetitive, ElemLen: 2, Decode: noopDecode}},
		{FRN: 34, Descriptor: consumeFixed("I030/480", 2)},
		{FRN: 35, Descriptor: consumeFixed("I030/420", 1)},
		{FRN: 36, Descriptor: consumeFixed("I030/490", 2)},
		{FRN: 37, Descriptor: descriptorTimeOfMessage()},
		{FRN: 38, Descriptor: consumeFixed("I030/382", 3)},
		{FRN: 39, Descriptor: consumeFixed("I030/384", 6)},
		{FRN: 40, Descriptor: consumeFixed("I030/386", 1)},
		{FRN: 41, Descriptor: consumeFixed("I030/110", 4)},
		{FRN: 42, Descriptor: consumeFixed("I030/190", 4)},
		{FRN: 43, Descriptor: consumeFixed("I030/191", 4)},
		{FRN: 44, Descriptor: consumeFixed("I030/135", 2)},
		{FRN: 45, Descriptor: consumeFixed("I030/165", 2)},
		{FRN: 46, Descriptor: consumeFixed("I030/230", 2)},
		{FRN: 47, Descriptor: consumeFixed("I030/250", 1)},
		{FRN: 48, Descriptor: consumeFixed("I030/210", 3)},
		{FRN: 49, Descriptor: consumeFixed("I030/120", 2)},
		{FRN: 50, Descriptor: errorCompound("I030/050")},
		{FRN: 51, Descriptor: consumeFixed("I030/270", 2)},
		{FRN: 52, Descriptor: consumeFixed("I030/370", 2)},
	})
}

func noopDecode(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
	return asterix.OK, nil
}

// consumeFixed builds a Fixed descriptor walked for cursor alignment
// only, at the width init_desc() assigns the item in astx_030.cpp.
func consumeFixed(id string, length int) asterix.Descriptor {
	return asterix.Descriptor{ID: id, Kind: asterix.Fixed, Len: length, Decode: noopDecode}
}

// errorCompound marks the one item (I030/050) astx_030.cpp's
// proc_i030_050 reads with an extra pos_ptr argument, signalling a
// substructure this pass does not have a confirmed subfield layout
// for; decoding fails explicitly rather than guessing at lengths.
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
		ID: "I030/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Track().LastUpdatingSensor = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

// descriptorTrackNumber implements I030/040 under the same
// track-number-bits runtime switch as I032/040: with
// asterix.WithTrackNumberBits(12) the low nibble of the first octet plus
// the second octet form a 12-bit number (bit 4 of the first octet is the
// numbering-indicator flag); otherwise (default 16) both octets form a
// plain 16-bit number.
func descriptorTrackNumber() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I030/040", Kind: asterix.Fixed, Len: 2,
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

// descriptorTimeOfMessage implements I030/020, the full 3-octet
// time-of-day field proc_i030_020 decodes at LSB 1/128s (same
// convention as I034/030 and I062/070).
func descriptorTimeOfMessage() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I030/020", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			rec.Track().TimeOfDayS = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

// descriptorSpecialPurpose implements SPF030 using the same
// length-prefixed-blob convention as cat048/cat062/cat063's SP/RE
// items (the length octet's value includes itself).
func descriptorSpecialPurpose() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "SPF030", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			if *cursor >= len(payload) {
				return asterix.Error, fmt.Errorf("SPF030: length octet runs past end of record")
			}
			total := int(payload[*cursor])
			end := *cursor + total
			if total == 0 || end > len(payload) {
				return asterix.Error, fmt.Errorf("SPF030: declared length %d runs past end of record", total)
			}
			rec.Track().SpecialPurpose = append([]byte(nil), payload[*cursor:end]...)
			*cursor = end
			return asterix.OK, nil
		},
	}
}
