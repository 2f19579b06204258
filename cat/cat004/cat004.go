// Package cat004 implements ASTERIX Category 004, safety net (MSAW/APW/
// STCA/RIMCAS) alert messages, grounded on
// original_source/src/astx_004.cpp's load_std_uap()/init_desc() table.
// Safety-net alerts reference one or two tracks and carry conflict
// geometry rather than a position fix of their own, so they freeze into
// the dedicated asterix.SafetyNetAlert type rather than Plot or Track.
package cat004

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/common"
)

const Version = "1.4"

func Register(dec *asterix.Decoder) error {
	uap, err := newUAP()
	if err != nil {
		return fmt.Errorf("cat004 UAP: %w", err)
	}
	return dec.Register(uap)
}

// newUAP wires 20 FRNs of load_std_uap(): 1-18, 20 and 21 (FRN 19 is
// left unassigned in the source's own table).
func newUAP() (*asterix.UAP, error) {
	return asterix.NewUAP(asterix.Cat004, Version, 3, asterix.KindAlert, []asterix.UAPField{
		{FRN: 1, Descriptor: descriptorDataSourceIdentifier()},
		{FRN: 2, Descriptor: descriptorMessageType()},
		{FRN: 3, Descriptor: asterix.Descriptor{ID: "I004/015", Kind: asterix.Repetitive, ElemLen: 2, Decode: noopDecode}},
		{FRN: 4, Descriptor: descriptorTimeOfDay()},
		{FRN: 5, Descriptor: consumeFixed("I004/040", 2)},
		{FRN: 6, Descriptor: consumeFixed("I004/045", 1)},
		{FRN: 7, Descriptor: asterix.Descriptor{ID: "I004/060", Kind: asterix.Variable, Decode: noopDecode}},
		{FRN: 8, Descriptor: consumeFixed("I004/030", 2)},
		{FRN: 9, Descriptor: descriptorAircraftIdentification1()},
		{FRN: 10, Descriptor: descriptorConflictCharacteristics()},
		{FRN: 11, Descriptor: errorCompound("I004/070")},
		{FRN: 12, Descriptor: consumeFixed("I004/076", 2)},
		{FRN: 13, Descriptor: consumeFixed("I004/074", 2)},
		{FRN: 14, Descriptor: consumeFixed("I004/075", 3)},
		{FRN: 15, Descriptor: errorCompound("I004/100")},
		{FRN: 16, Descriptor: consumeFixed("I004/035", 2)},
		{FRN: 17, Descriptor: descriptorAircraftIdentification2()},
		{FRN: 18, Descriptor: asterix.Descriptor{ID: "I004/110", Kind: asterix.Repetitive, ElemLen: 2, Decode: noopDecode}},
		// FRN 20/21: REF and SPF share the same descriptor in the
		// source (astx_004.cpp's init_desc() assigns desc_i004_spf's
		// read_fptr to proc_i004_ref, then immediately overwrites it
		// with proc_i004_spf before desc_i004_ref is ever populated).
		// Whether REF was meant to be identical to SPF here is
		// unclear; the observed behaviour — both decoded as a
		// length-prefixed opaque blob — is preserved rather than
		// guessed at.
		{FRN: 20, Descriptor: descriptorReservedExpansion()},
		{FRN: 21, Descriptor: descriptorSpecialPurpose()},
	})
}

func noopDecode(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
	return asterix.OK, nil
}

func consumeFixed(id string, length int) asterix.Descriptor {
	return asterix.Descriptor{ID: id, Kind: asterix.Fixed, Len: length, Decode: noopDecode}
}

// errorCompound marks I004/070 and I004/100, the two remaining
// "immediate" items whose subfield layout this pass has no confirmed
// reading for.
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
		ID: "I004/010", Kind: asterix.Fixed, Len: 2,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			dsi := common.DataSourceIdentifier(data)
			ctx.RememberSACSIC(dsi)
			rec.Alert().DataSource = asterix.Some(dsi)
			return asterix.OK, nil
		},
	}
}

// descriptorMessageType implements I004/000. proc_i004_000 itself never
// stores the decoded byte anywhere outside its listing output; this
// maps the subset of message_type_texts this decoder's
// SafetyNetAlertType enum distinguishes (the rest fall through to
// AlertUnknown, matching the source's own indifference to the value).
func descriptorMessageType() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I004/000", Kind: asterix.Fixed, Len: 1,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			rec.Alert().AlertType = decodeMessageType(data[0])
			return asterix.OK, nil
		},
	}
}

func decodeMessageType(mtp byte) asterix.SafetyNetAlertType {
	switch mtp {
	case 4:
		return asterix.AlertMSAW
	case 5:
		return asterix.AlertAPW
	case 7:
		return asterix.AlertSTCA
	case 8, 9, 10:
		return asterix.AlertAPM
	case 11, 12, 13, 14, 15, 16:
		return asterix.AlertRAMS
	default:
		return asterix.AlertUnknown
	}
}

// descriptorTimeOfDay implements I004/020, the same 3-octet 1/128s
// layout as I030/020 and I032/020 (proc_i004_020).
func descriptorTimeOfDay() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I004/020", Kind: asterix.Fixed, Len: 3,
		Decode: func(data []byte, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			tod := common.FullTimeOfDay(data)
			ctx.RememberToD(tod)
			rec.Alert().TimeOfDayS = asterix.Some(tod)
			return asterix.OK, nil
		},
	}
}

// readConflictAircraft decodes the shared I004/170/I004/171 layout
// (proc_i004_170/proc_i004_171): a primary octet selecting subfields
// #1-#7, optionally extended by a second octet selecting #8-#10 (whose
// own LSB must be 0 — a reserved extension bit; astx_004.cpp treats a
// set bit as "Bad encoding" and aborts). Subfield #7 carries its own
// 1-or-2-byte internal extension. Only #1 (aircraft identification) and
// #3's altitude component are promoted onto the alert; the remainder
// are walked to keep the cursor aligned, the same scoped-subset
// precedent used by every Compound item elsewhere in this tree.
func readConflictAircraft(id string, setIdent func(*asterix.SafetyNetAlert, string), setAlt func(*asterix.SafetyNetAlert, float64)) asterix.ReadFunc {
	return func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
		c := *cursor
		if c >= len(payload) {
			return asterix.Error, fmt.Errorf("%s: primary octet runs past end of record", id)
		}
		df1 := payload[c]
		c++
		sf := [10]bool{
			df1&0x80 != 0, df1&0x40 != 0, df1&0x20 != 0, df1&0x10 != 0,
			df1&0x08 != 0, df1&0x04 != 0, df1&0x02 != 0,
		}
		if df1&0x01 != 0 {
			if c >= len(payload) {
				return asterix.Error, fmt.Errorf("%s: extension octet runs past end of record", id)
			}
			df2 := payload[c]
			c++
			sf[7] = df2&0x80 != 0
			sf[8] = df2&0x40 != 0
			sf[9] = df2&0x20 != 0
			if df2&0x01 != 0 {
				return asterix.Error, fmt.Errorf("%s: reserved extension bit set", id)
			}
		}
		alert := rec.Alert()
		if sf[0] { // #1: aircraft identifier, 7 bytes
			if c+7 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: aircraft identifier runs past end of record", id)
			}
			setIdent(alert, asterix.ICAO8(payload[c+1:c+7]))
			c += 7
		}
		if sf[1] { // #2: mode 3/A code, 2 bytes
			if c+2 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: mode 3/a code runs past end of record", id)
			}
			c += 2
		}
		if sf[2] { // #3: predicted conflict position WGS-84, 10 bytes (lat4,lon4,alt2)
			if c+10 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: predicted position (WGS-84) runs past end of record", id)
			}
			raw := int16(uint16(payload[c+8])<<8 | uint16(payload[c+9]))
			setAlt(alert, float64(raw)*25.0*0.3048)
			c += 10
		}
		if sf[3] { // #4: predicted conflict position Cartesian, 8 bytes
			if c+8 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: predicted position (Cartesian) runs past end of record", id)
			}
			c += 8
		}
		if sf[4] { // #5: time to threshold, 3 bytes
			if c+3 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: time to threshold runs past end of record", id)
			}
			c += 3
		}
		if sf[5] { // #6: distance to threshold, 2 bytes
			if c+2 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: distance to threshold runs past end of record", id)
			}
			c += 2
		}
		if sf[6] { // #7: aircraft characteristics, 1 byte + an internal extension byte
			if c >= len(payload) {
				return asterix.Error, fmt.Errorf("%s: aircraft characteristics runs past end of record", id)
			}
			n := 1
			if payload[c]&0x01 != 0 {
				n = 2
			}
			if c+n > len(payload) {
				return asterix.Error, fmt.Errorf("%s: aircraft characteristics runs past end of record", id)
			}
			c += n
		}
		if sf[7] { // #8: mode S identifier, 6 bytes
			if c+6 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: mode s identifier runs past end of record", id)
			}
			c += 6
		}
		if sf[8] { // #9: flight plan number, 4 bytes
			if c+4 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: flight plan number runs past end of record", id)
			}
			c += 4
		}
		if sf[9] { // #10: cleared flight level, 2 bytes
			if c+2 > len(payload) {
				return asterix.Error, fmt.Errorf("%s: cleared flight level runs past end of record", id)
			}
			c += 2
		}
		*cursor = c
		return asterix.OK, nil
	}
}

func descriptorAircraftIdentification1() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I004/170", Kind: asterix.Compound,
		Read: readConflictAircraft("I004/170",
			func(a *asterix.SafetyNetAlert, s string) { a.AircraftID1 = asterix.Some(s) },
			func(a *asterix.SafetyNetAlert, alt float64) { a.VerticalDeviationM = asterix.Some(alt) },
		),
	}
}

func descriptorAircraftIdentification2() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I004/171", Kind: asterix.Compound,
		Read: readConflictAircraft("I004/171",
			func(a *asterix.SafetyNetAlert, s string) { a.AircraftID2 = asterix.Some(s) },
			func(a *asterix.SafetyNetAlert, alt float64) {},
		),
	}
}

// descriptorConflictCharacteristics implements I004/120 (proc_i004_120):
// a single primary octet selecting subfield #1 (conflict nature, 1 or 2
// bytes via its own internal extension bit), #2 (conflict
// classification, 1 byte), #3 (conflict probability, 1 byte), #4
// (conflict duration, 3 bytes). Only #2 is promoted onto the alert.
func descriptorConflictCharacteristics() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "I004/120", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			c := *cursor
			if c >= len(payload) {
				return asterix.Error, fmt.Errorf("I004/120: primary octet runs past end of record")
			}
			df1 := payload[c]
			c++
			alert := rec.Alert()
			if df1&0x80 != 0 { // #1: conflict nature, 1 or 2 bytes
				if c >= len(payload) {
					return asterix.Error, fmt.Errorf("I004/120: conflict nature runs past end of record")
				}
				n := 1
				if payload[c]&0x01 != 0 {
					n = 2
				}
				if c+n > len(payload) {
					return asterix.Error, fmt.Errorf("I004/120: conflict nature runs past end of record")
				}
				c += n
			}
			if df1&0x40 != 0 { // #2: conflict classification, 1 byte
				if c+1 > len(payload) {
					return asterix.Error, fmt.Errorf("I004/120: conflict classification runs past end of record")
				}
				alert.ConflictClass = asterix.Some(payload[c])
				c++
			}
			if df1&0x20 != 0 { // #3: conflict probability, 1 byte
				if c+1 > len(payload) {
					return asterix.Error, fmt.Errorf("I004/120: conflict probability runs past end of record")
				}
				c++
			}
			if df1&0x10 != 0 { // #4: conflict duration, 3 bytes
				if c+3 > len(payload) {
					return asterix.Error, fmt.Errorf("I004/120: conflict duration runs past end of record")
				}
				c += 3
			}
			*cursor = c
			return asterix.OK, nil
		},
	}
}

// descriptorReservedExpansion and descriptorSpecialPurpose implement
// REF004/SPF004 using the length-prefixed-blob convention shared by
// every other category's SP/RE items (the length octet's value includes
// itself).
func descriptorReservedExpansion() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "RE004", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			blob, next, err := readLengthPrefixed(payload, *cursor)
			if err != nil {
				return asterix.Error, fmt.Errorf("RE004: %w", err)
			}
			*cursor = next
			rec.Alert().ReservedExpansion = blob
			return asterix.OK, nil
		},
	}
}

func descriptorSpecialPurpose() asterix.Descriptor {
	return asterix.Descriptor{
		ID: "SPF004", Kind: asterix.Compound,
		Read: func(payload []byte, cursor *int, ctx *asterix.DecoderContext, rec *asterix.RecordBuilder) (asterix.Outcome, error) {
			blob, next, err := readLengthPrefixed(payload, *cursor)
			if err != nil {
				return asterix.Error, fmt.Errorf("SPF004: %w", err)
			}
			*cursor = next
			rec.Alert().SpecialPurpose = blob
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
