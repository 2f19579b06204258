// asterix/kernel.go
package asterix

import "fmt"

// decodeItem is the Data Item Kernel (component C): given a descriptor
// and a cursor into payload, it carves out exactly the bytes the
// descriptor's kind dictates, invokes the descriptor's decode/read
// function, and returns the new cursor plus an Outcome. It never writes
// outside the scratch the decode/read function is given (spec.md §4.C).
func decodeItem(d Descriptor, payload []byte, cursor int, ctx *DecoderContext, rec *RecordBuilder) (int, Outcome, error) {
	switch d.Kind {
	case Fixed:
		if cursor+d.Len > len(payload) {
			return cursor, Error, fmt.Errorf("%w: %s needs %d bytes, %d remain", ErrBufferTooShort, d.ID, d.Len, len(payload)-cursor)
		}
		data := payload[cursor : cursor+d.Len]
		outcome, err := d.Decode(data, ctx, rec)
		return cursor + d.Len, outcome, err

	case Variable:
		end := cursor
		for {
			if end >= len(payload) {
				return end, Error, fmt.Errorf("%w: %s variable chain runs past end of record", ErrBufferTooShort, d.ID)
			}
			extends := payload[end]&0x01 != 0
			end++
			if d.VarCap > 0 && end-cursor > d.VarCap {
				return end, Error, fmt.Errorf("%w: %s exceeds %d-byte variable cap", ErrLengthCapped, d.ID, d.VarCap)
			}
			if !extends {
				break
			}
		}
		data := payload[cursor:end]
		outcome, err := d.Decode(data, ctx, rec)
		return end, outcome, err

	case Repetitive:
		if cursor >= len(payload) {
			return cursor, Error, fmt.Errorf("%w: %s missing repetition factor", ErrBufferTooShort, d.ID)
		}
		rep := int(payload[cursor])
		if rep == 0 {
			// Soft skip: REP=0 is defined as recoverable (spec.md §4.C/§7).
			return cursor + 1, Skip, nil
		}
		need := 1 + rep*d.ElemLen
		if cursor+need > len(payload) {
			return cursor, Error, fmt.Errorf("%w: %s needs %d bytes for %d elements, %d remain", ErrBufferTooShort, d.ID, need, rep, len(payload)-cursor)
		}
		data := payload[cursor : cursor+need]
		outcome, err := d.Decode(data, ctx, rec)
		return cursor + need, outcome, err

	case Compound, Opaque:
		c := cursor
		outcome, err := d.Read(payload, &c, ctx, rec)
		if c < cursor || c > len(payload) {
			return cursor, Error, fmt.Errorf("%w: %s read function moved cursor out of bounds", ErrInvalidField, d.ID)
		}
		return c, outcome, err

	default:
		return cursor, Error, fmt.Errorf("%w: unknown item kind for %s", ErrInvalidField, d.ID)
	}
}

// CompoundPrimary reads a compound item's primary subfield: an FSPEC-
// style extension chain where each byte's bits 7..1 (MSB first) select
// a secondary subfield and bit 0 (LSB) continues the chain. Returns the
// set of selected subfield indices (1-based across the whole chain) and
// the new cursor.
func CompoundPrimary(payload []byte, cursor int) ([]int, int, error) {
	var selected []int
	base := 0
	for {
		if cursor >= len(payload) {
			return nil, cursor, fmt.Errorf("%w: compound primary subfield runs past end", ErrBufferTooShort)
		}
		b := payload[cursor]
		cursor++
		for bit := 0; bit < 7; bit++ {
			if b&(0x80>>uint(bit)) != 0 {
				selected = append(selected, base+bit+1)
			}
		}
		base += 7
		if b&0x01 == 0 {
			break
		}
	}
	return selected, cursor, nil
}
