// asterix/decoder.go
package asterix

import (
	"encoding/binary"
	"fmt"
)

// Decoder is the top-level entry point of the core package (spec.md §4,
// "Decoder Context" + "Record Dispatcher" wired together). Categories
// are wired in by calling Register once per UAP, normally from a cat/...
// package's init-time constructor; the Decoder itself never builds a
// table, it only looks one up (spec.md design note §9: lazy per-category
// construction lives in the cat packages, not in the core).
type Decoder struct {
	uaps        map[Category]*UAP
	stopOnError bool
	ctx         *DecoderContext
}

// DecoderOption configures a Decoder at construction time, following the
// functional-options idiom gobelix uses for its Reader/Encoder.
type DecoderOption func(*Decoder)

// WithStopOnError controls whether a caller iterating multiple data
// blocks through this Decoder should treat a record-level decode
// failure as fatal for the whole stream or merely for that record's
// remaining block (spec.md §7 "stop_on_error", grounded on
// original_source/src/options.cpp's `soe` flag). The Decoder itself
// always abandons the rest of a data block once a record fails — there
// is no length-prefixed way to resynchronise mid-block — this option
// only governs the value StopOnError reports to the caller's loop.
func WithStopOnError(stop bool) DecoderOption {
	return func(d *Decoder) { d.stopOnError = stop }
}

// WithTrackNumberBits resolves the cat-030/032 legacy 12-bit vs current
// 16-bit system track number Open Question (spec.md design notes §9).
func WithTrackNumberBits(bits int) DecoderOption {
	return func(d *Decoder) { d.ctx.TrackNumberBits = bits }
}

// NewDecoder returns a Decoder with no categories registered.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		uaps: make(map[Category]*UAP),
		ctx:  NewDecoderContext(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register wires a category's UAP into the Decoder. Categories with a
// dual profile (cat001's plot/track switch) register their default
// (plot) UAP here; the alternate UAP is captured by the category
// package's own decode closures and swapped in via
// DecoderContext.activeCat001UAP (spec.md §3 invariant 2).
func (d *Decoder) Register(uap *UAP) error {
	if uap == nil {
		return fmt.Errorf("%w: UAP cannot be nil", ErrInvalidMessage)
	}
	if _, dup := d.uaps[uap.Category()]; dup {
		return fmt.Errorf("%w: category %s already registered", ErrInvalidCategory, uap.Category())
	}
	d.uaps[uap.Category()] = uap
	return nil
}

// StopOnError reports the value set by WithStopOnError.
func (d *Decoder) StopOnError() bool { return d.stopOnError }

// GetUAP returns the UAP registered for cat, or nil if no category
// package has registered one. Primarily useful for diagnostics and
// tests that need to confirm which UAP edition a Decoder wired in.
func (d *Decoder) GetUAP(cat Category) *UAP {
	return d.uaps[cat]
}

// Context exposes the Decoder's DecoderContext so a caller can stamp
// FrameDate/FrameTime/LineNumber per block before calling Decode (spec.md
// §6: those fields are the Framer's to supply, not the core decoder's).
func (d *Decoder) Context() *DecoderContext { return d.ctx }

// Decode decodes one ASTERIX data block: a leading CAT byte, a
// big-endian 16-bit LEN covering the whole block, and LEN-3 bytes of
// concatenated records (spec.md §3 "DataBlock", §4.E). It returns every
// record successfully decoded before the first failure, plus a
// DecodeError describing the failure if one occurred; the rest of the
// block after a failing record is never decoded, since ASTERIX records
// carry no independent length prefix to resynchronise on.
func (d *Decoder) Decode(block []byte) ([]Report, error) {
	if len(block) < 3 {
		return nil, fmt.Errorf("%w: data block shorter than CAT+LEN header", ErrInvalidMessage)
	}

	cat := Category(block[0])
	length := binary.BigEndian.Uint16(block[1:3])
	if int(length) != len(block) {
		return nil, fmt.Errorf("%w: header declares %d bytes, got %d", ErrInvalidLength, length, len(block))
	}

	uap, ok := d.uaps[cat]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUAPNotDefined, cat)
	}

	d.ctx.Reset()
	payload := block[3:]

	var reports []Report
	cursor := 0
	for cursor < len(payload) {
		report, next, err := decodeRecord(cat, uap, payload[cursor:], d.ctx)
		if err != nil {
			return reports, &DecodeError{Category: cat, Offset: 3 + cursor, Err: err}
		}
		if next <= 0 {
			return reports, &DecodeError{Category: cat, Offset: 3 + cursor, Err: fmt.Errorf("%w: record consumed no bytes", ErrInvalidMessage)}
		}
		cursor += next
		reports = append(reports, report)
	}

	return reports, nil
}
