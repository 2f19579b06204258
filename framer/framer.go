// Package framer locates ASTERIX data blocks inside the container and
// recording wrappers original_source/src/options.cpp's CLI accepts (-ioss,
// -rff, -netto, and the default raw sequential form). A Framer hands the
// decoder's caller one complete CAT|LEN|records data block per call, ready
// for asterix.Decoder.Decode, plus whatever frame-level metadata the
// recording format carries.
package framer

import "github.com/davidkohl/gobelix/asterix"

// Meta carries the per-frame metadata a recording wrapper supplies outside
// the ASTERIX data block itself. A zero Meta means the wrapper carried
// none (Raw/Netto); DecoderContext.FrameDate/FrameTime/LineNumber are left
// unset in that case.
type Meta struct {
	FrameDate  string  // YYYY-MM-DD, set by IOSS
	FrameTime  float64 // seconds since midnight, set by IOSS
	LineNumber int     // set by IOSS
	Sequence   uint32  // frame sequence number, set by RFF
}

// Framer is the single interface the decoder's caller programs against.
// Next returns the category and the complete raw data block (including its
// own CAT/LEN header) for the frame just located; payload is ready to pass
// directly to asterix.Decoder.Decode. Next returns io.EOF once the
// underlying source is exhausted.
type Framer interface {
	Next() (category asterix.Category, payload []byte, meta Meta, err error)
}

// Apply stamps the frame metadata onto ctx ahead of a Decode call, the
// wiring spec.md §6 assigns to the Framer rather than the core decoder.
func (m Meta) Apply(ctx *asterix.DecoderContext) {
	if m.FrameDate != "" {
		ctx.FrameDate = m.FrameDate
	}
	if m.FrameTime != 0 {
		ctx.FrameTime = m.FrameTime
	}
	if m.LineNumber != 0 {
		ctx.LineNumber = m.LineNumber
	}
}
