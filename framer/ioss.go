package framer

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/davidkohl/gobelix/asterix"
)

// ioss frames a SASS-C IOSS recording: board (1 byte) + line (1 byte) +
// seconds since midnight (4 bytes BE) + microseconds (4 bytes BE) + length
// (2 bytes BE) + a raw ASTERIX data block of that declared length. The
// frame's timestamp and line number feed DecoderContext.FrameTime and
// LineNumber (spec.md §6); IOSS carries no calendar date of its own, so
// Meta.FrameDate is always left empty.
type ioss struct {
	source io.Reader
}

// NewIOSS returns a Framer for SASS-C IOSS recordings.
func NewIOSS(source io.Reader) Framer { return &ioss{source: source} }

func (f *ioss) Next() (asterix.Category, []byte, Meta, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(f.source, hdr[:]); err != nil {
		return 0, nil, Meta{}, err
	}

	board := hdr[0]
	line := hdr[1]
	seconds := binary.BigEndian.Uint32(hdr[2:6])
	micros := binary.BigEndian.Uint32(hdr[6:10])
	length := int(binary.BigEndian.Uint16(hdr[10:12]))

	if length < 3 {
		return 0, nil, Meta{}, fmt.Errorf("%w: IOSS frame declares length %d", asterix.ErrInvalidLength, length)
	}

	block := make([]byte, length)
	if _, err := io.ReadFull(f.source, block); err != nil {
		return 0, nil, Meta{}, fmt.Errorf("%w: truncated IOSS frame: %v", asterix.ErrInvalidMessage, err)
	}

	meta := Meta{
		FrameTime:  float64(seconds) + float64(micros)/1e6,
		LineNumber: int(board)<<8 | int(line),
	}

	return asterix.Category(block[0]), block, meta, nil
}
