package framer

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/davidkohl/gobelix/asterix"
)

// rff frames an RFF recording: each frame is a 4-byte big-endian sequence
// number (original_source/src/options.cpp: "Each RFF frame holds a 4 bytes
// sequence number") followed by one raw ASTERIX data block whose own
// CAT+LEN header gives its length.
type rff struct {
	source io.Reader
}

// NewRFF returns a Framer for RFF recordings.
func NewRFF(source io.Reader) Framer { return &rff{source: source} }

func (r *rff) Next() (asterix.Category, []byte, Meta, error) {
	var seqBuf [4]byte
	if _, err := io.ReadFull(r.source, seqBuf[:]); err != nil {
		return 0, nil, Meta{}, err
	}
	seq := binary.BigEndian.Uint32(seqBuf[:])

	var header [3]byte
	if _, err := io.ReadFull(r.source, header[:]); err != nil {
		return 0, nil, Meta{}, fmt.Errorf("%w: reading RFF frame header: %v", asterix.ErrInvalidMessage, err)
	}

	length := int(header[1])<<8 | int(header[2])
	if length < 3 {
		return 0, nil, Meta{}, fmt.Errorf("%w: RFF frame declares length %d", asterix.ErrInvalidLength, length)
	}

	block := make([]byte, length)
	copy(block, header[:])
	if _, err := io.ReadFull(r.source, block[3:]); err != nil {
		return 0, nil, Meta{}, fmt.Errorf("%w: truncated RFF frame: %v", asterix.ErrInvalidMessage, err)
	}

	return asterix.Category(block[0]), block, Meta{Sequence: seq}, nil
}
