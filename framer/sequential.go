package framer

import (
	"errors"
	"fmt"
	"io"

	"github.com/davidkohl/gobelix/asterix"
)

const (
	defaultBufferSize = 16384
	maxBufferSize     = 1024 * 1024
	defaultReadSize   = 4096
)

// sequential frames back-to-back CAT|LEN|records data blocks with no
// recording wrapper around them, the Raw and Netto forms
// original_source/src/options.cpp treats identically once framing starts
// (e_input_format_netto differs from raw only in how the original CLI
// opened the file). Buffering is adapted from gobelix's own
// asterix/reader.go: grow a byte buffer from the source until a full
// CAT+LEN header is available, then until the declared length is
// satisfied.
type sequential struct {
	source io.Reader
	buffer []byte
	temp   []byte
}

func newSequential(source io.Reader) *sequential {
	return &sequential{
		source: source,
		buffer: make([]byte, 0, defaultBufferSize),
		temp:   make([]byte, defaultReadSize),
	}
}

// NewRaw returns a Framer for plain sequential ASTERIX recordings: data
// blocks with no sequence number, timestamp, or line number wrapped around
// them.
func NewRaw(source io.Reader) Framer { return newSequential(source) }

// NewNetto returns a Framer for "netto" binary recordings, which carry the
// same back-to-back data blocks as Raw.
func NewNetto(source io.Reader) Framer { return newSequential(source) }

func (s *sequential) Next() (asterix.Category, []byte, Meta, error) {
	for {
		if len(s.buffer) >= 3 {
			length := int(s.buffer[1])<<8 | int(s.buffer[2])
			if length < 3 {
				return 0, nil, Meta{}, fmt.Errorf("%w: data block declares length %d", asterix.ErrInvalidLength, length)
			}
			if len(s.buffer) >= length {
				block := make([]byte, length)
				copy(block, s.buffer[:length])
				s.buffer = s.buffer[length:]
				return asterix.Category(block[0]), block, Meta{}, nil
			}
		}

		if len(s.buffer) >= maxBufferSize {
			return 0, nil, Meta{}, fmt.Errorf("%w: buffered %d bytes without a complete data block", asterix.ErrInvalidMessage, len(s.buffer))
		}

		n, err := s.source.Read(s.temp)
		if n > 0 {
			s.buffer = append(s.buffer, s.temp[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(s.buffer) == 0 {
					return 0, nil, Meta{}, io.EOF
				}
				return 0, nil, Meta{}, fmt.Errorf("%w: truncated data block at end of stream", asterix.ErrInvalidMessage)
			}
			return 0, nil, Meta{}, err
		}
	}
}
