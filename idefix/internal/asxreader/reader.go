// internal/asxreader/reader.go
package asxreader

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/davidkohl/gobelix/asterix"
)

// AsterixReader provides a unified interface for reading ASTERIX data
// blocks regardless of the underlying transport protocol.
type AsterixReader interface {
	io.Closer
	Next() (Block, error)
	Protocol() string
	Stats() ReaderStats
}

// Block is one decoded ASTERIX data block: the category its CAT/LEN
// header declared, plus every record asterix.Decoder.Decode reported for
// it.
type Block struct {
	Cat     asterix.Category
	Reports []asterix.Report
}

// Category returns the data block's category.
func (b Block) Category() asterix.Category { return b.Cat }

// RecordCount returns the number of records decoded from this block.
func (b Block) RecordCount() int { return len(b.Reports) }

func (b Block) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d record(s)", b.Cat, len(b.Reports))
	for _, r := range b.Reports {
		fmt.Fprintf(&sb, "\n  [%s] %+v", r.Kind(), r)
	}
	return sb.String()
}

// DeadlineSetter is an interface for readers that support setting read deadlines
type DeadlineSetter interface {
	SetReadDeadline(t time.Time) error
}

// ReaderStats contains statistics about the reader
type ReaderStats struct {
	BytesRead       int64
	MessagesRead    int64
	ConnectionTime  time.Duration
	SourceAddr      string // Remote address (if applicable)
	TransportErrors int    // Number of transport errors
	StartTime       time.Time
}

// NewReaderStats creates a new ReaderStats struct
func NewReaderStats() ReaderStats {
	return ReaderStats{
		StartTime: time.Now(),
	}
}

// NewAsterixReader creates an appropriate AsterixReader based on protocol
func NewAsterixReader(protocol string, port int, decoder *asterix.Decoder) (AsterixReader, error) {
	switch protocol {
	case "udp":
		return NewUDPAsterixReader(port, decoder)
	case "tcp":
		return NewTCPAsterixReader(port, decoder)
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", protocol)
	}
}

// readFramedBlock reads one CAT|LEN-framed ASTERIX data block from r: a
// leading CAT byte, a big-endian 16-bit LEN covering the whole block,
// then LEN-3 bytes of record data (asterix.Decoder.Decode's own input
// shape, spec.md §3 "DataBlock").
func readFramedBlock(r io.Reader) ([]byte, error) {
	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	length := int(header[1])<<8 | int(header[2])
	if length < 3 {
		return nil, fmt.Errorf("invalid data block length %d", length)
	}
	block := make([]byte, length)
	copy(block, header)
	if _, err := io.ReadFull(r, block[3:]); err != nil {
		return nil, err
	}
	return block, nil
}
