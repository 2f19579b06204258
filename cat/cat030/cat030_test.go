// cat/cat030/cat030_test.go
package cat030_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat030"
)

type item struct {
	frn  uint8
	data []byte
}

func newBlock(t *testing.T, items ...item) []byte {
	t.Helper()
	fspec := asterix.NewFSPEC()
	var body []byte
	for _, it := range items {
		if err := fspec.SetFRN(it.frn); err != nil {
			t.Fatalf("SetFRN(%d): %v", it.frn, err)
		}
	}
	fbytes := make([]byte, fspec.Size())
	fspec.EncodeToBytes(fbytes, 0)
	body = append(body, fbytes...)
	for _, it := range items {
		body = append(body, it.data...)
	}
	length := 3 + len(body)
	return append([]byte{30, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat030DecodesTrackNumberAs12Bit(t *testing.T) {
	dec := asterix.NewDecoder(asterix.WithTrackNumberBits(12))
	if err := cat030.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},      // I030/010
		item{5, []byte{0x01, 0x23}}, // I030/040: sttn=0, stn=0x123
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	track, ok := reports[0].(asterix.Track)
	if !ok {
		t.Fatalf("expected Track, got %T", reports[0])
	}
	if track.TrackNumberBits != 12 {
		t.Errorf("expected 12-bit track number, got %d", track.TrackNumberBits)
	}
	if track.TrackNumber != 0x123 {
		t.Errorf("unexpected track number: %x", track.TrackNumber)
	}
}

func TestCat030TimeOfMessageDecodes(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat030.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// raw 128*100 = 12800 -> 100.0s
	block := newBlock(t, item{37, []byte{0x00, 0x32, 0x00}})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	track := reports[0].(asterix.Track)
	if !track.TimeOfDayS.Present || track.TimeOfDayS.Value != 100.0 {
		t.Errorf("unexpected time of message: %+v", track.TimeOfDayS)
	}
}

func TestCat030UnhomedFRNsWalkCleanly(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat030.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},
		item{2, []byte{0, 0}},                 // I030/015
		item{3, []byte{0x00}},                 // I030/030, FX clear
		item{33, []byte{2, 0, 0, 0, 0}},        // I030/460, rep=2, elem 2 bytes
		item{52, []byte{0, 0}},                 // I030/370
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
}

func TestCat030UnsupportedCompoundItemErrors(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat030.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{50, []byte{0x00}})

	if _, err := dec.Decode(block); err == nil {
		t.Fatalf("expected decode error for unsupported I030/050")
	}
}
