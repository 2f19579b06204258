// cat/cat032/cat032_test.go
package cat032_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat032"
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
	return append([]byte{32, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat032TrackNumberDefaultsTo16Bit(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat032.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{6, []byte{0x12, 0x34}}) // I032/040

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	track := reports[0].(asterix.Track)
	if track.TrackNumberBits != 16 {
		t.Errorf("expected default 16-bit track number, got %d", track.TrackNumberBits)
	}
	if track.TrackNumber != 0x1234 {
		t.Errorf("unexpected track number: %x", track.TrackNumber)
	}
}

func TestCat032TrackNumberSwitchesTo12Bit(t *testing.T) {
	dec := asterix.NewDecoder(asterix.WithTrackNumberBits(12))
	if err := cat032.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{6, []byte{0x02, 0x34}}) // sttn=0, stn=0x234

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	track := reports[0].(asterix.Track)
	if track.TrackNumberBits != 12 {
		t.Errorf("expected 12-bit track number, got %d", track.TrackNumberBits)
	}
	if track.TrackNumber != 0x234 {
		t.Errorf("unexpected track number: %x", track.TrackNumber)
	}
}

func TestCat032UnsupportedCompoundItemsError(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat032.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{7, []byte{0x00}}) // I032/050

	if _, err := dec.Decode(block); err == nil {
		t.Fatalf("expected decode error for unsupported I032/050")
	}
}

func TestCat032UnhomedFRNsWalkCleanly(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat032.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},
		item{18, []byte{1, 0, 0}}, // I032/460, rep=1, one 2-byte element
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
}
