// cat/cat252/cat252_test.go
package cat252_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat252"
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
	return append([]byte{252, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat252DataSourceDecodes(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat252.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{1, []byte{10, 20}}) // I252/010

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	svc := reports[0].(asterix.ServiceMessage)
	if !svc.DataSource.Present || svc.DataSource.Value.SAC != 10 || svc.DataSource.Value.SIC != 20 {
		t.Errorf("unexpected data source: %+v", svc.DataSource)
	}
}

func TestCat252TypeOfMessagePacksOpaqueByte(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat252.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{4, []byte{0x31}}) // family=3, nature=1: server status message

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	svc := reports[0].(asterix.ServiceMessage)
	if len(svc.StationProcessingMode) != 1 || svc.StationProcessingMode[0] != 0x31 {
		t.Errorf("unexpected type-of-message blob: %v", svc.StationProcessingMode)
	}
}

func TestCat252ServiceIdentificationPacksRawBytes(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat252.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{5, []byte{0x07, 0xF0}}) // I252/110, variable length (FX bit set on first octet)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	svc := reports[0].(asterix.ServiceMessage)
	if len(svc.StationConfiguration) != 2 || svc.StationConfiguration[1] != 0xF0 {
		t.Errorf("unexpected service identification blob: %v", svc.StationConfiguration)
	}
}

func TestCat252UnhomedFRNsWalkCleanly(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat252.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{2, []byte{0, 1}},
		item{3, []byte{0x00, 0x32, 0x00}},
		item{6, []byte{1, 0, 0}}, // I252/330, rep=1, one 2-byte element
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
}
