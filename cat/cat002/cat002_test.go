// cat/cat002/cat002_test.go
package cat002_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat002"
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
	return append([]byte{2, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat002DecodesSectorCrossing(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat002.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},  // I002/010 SAC=10 SIC=20
		item{2, []byte{2}},       // I002/000 message type 2: sector crossing
		item{3, []byte{128}},     // I002/020 sector number
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	svc, ok := reports[0].(asterix.ServiceMessage)
	if !ok {
		t.Fatalf("expected ServiceMessage, got %T", reports[0])
	}
	if svc.Kind_ != asterix.ServiceSectorCrossing {
		t.Errorf("expected ServiceSectorCrossing, got %v", svc.Kind_)
	}
	if !svc.SectorNumber.Present || svc.SectorNumber.Value != 128 {
		t.Errorf("unexpected sector number: %+v", svc.SectorNumber)
	}
	if !svc.DataSource.Present || svc.DataSource.Value.SAC != 10 {
		t.Errorf("unexpected data source: %+v", svc.DataSource)
	}
}

func TestCat002DecodesStationConfiguration(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat002.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{6, []byte{0x02}}, // I002/050, single octet, FX clear
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	svc := reports[0].(asterix.ServiceMessage)
	if len(svc.StationConfiguration) != 1 || svc.StationConfiguration[0] != 0x02 {
		t.Errorf("unexpected station configuration: %+v", svc.StationConfiguration)
	}
}
