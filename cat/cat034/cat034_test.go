// cat/cat034/cat034_test.go
package cat034_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat034"
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
	return append([]byte{34, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat034DecodesNorthMarker(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat034.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},       // I034/010
		item{2, []byte{0x01}},         // I034/000 North marker
		item{3, []byte{0x00, 0x00, 0x00}}, // I034/030
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
	if svc.Kind_ != asterix.ServiceNorthMarker {
		t.Errorf("unexpected kind: %v", svc.Kind_)
	}
}

func TestCat034DecodesSectorAndRotation(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat034.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{2, []byte{0x02}},       // I034/000 Sector crossing
		item{4, []byte{0x80}},       // I034/020 -> 180 deg
		item{5, []byte{0x00, 0x80}}, // I034/041 -> 1.0 s
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	svc := reports[0].(asterix.ServiceMessage)
	if !svc.SectorNumber.Present || svc.SectorNumber.Value != 0x80 {
		t.Errorf("unexpected sector number: %+v", svc.SectorNumber)
	}
	if !svc.AntennaRotationS.Present || svc.AntennaRotationS.Value != 1.0 {
		t.Errorf("unexpected rotation period: %+v", svc.AntennaRotationS)
	}
}

func TestCat034SystemConfigurationStatusPacksSubfields(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat034.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// fspec 0x60 -> PSR and SSR present, plus the mandatory COM byte.
	block := newBlock(t,
		item{2, []byte{0x03}}, // I034/000 South marker
		item{6, []byte{0x60, 0xAA, 0xBB, 0xCC}}, // I034/050: fspec,COM,PSR,SSR
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	svc := reports[0].(asterix.ServiceMessage)
	if svc.Kind_ != asterix.ServiceSouthMarker {
		t.Errorf("unexpected kind: %v", svc.Kind_)
	}
	want := []byte{0xAA, 0xBB, 0xCC}
	if len(svc.StationConfiguration) != len(want) {
		t.Fatalf("unexpected station configuration length: %v", svc.StationConfiguration)
	}
	for i := range want {
		if svc.StationConfiguration[i] != want[i] {
			t.Errorf("byte %d: got %02X want %02X", i, svc.StationConfiguration[i], want[i])
		}
	}
}

func TestCat034SystemProcessingModeAllOptional(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat034.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// fspec 0x90 -> COM and MDS present.
	block := newBlock(t,
		item{2, []byte{0x04}}, // I034/000 New sector
		item{7, []byte{0x90, 0x11, 0x22}},
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	svc := reports[0].(asterix.ServiceMessage)
	if svc.Kind_ != asterix.ServiceSectorCrossing {
		t.Errorf("unexpected kind: %v", svc.Kind_)
	}
	want := []byte{0x11, 0x22}
	if len(svc.StationProcessingMode) != len(want) {
		t.Fatalf("unexpected station processing mode length: %v", svc.StationProcessingMode)
	}
}
