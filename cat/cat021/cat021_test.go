// cat/cat021/cat021_test.go
package cat021_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat021"
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
	return append([]byte{21, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat021DecodesPositionAndAltitude(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat021.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},                                     // I021/010
		item{6, []byte{0x00, 0x00, 0x10, 0x00, 0x00, 0x20}},         // I021/130
		item{11, []byte{0xAB, 0xCD, 0xEF}},                          // I021/080
		item{16, []byte{0x00, 0x10}},                                // I021/140
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	ads, ok := reports[0].(asterix.AdsReport)
	if !ok {
		t.Fatalf("expected AdsReport, got %T", reports[0])
	}
	if !ads.PositionWGS84.Present {
		t.Errorf("expected position to be set")
	}
	if !ads.GeometricAltM.Present {
		t.Errorf("expected geometric altitude to be set")
	}
	if !ads.TargetAddress.Present || ads.TargetAddress.Value != 0xABCDEF {
		t.Errorf("unexpected target address: %+v", ads.TargetAddress)
	}
}

func TestCat021Mode3ACodeDecodes(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat021.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// code octal 1234 -> raw 0x29C.
	block := newBlock(t, item{19, []byte{0x02, 0x9C}})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ads := reports[0].(asterix.AdsReport)
	if !ads.Mode3A.Present || ads.Mode3A.Value != 1234 {
		t.Errorf("unexpected mode3a: %+v", ads.Mode3A)
	}
}

func TestCat021TargetIdentificationDecodesCallsign(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat021.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{29, []byte{0, 0, 0, 0, 0, 0}})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ads := reports[0].(asterix.AdsReport)
	if !ads.TargetIdentification.Present {
		t.Errorf("expected target identification to be set")
	}
}

func TestCat021UnhomedFRNsDoNotFailDecode(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat021.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Exercise a mix of walked-but-unhomed Fixed/Variable/Repetitive
	// items alongside a homed field, confirming none of them trip
	// ErrUnknownDataItem.
	block := newBlock(t,
		item{1, []byte{10, 20}},          // I021/010
		item{4, []byte{0x00}},            // I021/015
		item{20, []byte{0x00, 0x00}},     // I021/230
		item{37, []byte{0x00}},           // I021/271 (FX-terminated Variable, 1 octet)
		item{39, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0}}, // I021/250, REP=1, one 8-byte element
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
}

func TestCat021DataAgesFXChainWalksCleanly(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat021.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Single FSPEC octet, two subfields set (bits 7,6), FX bit (bit0) clear.
	block := newBlock(t, item{42, []byte{0xC0, 0x01, 0x02}})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
}
