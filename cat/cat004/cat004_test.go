// cat/cat004/cat004_test.go
package cat004_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat004"
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
	return append([]byte{4, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat004MessageTypeClassifiesSTCA(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{2, []byte{7}}) // I004/000 = 7: STCA

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	alert := reports[0].(asterix.SafetyNetAlert)
	if alert.AlertType != asterix.AlertSTCA {
		t.Errorf("expected AlertSTCA, got %v", alert.AlertType)
	}
}

func TestCat004MessageTypeUnknownDefaultsGracefully(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{2, []byte{200}})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	alert := reports[0].(asterix.SafetyNetAlert)
	if alert.AlertType != asterix.AlertUnknown {
		t.Errorf("expected AlertUnknown, got %v", alert.AlertType)
	}
}

func TestCat004TimeOfDayDecodes(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{4, []byte{0x00, 0x32, 0x00}}) // 12800 raw * 1/128 = 100.0s

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	alert := reports[0].(asterix.SafetyNetAlert)
	if !alert.TimeOfDayS.Present || alert.TimeOfDayS.Value != 100.0 {
		t.Errorf("unexpected time of day: %+v", alert.TimeOfDayS)
	}
}

func TestCat004AircraftIdentification1Decodes(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// primary octet: sf01 set only (0x80), no extension octet.
	// byte after primary is skipped by this decoder's own convention,
	// then 6 ICAO6-packed bytes follow.
	data := []byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	block := newBlock(t, item{9, data}) // I004/170

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	alert := reports[0].(asterix.SafetyNetAlert)
	if !alert.AircraftID1.Present {
		t.Fatalf("expected AircraftID1 to be set")
	}
}

func TestCat004ReservedExtensionBitErrors(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// primary octet's FX bit set -> extension octet follows; the
	// extension octet's own LSB set is a reserved/invalid encoding.
	data := []byte{0x01, 0x01}
	block := newBlock(t, item{9, data}) // I004/170

	if _, err := dec.Decode(block); err == nil {
		t.Fatalf("expected decode error for reserved extension bit")
	}
}

func TestCat004ConflictClassificationDecodes(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	data := []byte{0x40, 0x03} // sf02 (conflict classification) only, value 3
	block := newBlock(t, item{10, data})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	alert := reports[0].(asterix.SafetyNetAlert)
	if !alert.ConflictClass.Present || alert.ConflictClass.Value != 3 {
		t.Errorf("unexpected conflict class: %+v", alert.ConflictClass)
	}
}

func TestCat004SpecialPurposeAndReservedExpansionDecode(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{20, []byte{3, 0x00, 0xAA}}, // RE004: length 3 includes itself
		item{21, []byte{3, 0x00, 0xBB}}, // SPF004
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	alert := reports[0].(asterix.SafetyNetAlert)
	if len(alert.ReservedExpansion) != 3 || alert.ReservedExpansion[2] != 0xAA {
		t.Errorf("unexpected REF blob: %v", alert.ReservedExpansion)
	}
	if len(alert.SpecialPurpose) != 3 || alert.SpecialPurpose[2] != 0xBB {
		t.Errorf("unexpected SPF blob: %v", alert.SpecialPurpose)
	}
}

func TestCat004UnsupportedCompoundItemsError(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{11, []byte{0x00}}) // I004/070

	if _, err := dec.Decode(block); err == nil {
		t.Fatalf("expected decode error for unsupported I004/070")
	}
}

func TestCat004UnhomedFRNsWalkCleanly(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat004.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},
		item{3, []byte{1, 0, 0}}, // I004/015, rep=1, one 2-byte element
		item{18, []byte{1, 0, 0}}, // I004/110, rep=1, one 2-byte element
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
}
