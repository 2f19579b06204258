// cat/cat048/cat048_test.go
package cat048_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat048"
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
	return append([]byte{48, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat048DecodesPlot(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat048.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},                         // I048/010 SAC=10 SIC=20
		item{3, []byte{0x60}},                            // I048/020 TYP=3 (PSR+SSR), no extension
		item{4, []byte{0x19, 0x40, 0x20, 0x00}},          // I048/040 RHO/THETA
		item{8, []byte{0x4A, 0xC2, 0x17}},                // I048/220 aircraft address
		item{9, []byte{0x20, 0x82, 0x14, 0x23, 0x08, 0x40}}, // I048/240 aircraft identification
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	plot, ok := reports[0].(asterix.Plot)
	if !ok {
		t.Fatalf("expected Plot, got %T", reports[0])
	}
	if !plot.DataSource.Present || plot.DataSource.Value.SAC != 10 {
		t.Errorf("unexpected data source: %+v", plot.DataSource)
	}
	if !plot.Detection.Present || plot.Detection.Value != asterix.DetectionCombined {
		t.Errorf("expected combined PSR+SSR detection, got %+v", plot.Detection)
	}
	if !plot.MeasuredPolar.Present {
		t.Errorf("expected measured polar position")
	}
	if !plot.AircraftAddress.Present || plot.AircraftAddress.Value != 0x4AC217 {
		t.Errorf("unexpected aircraft address: %+v", plot.AircraftAddress)
	}
}

func TestCat048RadarPlotCharacteristicsRejectsExtension(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat048.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// primary octet with FX bit set: extensions are not defined for I048/130.
	block := newBlock(t, item{7, []byte{0x01}})
	if _, err := dec.Decode(block); err == nil {
		t.Fatal("expected an error decoding an undefined I048/130 extension")
	}
}

func TestCat048RadialDopplerSpeedRejectsBothSubfields(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat048.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// CAL and RDS both set: mutually exclusive per I048/120.
	block := newBlock(t, item{20, []byte{0xC0, 0x00, 0x00, 0x00}})
	if _, err := dec.Decode(block); err == nil {
		t.Fatal("expected an error when both doppler speed subfields are present")
	}
}

func TestCat048BDSRegisterData(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat048.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	reg := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x40} // BDS 4,0
	block := newBlock(t, item{10, append([]byte{1}, reg...)})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	plot := reports[0].(asterix.Plot)
	if len(plot.BDSRegisters) != 1 {
		t.Fatalf("expected 1 BDS register, got %d", len(plot.BDSRegisters))
	}
	if plot.BDSRegisters[0].Address != 0x40 {
		t.Errorf("unexpected BDS address: %#x", plot.BDSRegisters[0].Address)
	}
}
