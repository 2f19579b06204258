// cat/cat063/cat063_test.go
package cat063_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat063"
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
	return append([]byte{63, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat063DecodesSensorStatus(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat063.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},       // I063/010 sender SAC/SIC
		item{4, []byte{10, 21}},       // I063/050 sensor SAC/SIC
		item{5, []byte{0x00}},         // I063/060 CON=0 operational, no flags, no extension
	)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	status, ok := reports[0].(asterix.SensorStatus)
	if !ok {
		t.Fatalf("expected SensorStatus, got %T", reports[0])
	}
	if status.SensorID.SAC != 10 || status.SensorID.SIC != 21 {
		t.Errorf("unexpected sensor id: %+v", status.SensorID)
	}
	if !status.Connected {
		t.Errorf("expected connected status for CON=0")
	}
}

func TestCat063SensorConfigurationExtensionFlags(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat063.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// CON=3 (not connected), PSR NOGO set, FX set; extension byte with OPS set, no further FX.
	block := newBlock(t, item{5, []byte{0xC1 | 0x20, 0x80}})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	status := reports[0].(asterix.SensorStatus)
	if status.Connected {
		t.Errorf("expected disconnected status for CON=3")
	}
	if !status.StatusFlags["PSR"] {
		t.Errorf("expected PSR NOGO flag set")
	}
	if !status.StatusFlags["OPS"] {
		t.Errorf("expected OPS extension flag set")
	}
}

func TestCat063RangeGainAndBias(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat063.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, item{7, []byte{0x00, 0x00, 0xFF, 0x80}}) // gain=0, bias=-128 (-1 NM)

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	status := reports[0].(asterix.SensorStatus)
	if !status.SSRRangeBiasM.Present || status.SSRRangeBiasM.Value != -1852.0 {
		t.Errorf("unexpected SSR range bias: %+v", status.SSRRangeBiasM)
	}
}
