// cat/cat001/cat001_test.go
package cat001_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat001"
)

type item struct {
	frn  uint8
	data []byte
}

func newBlock(t *testing.T, cat uint8, items ...item) []byte {
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
	block := []byte{cat, byte(length >> 8), byte(length & 0xFF)}
	return append(block, body...)
}

func TestCat001DecodesPlot(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat001.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t, 1,
		item{1, []byte{50, 2}},                   // I001/010 SAC=50 SIC=2
		item{3, []byte{0x19, 0x40, 0x20, 0x00}},  // I001/040 RHO/THETA
		item{4, []byte{0x00, 0xFF}},               // I001/070 Mode-3/A
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
	if !plot.DataSource.Present || plot.DataSource.Value.SAC != 50 || plot.DataSource.Value.SIC != 2 {
		t.Errorf("unexpected data source: %+v", plot.DataSource)
	}
	if !plot.MeasuredPolar.Present {
		t.Errorf("expected measured polar position")
	}
	if !plot.Mode3A.Present || plot.Mode3A.Value != 0x0FF {
		t.Errorf("expected Mode-3/A code 0xFF, got %+v", plot.Mode3A)
	}
}

func TestCat001RejectsShortRecord(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat001.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// FSPEC claims FRN 1 (2 bytes) but the record ends after the FSPEC byte.
	block := []byte{1, 0, 4, 0x80}
	if _, err := dec.Decode(block); err == nil {
		t.Fatal("expected an error decoding a truncated record")
	}
}
