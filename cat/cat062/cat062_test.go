// cat/cat062/cat062_test.go
package cat062_test

import (
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat062"
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
	return append([]byte{62, byte(length >> 8), byte(length & 0xFF)}, body...)
}

func TestCat062DecodesTrackPositionAndVelocity(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat062.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	block := newBlock(t,
		item{1, []byte{10, 20}},                   // I062/010
		item{4, []byte{0x00, 0x00, 0x00}},         // I062/070 t=0
		item{6, []byte{0x00, 0x00, 0x10, 0x00, 0x00, 0x20}}, // I062/100 X=0x000010*0.5, Y=0x000020*0.5
		item{7, []byte{0x00, 0x28, 0x00, 0x14}},   // I062/185 Vx=40*0.25=10, Vy=20*0.25=5
		item{12, []byte{0x01, 0xF4}},              // I062/040 track number 500
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
	if track.TrackNumber != 500 {
		t.Errorf("unexpected track number: %d", track.TrackNumber)
	}
	if !track.CalculatedCartesian.Present {
		t.Fatalf("expected cartesian position")
	}
	if track.CalculatedCartesian.Value.X != 8.0 || track.CalculatedCartesian.Value.Y != 16.0 {
		t.Errorf("unexpected cartesian position: %+v", track.CalculatedCartesian.Value)
	}
	if !track.CalculatedVelocity.Present || !track.CalculatedVelocity.Value.Cartesian.Present {
		t.Fatalf("expected cartesian velocity")
	}
	v := track.CalculatedVelocity.Value.Cartesian.Value
	if v.VxMS != 10.0 || v.VyMS != 5.0 {
		t.Errorf("unexpected velocity: %+v", v)
	}
}

func TestCat062TrackStatusSelectsAltitudeSource(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat062.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// MRH=1 (geometric), no further extensions (FX=0).
	block := newBlock(t, item{13, []byte{0x20}})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	track := reports[0].(asterix.Track)
	if track.AltitudeSource != "geometric" {
		t.Errorf("expected geometric altitude source, got %q", track.AltitudeSource)
	}
}

func TestCat062MeasuredInformationSetsLastUpdatingSensor(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat062.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Primary octet: bit8 set (SAC/SIC present), no further bits, no FX.
	block := newBlock(t, item{28, []byte{0x80, 11, 22}})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	track := reports[0].(asterix.Track)
	if !track.LastUpdatingSensor.Present {
		t.Fatalf("expected LastUpdatingSensor to be set")
	}
	if track.LastUpdatingSensor.Value.SAC != 11 || track.LastUpdatingSensor.Value.SIC != 22 {
		t.Errorf("unexpected sensor id: %+v", track.LastUpdatingSensor.Value)
	}
}

func TestCat062FlightPlanRelatedDataMapsCallsignAndAirports(t *testing.T) {
	dec := asterix.NewDecoder()
	if err := cat062.Register(dec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Primary octet: bit7 set (callsign), bit2 set (departure airport), no FX.
	// FSPEC bit positions (1-indexed from MSB, excluding FX): #2 callsign -> bit 0x40, #7 departure -> bit 0x02.
	primary := byte(0x40 | 0x02)
	callsign := []byte("KLM123 ")
	departure := []byte("EHAM")
	block := newBlock(t, item{21, append(append([]byte{primary}, callsign...), departure...)})

	reports, err := dec.Decode(block)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	track := reports[0].(asterix.Track)
	if !track.Callsign.Present || track.Callsign.Value != "KLM123" {
		t.Errorf("unexpected callsign: %+v", track.Callsign)
	}
	if !track.DepartureAirport.Present || track.DepartureAirport.Value != "EHAM" {
		t.Errorf("unexpected departure airport: %+v", track.DepartureAirport)
	}
}
