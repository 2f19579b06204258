package sink_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/sink"
)

func plot(sic uint8) asterix.Plot {
	p := asterix.Plot{}
	p.Header = asterix.Header{Category: asterix.Cat001}
	p.DataSource = asterix.Some(asterix.DataSourceIdentifier{SAC: 1, SIC: sic})
	return p
}

func TestJSONAcceptFlushesOnClose(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewJSON(&buf, 8)

	for i := 0; i < 3; i++ {
		if err := s.Accept(plot(uint8(i))); err != nil {
			t.Fatalf("Accept(%d): %v", i, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("line 0 is not valid JSON: %v", err)
	}
}

func TestJSONAcceptFlushesOnFullBatch(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewJSON(&buf, 2)

	for i := 0; i < 4; i++ {
		if err := s.Accept(plot(uint8(i))); err != nil {
			t.Fatalf("Accept(%d): %v", i, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
}

func TestJSONCloseOnEmptySinkWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewJSON(&buf, 8)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
