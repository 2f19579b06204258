package framer_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/framer"
)

func cat001Block() []byte {
	// CAT 1, length 5, 1 FSPEC byte (no FX, all clear) + 1 payload byte.
	return []byte{1, 0, 5, 0x00, 0xAA}
}

func TestRawFramesBackToBackBlocks(t *testing.T) {
	block := cat001Block()
	src := bytes.NewReader(append(append([]byte{}, block...), block...))
	f := framer.NewRaw(src)

	for i := 0; i < 2; i++ {
		cat, payload, meta, err := f.Next()
		if err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
		if cat != asterix.Cat001 {
			t.Errorf("category = %v, want Cat001", cat)
		}
		if !bytes.Equal(payload, block) {
			t.Errorf("payload = %v, want %v", payload, block)
		}
		if meta != (framer.Meta{}) {
			t.Errorf("meta = %+v, want zero value", meta)
		}
	}

	if _, _, _, err := f.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after exhaustion: err = %v, want io.EOF", err)
	}
}

func TestRawRejectsTruncatedFinalBlock(t *testing.T) {
	block := cat001Block()
	src := bytes.NewReader(block[:3]) // header only, no payload
	f := framer.NewRaw(src)

	if _, _, _, err := f.Next(); err == nil {
		t.Fatal("expected an error for a truncated trailing block, got nil")
	}
}

func TestRFFReadsSequenceAndBlock(t *testing.T) {
	block := cat001Block()
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(42))
	buf.Write(block)

	f := framer.NewRFF(&buf)
	cat, payload, meta, err := f.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if cat != asterix.Cat001 {
		t.Errorf("category = %v, want Cat001", cat)
	}
	if !bytes.Equal(payload, block) {
		t.Errorf("payload = %v, want %v", payload, block)
	}
	if meta.Sequence != 42 {
		t.Errorf("Sequence = %d, want 42", meta.Sequence)
	}
}

func TestIOSSReadsFrameHeaderAndBlock(t *testing.T) {
	block := cat001Block()
	var buf bytes.Buffer
	buf.WriteByte(3)  // board
	buf.WriteByte(7)  // line
	binary.Write(&buf, binary.BigEndian, uint32(3600)) // seconds
	binary.Write(&buf, binary.BigEndian, uint32(500000)) // microseconds
	binary.Write(&buf, binary.BigEndian, uint16(len(block)))
	buf.Write(block)

	f := framer.NewIOSS(&buf)
	cat, payload, meta, err := f.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if cat != asterix.Cat001 {
		t.Errorf("category = %v, want Cat001", cat)
	}
	if !bytes.Equal(payload, block) {
		t.Errorf("payload = %v, want %v", payload, block)
	}
	if meta.FrameTime != 3600.5 {
		t.Errorf("FrameTime = %v, want 3600.5", meta.FrameTime)
	}
	if meta.LineNumber != int(3)<<8|7 {
		t.Errorf("LineNumber = %d, want %d", meta.LineNumber, int(3)<<8|7)
	}
}

func TestMetaApplyStampsContext(t *testing.T) {
	ctx := asterix.NewDecoderContext()
	meta := framer.Meta{FrameDate: "2026-07-30", FrameTime: 123.5, LineNumber: 9}
	meta.Apply(ctx)

	if ctx.FrameDate != "2026-07-30" || ctx.FrameTime != 123.5 || ctx.LineNumber != 9 {
		t.Errorf("ctx not stamped: %+v", ctx)
	}
}
