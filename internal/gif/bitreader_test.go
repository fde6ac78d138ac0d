package gif

import (
	"bytes"
	"io"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestBitReaderReadBits(t *testing.T) {
	data := []byte{0xb1} // 10110001, read from the right
	br := NewBitReader(bytes.NewReader(data))

	val, err := br.ReadBits(1)
	if err != nil {
		t.Fatalf("ReadBits(1) failed: %v", err)
	}
	if val != 1 {
		t.Errorf("Expected 1, got %d", val)
	}

	val, err = br.ReadBits(1)
	if err != nil {
		t.Fatalf("ReadBits(1) failed: %v", err)
	}
	if val != 0 {
		t.Errorf("Expected 0, got %d", val)
	}

	val, err = br.ReadBits(2)
	if err != nil {
		t.Fatalf("ReadBits(2) failed: %v", err)
	}
	if val != 0 {
		t.Errorf("Expected 0, got %d", val)
	}

	// Bits 4..7 are 1,1,0,1 with the first bit least significant.
	val, err = br.ReadBits(4)
	if err != nil {
		t.Fatalf("ReadBits(4) failed: %v", err)
	}
	if val != 0xb {
		t.Errorf("Expected 0xb, got 0x%x", val)
	}
}

func TestBitReaderCrossesByteBoundary(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xff, 0x01}))
	val, err := br.ReadBits(9)
	if err != nil {
		t.Fatalf("ReadBits(9) failed: %v", err)
	}
	if val != 0x1ff {
		t.Errorf("Expected 0x1ff, got 0x%x", val)
	}
	if br.BytesRead() != 2 {
		t.Errorf("Expected 2 bytes read, got %d", br.BytesRead())
	}
}

func TestBitReaderTwelveBitCodes(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0x34, 0x12}))
	val, err := br.ReadBits(12)
	if err != nil {
		t.Fatalf("ReadBits(12) failed: %v", err)
	}
	if val != 0x234 {
		t.Errorf("Expected 0x234, got 0x%x", val)
	}
	if br.Buffered() != 4 {
		t.Errorf("Expected 4 buffered bits, got %d", br.Buffered())
	}
	val, err = br.ReadBits(4)
	if err != nil {
		t.Fatalf("ReadBits(4) failed: %v", err)
	}
	if val != 1 {
		t.Errorf("Expected 1, got %d", val)
	}
}

func TestBitReaderLazyByteFetch(t *testing.T) {
	src := bytes.NewReader([]byte{0xaa, 0xbb})
	br := NewBitReader(src)
	if _, err := br.ReadBits(8); err != nil {
		t.Fatalf("ReadBits(8) failed: %v", err)
	}
	if src.Len() != 1 {
		t.Errorf("Expected the second byte to stay unread, %d left", src.Len())
	}
}

func TestBitReaderInvalidCount(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xff, 0xff}))
	if _, err := br.ReadBits(0); err == nil {
		t.Error("Expected error for zero bit count, got nil")
	}
	if _, err := br.ReadBits(13); err == nil {
		t.Error("Expected error for 13 bit count, got nil")
	}
}

func TestBitReaderExhausted(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xb1}))
	if _, err := br.ReadBits(8); err != nil {
		t.Fatalf("ReadBits(8) failed: %v", err)
	}
	_, err := br.ReadBits(2)
	if err == nil {
		t.Fatal("Expected error for exhausted source, got nil")
	}
	if !errors.Is(err, ErrStreamExhausted) {
		t.Errorf("Expected ErrStreamExhausted, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected io.ErrUnexpectedEOF in chain, got %v", err)
	}
}
