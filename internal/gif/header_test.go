package gif

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestReadHeader_Fields(t *testing.T) {
	data := screen(Version89a, 0x0102, 0x0304, 0xA5)
	data[11] = 7  // background index
	data[12] = 49 // pixel aspect

	h, err := readHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("readHeader returned error: %v", err)
	}
	if h.Version != Version89a {
		t.Fatalf("unexpected version: got %q", h.Version)
	}
	if h.Width != 0x0102 || h.Height != 0x0304 {
		t.Fatalf("unexpected size: got %dx%d", h.Width, h.Height)
	}
	if h.BackgroundIndex != 7 || h.PixelAspect != 49 {
		t.Fatalf("unexpected trailing fields: bg=%d aspect=%d", h.BackgroundIndex, h.PixelAspect)
	}
	if !h.HasPalette() {
		t.Fatal("expected global palette flag")
	}
	if h.PaletteSize() != 64 {
		t.Fatalf("unexpected palette size: got %d, want 64", h.PaletteSize())
	}
	if h.ColorResolution() != 3 {
		t.Fatalf("unexpected colour resolution: got %d, want 3", h.ColorResolution())
	}
	if h.Sorted() {
		t.Fatal("sort flag should be clear")
	}
}

func TestReadHeader_BadMagicBeforeDescriptor(t *testing.T) {
	// Six bytes only: the signature is rejected before the short descriptor
	// could be noticed.
	_, err := readHeader(bytes.NewReader([]byte("BM\x00\x00\x00\x00")))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestReadHeader_Truncated(t *testing.T) {
	data := screen(Version87a, 1, 1, 0)
	_, err := readHeader(bytes.NewReader(data[:10]))
	if !errors.Is(err, ErrStreamExhausted) {
		t.Fatalf("expected ErrStreamExhausted, got %v", err)
	}
}

func TestPaletteSizes(t *testing.T) {
	for exp := uint8(0); exp < 8; exp++ {
		want := 2 << exp
		if got := paletteSize(exp); got != want {
			t.Errorf("paletteSize(%d): got %d, want %d", exp, got, want)
		}
	}
}

func TestReadImageDescriptor(t *testing.T) {
	data := []byte{0x01, 0x00, 0x02, 0x00, 0x10, 0x00, 0x20, 0x00, 0xE3}
	d, err := readImageDescriptor(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("readImageDescriptor returned error: %v", err)
	}
	if d.Left != 1 || d.Top != 2 || d.Width != 16 || d.Height != 32 {
		t.Fatalf("unexpected geometry: %+v", d)
	}
	if !d.HasPalette() || !d.Interlaced() || !d.Sorted() {
		t.Fatalf("unexpected flags: %08b", d.Flags)
	}
	if d.PaletteSize() != 16 {
		t.Fatalf("unexpected palette size: got %d, want 16", d.PaletteSize())
	}
}

func TestReadPalette_NilSinkStillConsumes(t *testing.T) {
	src := bytes.NewReader(append(paletteBytes(4), 0x3B))
	if err := readPalette(src, 4, nil); err != nil {
		t.Fatalf("readPalette returned error: %v", err)
	}
	if src.Len() != 1 {
		t.Fatalf("expected palette bytes consumed, %d left", src.Len())
	}
}

func TestReadPalette_Truncated(t *testing.T) {
	p := make(Palette, 4)
	err := readPalette(bytes.NewReader(paletteBytes(3)), 4, p)
	if !errors.Is(err, ErrStreamExhausted) {
		t.Fatalf("expected ErrStreamExhausted, got %v", err)
	}
}

func TestPalette_SetColorOutOfRange(t *testing.T) {
	p := make(Palette, 2)
	p.SetColor(-1, RGB{1, 1, 1})
	p.SetColor(2, RGB{1, 1, 1})
	p.SetColor(1, RGB{9, 8, 7})
	if p[0] != (RGB{}) || p[1] != (RGB{9, 8, 7}) {
		t.Fatalf("unexpected palette: %v", p)
	}
}

func TestBitmap_Bounds(t *testing.T) {
	bm := NewBitmap(2, 2, 4)
	bm.SetPixel(1, 1, 3)
	bm.SetPixel(2, 0, 1)
	bm.SetPixel(0, -1, 1)
	if got := bm.GetPixel(1, 1); got != 3 {
		t.Fatalf("GetPixel(1,1): got %d, want 3", got)
	}
	if !bytes.Equal(bm.Data(), []byte{0, 0, 0, 3}) {
		t.Fatalf("out-of-bounds write leaked: %v", bm.Data())
	}

	empty := NewBitmap(0, 5, 2)
	empty.SetPixel(0, 0, 1)
	if empty.Width() != 0 || len(empty.Data()) != 0 {
		t.Fatalf("expected empty bitmap, got %dx%d", empty.Width(), empty.Height())
	}

	var nilBitmap *Bitmap
	nilBitmap.SetPixel(0, 0, 1)
	if nilBitmap.GetPixel(0, 0) != 0 {
		t.Fatal("nil bitmap should read as zero")
	}
}

func TestExtensionKind(t *testing.T) {
	tests := []struct {
		label    byte
		expected string
	}{
		{ePlainText, "PlainText"},
		{eGraphicControl, "GraphicControl"},
		{eComment, "Comment"},
		{eApplication, "Application"},
		{0x7f, "Extension(0x7f)"},
	}
	for _, test := range tests {
		if got := (&Extension{Label: test.label}).Kind(); got != test.expected {
			t.Errorf("label 0x%02x: got %q, want %q", test.label, got, test.expected)
		}
	}
}
