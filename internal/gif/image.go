package gif

// PixelSink receives decoded palette indices in row-major order.
type PixelSink interface {
	SetPixel(x, y int, v uint8)
}

// PaletteScope tells a Target which palette is being allocated.
type PaletteScope int

const (
	PaletteGlobal PaletteScope = iota
	PaletteLocal
)

func (s PaletteScope) String() string {
	if s == PaletteLocal {
		return "local"
	}
	return "global"
}

// Target allocates the sinks a decode writes into. Sizes are only known once
// the relevant descriptor has been parsed, so allocation is deferred to the
// decoder. Returning nil from either method discards that data.
type Target interface {
	NewPalette(scope PaletteScope, size int) PaletteSink
	NewBitmap(width, height, colors int) PixelSink
}

// Bitmap is an 8-bit indexed pixel buffer, one byte per pixel.
type Bitmap struct {
	width  int
	height int
	colors int
	data   []byte
}

// NewBitmap allocates a zeroed bitmap. Non-positive dimensions produce an
// empty bitmap on which every access is a no-op.
func NewBitmap(width, height, colors int) *Bitmap {
	bm := &Bitmap{colors: colors}
	if width <= 0 || height <= 0 {
		return bm
	}
	bm.width = width
	bm.height = height
	bm.data = make([]byte, width*height)
	return bm
}

// Width returns the bitmap width in pixels.
func (bm *Bitmap) Width() int { return bm.width }

// Height returns the bitmap height in pixels.
func (bm *Bitmap) Height() int { return bm.height }

// Colors returns the palette size the bitmap was allocated for.
func (bm *Bitmap) Colors() int { return bm.colors }

// Data exposes the row-major pixel buffer.
func (bm *Bitmap) Data() []byte { return bm.data }

// SetPixel stores v at (x, y); out-of-bounds writes are ignored.
func (bm *Bitmap) SetPixel(x, y int, v uint8) {
	if bm == nil || x < 0 || y < 0 || x >= bm.width || y >= bm.height {
		return
	}
	bm.data[y*bm.width+x] = v
}

// GetPixel returns the index at (x, y), or 0 when out of bounds.
func (bm *Bitmap) GetPixel(x, y int) uint8 {
	if bm == nil || x < 0 || y < 0 || x >= bm.width || y >= bm.height {
		return 0
	}
	return bm.data[y*bm.width+x]
}

// MemoryTarget keeps everything a decode produces in memory.
type MemoryTarget struct {
	Global Palette
	Local  Palette
	Bitmap *Bitmap
}

// NewMemoryTarget returns an empty in-memory target.
func NewMemoryTarget() *MemoryTarget { return &MemoryTarget{} }

// NewPalette implements Target.
func (t *MemoryTarget) NewPalette(scope PaletteScope, size int) PaletteSink {
	p := make(Palette, size)
	if scope == PaletteLocal {
		t.Local = p
	} else {
		t.Global = p
	}
	return p
}

// NewBitmap implements Target.
func (t *MemoryTarget) NewBitmap(width, height, colors int) PixelSink {
	t.Bitmap = NewBitmap(width, height, colors)
	return t.Bitmap
}

// ActivePalette returns the local palette when the frame declared one and the
// global palette otherwise.
func (t *MemoryTarget) ActivePalette() Palette {
	if t.Local != nil {
		return t.Local
	}
	return t.Global
}
