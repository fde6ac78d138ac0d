package gif

import "io"

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// PaletteSink receives palette entries as they are read.
type PaletteSink interface {
	SetColor(index int, c RGB)
}

// Palette is an in-memory PaletteSink.
type Palette []RGB

// SetColor stores c at index; out-of-range indices are ignored.
func (p Palette) SetColor(index int, c RGB) {
	if index < 0 || index >= len(p) {
		return
	}
	p[index] = c
}

// readPalette reads size RGB triples from src into sink.
func readPalette(src io.Reader, size int, sink PaletteSink) error {
	if size > maxPaletteSize {
		return formatErrorf("can't handle %d palette entries", size)
	}
	var buf [3 * maxPaletteSize]byte
	if err := readFull(src, buf[:3*size], "palette"); err != nil {
		return err
	}
	if sink == nil {
		return nil
	}
	for i, j := 0, 0; i < size; i, j = i+1, j+3 {
		sink.SetColor(i, RGB{R: buf[j], G: buf[j+1], B: buf[j+2]})
	}
	return nil
}
