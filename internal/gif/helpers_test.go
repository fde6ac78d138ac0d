package gif

import (
	"bytes"
	"compress/lzw"
	"encoding/binary"
	"fmt"

	"github.com/stretchr/testify/require"
)

// lzwCompress encodes pixels with the standard library's GIF-flavoured LZW
// writer, which emits a leading clear code and a trailing end code.
func lzwCompress(t require.TestingT, codeSize int, pixels []byte) []byte {
	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.LSB, codeSize)
	_, err := w.Write(pixels)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// subBlocks frames data as 255-byte sub-blocks followed by the terminator.
func subBlocks(data []byte) []byte {
	var out []byte
	for len(data) > 0 {
		n := len(data)
		if n > 255 {
			n = 255
		}
		out = append(out, byte(n))
		out = append(out, data[:n]...)
		data = data[n:]
	}
	return append(out, 0)
}

func screen(version string, width, height uint16, flags byte) []byte {
	out := []byte(version)
	out = binary.LittleEndian.AppendUint16(out, width)
	out = binary.LittleEndian.AppendUint16(out, height)
	return append(out, flags, 0, 0)
}

// paletteBytes returns n entries where entry i is (i, i+1, i+2).
func paletteBytes(n int) []byte {
	out := make([]byte, 0, 3*n)
	for i := 0; i < n; i++ {
		out = append(out, byte(i), byte(i+1), byte(i+2))
	}
	return out
}

func imageBlock(t require.TestingT, width, height uint16, flags byte, localPalette []byte, codeSize int, pixels []byte) []byte {
	out := []byte{sImageDescriptor, 0, 0, 0, 0}
	out = binary.LittleEndian.AppendUint16(out, width)
	out = binary.LittleEndian.AppendUint16(out, height)
	out = append(out, flags)
	out = append(out, localPalette...)
	out = append(out, byte(codeSize))
	return append(out, subBlocks(lzwCompress(t, codeSize, pixels))...)
}

func extensionBlock(label byte, payload ...[]byte) []byte {
	out := []byte{sExtension, label}
	for _, p := range payload {
		out = append(out, byte(len(p)))
		out = append(out, p...)
	}
	return append(out, 0)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// recordingTarget logs every allocation and write in order.
type recordingTarget struct {
	mem    MemoryTarget
	events []string
	pixels int
}

func (r *recordingTarget) NewPalette(scope PaletteScope, size int) PaletteSink {
	r.events = append(r.events, fmt.Sprintf("palette %s %d", scope, size))
	return recordingPalette{r: r, p: r.mem.NewPalette(scope, size)}
}

func (r *recordingTarget) NewBitmap(width, height, colors int) PixelSink {
	r.events = append(r.events, fmt.Sprintf("bitmap %dx%d %d", width, height, colors))
	return recordingBitmap{r: r, s: r.mem.NewBitmap(width, height, colors)}
}

type recordingPalette struct {
	r *recordingTarget
	p PaletteSink
}

func (rp recordingPalette) SetColor(index int, c RGB) {
	rp.r.events = append(rp.r.events, fmt.Sprintf("color %d", index))
	rp.p.SetColor(index, c)
}

type recordingBitmap struct {
	r *recordingTarget
	s PixelSink
}

func (rb recordingBitmap) SetPixel(x, y int, v uint8) {
	rb.r.pixels++
	rb.s.SetPixel(x, y, v)
}
