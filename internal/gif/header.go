package gif

import (
	"encoding/binary"
	"io"
)

const (
	Version87a = "GIF87a"
	Version89a = "GIF89a"
)

// Header captures the GIF signature and the logical screen descriptor.
type Header struct {
	Version         string
	Width           uint16
	Height          uint16
	Flags           uint8
	BackgroundIndex uint8
	PixelAspect     uint8
}

// HasPalette reports whether a global palette follows the header.
func (h *Header) HasPalette() bool { return h.Flags&fColorTable != 0 }

// PaletteSize returns the number of global palette entries the flags declare.
// The value is meaningful even when HasPalette is false.
func (h *Header) PaletteSize() int { return paletteSize(h.Flags & fColorTableSizeEx) }

// ColorResolution returns the bits per primary colour of the source image.
func (h *Header) ColorResolution() int { return int(h.Flags&fColorResolution)>>4 + 1 }

// Sorted reports whether the global palette is sorted by importance.
func (h *Header) Sorted() bool { return h.Flags&fSort != 0 }

// readHeader parses the 6-byte signature followed by the logical screen
// descriptor. The signature is checked before the descriptor is read, so a
// foreign file fails with ErrFormat even when it is shorter than 13 bytes.
func readHeader(src io.Reader) (*Header, error) {
	var buf [headerSize + screenDescriptorLen]byte
	if err := readFull(src, buf[:headerSize], "header"); err != nil {
		return nil, err
	}
	version := string(buf[:headerSize])
	if version != Version87a && version != Version89a {
		return nil, formatErrorf("can't recognize format %q", version)
	}
	if err := readFull(src, buf[headerSize:], "logical screen descriptor"); err != nil {
		return nil, err
	}
	return &Header{
		Version:         version,
		Width:           binary.LittleEndian.Uint16(buf[6:8]),
		Height:          binary.LittleEndian.Uint16(buf[8:10]),
		Flags:           buf[10],
		BackgroundIndex: buf[11],
		PixelAspect:     buf[12],
	}, nil
}

// ImageDescriptor is the fixed part of an image block.
type ImageDescriptor struct {
	Left   uint16
	Top    uint16
	Width  uint16
	Height uint16
	Flags  uint8
}

// HasPalette reports whether a local palette follows the descriptor.
func (d *ImageDescriptor) HasPalette() bool { return d.Flags&ifColorTable != 0 }

// Interlaced reports whether rows are stored in four-pass order.
func (d *ImageDescriptor) Interlaced() bool { return d.Flags&ifInterlace != 0 }

// Sorted reports whether the local palette is sorted by importance.
func (d *ImageDescriptor) Sorted() bool { return d.Flags&ifSort != 0 }

// PaletteSize returns the number of local palette entries the flags declare.
func (d *ImageDescriptor) PaletteSize() int { return paletteSize(d.Flags & ifColorTableSizeEx) }

func readImageDescriptor(src io.Reader) (*ImageDescriptor, error) {
	var buf [imageDescriptorLen]byte
	if err := readFull(src, buf[:], "image descriptor"); err != nil {
		return nil, err
	}
	return &ImageDescriptor{
		Left:   binary.LittleEndian.Uint16(buf[0:2]),
		Top:    binary.LittleEndian.Uint16(buf[2:4]),
		Width:  binary.LittleEndian.Uint16(buf[4:6]),
		Height: binary.LittleEndian.Uint16(buf[6:8]),
		Flags:  buf[8],
	}, nil
}
