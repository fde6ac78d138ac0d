package gif

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/jdeng/gogif/internal/gif"
)

// Options configures GIF decoding behavior.
type Options struct {
	// Deinterlace places the rows of an interlaced frame in display order.
	Deinterlace bool
	// MaxPixels bounds the frame size; see gif.DecoderOptions.MaxPixels.
	MaxPixels int
}

// Decoder manages decoding of a single GIF container and keeps what it
// produced in memory.
type Decoder struct {
	decoder   *gif.Decoder
	target    *gif.MemoryTarget
	container *gif.Container
	status    CodecStatus
	err       error
}

// New creates a decoder reading from r.
func New(r io.Reader, opts Options) (*Decoder, error) {
	if r == nil {
		return nil, errors.New("gif: nil reader")
	}
	target := gif.NewMemoryTarget()
	dopts := gif.DecoderOptions{Deinterlace: opts.Deinterlace, MaxPixels: opts.MaxPixels}
	return &Decoder{
		decoder: gif.NewDecoder(r, target, dopts),
		target:  target,
	}, nil
}

// NewFromBytes creates a decoder over an in-memory GIF.
func NewFromBytes(data []byte, opts Options) (*Decoder, error) {
	if len(data) == 0 {
		return nil, errors.New("gif: empty source data")
	}
	return New(bytes.NewReader(data), opts)
}

// Decode parses the container up to the end of the first frame. Calling it
// again returns the result of the first call.
func (d *Decoder) Decode() error {
	switch d.status {
	case CodecStatusFinished:
		return nil
	case CodecStatusError:
		return d.err
	}
	c, err := d.decoder.Decode()
	if err != nil {
		d.status, d.err = CodecStatusError, err
		return err
	}
	d.container, d.status = c, CodecStatusFinished
	return nil
}

// Status returns the current codec processing status.
func (d *Decoder) Status() CodecStatus { return d.status }

// Header returns the parsed logical screen, or nil before a successful decode.
func (d *Decoder) Header() *gif.Header {
	if d.container == nil {
		return nil
	}
	return d.container.Header
}

// Frame returns the first frame's metadata, or nil when the stream had none.
func (d *Decoder) Frame() *gif.Frame {
	if d.container == nil {
		return nil
	}
	return d.container.Frame
}

// Extensions returns the extension blocks seen before the first frame.
func (d *Decoder) Extensions() []*gif.Extension {
	if d.container == nil {
		return nil
	}
	return d.container.Extensions
}

// Image returns the decoded first frame.
func (d *Decoder) Image() *Image {
	if d.container == nil || d.container.Frame == nil || d.target.Bitmap == nil {
		return nil
	}
	return &Image{bm: d.target.Bitmap, palette: d.target.ActivePalette()}
}

// CodecStatus represents the current state of the decoder.
type CodecStatus int

const (
	// CodecStatusReady indicates nothing has been decoded yet.
	CodecStatusReady CodecStatus = iota
	// CodecStatusFinished indicates decoding completed successfully.
	CodecStatusFinished
	// CodecStatusError indicates decoding failed.
	CodecStatusError
)

func (status CodecStatus) String() string {
	switch status {
	case CodecStatusReady:
		return "Ready"
	case CodecStatusFinished:
		return "Finished"
	case CodecStatusError:
		return "Error"
	default:
		return fmt.Sprintf("CodecStatus(%d)", int(status))
	}
}

// Image represents a decoded GIF frame.
type Image struct {
	bm      *gif.Bitmap
	palette gif.Palette
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	if img == nil || img.bm == nil {
		return 0
	}
	return img.bm.Width()
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	if img == nil || img.bm == nil {
		return 0
	}
	return img.bm.Height()
}

// Data returns the raw palette indices, one byte per pixel.
func (img *Image) Data() []byte {
	if img == nil || img.bm == nil {
		return nil
	}
	return img.bm.Data()
}

// Palette returns the palette in effect for the frame as opaque colors.
// Frames without any palette get a grey ramp sized to the declared color
// count. The result always covers every index present in the pixel data.
func (img *Image) Palette() color.Palette {
	if img == nil || img.bm == nil {
		return nil
	}
	var p color.Palette
	if len(img.palette) > 0 {
		p = make(color.Palette, len(img.palette))
		for i, c := range img.palette {
			p[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
		}
	} else {
		p = greyRamp(img.bm.Colors())
	}
	maxIndex := -1
	for _, v := range img.bm.Data() {
		if int(v) > maxIndex {
			maxIndex = int(v)
		}
	}
	for len(p) <= maxIndex {
		p = append(p, color.RGBA{A: 0xff})
	}
	return p
}

// ToPaletted converts the frame into a standard library paletted image whose
// bounds start at the origin.
func (img *Image) ToPaletted() *image.Paletted {
	if img == nil || img.bm == nil {
		return nil
	}
	out := image.NewPaletted(image.Rect(0, 0, img.bm.Width(), img.bm.Height()), img.Palette())
	copy(out.Pix, img.bm.Data())
	return out
}

func greyRamp(n int) color.Palette {
	if n <= 0 {
		return nil
	}
	p := make(color.Palette, n)
	for i := range p {
		v := uint8(0)
		if n > 1 {
			v = uint8(i * 255 / (n - 1))
		}
		p[i] = color.Gray{Y: v}
	}
	return p
}

// DecodeConfig reads only the header and global palette.
func DecodeConfig(r io.Reader) (image.Config, *gif.Header, error) {
	target := gif.NewMemoryTarget()
	h, err := gif.DecodeConfig(r, target)
	if err != nil {
		return image.Config{}, nil, err
	}
	img := &Image{bm: gif.NewBitmap(0, 0, h.PaletteSize()), palette: target.Global}
	return image.Config{
		ColorModel: img.Palette(),
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, h, nil
}

// Decode reads the first frame of r as a paletted image.
func Decode(r io.Reader, opts Options) (*image.Paletted, error) {
	d, err := New(r, opts)
	if err != nil {
		return nil, err
	}
	if err := d.Decode(); err != nil {
		return nil, err
	}
	img := d.Image()
	if img == nil {
		return nil, errors.Mark(errors.New("gif: no image block before trailer"), gif.ErrFormat)
	}
	return img.ToPaletted(), nil
}

// IsFormatError reports whether err was caused by a malformed stream.
func IsFormatError(err error) bool { return errors.Is(err, gif.ErrFormat) }

// IsStreamExhausted reports whether err was caused by truncated input.
func IsStreamExhausted(err error) bool { return errors.Is(err, gif.ErrStreamExhausted) }
