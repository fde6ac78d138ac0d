package gif

import (
	"io"

	"github.com/cockroachdb/errors"
)

// DecoderOptions configures GIF decoding behavior.
type DecoderOptions struct {
	// Deinterlace places the rows of an interlaced frame using the four-pass
	// GIF order. When false rows are written in the order they are decoded.
	Deinterlace bool
	// MaxPixels bounds Width*Height of the frame. Larger frames fail with
	// ErrFormat before any pixel storage is requested. Zero means
	// DefaultMaxPixels; a negative value disables the check.
	MaxPixels int
}

// DefaultMaxPixels is the frame size limit used when none is configured.
const DefaultMaxPixels = 1 << 26

// Frame describes the decoded image block.
type Frame struct {
	Descriptor *ImageDescriptor
	// CodeSize is the LZW minimum code size read after the palette.
	CodeSize int
	// Colors is the size of the palette in effect for the frame.
	Colors int
	// Pixels counts decoded indices, including any beyond Width*Height that
	// were not written to the sink.
	Pixels int
	// Codes counts LZW codes read, including clear and end codes.
	Codes uint64
}

// Container holds everything parsed from a GIF stream up to and including
// the first frame.
type Container struct {
	Header     *Header
	Extensions []*Extension
	// Frame is nil when the trailer was reached before any image block.
	Frame *Frame
}

// Decoder parses one GIF container from a ByteSource and writes the first
// frame through the sinks its Target allocates.
type Decoder struct {
	src    ByteSource
	target Target
	opts   DecoderOptions
	header *Header
}

// NewDecoder creates a decoder reading from r. A nil target discards all
// palette and pixel data.
func NewDecoder(r io.Reader, target Target, opts DecoderOptions) *Decoder {
	return &Decoder{
		src:    NewByteSource(r),
		target: target,
		opts:   opts,
	}
}

// ReadHeader parses the signature, the logical screen descriptor and, when
// present, the global palette. It is safe to call more than once.
func (d *Decoder) ReadHeader() (*Header, error) {
	if d.header != nil {
		return d.header, nil
	}
	header, err := readHeader(d.src)
	if err != nil {
		return nil, err
	}
	if header.HasPalette() {
		if err := readPalette(d.src, header.PaletteSize(), d.newPalette(PaletteGlobal, header.PaletteSize())); err != nil {
			return nil, err
		}
	}
	d.header = header
	return header, nil
}

// Decode reads blocks until the trailer or the end of the first frame.
// Parsing stops right after the first image block; anything following it is
// left unread.
func (d *Decoder) Decode() (*Container, error) {
	header, err := d.ReadHeader()
	if err != nil {
		return nil, err
	}
	c := &Container{Header: header}
	for {
		tag, err := readByte(d.src, "block type")
		if err != nil {
			return nil, err
		}
		switch tag {
		case sTrailer:
			return c, nil
		case sImageDescriptor:
			frame, err := d.readFrame()
			if err != nil {
				return nil, err
			}
			c.Frame = frame
			return c, nil
		case sExtension:
			ext, err := readExtension(d.src)
			if err != nil {
				return nil, err
			}
			c.Extensions = append(c.Extensions, ext)
		default:
			return nil, formatErrorf("unknown block type: 0x%.2x", tag)
		}
	}
}

func (d *Decoder) readFrame() (*Frame, error) {
	desc, err := readImageDescriptor(d.src)
	if err != nil {
		return nil, err
	}
	if limit := d.maxPixels(); limit >= 0 && int(desc.Width)*int(desc.Height) > limit {
		return nil, formatErrorf("frame of %dx%d pixels exceeds the limit of %d", desc.Width, desc.Height, limit)
	}
	frame := &Frame{Descriptor: desc, Colors: d.header.PaletteSize()}
	if desc.HasPalette() {
		frame.Colors = desc.PaletteSize()
		if err := readPalette(d.src, frame.Colors, d.newPalette(PaletteLocal, frame.Colors)); err != nil {
			return nil, err
		}
	}
	codeSize, err := readByte(d.src, "LZW minimum code size")
	if err != nil {
		return nil, err
	}
	frame.CodeSize = int(codeSize)

	lzwr, err := NewLZWReader(NewBlockReader(d.src), frame.CodeSize)
	if err != nil {
		return nil, err
	}
	width, height := int(desc.Width), int(desc.Height)
	var sink PixelSink
	if d.target != nil {
		sink = d.target.NewBitmap(width, height, frame.Colors)
	}
	rows := rowOrder(height, d.opts.Deinterlace && desc.Interlaced())

	x, row := 0, 0
	for {
		run, err := lzwr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "gif: decoding frame at pixel %d", frame.Pixels)
		}
		for _, v := range run {
			if sink != nil && width > 0 && row < height {
				sink.SetPixel(x, rows[row], v)
			}
			frame.Pixels++
			x++
			if x >= width {
				x = 0
				row++
			}
		}
	}
	frame.Codes = lzwr.Codes()
	return frame, nil
}

func (d *Decoder) maxPixels() int {
	switch {
	case d.opts.MaxPixels == 0:
		return DefaultMaxPixels
	case d.opts.MaxPixels < 0:
		return -1
	default:
		return d.opts.MaxPixels
	}
}

func (d *Decoder) newPalette(scope PaletteScope, size int) PaletteSink {
	if d.target == nil {
		return nil
	}
	return d.target.NewPalette(scope, size)
}

// interlacing is the four-pass row order of interlaced frames as
// (start, step) pairs.
var interlacing = [4][2]int{
	{0, 8},
	{4, 8},
	{2, 4},
	{1, 2},
}

// rowOrder maps the n-th decoded row to its y coordinate.
func rowOrder(height int, interlaced bool) []int {
	rows := make([]int, height)
	if !interlaced {
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	i := 0
	for _, pass := range interlacing {
		for y := pass[0]; y < height; y += pass[1] {
			rows[i] = y
			i++
		}
	}
	return rows
}

// Decode parses r into target with default options.
func Decode(r io.Reader, target Target) (*Container, error) {
	return NewDecoder(r, target, DecoderOptions{}).Decode()
}

// DecodeConfig parses only the header and global palette.
func DecodeConfig(r io.Reader, target Target) (*Header, error) {
	return NewDecoder(r, target, DecoderOptions{}).ReadHeader()
}
