package gif

// Block tags.
const (
	sExtension       = 0x21
	sImageDescriptor = 0x2C
	sTrailer         = 0x3B
)

// Extension labels. Payloads are kept opaque; the labels are only named for
// reporting.
const (
	ePlainText      = 0x01
	eGraphicControl = 0xF9
	eComment        = 0xFE
	eApplication    = 0xFF
)

// Logical screen descriptor flag fields.
const (
	fColorTable       = 1 << 7
	fColorResolution  = 7 << 4
	fSort             = 1 << 3
	fColorTableSizeEx = 7
)

// Image descriptor flag fields.
const (
	ifColorTable       = 1 << 7
	ifInterlace        = 1 << 6
	ifSort             = 1 << 5
	ifColorTableSizeEx = 7
)

const (
	headerSize          = 6
	screenDescriptorLen = 7
	imageDescriptorLen  = 9
	maxPaletteSize      = 256
)

func paletteSize(exponent uint8) int {
	return 1 << (uint(exponent&7) + 1)
}
