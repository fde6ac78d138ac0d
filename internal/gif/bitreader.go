package gif

import (
	"io"

	"github.com/cockroachdb/errors"
)

const maxCodeWidth = 12

// BitReader unpacks codes from a byte stream least-significant bit first,
// the bit order GIF uses for its LZW payload. Codes may straddle byte
// boundaries; a byte is only pulled from the source when a bit from it is
// needed.
type BitReader struct {
	src   io.ByteReader
	bits  uint32
	nBits uint32
	read  uint64
}

// NewBitReader constructs a bit reader over src.
func NewBitReader(src io.ByteReader) *BitReader {
	return &BitReader{src: src}
}

// ReadBits returns the next count bits as an unsigned integer, with the first
// bit read in the least significant position. Running out of source bytes
// before count bits are available is reported as ErrStreamExhausted.
func (br *BitReader) ReadBits(count uint32) (uint32, error) {
	if count == 0 || count > maxCodeWidth {
		return 0, errors.Newf("gif: invalid bit count %d", count)
	}
	for br.nBits < count {
		b, err := br.src.ReadByte()
		if err != nil {
			return 0, exhausted(err, "LZW code")
		}
		br.bits |= uint32(b) << br.nBits
		br.nBits += 8
		br.read++
	}
	value := br.bits & (1<<count - 1)
	br.bits >>= count
	br.nBits -= count
	return value, nil
}

// Buffered returns the number of bits pulled from the source but not yet
// consumed.
func (br *BitReader) Buffered() uint32 { return br.nBits }

// BytesRead returns how many bytes have been pulled from the source.
func (br *BitReader) BytesRead() uint64 { return br.read }
