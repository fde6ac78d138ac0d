package gif

import "fmt"

// DecodeResult reports how a dictionary step ended. Reaching the end code is
// a normal outcome, not an error.
type DecodeResult int

const (
	DecodeResultSuccess DecodeResult = iota
	DecodeResultEndReached
)

func (r DecodeResult) String() string {
	switch r {
	case DecodeResultSuccess:
		return "Success"
	case DecodeResultEndReached:
		return "EndReached"
	default:
		return fmt.Sprintf("DecodeResult(%d)", int(r))
	}
}

const (
	minCodeSize = 2
	maxCodeSize = 8
	maxCodes    = 1 << maxCodeWidth
	noCode      = ^uint32(0)
)

// dictEntry stores a table string as (prefix code, suffix byte). first and
// length are cached so expansion and growth never walk the chain twice.
type dictEntry struct {
	prefix uint16
	suffix byte
	first  byte
	length uint16
}

// Dictionary is the GIF LZW string table. It is a pure state machine: feed it
// codes with Decode and read CodeLen to learn the width of the next code.
// Every code is accepted; only the minimum code size can be invalid.
type Dictionary struct {
	codeSize  uint32
	clearCode uint32
	endCode   uint32
	codeLen   uint32
	entries   []dictEntry
	lastCode  uint32
	last      []byte
	out       [maxCodes + 1]byte
}

// NewDictionary creates a dictionary for the given minimum code size, which
// must be in [2, 8].
func NewDictionary(codeSize int) (*Dictionary, error) {
	if codeSize < minCodeSize || codeSize > maxCodeSize {
		return nil, formatErrorf("LZW minimum code size out of range: %d", codeSize)
	}
	d := &Dictionary{
		codeSize:  uint32(codeSize),
		clearCode: 1 << uint32(codeSize),
		entries:   make([]dictEntry, 0, maxCodes),
		last:      make([]byte, 0, maxCodes+1),
	}
	d.endCode = d.clearCode + 1
	d.Clear()
	return d, nil
}

// Clear resets the table, the code width and the previous output.
func (d *Dictionary) Clear() {
	d.entries = d.entries[:0]
	d.codeLen = d.codeSize + 1
	d.lastCode = noCode
	d.last = d.last[:0]
}

// CodeSize returns the minimum code size the dictionary was created with.
func (d *Dictionary) CodeSize() int { return int(d.codeSize) }

// CodeLen returns the bit width of the next code.
func (d *Dictionary) CodeLen() uint32 { return d.codeLen }

// ClearCode returns the reserved clear code.
func (d *Dictionary) ClearCode() uint32 { return d.clearCode }

// EndCode returns the reserved end-of-data code.
func (d *Dictionary) EndCode() uint32 { return d.endCode }

// Len returns the number of table entries added since the last clear.
func (d *Dictionary) Len() int { return len(d.entries) }

// Last returns a copy of the most recent output, empty right after a clear.
func (d *Dictionary) Last() []byte { return append([]byte(nil), d.last...) }

// Entry returns a copy of the string a code currently expands to.
func (d *Dictionary) Entry(code uint32) ([]byte, bool) {
	if !d.defined(code) {
		return nil, false
	}
	var buf [maxCodes + 1]byte
	return append([]byte(nil), d.expand(code, buf[:])...), true
}

// Decode advances the state machine by one code. The returned slice is owned
// by the dictionary and is only valid until the next call to Decode.
//
// A clear code yields an empty output. The end code yields
// DecodeResultEndReached; no further calls are meaningful after it. Any code
// at or past the next free table slot expands to the previous output followed
// by its own first byte, or to nothing right after a clear.
func (d *Dictionary) Decode(code uint32) ([]byte, DecodeResult, error) {
	switch code {
	case d.clearCode:
		d.Clear()
		return d.out[:0], DecodeResultSuccess, nil
	case d.endCode:
		return nil, DecodeResultEndReached, nil
	}

	next := d.endCode + 1 + uint32(len(d.entries))
	var out []byte
	switch {
	case code < d.clearCode:
		d.out[0] = byte(code)
		out = d.out[:1]
	case code < next:
		out = d.expand(code, d.out[:])
	case len(d.last) == 0:
		out = d.out[:0]
	default:
		// The encoder emitted the code it is about to define.
		out = append(d.out[:0], d.last...)
		out = append(out, d.last[0])
	}

	defining := d.lastCode != noCode && next < maxCodes
	if defining {
		d.entries = append(d.entries, dictEntry{
			prefix: uint16(d.lastCode),
			suffix: out[0],
			first:  d.firstByte(d.lastCode),
			length: uint16(d.length(d.lastCode) + 1),
		})
	}
	if uint32(len(d.entries))+d.endCode+1 >= 1<<d.codeLen && d.codeLen < maxCodeWidth {
		d.codeLen++
	}

	switch {
	case code < next:
		d.lastCode = code
	case defining:
		// The output equals the entry just stored in slot next.
		d.lastCode = next
	default:
		// Empty after a clear, or longer than any entry once the table is
		// full. Neither can prefix a new entry.
		d.lastCode = noCode
	}
	d.last = append(d.last[:0], out...)
	return out, DecodeResultSuccess, nil
}

func (d *Dictionary) defined(code uint32) bool {
	return code < d.clearCode || (code > d.endCode && code <= d.endCode+uint32(len(d.entries)))
}

func (d *Dictionary) entry(code uint32) dictEntry {
	return d.entries[code-d.endCode-1]
}

func (d *Dictionary) firstByte(code uint32) byte {
	if code < d.clearCode {
		return byte(code)
	}
	return d.entry(code).first
}

func (d *Dictionary) length(code uint32) int {
	if code < d.clearCode {
		return 1
	}
	return int(d.entry(code).length)
}

// expand writes the string for a defined code into the front of buf.
func (d *Dictionary) expand(code uint32, buf []byte) []byte {
	n := d.length(code)
	out := buf[:n]
	for i := n - 1; i >= 0; i-- {
		if code < d.clearCode {
			out[i] = byte(code)
			break
		}
		e := d.entry(code)
		out[i] = e.suffix
		code = uint32(e.prefix)
	}
	return out
}
