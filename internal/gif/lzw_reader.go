package gif

import "io"

// LZWReader decodes a flat GIF LZW byte stream into runs of pixel indices.
// It is pull-based: each Next call reads exactly one code, at the width the
// dictionary reports when the read begins, and returns its expansion.
//
// The sequence is finite and not restartable. After the end code Next keeps
// returning io.EOF and no further bytes are pulled from the source.
type LZWReader struct {
	dict    *Dictionary
	bits    *BitReader
	codes   uint64
	done    bool
	err     error
	pending []byte
}

// NewLZWReader returns a reader decoding src with the given minimum code size.
func NewLZWReader(src io.ByteReader, codeSize int) (*LZWReader, error) {
	dict, err := NewDictionary(codeSize)
	if err != nil {
		return nil, err
	}
	return &LZWReader{dict: dict, bits: NewBitReader(src)}, nil
}

// Next returns the next decoded run, which may be empty (a clear code), or
// io.EOF once the end code has been seen. The run is only valid until the
// following call.
func (r *LZWReader) Next() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.done {
		return nil, io.EOF
	}
	code, err := r.bits.ReadBits(r.dict.CodeLen())
	if err != nil {
		r.err = err
		return nil, err
	}
	r.codes++
	out, res, err := r.dict.Decode(code)
	if err != nil {
		r.err = err
		return nil, err
	}
	if res == DecodeResultEndReached {
		r.done = true
		return nil, io.EOF
	}
	return out, nil
}

// Read implements io.Reader over the decoded byte stream.
func (r *LZWReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			run, err := r.Next()
			if err != nil {
				if n > 0 {
					return n, nil
				}
				return 0, err
			}
			r.pending = run
			continue
		}
		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	return n, nil
}

// Done reports whether the end code has been decoded.
func (r *LZWReader) Done() bool { return r.done }

// Codes returns the number of codes read so far, including clear and end.
func (r *LZWReader) Codes() uint64 { return r.codes }

// Dictionary exposes the underlying table, mainly for inspection.
func (r *LZWReader) Dictionary() *Dictionary { return r.dict }
