package gif

import "io"

// BlockReader parses the block structure of GIF data, which comprises
// (n, (n bytes)) sub-blocks with 1 <= n <= 255 terminated by a zero-length
// block. Consumers see one logical byte stream and never observe the
// sub-block boundaries.
//
// Once the terminator has been read every call returns io.EOF and the
// underlying source is not touched again.
type BlockReader struct {
	src       ByteSource
	remaining int
	done      bool
	err       error
}

// NewBlockReader returns a reader positioned at the start of a sub-block
// sequence in src.
func NewBlockReader(src ByteSource) *BlockReader {
	return &BlockReader{src: src}
}

// Done reports whether the terminating zero-length block has been consumed.
func (br *BlockReader) Done() bool { return br.done }

// fill reads length bytes until a non-empty sub-block or the terminator.
func (br *BlockReader) fill() error {
	for br.remaining == 0 {
		if br.err != nil {
			return br.err
		}
		if br.done {
			return io.EOF
		}
		n, err := br.src.ReadByte()
		if err != nil {
			br.err = exhausted(err, "sub-block length")
			return br.err
		}
		if n == 0 {
			br.done = true
			return io.EOF
		}
		br.remaining = int(n)
	}
	return nil
}

// ReadByte returns the next payload byte, or io.EOF at the terminator.
func (br *BlockReader) ReadByte() (byte, error) {
	if err := br.fill(); err != nil {
		return 0, err
	}
	b, err := br.src.ReadByte()
	if err != nil {
		br.err = exhausted(err, "sub-block payload")
		return 0, br.err
	}
	br.remaining--
	return b, nil
}

// Read fills p with payload bytes, crossing at most one sub-block boundary
// per call.
func (br *BlockReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := br.fill(); err != nil {
		return 0, err
	}
	if len(p) > br.remaining {
		p = p[:br.remaining]
	}
	n, err := io.ReadFull(br.src, p)
	br.remaining -= n
	if err != nil {
		br.err = exhausted(err, "sub-block payload")
		return n, br.err
	}
	return n, nil
}

// ReadAll returns the concatenated payload of the remaining sub-blocks.
func (br *BlockReader) ReadAll() ([]byte, error) {
	var out []byte
	var tmp [255]byte
	for {
		n, err := br.Read(tmp[:])
		out = append(out, tmp[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}

// Drain skips the remaining sub-blocks up to and including the terminator.
func (br *BlockReader) Drain() error {
	var tmp [255]byte
	for {
		_, err := br.Read(tmp[:])
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
