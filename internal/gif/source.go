package gif

import (
	"bufio"
	"io"
)

// ByteSource is the sequential byte provider every decode step reads from.
// It is threaded explicitly through the parser so independent decodes never
// share a cursor.
type ByteSource interface {
	io.Reader
	io.ByteReader
}

// NewByteSource adapts r into a ByteSource, adding buffering only when r
// cannot already read single bytes.
func NewByteSource(r io.Reader) ByteSource {
	if bs, ok := r.(ByteSource); ok {
		return bs
	}
	return bufio.NewReader(r)
}

func readByte(src io.ByteReader, what string) (byte, error) {
	b, err := src.ReadByte()
	if err != nil {
		return 0, exhausted(err, what)
	}
	return b, nil
}

func readFull(src io.Reader, buf []byte, what string) error {
	if _, err := io.ReadFull(src, buf); err != nil {
		return exhausted(err, what)
	}
	return nil
}
