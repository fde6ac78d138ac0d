// Package source opens GIF inputs that may be wrapped in a general purpose
// compressor. The codec is picked from the leading magic bytes, or from the
// file extension for formats that have none.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the outer compression of an input.
type Codec int

const (
	CodecPlain Codec = iota
	CodecGzip
	CodecZstd
	CodecLZ4
	CodecSnappy
	CodecBrotli
)

func (c Codec) String() string {
	switch c {
	case CodecPlain:
		return "plain"
	case CodecGzip:
		return "gzip"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	case CodecSnappy:
		return "snappy"
	case CodecBrotli:
		return "brotli"
	default:
		return fmt.Sprintf("Codec(%d)", int(c))
	}
}

// Extension returns the conventional file suffix, including the dot.
func (c Codec) Extension() string {
	switch c {
	case CodecGzip:
		return ".gz"
	case CodecZstd:
		return ".zst"
	case CodecLZ4:
		return ".lz4"
	case CodecSnappy:
		return ".sz"
	case CodecBrotli:
		return ".br"
	default:
		return ""
	}
}

// SplitExtension strips a known compression suffix from name and reports
// the codec it stands for. Names without one are CodecPlain.
func SplitExtension(name string) (string, Codec) {
	lower := strings.ToLower(name)
	for c := CodecGzip; c <= CodecBrotli; c++ {
		if ext := c.Extension(); strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)], c
		}
	}
	return name, CodecPlain
}

// ParseCodec maps a codec name as printed by String back to a Codec.
func ParseCodec(name string) (Codec, error) {
	for c := CodecPlain; c <= CodecBrotli; c++ {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	if name == "" || strings.EqualFold(name, "none") {
		return CodecPlain, nil
	}
	return CodecPlain, errors.Newf("source: unknown codec %q", name)
}

var (
	magicGzip   = []byte{0x1f, 0x8b}
	magicZstd   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4    = []byte{0x04, 0x22, 0x4d, 0x18}
	magicSnappy = []byte("\xff\x06\x00\x00sNaPpY")
)

// magicLen is the number of bytes Detect needs to see.
const magicLen = 10

// Detect picks the codec for an input whose first bytes are peek. A GIF
// signature always wins; brotli streams carry no magic and are recognised by
// a ".br" name only.
func Detect(peek []byte, name string) Codec {
	switch {
	case bytes.HasPrefix(peek, []byte("GIF8")):
		return CodecPlain
	case bytes.HasPrefix(peek, magicGzip):
		return CodecGzip
	case bytes.HasPrefix(peek, magicZstd):
		return CodecZstd
	case bytes.HasPrefix(peek, magicLZ4):
		return CodecLZ4
	case bytes.HasPrefix(peek, magicSnappy):
		return CodecSnappy
	case strings.EqualFold(filepath.Ext(name), ".br"):
		return CodecBrotli
	default:
		return CodecPlain
	}
}

// Reader is a buffered, decompressed view of an input. It satisfies the
// decoder's byte source requirements (io.Reader and io.ByteReader).
type Reader struct {
	*bufio.Reader
	codec   Codec
	closers []io.Closer
}

// Codec returns the compression that was detected.
func (r *Reader) Codec() Codec { return r.codec }

// Close releases the decompressor and, for Open, the underlying file.
func (r *Reader) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		err = errors.CombineErrors(err, r.closers[i].Close())
	}
	r.closers = nil
	return err
}

// NewReader wraps r, detecting its codec from the first bytes and name.
// Closing the returned Reader does not close r.
func NewReader(r io.Reader, name string) (*Reader, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(magicLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, errors.Wrapf(err, "source: reading %s", name)
	}
	codec := Detect(peek, name)
	dec, closer, err := decompressor(codec, br)
	if err != nil {
		return nil, errors.Wrapf(err, "source: opening %s stream %s", codec, name)
	}
	out := &Reader{codec: codec}
	if closer != nil {
		out.closers = append(out.closers, closer)
	}
	if dec == io.Reader(br) {
		out.Reader = br
	} else {
		out.Reader = bufio.NewReader(dec)
	}
	return out, nil
}

// Open opens the file at path for decoding.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "source: open")
	}
	r, err := NewReader(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closers = append([]io.Closer{f}, r.closers...)
	return r, nil
}

func decompressor(codec Codec, r io.Reader) (io.Reader, io.Closer, error) {
	switch codec {
	case CodecGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, err
		}
		rc := zr.IOReadCloser()
		return rc, rc, nil
	case CodecLZ4:
		return lz4.NewReader(r), nil, nil
	case CodecSnappy:
		return snappy.NewReader(r), nil, nil
	case CodecBrotli:
		return brotli.NewReader(r), nil, nil
	default:
		return r, nil, nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter returns a writer compressing into w with codec. The caller must
// Close it to flush the stream; w itself is left open.
func NewWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case CodecPlain:
		return nopCloser{w}, nil
	case CodecGzip:
		return gzip.NewWriter(w), nil
	case CodecZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return zw, nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	case CodecSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CodecBrotli:
		return brotli.NewWriter(w), nil
	default:
		return nil, errors.Newf("source: unknown codec %s", codec)
	}
}
