package gif

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Error taxonomy. Concrete errors returned by this package are marked with one
// of these sentinels, so callers test them with errors.Is.
var (
	// ErrFormat reports a malformed container such as bad magic, an unknown
	// block tag, an out-of-range code size or an oversized frame.
	ErrFormat = errors.New("gif: format error")
	// ErrStreamExhausted reports that the source ended before the bytes or
	// bits the structure requires were available.
	ErrStreamExhausted = errors.New("gif: stream exhausted")
)

func formatErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("gif: "+format, args...), ErrFormat)
}

// exhausted wraps a short read. io.EOF is promoted to io.ErrUnexpectedEOF,
// since every caller of this helper needed more data.
func exhausted(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Mark(errors.Wrapf(err, "gif: reading %s", what), ErrStreamExhausted)
	}
	return errors.Wrapf(err, "gif: reading %s", what)
}
