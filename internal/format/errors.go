package format

import "errors"

var (
	// ErrBadMagic indicates a structure had an unexpected magic.
	ErrBadMagic = errors.New("format: bad magic")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrMalformed indicates a structurally invalid package (bad offsets,
	// wrong target string, out-of-range lengths).
	ErrMalformed = errors.New("format: malformed package")
)
