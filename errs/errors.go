// Package errs defines the sentinel errors returned by sbpe packages.
//
// Errors fall into two kinds:
//   - ErrDomain: an integer outside the universal code domain was passed to an
//     encoder. This is an internal invariant violation.
//   - ErrFormat: a container could not be decoded. Every specific format error
//     below wraps ErrFormat, so errors.Is(err, ErrFormat) matches all of them.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain is returned when a value below 2 is passed to the universal encoder.
	ErrDomain = errors.New("value outside universal code domain")

	// ErrFormat is the root of all container decoding errors.
	ErrFormat = errors.New("invalid sbpe container")
)

// Container format errors.
var (
	ErrInvalidMagicNumber    = fmt.Errorf("%w: invalid magic number", ErrFormat)
	ErrInvalidHeaderSize     = fmt.Errorf("%w: invalid header size", ErrFormat)
	ErrInvalidPadding        = fmt.Errorf("%w: invalid section padding", ErrFormat)
	ErrTruncatedSection      = fmt.Errorf("%w: truncated section", ErrFormat)
	ErrSectionLengthMismatch = fmt.Errorf("%w: section length mismatch", ErrFormat)
	ErrMissingDelimiter      = fmt.Errorf("%w: missing universal code delimiter", ErrFormat)
	ErrValueOverflow         = fmt.Errorf("%w: universal code exceeds 64 bits", ErrFormat)
	ErrRunCountMismatch      = fmt.Errorf("%w: literal and token run counts disagree", ErrFormat)
	ErrInvalidTokenIndex     = fmt.Errorf("%w: token index out of range", ErrFormat)
)

// IsFormat reports whether err is a container decoding error.
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}
