package semver

import "errors"

var (
	// ErrInvalidFormat is returned when input does not match a grammar.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidArgument is returned for out-of-range numbers, disallowed
	// characters and dates before 2000-01-01.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedFormat is returned for unknown calendar specifiers and
	// unknown version info encodings.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
