package laps

import "errors"

var (
	// ErrMissingColumn is returned when a required column is not in the header.
	ErrMissingColumn = errors.New("required column missing")

	// ErrUnsupportedEncoding is returned for an unknown text encoding label.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrNoHeader is returned when a file has no header row at all.
	ErrNoHeader = errors.New("file has no header row")

	// ErrUnsupportedFormat is returned for file extensions the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
