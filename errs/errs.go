// Package errs defines the sentinel errors shared by all dtext packages.
//
// Call sites wrap these with fmt.Errorf("%w: ...") to add context, so callers
// should always compare with errors.Is.
package errs

import "errors"

// Escape table construction errors.
var (
	ErrTriggerConflict   = errors.New("escape trigger is mapped to more than one meaning")
	ErrLiteralConflict   = errors.New("escape literal is mapped by more than one trigger")
	ErrInvalidEscapeRune = errors.New("invalid escape character")
)

// Writer and reader session errors.
var (
	ErrUnmappableOutput  = errors.New("unmappable output")
	ErrWriterClosed      = errors.New("field writer is closed")
	ErrReaderClosed      = errors.New("field reader is closed")
	ErrNilSink           = errors.New("writer destination cannot be nil")
	ErrNilSource         = errors.New("reader source cannot be nil")
	ErrInvalidSeparator  = errors.New("invalid field separator")
	ErrInvalidLineBreak  = errors.New("invalid line separator")
	ErrSeparatorIsEscape = errors.New("field separator collides with the escape character")
	ErrMalformedInput    = errors.New("malformed input")
	ErrFieldCount        = errors.New("wrong number of fields")
	ErrUnsupportedCodec  = errors.New("unsupported compression type")
)

// Field adapter errors.
var (
	ErrMalformedField = errors.New("malformed field")
	ErrFieldOverflow  = errors.New("value out of range")
	ErrInvalidPattern = errors.New("invalid number format pattern")
	ErrInvalidLayout  = errors.New("invalid time layout")
	ErrInvalidSymbols = errors.New("invalid number symbols")
)

// Profile errors.
var (
	ErrInvalidProfile = errors.New("invalid format profile")
)
