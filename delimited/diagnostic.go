package delimited

import (
	"fmt"
	"strings"

	"github.com/arloliu/dtext/errs"
)

// ErrorCode classifies why a written record may not be read back as written.
type ErrorCode uint8

const (
	// ExtraEmptyField: the record had no fields, so one empty field was written.
	ExtraEmptyField ErrorCode = iota + 1
	// ExtraFieldSeparator: a field contains the field separator and the table cannot escape it.
	ExtraFieldSeparator
	// ExtraRecordSeparator: a field contains CR or LF and the table cannot escape it.
	ExtraRecordSeparator
	// ConflictEscapeSequence: a raw escape character is followed by more content,
	// so a reader would decode the pair as an escape sequence.
	ConflictEscapeSequence
	// LostFieldSeparator: a field ends with a raw escape character, which would
	// absorb the following field separator.
	LostFieldSeparator
	// LostRecordSeparator: the last field ends with a raw escape character, which
	// would absorb the record terminator.
	LostRecordSeparator
	// UndefinedNullSequence: a null field was written but the table has no null
	// trigger, so an empty field was written instead.
	UndefinedNullSequence
)

func (c ErrorCode) String() string {
	switch c {
	case ExtraEmptyField:
		return "EXTRA_EMPTY_FIELD"
	case ExtraFieldSeparator:
		return "EXTRA_FIELD_SEPARATOR"
	case ExtraRecordSeparator:
		return "EXTRA_RECORD_SEPARATOR"
	case ConflictEscapeSequence:
		return "CONFLICT_ESCAPE_SEQUENCE"
	case LostFieldSeparator:
		return "LOST_FIELD_SEPARATOR"
	case LostRecordSeparator:
		return "LOST_RECORD_SEPARATOR"
	case UndefinedNullSequence:
		return "UNDEFINED_NULL_SEQUENCE"
	default:
		return "UNKNOWN"
	}
}

// UnmappableOutput describes one place in a record where the written bytes
// cannot be guaranteed to read back as written.
type UnmappableOutput struct {
	Code       ErrorCode
	FieldIndex int // 0-based index of the field within its record
	Cause      string
}

func (o UnmappableOutput) String() string {
	return fmt.Sprintf("%s at field %d: %s", o.Code, o.FieldIndex, o.Cause)
}

// UnmappableOutputError carries every UnmappableOutput collected for one record.
//
// It is returned by FieldWriter.PutEndOfRecord after the record bytes have
// been written, so callers that ignore it still get a complete record.
type UnmappableOutputError struct {
	Record  int64 // 1-based index of the record in the session
	Outputs []UnmappableOutput
}

// Error summarizes the first few entries.
func (e *UnmappableOutputError) Error() string {
	if e == nil || len(e.Outputs) == 0 {
		return errs.ErrUnmappableOutput.Error()
	}

	const maxShown = 3
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s in record %d: ", errs.ErrUnmappableOutput, e.Record)

	n := len(e.Outputs)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at field %d", e.Outputs[i].Code, e.Outputs[i].FieldIndex)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}

	return b.String()
}

// Unwrap lets errors.Is match errs.ErrUnmappableOutput.
func (e *UnmappableOutputError) Unwrap() error {
	return errs.ErrUnmappableOutput
}

// Codes returns the error codes in the order they were detected.
func (e *UnmappableOutputError) Codes() []ErrorCode {
	codes := make([]ErrorCode, len(e.Outputs))
	for i, o := range e.Outputs {
		codes[i] = o.Code
	}

	return codes
}

// Has reports whether an entry with code exists at fieldIndex.
func (e *UnmappableOutputError) Has(code ErrorCode, fieldIndex int) bool {
	for _, o := range e.Outputs {
		if o.Code == code && o.FieldIndex == fieldIndex {
			return true
		}
	}

	return false
}

// ParseError reports malformed input together with its position.
type ParseError struct {
	Line   int // 1-based
	Column int // 1-based, in runes
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}
