package delimited

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"unicode/utf8"

	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/internal/options"
	"github.com/arloliu/dtext/internal/pool"
)

const readBufferSize = 64 * 1024

// FieldReader reads records written by FieldWriter.
//
// LF, CR and CRLF all terminate a record. Escape sequences are decoded with
// the escape table; a null trigger must make up the whole field.
//
// A *ParseError wrapping errs.ErrMalformedInput is returned for an escape
// character followed by an undefined trigger or by the end of input. The rest
// of the offending record is skipped, so reading may continue with Next.
//
// Note: The FieldReader is NOT thread-safe.
type FieldReader struct {
	*ReaderConfig

	table  *escape.Table
	esc    rune
	hasEsc bool

	orig   io.Reader
	stream io.ReadCloser
	src    *bufio.Reader
	buf    *pool.ByteBuffer

	line    int // 1-based line of the next rune
	column  int // runes consumed on the current line
	records int64
	width   int // field count of the previous record, used as a capacity hint

	eof    bool
	closed bool
	err    error // sticky I/O error
}

// NewFieldReader creates a FieldReader that reads from r.
//
// Parameters:
//   - r: Source of encoded records (must be non-nil)
//   - table: Escape table used by the writer; nil disables escape decoding
//   - opts: Optional configuration (field separator, fields per record, compression, logger)
//
// Returns:
//   - *FieldReader: Reader positioned at the first record
//   - error: ErrNilSource, or a configuration or codec error
func NewFieldReader(r io.Reader, table *escape.Table, opts ...ReaderOption) (*FieldReader, error) {
	if r == nil {
		return nil, errs.ErrNilSource
	}

	config := NewReaderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}
	if err := config.validate(table); err != nil {
		return nil, err
	}

	stream, err := config.codec.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s stream: %w", config.codec.Type(), err)
	}

	esc, hasEsc := table.EscapeRune()

	return &FieldReader{
		ReaderConfig: config,
		table:        table,
		esc:          esc,
		hasEsc:       hasEsc,
		orig:         r,
		stream:       stream,
		src:          bufio.NewReaderSize(stream, readBufferSize),
		buf:          pool.GetRecordBuffer(),
		line:         1,
	}, nil
}

// RecordCount returns the number of records returned so far.
func (r *FieldReader) RecordCount() int64 {
	return r.records
}

// Next reads one record.
//
// Returns:
//   - []Field: The fields of the record; a blank line yields one empty field
//   - error: io.EOF after the last record, *ParseError for malformed input or
//     a field count mismatch (the record is still returned in that case),
//     ErrReaderClosed, or an I/O error
func (r *FieldReader) Next() ([]Field, error) {
	if r.closed {
		return nil, errs.ErrReaderClosed
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.eof {
		return nil, io.EOF
	}

	startLine := r.line
	record, err := r.readRecord()
	if err != nil {
		return nil, err
	}

	r.records++
	r.width = len(record)

	switch {
	case r.fieldsPerRecord == 0:
		r.fieldsPerRecord = len(record)
	case r.fieldsPerRecord > 0 && len(record) != r.fieldsPerRecord:
		return record, &ParseError{
			Line:   startLine,
			Column: 1,
			Err:    fmt.Errorf("%w: got %d, want %d", errs.ErrFieldCount, len(record), r.fieldsPerRecord),
		}
	}

	return record, nil
}

// ReadAll reads the remaining records. It stops at the first error other
// than io.EOF and returns the records read before it.
func (r *FieldReader) ReadAll() ([][]Field, error) {
	var records [][]Field
	for {
		record, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

// All returns an iterator over the remaining records. Iteration stops after
// the first error is yielded.
func (r *FieldReader) All() iter.Seq2[[]Field, error] {
	return func(yield func([]Field, error) bool) {
		for {
			record, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(record, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the decompression stream and closes the source when it
// implements io.Closer. Calling Close more than once is a no-op.
func (r *FieldReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errList []error
	if err := r.stream.Close(); err != nil {
		errList = append(errList, fmt.Errorf("failed to close %s stream: %w", r.codec.Type(), err))
	}
	if c, ok := r.orig.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close source: %w", err))
		}
	}

	pool.PutRecordBuffer(r.buf)
	r.buf = nil
	r.src = nil

	r.logger.Debug("field reader closed", slog.Int64("records", r.records))

	return errors.Join(errList...)
}

func (r *FieldReader) readRecord() ([]Field, error) {
	record := make([]Field, 0, r.width)
	r.buf.Reset()
	null := false
	started := false

	for {
		c, size, err := r.src.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, r.fail(err)
			}
			r.eof = true
			if !started {
				return nil, io.EOF
			}

			return append(record, r.field(null)), nil
		}
		started = true
		r.column++

		switch {
		case c == utf8.RuneError && size == 1:
			if null {
				return nil, r.malformed("content follows a null sequence", true)
			}
			// keep the original byte rather than U+FFFD
			_ = r.src.UnreadRune()
			b, _ := r.src.ReadByte()
			_ = r.buf.WriteByte(b)
		case r.hasEsc && c == r.esc:
			if err := r.readEscape(&null); err != nil {
				return nil, err
			}
		case c == r.fieldSeparator:
			record = append(record, r.field(null))
			r.buf.Reset()
			null = false
		case c == '\n' || c == '\r':
			if c == '\r' {
				r.skipLF()
			}
			r.newLine()

			return append(record, r.field(null)), nil
		default:
			if null {
				return nil, r.malformed("content follows a null sequence", true)
			}
			_, _ = r.buf.WriteRune(c)
		}
	}
}

func (r *FieldReader) readEscape(null *bool) error {
	t, size, err := r.src.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return r.fail(err)
		}
		r.eof = true

		return r.malformed(fmt.Sprintf("escape character %q at end of input", r.esc), false)
	}
	r.column++

	if t == utf8.RuneError && size == 1 {
		return r.malformed(fmt.Sprintf("escape character %q is followed by an invalid byte", r.esc), true)
	}

	if d, ok := r.table.Decode(t); ok {
		if d.Null {
			if *null || r.buf.Len() > 0 {
				return r.malformed("null sequence is not the whole field", true)
			}
			*null = true

			return nil
		}
		if *null {
			return r.malformed("content follows a null sequence", true)
		}
		_, _ = r.buf.WriteRune(d.Literal)

		return nil
	}

	if t == '\r' || t == '\n' {
		if r.table.EscapesLineSeparator() {
			if *null {
				return r.malformed("content follows a null sequence", true)
			}
			_, _ = r.buf.WriteRune(t)
			if t == '\n' {
				r.newLine()
			}

			return nil
		}
		// the line break still ends the record, so there is nothing to skip
		perr := r.malformed(fmt.Sprintf("escape character %q is followed by a line break", r.esc), false)
		if t == '\r' {
			r.skipLF()
		}
		r.newLine()

		return perr
	}

	return r.malformed(fmt.Sprintf("undefined escape sequence %q", string([]rune{r.esc, t})), true)
}

func (r *FieldReader) field(null bool) Field {
	if null {
		return Field{Null: true}
	}

	return Field{Text: r.buf.String()}
}

// malformed builds a ParseError at the current position and, when skip is
// set, discards the rest of the record.
func (r *FieldReader) malformed(msg string, skip bool) error {
	perr := &ParseError{
		Line:   r.line,
		Column: r.column,
		Err:    fmt.Errorf("%w: %s", errs.ErrMalformedInput, msg),
	}
	r.logger.Debug("malformed record", slog.Int("line", perr.Line), slog.Int("column", perr.Column), slog.String("reason", msg))

	if skip {
		r.skipRecord()
	}

	return perr
}

func (r *FieldReader) fail(err error) error {
	r.err = fmt.Errorf("failed to read record: %w", err)
	return r.err
}

// skipRecord consumes input up to and including the next record terminator.
// Escape pairs are consumed whole so an escaped line break does not end the record.
func (r *FieldReader) skipRecord() {
	for {
		c, _, err := r.src.ReadRune()
		if err != nil {
			r.skipped(err)
			return
		}
		switch {
		case r.hasEsc && c == r.esc:
			t, _, err := r.src.ReadRune()
			if err != nil {
				r.skipped(err)
				return
			}
			if t != '\r' && t != '\n' {
				continue
			}
			if r.table.EscapesLineSeparator() {
				if t == '\n' {
					r.newLine()
				}
				continue
			}
			if t == '\r' {
				r.skipLF()
			}
			r.newLine()

			return
		case c == '\n' || c == '\r':
			if c == '\r' {
				r.skipLF()
			}
			r.newLine()

			return
		}
	}
}

func (r *FieldReader) skipped(err error) {
	if errors.Is(err, io.EOF) {
		r.eof = true
		return
	}
	_ = r.fail(err)
}

func (r *FieldReader) skipLF() {
	if b, err := r.src.Peek(1); err == nil && b[0] == '\n' {
		_, _ = r.src.ReadByte()
	}
}

func (r *FieldReader) newLine() {
	r.line++
	r.column = 0
}
