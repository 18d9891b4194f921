package delimited

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/internal/options"
	"github.com/arloliu/dtext/internal/pool"
)

// FieldWriter writes records of fields as delimited text.
//
// Each field is escaped through the escape table. Characters the table cannot
// represent are written as-is and reported: PutEndOfRecord returns an
// *UnmappableOutputError listing every such problem in the record, after the
// record itself has been written to the sink.
//
// Note: The FieldWriter is NOT thread-safe. Each writer instance should be used by a single goroutine at a time.
//
// Note: The FieldWriter owns its sink. Close closes it when it implements io.Closer.
type FieldWriter struct {
	*WriterConfig

	table  *escape.Table
	esc    rune
	hasEsc bool

	dst    io.Writer      // sink given by the caller
	stream io.WriteCloser // compression stream over dst
	buf    *pool.ByteBuffer

	fieldIndex    int  // index of the next field in the current record
	pendingEscape bool // the last rune written was a raw escape character
	outputs       []UnmappableOutput

	records int64
	closed  bool
	err     error // sticky I/O error
}

// NewFieldWriter creates a FieldWriter that writes to w.
//
// A nil table disables escaping: every field is written verbatim and
// problems are still reported.
//
// Parameters:
//   - w: Destination of the encoded records (must be non-nil)
//   - table: Escape table, typically built with escape.NewBuilder or escape.Default
//   - opts: Optional configuration (field separator, line separator, transform, compression, logger)
//
// Returns:
//   - *FieldWriter: Writer ready to accept fields
//   - error: ErrNilSink, or a configuration error if options are invalid
func NewFieldWriter(w io.Writer, table *escape.Table, opts ...WriterOption) (*FieldWriter, error) {
	if w == nil {
		return nil, errs.ErrNilSink
	}

	config := NewWriterConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}
	if err := config.validate(table); err != nil {
		return nil, err
	}

	stream, err := config.codec.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s stream: %w", config.codec.Type(), err)
	}

	esc, hasEsc := table.EscapeRune()
	fw := &FieldWriter{
		WriterConfig: config,
		table:        table,
		esc:          esc,
		hasEsc:       hasEsc,
		dst:          w,
		stream:       stream,
		buf:          pool.GetRecordBuffer(),
	}

	fw.logger.Debug("field writer opened",
		slog.String("separator", string(config.fieldSeparator)),
		slog.String("line_separator", config.lineSeparator.String()),
		slog.String("compression", config.codec.Type().String()),
		slog.Bool("escaping", hasEsc),
	)

	return fw, nil
}

// Table returns the escape table in use.
func (w *FieldWriter) Table() *escape.Table {
	return w.table
}

// RecordCount returns the number of records completed by PutEndOfRecord.
func (w *FieldWriter) RecordCount() int64 {
	return w.records
}

// PutField appends a non-null field to the current record.
func (w *FieldWriter) PutField(text string) error {
	return w.put(text, false)
}

// PutNull appends a null field to the current record.
//
// Tables without a null trigger cannot represent null; an empty field is
// written and UndefinedNullSequence is reported at the end of the record.
func (w *FieldWriter) PutNull() error {
	return w.put("", true)
}

// Put appends f to the current record.
func (w *FieldWriter) Put(f Field) error {
	return w.put(f.Text, f.Null)
}

// PutEndOfRecord terminates the current record and writes it to the sink.
//
// A record with no fields is written as a single empty field and reported as
// ExtraEmptyField.
//
// Returns:
//   - error: *UnmappableOutputError when the record may not read back as
//     written (the record is still written), ErrWriterClosed, or an I/O error
func (w *FieldWriter) PutEndOfRecord() error {
	if err := w.usable(); err != nil {
		return err
	}

	if w.fieldIndex == 0 {
		w.report(0, ExtraEmptyField, "record has no fields, wrote one empty field")
	} else if w.pendingEscape {
		w.report(w.fieldIndex-1, LostRecordSeparator, "field ends with a raw escape character")
		w.pendingEscape = false
	}

	_, _ = w.buf.WriteString(w.lineSeparator.Sequence())
	if err := w.flush(); err != nil {
		return err
	}

	w.records++
	w.fieldIndex = 0

	return w.takeOutputs(w.records)
}

// WriteRecord writes fields as one complete record.
func (w *FieldWriter) WriteRecord(fields ...Field) error {
	for _, f := range fields {
		if err := w.put(f.Text, f.Null); err != nil {
			return err
		}
	}

	return w.PutEndOfRecord()
}

// Close writes any partially built record, finishes the compression stream
// and closes the sink. Calling Close more than once is a no-op.
//
// Diagnostics collected for an unterminated record are returned as an
// *UnmappableOutputError joined with any close error.
func (w *FieldWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errList []error
	if w.err == nil && w.fieldIndex > 0 {
		if w.pendingEscape {
			w.report(w.fieldIndex-1, LostRecordSeparator, "field ends with a raw escape character")
		}
		if err := w.flush(); err != nil {
			errList = append(errList, err)
		}
		if err := w.takeOutputs(w.records + 1); err != nil {
			errList = append(errList, err)
		}
	}

	if err := w.stream.Close(); err != nil {
		errList = append(errList, fmt.Errorf("failed to finish %s stream: %w", w.codec.Type(), err))
	}
	if c, ok := w.dst.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close sink: %w", err))
		}
	}

	pool.PutRecordBuffer(w.buf)
	w.buf = nil

	w.logger.Debug("field writer closed", slog.Int64("records", w.records))

	return errors.Join(errList...)
}

func (w *FieldWriter) usable() error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	return w.err
}

func (w *FieldWriter) put(text string, null bool) error {
	if err := w.usable(); err != nil {
		return err
	}

	if w.fieldIndex > 0 {
		if w.pendingEscape {
			w.report(w.fieldIndex-1, LostFieldSeparator, "field ends with a raw escape character")
			w.pendingEscape = false
		}
		_, _ = w.buf.WriteRune(w.fieldSeparator)
	}

	if !null && w.transform != nil {
		if t, ok := w.transform(text); ok {
			text = t
		} else {
			null = true
		}
	}

	if null {
		w.emitNull()
	} else {
		w.emitText(text)
	}
	w.fieldIndex++

	return nil
}

func (w *FieldWriter) emitNull() {
	trigger, ok := w.table.NullTrigger()
	if !ok {
		w.report(w.fieldIndex, UndefinedNullSequence, "table has no null trigger, wrote an empty field")
		return
	}
	w.emitEscaped(trigger)
}

func (w *FieldWriter) emitText(text string) {
	for i := 0; i < len(text); {
		c, size := utf8.DecodeRuneInString(text[i:])
		raw := text[i : i+size]
		i += size

		// invalid UTF-8 is copied through byte by byte
		if c == utf8.RuneError && size == 1 {
			w.emitRaw(c, raw)
			continue
		}

		if trigger, ok := w.table.Encode(c); ok {
			w.emitEscaped(trigger)
			continue
		}

		switch {
		case w.hasEsc && c == w.esc:
			w.emitRaw(c, raw)
			w.pendingEscape = true
		case c == w.fieldSeparator:
			w.report(w.fieldIndex, ExtraFieldSeparator,
				fmt.Sprintf("field separator %q has no escape sequence", c))
			w.emitRaw(c, raw)
		case c == '\r' || c == '\n':
			if w.table.EscapesLineSeparator() {
				w.emitEscapedRaw(raw)
				continue
			}
			w.report(w.fieldIndex, ExtraRecordSeparator,
				fmt.Sprintf("line break %q has no escape sequence", c))
			w.emitRaw(c, raw)
		default:
			w.emitRaw(c, raw)
		}
	}
}

func (w *FieldWriter) emitRaw(next rune, raw string) {
	w.resolvePending(next)
	_, _ = w.buf.WriteString(raw)
}

func (w *FieldWriter) emitEscaped(trigger rune) {
	w.resolvePending(w.esc)
	_, _ = w.buf.WriteRune(w.esc)
	_, _ = w.buf.WriteRune(trigger)
}

func (w *FieldWriter) emitEscapedRaw(raw string) {
	w.resolvePending(w.esc)
	_, _ = w.buf.WriteRune(w.esc)
	_, _ = w.buf.WriteString(raw)
}

// resolvePending reports a raw escape character that is followed by next.
func (w *FieldWriter) resolvePending(next rune) {
	if !w.pendingEscape {
		return
	}
	w.pendingEscape = false
	w.report(w.fieldIndex, ConflictEscapeSequence,
		fmt.Sprintf("raw escape character %q is followed by %q", w.esc, next))
}

// report records a problem once per code and field.
func (w *FieldWriter) report(fieldIndex int, code ErrorCode, cause string) {
	for _, o := range w.outputs {
		if o.Code == code && o.FieldIndex == fieldIndex {
			return
		}
	}
	w.outputs = append(w.outputs, UnmappableOutput{Code: code, FieldIndex: fieldIndex, Cause: cause})
}

func (w *FieldWriter) takeOutputs(record int64) error {
	if len(w.outputs) == 0 {
		return nil
	}

	err := &UnmappableOutputError{Record: record, Outputs: slices.Clone(w.outputs)}
	w.outputs = w.outputs[:0]

	w.logger.Warn("record written with unmappable output",
		slog.Int64("record", err.Record),
		slog.Int("count", len(err.Outputs)),
		slog.String("first", err.Outputs[0].String()),
	)

	return err
}

func (w *FieldWriter) flush() error {
	_, err := w.buf.WriteTo(w.stream)
	w.buf.Reset()
	if err != nil {
		w.err = fmt.Errorf("failed to write record: %w", err)
		return w.err
	}

	return nil
}
