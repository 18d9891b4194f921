// Package delimited writes and reads records of text fields separated by a
// field separator and terminated by a line separator, as in TSV files.
//
// # Writing
//
// FieldWriter escapes every field through an escape.Table. Characters that
// the table cannot represent are still written, and each such problem is
// reported as an UnmappableOutput once the record is complete:
//
//	w, err := delimited.NewFieldWriter(file, escape.Default())
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	_ = w.PutField("Hello")
//	_ = w.PutNull()
//	if err := w.PutEndOfRecord(); err != nil {
//	    var uerr *delimited.UnmappableOutputError
//	    if errors.As(err, &uerr) {
//	        // the record was written; decide whether it is acceptable
//	    }
//	}
//
// # Diagnostics
//
// The error codes are:
//
//   - ExtraEmptyField: a record without fields was written as one empty field
//   - ExtraFieldSeparator: a field contains an unescaped field separator
//   - ExtraRecordSeparator: a field contains an unescaped CR or LF
//   - ConflictEscapeSequence: a raw escape character is followed by more content
//   - LostFieldSeparator: a field ends with a raw escape character
//   - LostRecordSeparator: the last field of a record ends with a raw escape character
//   - UndefinedNullSequence: a null field was written without a null trigger
//
// Raw escape characters only reach the output when the table does not map the
// escape character to itself (see escape.Builder.DisableSelfEscape).
//
// # Reading
//
// FieldReader decodes the same format. LF, CR and CRLF all end a record, so
// files written with either line separator read back the same way.
//
// # Compression
//
// Both sides accept a format.CompressionType. The text layer is unaware of it;
// the compressed stream is finished when the writer is closed.
package delimited
