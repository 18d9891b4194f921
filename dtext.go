// Package dtext reads and writes delimited text records with configurable
// escape tables.
//
// Fields are separated by a single rune (tab by default) and records end with
// a line separator. Characters that would break the layout are written as an
// escape character followed by a trigger, and an escape table defines which
// triggers exist. The writer never silently corrupts output: whenever a field
// cannot be represented unambiguously it still writes the bytes, then reports
// every problem of the record as an *delimited.UnmappableOutputError.
//
// # Basic Usage
//
// Writing tab-separated records with backslash escapes:
//
//	w, _ := dtext.NewTSVWriter(file)
//	w.PutField("alice")
//	w.PutField("line one\nline two") // written as line one\nline two
//	w.PutNull()                      // written as \N
//	w.PutEndOfRecord()
//	w.Close()
//
// Reading them back:
//
//	r, _ := dtext.NewTSVReader(file)
//	for record, err := range r.All() {
//	    ...
//	}
//
// # Packages
//
//   - escape: escape tables and their builder
//   - delimited: FieldWriter, FieldReader and the diagnostics they report
//   - adapter: typed field conversion (integers, decimals, floats, times, IDs)
//   - compress: stream codecs (zstd, S2, LZ4, xz) for compressed files
//   - profile: YAML/JSON layout profiles
//
// # Thread Safety
//
// Escape tables, adapters and profiles are immutable and may be shared.
// FieldWriter and FieldReader instances are NOT thread-safe.
package dtext

import (
	"io"

	"github.com/arloliu/dtext/delimited"
	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/format"
	"github.com/arloliu/dtext/profile"
)

var defaultTSVWriterOptions = []delimited.WriterOption{
	delimited.WithFieldSeparator(delimited.DefaultFieldSeparator),
	delimited.WithLineSeparator(format.LineSeparatorUnix),
	delimited.WithCompression(format.CompressionNone),
}

var defaultTSVReaderOptions = []delimited.ReaderOption{
	delimited.WithReaderFieldSeparator(delimited.DefaultFieldSeparator),
	delimited.WithReaderCompression(format.CompressionNone),
}

// DefaultEscapeTable returns the backslash escape table of tab-separated
// files: "\t", "\n", "\r", "\\" and "\N" for null.
func DefaultEscapeTable() *escape.Table {
	return escape.Default()
}

// NewFieldWriter creates a writer with an explicit escape table.
func NewFieldWriter(w io.Writer, table *escape.Table, opts ...delimited.WriterOption) (*delimited.FieldWriter, error) {
	return delimited.NewFieldWriter(w, table, opts...)
}

// NewTSVWriter creates a writer for tab-separated text with the default
// escape table. Options in opts override the defaults.
func NewTSVWriter(w io.Writer, opts ...delimited.WriterOption) (*delimited.FieldWriter, error) {
	allOpts := append(append([]delimited.WriterOption{}, defaultTSVWriterOptions...), opts...)
	return delimited.NewFieldWriter(w, escape.Default(), allOpts...)
}

// NewCompressedTSVWriter is NewTSVWriter with the output compressed by ct.
func NewCompressedTSVWriter(w io.Writer, ct format.CompressionType, opts ...delimited.WriterOption) (*delimited.FieldWriter, error) {
	allOpts := append(append([]delimited.WriterOption{}, defaultTSVWriterOptions...), opts...)
	allOpts = append(allOpts, delimited.WithCompression(ct))
	return delimited.NewFieldWriter(w, escape.Default(), allOpts...)
}

// NewFieldReader creates a reader with an explicit escape table.
func NewFieldReader(r io.Reader, table *escape.Table, opts ...delimited.ReaderOption) (*delimited.FieldReader, error) {
	return delimited.NewFieldReader(r, table, opts...)
}

// NewTSVReader creates a reader for tab-separated text with the default
// escape table. Options in opts override the defaults.
func NewTSVReader(r io.Reader, opts ...delimited.ReaderOption) (*delimited.FieldReader, error) {
	allOpts := append(append([]delimited.ReaderOption{}, defaultTSVReaderOptions...), opts...)
	return delimited.NewFieldReader(r, escape.Default(), allOpts...)
}

// NewCompressedTSVReader is NewTSVReader for input compressed by ct.
func NewCompressedTSVReader(r io.Reader, ct format.CompressionType, opts ...delimited.ReaderOption) (*delimited.FieldReader, error) {
	allOpts := append(append([]delimited.ReaderOption{}, defaultTSVReaderOptions...), opts...)
	allOpts = append(allOpts, delimited.WithReaderCompression(ct))
	return delimited.NewFieldReader(r, escape.Default(), allOpts...)
}

// LoadProfile reads a YAML or JSON layout profile from path.
func LoadProfile(path string) (*profile.Profile, error) {
	return profile.LoadFile(path)
}
