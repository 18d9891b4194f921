package delimited

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/format"
)

type readCloseTracker struct {
	io.Reader
	closes int
}

func (r *readCloseTracker) Close() error {
	r.closes++
	return nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func readAll(t *testing.T, input string, table *escape.Table, opts ...ReaderOption) [][]Field {
	t.Helper()

	r, err := NewFieldReader(strings.NewReader(input), table, opts...)
	require.NoError(t, err)
	defer r.Close()

	records, err := r.ReadAll()
	require.NoError(t, err)

	return records
}

func requireParseError(t *testing.T, err error, target error) *ParseError {
	t.Helper()

	require.ErrorIs(t, err, target)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)

	return perr
}

func TestNewFieldReader(t *testing.T) {
	_, err := NewFieldReader(nil, escape.Default())
	require.ErrorIs(t, err, errs.ErrNilSource)

	_, err = NewFieldReader(strings.NewReader(""), escape.Default(), WithReaderFieldSeparator('\r'))
	require.ErrorIs(t, err, errs.ErrInvalidSeparator)

	_, err = NewFieldReader(strings.NewReader(""), escape.Default(), WithReaderFieldSeparator('\\'))
	require.ErrorIs(t, err, errs.ErrSeparatorIsEscape)

	_, err = NewFieldReader(strings.NewReader(""), escape.Default(), WithReaderCompression(format.CompressionType(0)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCodec)

	r, err := NewFieldReader(strings.NewReader(""), escape.Default(), WithFieldsPerRecord(3))
	require.NoError(t, err)
	require.Equal(t, '\t', r.FieldSeparator())
	require.Equal(t, 3, r.FieldsPerRecord())
}

func TestFieldReader_Next(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]Field
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single field",
			input: "Hello, world!\n",
			want:  [][]Field{{Text("Hello, world!")}},
		},
		{
			name:  "three fields",
			input: "A\tB\tC\n",
			want:  [][]Field{{Text("A"), Text("B"), Text("C")}},
		},
		{
			name:  "escaped separator",
			input: "\\t\n",
			want:  [][]Field{{Text("\t")}},
		},
		{
			name:  "null",
			input: "\\N\n",
			want:  [][]Field{{Null()}},
		},
		{
			name:  "blank line is one empty field",
			input: "\n",
			want:  [][]Field{{Text("")}},
		},
		{
			name:  "empty and null fields",
			input: "\t\\N\t\n",
			want:  [][]Field{{Text(""), Null(), Text("")}},
		},
		{
			name:  "escapes",
			input: "a\\tb\\nc\\rd\\\\e\n",
			want:  [][]Field{{Text("a\tb\nc\rd\\e")}},
		},
		{
			name:  "mixed line terminators",
			input: "a\r\nb\rc\nd",
			want:  [][]Field{{Text("a")}, {Text("b")}, {Text("c")}, {Text("d")}},
		},
		{
			name:  "missing final terminator",
			input: "a\tb",
			want:  [][]Field{{Text("a"), Text("b")}},
		},
		{
			name:  "trailing CR at end of input",
			input: "a\r",
			want:  [][]Field{{Text("a")}},
		},
		{
			name:  "invalid UTF-8 is preserved",
			input: "a\xffb\t\xc3\n",
			want:  [][]Field{{Text("a\xffb"), Text("\xc3")}},
		},
		{
			name:  "multibyte text",
			input: "日本語\tß\n",
			want:  [][]Field{{Text("日本語"), Text("ß")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, tt.input, escape.Default(), WithFieldsPerRecord(-1))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFieldReader_LineSeparatorEscape(t *testing.T) {
	table := escape.NewBuilder('\\').AddLineSeparator().MustBuild()

	r, err := NewFieldReader(strings.NewReader("a\\\r\\\nb\tc\nnext\n"), table, WithFieldsPerRecord(-1))
	require.NoError(t, err)

	rec, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []Field{Text("a\r\nb"), Text("c")}, rec)

	rec, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, []Field{Text("next")}, rec)
}

func TestFieldReader_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
		after  [][]Field // records readable after the error
	}{
		{
			name:   "undefined trigger",
			input:  "ab\\x\tc\nnext\n",
			line:   1,
			column: 4,
			after:  [][]Field{{Text("next")}},
		},
		{
			name:   "escape at end of input",
			input:  "ok\nab\\",
			line:   2,
			column: 3,
		},
		{
			name:   "null is not the whole field",
			input:  "a\\N\nnext\n",
			line:   1,
			column: 3,
			after:  [][]Field{{Text("next")}},
		},
		{
			name:   "content after null",
			input:  "\\Nx\tb\nnext\n",
			line:   1,
			column: 3,
			after:  [][]Field{{Text("next")}},
		},
		{
			name:   "escape before line break",
			input:  "a\\\nnext\n",
			line:   1,
			column: 3,
			after:  [][]Field{{Text("next")}},
		},
		{
			name:   "skipped record holds an escaped pair",
			input:  "\\x\\\\\\t\nnext\n",
			line:   1,
			column: 2,
			after:  [][]Field{{Text("next")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFieldReader(strings.NewReader(tt.input), escape.Default(), WithFieldsPerRecord(-1))
			require.NoError(t, err)

			var rec []Field
			for {
				rec, err = r.Next()
				if err != nil {
					break
				}
			}
			require.Nil(t, rec)
			perr := requireParseError(t, err, errs.ErrMalformedInput)
			require.Equal(t, tt.line, perr.Line)
			require.Equal(t, tt.column, perr.Column)
			require.Contains(t, perr.Error(), "parse error on line")

			rest, err := r.ReadAll()
			require.NoError(t, err)
			require.Equal(t, tt.after, rest)
		})
	}
}

func TestFieldReader_FieldsPerRecord(t *testing.T) {
	t.Run("learned from first record", func(t *testing.T) {
		r, err := NewFieldReader(strings.NewReader("a\tb\nc\nd\te\n"), escape.Default())
		require.NoError(t, err)

		_, err = r.Next()
		require.NoError(t, err)

		rec, err := r.Next()
		perr := requireParseError(t, err, errs.ErrFieldCount)
		require.Equal(t, 2, perr.Line)
		require.Equal(t, []Field{Text("c")}, rec)

		rec, err = r.Next()
		require.NoError(t, err)
		require.Equal(t, []Field{Text("d"), Text("e")}, rec)
	})

	t.Run("fixed", func(t *testing.T) {
		r, err := NewFieldReader(strings.NewReader("a\tb\n"), escape.Default(), WithFieldsPerRecord(3))
		require.NoError(t, err)

		_, err = r.Next()
		require.ErrorIs(t, err, errs.ErrFieldCount)
	})

	t.Run("disabled", func(t *testing.T) {
		got := readAll(t, "a\tb\nc\n", escape.Default(), WithFieldsPerRecord(-1))
		require.Len(t, got, 2)
	})
}

func TestFieldReader_CustomSeparator(t *testing.T) {
	got := readAll(t, "a,b\\tc,\\N\n", escape.Default(), WithReaderFieldSeparator(','))
	require.Equal(t, [][]Field{{Text("a"), Text("b\tc"), Null()}}, got)
}

func TestFieldReader_NilTable(t *testing.T) {
	got := readAll(t, "a\\b\t\\N\n", nil)
	require.Equal(t, [][]Field{{Text("a\\b"), Text("\\N")}}, got)
}

func TestFieldReader_All(t *testing.T) {
	r, err := NewFieldReader(strings.NewReader("a\nb\nc\n"), escape.Default())
	require.NoError(t, err)

	var texts []string
	for rec, err := range r.All() {
		require.NoError(t, err)
		texts = append(texts, rec[0].Text)
	}
	require.Equal(t, []string{"a", "b", "c"}, texts)
	require.Equal(t, int64(3), r.RecordCount())
}

func TestFieldReader_Close(t *testing.T) {
	src := &readCloseTracker{Reader: strings.NewReader("a\n")}
	r, err := NewFieldReader(src, escape.Default())
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	require.Equal(t, 1, src.closes)

	_, err = r.Next()
	require.ErrorIs(t, err, errs.ErrReaderClosed)
}

func TestFieldReader_ReadError(t *testing.T) {
	r, err := NewFieldReader(failingReader{}, escape.Default())
	require.NoError(t, err)

	_, err = r.Next()
	require.ErrorContains(t, err, "connection reset")

	// sticky
	_, err = r.Next()
	require.ErrorContains(t, err, "connection reset")
}
