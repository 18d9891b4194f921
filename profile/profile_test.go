package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dtext/delimited"
	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/escape"
)

const tsvYAML = `
name: tsv
field_separator: tab
line_separator: unix
escape:
  character: backslash
  null_trigger: N
  mappings:
    - {trigger: t, literal: tab}
    - {trigger: n, literal: '\n'}
    - {trigger: r, literal: '\r'}
`

const tsvJSON = `{
  "name": "tsv",
  "field_separator": "\t",
  "line_separator": "lf",
  "escape": {
    "character": "\\",
    "null_trigger": "N",
    "mappings": [
      {"trigger": "t", "literal": "\\t"},
      {"trigger": "n", "literal": "\n"},
      {"trigger": "r", "literal": "\r"}
    ]
  }
}`

func TestLoadYAML(t *testing.T) {
	p, err := LoadYAML(strings.NewReader(tsvYAML))
	require.NoError(t, err)
	require.Equal(t, "tsv", p.Name)

	table, err := p.Table()
	require.NoError(t, err)
	require.True(t, table.Equal(escape.Default()))
	require.Equal(t, escape.Default().Fingerprint(), table.Fingerprint())
}

func TestLoadJSON(t *testing.T) {
	p, err := LoadJSON(strings.NewReader(tsvJSON))
	require.NoError(t, err)

	table, err := p.Table()
	require.NoError(t, err)
	require.True(t, table.Equal(escape.Default()))
}

func TestLoad_EqualTables(t *testing.T) {
	fromYAML, err := LoadYAML(strings.NewReader(tsvYAML))
	require.NoError(t, err)
	fromJSON, err := LoadJSON(strings.NewReader(tsvJSON))
	require.NoError(t, err)

	a, err := fromYAML.Table()
	require.NoError(t, err)
	b, err := fromJSON.Table()
	require.NoError(t, err)

	// different spellings of the same runes resolve to one cached table
	require.Same(t, a, b)

	c, err := Default().Table()
	require.NoError(t, err)
	require.Same(t, a, c)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "name: x\nfield_sep: tab\n"},
		{"bad field separator", "field_separator: ab\n"},
		{"line break separator", "field_separator: '\\n'\n"},
		{"bad line separator", "line_separator: mac\n"},
		{"bad compression", "compression: gzip\n"},
		{"separator is escape", "field_separator: backslash\nescape: {character: backslash}\n"},
		{"trigger conflict", "escape:\n  character: '^'\n  mappings:\n    - {trigger: a, literal: tab}\n    - {trigger: a, literal: pipe}\n"},
		{"empty trigger", "escape:\n  character: '^'\n  mappings:\n    - {trigger: '', literal: tab}\n"},
		{"not yaml", "\t- ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, errs.ErrInvalidProfile)
		})
	}

	_, err := LoadJSON(strings.NewReader(`{"name": "x", "extra": 1}`))
	require.ErrorIs(t, err, errs.ErrInvalidProfile)

	_, err = LoadYAML(strings.NewReader("name: conflicts\nescape:\n  character: '^'\n  mappings:\n    - {trigger: a, literal: tab}\n    - {trigger: b, literal: tab}\n"))
	require.ErrorIs(t, err, errs.ErrLiteralConflict)
	require.ErrorContains(t, err, `"conflicts"`)
}

func TestProfile_NoEscape(t *testing.T) {
	p, err := LoadYAML(strings.NewReader("field_separator: comma\n"))
	require.NoError(t, err)

	table, err := p.Table()
	require.NoError(t, err)
	require.Nil(t, table)

	buf := &bytes.Buffer{}
	w, err := p.NewWriter(buf)
	require.NoError(t, err)
	require.Equal(t, ',', w.FieldSeparator())
	require.NoError(t, w.WriteRecord(delimited.Text("a"), delimited.Text("b")))
	require.NoError(t, w.Close())
	require.Equal(t, "a,b\n", buf.String())
}

func TestProfile_WriterAndReader(t *testing.T) {
	p, err := LoadYAML(strings.NewReader(`
name: pipes
field_separator: pipe
line_separator: windows
compression: zstd
fields_per_record: 2
escape:
  character: '%'
  null_trigger: '0'
  line_separator: true
  mappings:
    - {trigger: p, literal: pipe}
`))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	w, err := p.NewWriter(buf)
	require.NoError(t, err)
	require.NoError(t, w.WriteRecord(delimited.Text("a|b"), delimited.Text("line\nbreak")))
	require.NoError(t, w.PutNull())
	require.NoError(t, w.PutField("100%"))
	require.NoError(t, w.PutEndOfRecord())
	require.NoError(t, w.Close())

	r, err := p.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 2, r.FieldsPerRecord())

	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]delimited.Field{
		{delimited.Text("a|b"), delimited.Text("line\nbreak")},
		{delimited.Null(), delimited.Text("100%")},
	}, records)
	require.NoError(t, r.Close())
}

func TestProfile_SelfEscape(t *testing.T) {
	p, err := LoadYAML(strings.NewReader("escape:\n  character: backslash\n  self_escape: false\n  mappings:\n    - {trigger: t, literal: tab}\n"))
	require.NoError(t, err)

	table, err := p.Table()
	require.NoError(t, err)
	require.False(t, table.NeedsEscape('\\'))
	require.True(t, table.NeedsEscape('\t'))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "tsv.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(tsvYAML), 0o600))
	jsonPath := filepath.Join(dir, "tsv.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(tsvJSON), 0o600))

	for _, path := range []string{yamlPath, jsonPath} {
		p, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, "tsv", p.Name)
	}

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestProfile_WriteYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Default().WriteYAML(buf))

	p, err := LoadYAML(buf)
	require.NoError(t, err)
	require.Equal(t, Default(), p)
}

func TestParseRune(t *testing.T) {
	tests := []struct {
		in   string
		want rune
		bad  bool
	}{
		{in: "tab", want: '\t'},
		{in: "TAB", want: '\t'},
		{in: "|", want: '|'},
		{in: "\t", want: '\t'},
		{in: `\t`, want: '\t'},
		{in: `\\`, want: '\\'},
		{in: `\u00a7`, want: '§'},
		{in: "§", want: '§'},
		{in: "", bad: true},
		{in: "ab", bad: true},
		{in: `\q`, bad: true},
		{in: "\xff", bad: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRune(tt.in)
			if tt.bad {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
