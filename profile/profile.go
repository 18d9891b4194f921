package profile

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/arloliu/dtext/delimited"
	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/format"
	"github.com/arloliu/dtext/internal/hash"
)

// Profile is a declarative description of a delimited text layout.
//
// Rune-valued settings accept a single character ("|"), a Go escape ("\\t")
// or one of the names tab, space, comma, pipe, semicolon and backslash.
type Profile struct {
	Name            string  `yaml:"name" json:"name"`
	FieldSeparator  string  `yaml:"field_separator" json:"field_separator"`
	LineSeparator   string  `yaml:"line_separator" json:"line_separator"`
	Compression     string  `yaml:"compression" json:"compression"`
	FieldsPerRecord int     `yaml:"fields_per_record" json:"fields_per_record"`
	Escape          *Escape `yaml:"escape" json:"escape"`
}

// Escape describes an escape table. A profile without one writes and reads
// fields without escaping.
type Escape struct {
	Character     string    `yaml:"character" json:"character"`
	Mappings      []Mapping `yaml:"mappings" json:"mappings"`
	NullTrigger   string    `yaml:"null_trigger" json:"null_trigger"`
	LineSeparator bool      `yaml:"line_separator" json:"line_separator"`
	SelfEscape    *bool     `yaml:"self_escape" json:"self_escape"` // default true
}

// Mapping maps a trigger to the literal it stands for.
type Mapping struct {
	Trigger string `yaml:"trigger" json:"trigger"`
	Literal string `yaml:"literal" json:"literal"`
}

// Default returns the profile of tab-separated text with backslash escapes,
// equivalent to escape.Default().
func Default() *Profile {
	return &Profile{
		Name:           "tsv",
		FieldSeparator: "tab",
		LineSeparator:  "unix",
		Compression:    "none",
		Escape: &Escape{
			Character: "backslash",
			Mappings: []Mapping{
				{Trigger: "t", Literal: "tab"},
				{Trigger: "n", Literal: `\n`},
				{Trigger: "r", Literal: `\r`},
			},
			NullTrigger: "N",
		},
	}
}

// Validate checks every setting and builds the escape table.
//
// Returns an error wrapping errs.ErrInvalidProfile and the underlying cause.
func (p *Profile) Validate() error {
	_, err := p.WriterOptions()
	return err
}

// Table returns the escape table described by the profile, or nil when the
// profile has no escape section. Tables are cached process-wide by the
// xxHash64 of their definition, so equal profiles share one table.
func (p *Profile) Table() (*escape.Table, error) {
	if p.Escape == nil {
		return nil, nil
	}

	key := p.Escape.canonical()
	id := hash.ID(key)
	if cached, ok := tableCache.Load(id); ok {
		if entry := cached.(tableEntry); entry.key == key { //nolint:forcetypeassert
			return entry.table, nil
		}
	}

	table, err := p.Escape.build()
	if err != nil {
		return nil, p.invalid(err)
	}
	tableCache.Store(id, tableEntry{key: key, table: table})

	return table, nil
}

// WriterOptions converts the profile into options for delimited.NewFieldWriter.
func (p *Profile) WriterOptions() ([]delimited.WriterOption, error) {
	sep, err := p.fieldSeparator()
	if err != nil {
		return nil, err
	}
	ls, err := format.ParseLineSeparator(p.LineSeparator)
	if err != nil {
		return nil, p.invalid(err)
	}
	ct, err := format.ParseCompressionType(p.Compression)
	if err != nil {
		return nil, p.invalid(err)
	}
	table, err := p.Table()
	if err != nil {
		return nil, err
	}
	if table.IsEscape(sep) {
		return nil, p.invalid(fmt.Errorf("%w: %q", errs.ErrSeparatorIsEscape, sep))
	}

	return []delimited.WriterOption{
		delimited.WithFieldSeparator(sep),
		delimited.WithLineSeparator(ls),
		delimited.WithCompression(ct),
	}, nil
}

// ReaderOptions converts the profile into options for delimited.NewFieldReader.
func (p *Profile) ReaderOptions() ([]delimited.ReaderOption, error) {
	if _, err := p.WriterOptions(); err != nil {
		return nil, err
	}
	sep, _ := p.fieldSeparator()
	ct, _ := format.ParseCompressionType(p.Compression)

	return []delimited.ReaderOption{
		delimited.WithReaderFieldSeparator(sep),
		delimited.WithReaderCompression(ct),
		delimited.WithFieldsPerRecord(p.FieldsPerRecord),
	}, nil
}

// NewWriter opens a field writer on w configured by the profile. Options in
// opts are applied after the profile's own and override them.
func (p *Profile) NewWriter(w io.Writer, opts ...delimited.WriterOption) (*delimited.FieldWriter, error) {
	base, err := p.WriterOptions()
	if err != nil {
		return nil, err
	}
	table, err := p.Table()
	if err != nil {
		return nil, err
	}

	return delimited.NewFieldWriter(w, table, append(base, opts...)...)
}

// NewReader opens a field reader on r configured by the profile. Options in
// opts are applied after the profile's own and override them.
func (p *Profile) NewReader(r io.Reader, opts ...delimited.ReaderOption) (*delimited.FieldReader, error) {
	base, err := p.ReaderOptions()
	if err != nil {
		return nil, err
	}
	table, err := p.Table()
	if err != nil {
		return nil, err
	}

	return delimited.NewFieldReader(r, table, append(base, opts...)...)
}

func (p *Profile) fieldSeparator() (rune, error) {
	if p.FieldSeparator == "" {
		return delimited.DefaultFieldSeparator, nil
	}
	sep, err := parseRune(p.FieldSeparator)
	if err != nil {
		return 0, p.invalid(fmt.Errorf("field_separator: %w", err))
	}
	if sep == '\r' || sep == '\n' {
		return 0, p.invalid(fmt.Errorf("%w: %q is a line break", errs.ErrInvalidSeparator, sep))
	}

	return sep, nil
}

func (p *Profile) invalid(err error) error {
	if p.Name != "" {
		return fmt.Errorf("%w %q: %w", errs.ErrInvalidProfile, p.Name, err)
	}

	return fmt.Errorf("%w: %w", errs.ErrInvalidProfile, err)
}

type tableEntry struct {
	key   string
	table *escape.Table
}

var tableCache sync.Map // uint64 → tableEntry

func (e *Escape) build() (*escape.Table, error) {
	esc, err := parseRune(e.Character)
	if err != nil {
		return nil, fmt.Errorf("escape.character: %w", err)
	}

	b := escape.NewBuilder(esc)
	for i, m := range e.Mappings {
		trigger, err := parseRune(m.Trigger)
		if err != nil {
			return nil, fmt.Errorf("escape.mappings[%d].trigger: %w", i, err)
		}
		literal, err := parseRune(m.Literal)
		if err != nil {
			return nil, fmt.Errorf("escape.mappings[%d].literal: %w", i, err)
		}
		b.AddMapping(trigger, literal)
	}
	if e.NullTrigger != "" {
		trigger, err := parseRune(e.NullTrigger)
		if err != nil {
			return nil, fmt.Errorf("escape.null_trigger: %w", err)
		}
		b.AddNullMapping(trigger)
	}
	if e.LineSeparator {
		b.AddLineSeparator()
	}
	if e.SelfEscape != nil && !*e.SelfEscape {
		b.DisableSelfEscape()
	}

	return b.Build()
}

// canonical renders the definition with every rune resolved where possible,
// so spellings like "tab" and "\t" share a cache entry.
func (e *Escape) canonical() string {
	var sb strings.Builder
	sb.WriteString(canonicalRune(e.Character))
	for _, m := range e.Mappings {
		sb.WriteString("|m")
		sb.WriteString(canonicalRune(m.Trigger))
		sb.WriteString(canonicalRune(m.Literal))
	}
	if e.NullTrigger != "" {
		sb.WriteString("|n")
		sb.WriteString(canonicalRune(e.NullTrigger))
	}
	if e.LineSeparator {
		sb.WriteString("|ls")
	}
	if e.SelfEscape != nil && !*e.SelfEscape {
		sb.WriteString("|raw")
	}

	return sb.String()
}

func canonicalRune(s string) string {
	r, err := parseRune(s)
	if err != nil {
		return "?" + strconv.Quote(s)
	}

	return strconv.QuoteRune(r)
}

var runeNames = map[string]rune{
	"tab":       '\t',
	"space":     ' ',
	"comma":     ',',
	"pipe":      '|',
	"semicolon": ';',
	"backslash": '\\',
}

func parseRune(s string) (rune, error) {
	if r, ok := runeNames[strings.ToLower(s)]; ok {
		return r, nil
	}
	if r, size := utf8.DecodeRuneInString(s); size == len(s) && r != utf8.RuneError {
		return r, nil
	}
	if strings.HasPrefix(s, `\`) {
		r, _, tail, err := strconv.UnquoteChar(s, 0)
		if err == nil && tail == "" {
			return r, nil
		}
	}

	return 0, fmt.Errorf("%q is not a single character", s)
}
