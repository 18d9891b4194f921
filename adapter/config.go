package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"golang.org/x/text/language"

	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/format"
	"github.com/arloliu/dtext/internal/options"
)

// Config holds the settings shared by all field adapters. Each adapter type
// reads only the settings that apply to it.
type Config struct {
	nullFormat string
	hasNull    bool
	number     *NumberFormat
	symbols    Symbols
	style      format.OutputStyle
	layout     string
	location   *time.Location
	trueText   string
	falseText  string
}

func newConfig(layout string) Config {
	return Config{
		symbols:   DefaultSymbols(),
		style:     format.StyleDefault,
		layout:    layout,
		location:  time.UTC,
		trueText:  "true",
		falseText: "false",
	}
}

// NullFormat returns the text that stands for null, if one is configured.
func (c *Config) NullFormat() (string, bool) {
	return c.nullFormat, c.hasNull
}

// NumberFormat returns the configured pattern, or nil.
func (c *Config) NumberFormat() *NumberFormat {
	return c.number
}

// Symbols returns the number symbols in use.
func (c *Config) Symbols() Symbols {
	return c.symbols
}

// OutputStyle returns the decimal output style.
func (c *Config) OutputStyle() format.OutputStyle {
	return c.style
}

// Layout returns the time layout in Go reference-time form.
func (c *Config) Layout() string {
	return c.layout
}

// Location returns the time zone used to parse and format times.
func (c *Config) Location() *time.Location {
	return c.location
}

// Option is a functional option for configuring field adapters.
type Option = options.Option[*Config]

// WithNullFormat sets the text that stands for null, e.g. "" or "NULL".
// Without it, null values are emitted as null fields and left to the
// writer's escape table.
func WithNullFormat(text string) Option {
	return options.NoError(func(c *Config) {
		c.nullFormat = text
		c.hasNull = true
	})
}

// WithNumberFormat sets a decimal pattern for numeric adapters.
// See NumberFormat for the supported syntax.
func WithNumberFormat(pattern string) Option {
	return options.New(func(c *Config) error {
		nf, err := ParseNumberFormat(pattern)
		if err != nil {
			return err
		}
		c.number = nf

		return nil
	})
}

// WithSymbols sets the number symbols.
func WithSymbols(sym Symbols) Option {
	return options.New(func(c *Config) error {
		if err := sym.validate(); err != nil {
			return err
		}
		c.symbols = sym

		return nil
	})
}

// WithLocale sets the number symbols of tag. See SymbolsFor.
func WithLocale(tag language.Tag) Option {
	return options.NoError(func(c *Config) {
		c.symbols = SymbolsFor(tag)
	})
}

// WithOutputStyle selects how decimals are written when no pattern is set.
// Default is format.StyleDefault.
func WithOutputStyle(style format.OutputStyle) Option {
	return options.New(func(c *Config) error {
		switch style {
		case format.StyleDefault, format.StylePlain, format.StyleEngineering:
			c.style = style
			return nil
		default:
			return fmt.Errorf("%w: unknown output style %v", errs.ErrInvalidPattern, style)
		}
	})
}

// WithTimeLayout sets the layout of date and date-time adapters, in Go
// reference-time form ("2006-01-02").
func WithTimeLayout(layout string) Option {
	return options.New(func(c *Config) error {
		if strings.TrimSpace(layout) == "" {
			return fmt.Errorf("%w: empty layout", errs.ErrInvalidLayout)
		}
		c.layout = layout

		return nil
	})
}

// WithStrftime sets the time layout from a strftime pattern ("%Y-%m-%d").
func WithStrftime(pattern string) Option {
	return options.New(func(c *Config) error {
		layout, err := strftime.Layout(pattern)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", errs.ErrInvalidLayout, pattern, err)
		}
		if layout == "" {
			return fmt.Errorf("%w: empty layout", errs.ErrInvalidLayout)
		}
		c.layout = layout

		return nil
	})
}

// WithLocation sets the time zone for date and date-time adapters.
// Default is UTC.
func WithLocation(loc *time.Location) Option {
	return options.NoError(func(c *Config) {
		if loc == nil {
			loc = time.UTC
		}
		c.location = loc
	})
}

// WithBooleanFormat sets the texts of true and false. Parsing ignores case.
// Default is "true" and "false".
func WithBooleanFormat(trueText, falseText string) Option {
	return options.New(func(c *Config) error {
		if trueText == "" || falseText == "" || strings.EqualFold(trueText, falseText) {
			return fmt.Errorf("%w: boolean texts %q and %q must be distinct and non-empty",
				errs.ErrInvalidPattern, trueText, falseText)
		}
		c.trueText = trueText
		c.falseText = falseText

		return nil
	})
}
