package adapter

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/arloliu/dtext/errs"
)

// Symbols are the locale-dependent parts of number text.
type Symbols struct {
	Decimal  rune   // decimal separator
	Group    rune   // grouping separator, used by number format patterns
	Minus    rune   // minus sign
	NaN      string // text for not-a-number
	Infinity string // text for positive infinity; negative infinity is Minus + Infinity
}

// DefaultSymbols returns the symbols used when no locale is configured.
func DefaultSymbols() Symbols {
	return Symbols{
		Decimal:  '.',
		Group:    ',',
		Minus:    '-',
		NaN:      "NaN",
		Infinity: "∞",
	}
}

// SymbolsFor derives the symbols of tag by formatting probe numbers with
// golang.org/x/text. Parts that cannot be derived keep their default.
func SymbolsFor(tag language.Tag) Symbols {
	sym := DefaultSymbols()
	p := message.NewPrinter(tag)

	// -1234567.5 exposes minus, group and decimal in one string; seven
	// integer digits get grouped even where four-digit numbers are not
	var before, afterFirst, afterLast []rune
	digits := 0
	for _, r := range p.Sprint(number.Decimal(-1234567.5, number.MaxFractionDigits(1))) {
		if unicode.IsDigit(r) {
			digits++
			continue
		}
		switch digits {
		case 0:
			before = append(before, r)
		case 1:
			afterFirst = append(afterFirst, r)
		case 7:
			afterLast = append(afterLast, r)
		}
	}

	if r, ok := singleSymbol(before); ok {
		sym.Minus = r
	}
	if r, ok := singleSymbol(afterFirst); ok {
		sym.Group = r
	}
	if r, ok := singleSymbol(afterLast); ok {
		sym.Decimal = r
	}

	if s := strings.TrimSpace(p.Sprint(number.Decimal(math.NaN()))); s != "" {
		sym.NaN = s
	}
	if s := strings.TrimSpace(p.Sprint(number.Decimal(math.Inf(1)))); s != "" {
		sym.Infinity = s
	}

	if sym.validate() != nil {
		return DefaultSymbols()
	}

	return sym
}

// singleSymbol returns the only non-mark rune of rs. Bidi marks some locales
// put around the minus sign are ignored.
func singleSymbol(rs []rune) (rune, bool) {
	var found rune
	n := 0
	for _, r := range rs {
		if unicode.Is(unicode.Cf, r) {
			continue
		}
		found = r
		n++
	}

	return found, n == 1
}

func (s Symbols) validate() error {
	for _, r := range []rune{s.Decimal, s.Group, s.Minus} {
		if !utf8.ValidRune(r) || unicode.IsDigit(r) {
			return fmt.Errorf("%w: %q cannot be a number symbol", errs.ErrInvalidSymbols, r)
		}
	}
	if s.Decimal == s.Group || s.Decimal == s.Minus || s.Group == s.Minus {
		return fmt.Errorf("%w: decimal %q, group %q and minus %q must differ", errs.ErrInvalidSymbols, s.Decimal, s.Group, s.Minus)
	}
	if s.NaN == "" || s.Infinity == "" || s.NaN == s.Infinity {
		return fmt.Errorf("%w: NaN %q and infinity %q must be distinct and non-empty", errs.ErrInvalidSymbols, s.NaN, s.Infinity)
	}

	return nil
}

// localize rewrites canonical number text ("-12.5", "1e-07") with s.
func (s Symbols) localize(canonical string) string {
	if s.Decimal == '.' && s.Minus == '-' {
		return canonical
	}

	b := strings.Builder{}
	b.Grow(len(canonical) + 2)
	for i, r := range canonical {
		switch {
		case r == '-' && i == 0:
			b.WriteRune(s.Minus)
		case r == '.':
			b.WriteRune(s.Decimal)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// delocalize is the inverse of localize.
func (s Symbols) delocalize(text string) string {
	if s.Decimal == '.' && s.Minus == '-' {
		return text
	}

	b := strings.Builder{}
	b.Grow(len(text))
	for i, r := range text {
		switch {
		case r == s.Minus && i == 0:
			b.WriteByte('-')
		case r == s.Decimal:
			b.WriteByte('.')
		case r == '.':
			// a literal '.' is not a decimal point in this locale
			b.WriteRune(utf8.RuneError)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
