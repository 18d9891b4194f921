package adapter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/arloliu/dtext/errs"
)

// NumberFormat is a compiled decimal pattern such as "#,##0.00", "0.###"
// or "$#,##0.00;" style prefixes and suffixes around the number.
//
// Supported pattern characters:
//   - '0': a required digit
//   - '#': an optional digit
//   - ',': grouping separator; the group size is the digit count after the last one
//   - '.': decimal separator
//   - '%': multiply by 100 on format and divide on parse; allowed in prefix or suffix
//
// Other characters before the first digit form the prefix; characters after
// the last digit form the suffix. Rounding is half-even.
type NumberFormat struct {
	pattern  string
	prefix   string
	suffix   string
	minInt   int
	grouping int
	minFrac  int
	maxFrac  int
	percent  bool
}

// ParseNumberFormat compiles pattern.
//
// Returns an error wrapping errs.ErrInvalidPattern when the pattern has no
// digits, digits after a suffix, or '0' after '#' in the fraction.
func ParseNumberFormat(pattern string) (*NumberFormat, error) {
	nf := &NumberFormat{pattern: pattern}

	start := strings.IndexAny(pattern, "#0,.")
	if start < 0 {
		return nil, fmt.Errorf("%w: %q has no digits", errs.ErrInvalidPattern, pattern)
	}
	end := strings.LastIndexAny(pattern, "#0,.") + 1
	nf.prefix = pattern[:start]
	nf.suffix = pattern[end:]
	body := pattern[start:end]

	if strings.ContainsAny(nf.prefix+nf.suffix, "#0,.") || strings.Trim(body, "#0,.") != "" {
		return nil, fmt.Errorf("%w: %q mixes literal text into the digits", errs.ErrInvalidPattern, pattern)
	}
	nf.percent = strings.Contains(nf.prefix, "%") || strings.Contains(nf.suffix, "%")

	intPart, fracPart, hasPoint := strings.Cut(body, ".")
	if hasPoint && strings.ContainsAny(fracPart, ".,") {
		return nil, fmt.Errorf("%w: %q has a misplaced separator", errs.ErrInvalidPattern, pattern)
	}

	lastGroup := -1
	digitsSeen := 0
	seenZero := false
	for i, r := range intPart {
		switch r {
		case '#':
			if seenZero {
				return nil, fmt.Errorf("%w: %q has '#' after '0'", errs.ErrInvalidPattern, pattern)
			}
			digitsSeen++
		case '0':
			seenZero = true
			nf.minInt++
			digitsSeen++
		case ',':
			lastGroup = i
		}
	}
	if lastGroup >= 0 {
		nf.grouping = len(intPart) - lastGroup - 1
		if nf.grouping == 0 {
			return nil, fmt.Errorf("%w: %q ends with a grouping separator", errs.ErrInvalidPattern, pattern)
		}
	}

	seenOptional := false
	for _, r := range fracPart {
		switch r {
		case '0':
			if seenOptional {
				return nil, fmt.Errorf("%w: %q has '0' after '#' in the fraction", errs.ErrInvalidPattern, pattern)
			}
			nf.minFrac++
		case '#':
			seenOptional = true
		}
		nf.maxFrac++
	}

	if digitsSeen == 0 && nf.maxFrac == 0 {
		return nil, fmt.Errorf("%w: %q has no digits", errs.ErrInvalidPattern, pattern)
	}

	return nf, nil
}

// MustParseNumberFormat is like ParseNumberFormat but panics on error.
func MustParseNumberFormat(pattern string) *NumberFormat {
	nf, err := ParseNumberFormat(pattern)
	if err != nil {
		panic(err)
	}

	return nf
}

// String returns the source pattern.
func (f *NumberFormat) String() string {
	return f.pattern
}

// Format renders d with sym.
func (f *NumberFormat) Format(d decimal.Decimal, sym Symbols) string {
	if f.percent {
		d = d.Shift(2)
	}
	d = d.RoundBank(int32(f.maxFrac))

	neg := d.Sign() < 0
	digits := d.Abs().StringFixedBank(int32(f.maxFrac))
	intDigits, fracDigits, _ := strings.Cut(digits, ".")

	// drop optional trailing fraction zeros
	for len(fracDigits) > f.minFrac && fracDigits[len(fracDigits)-1] == '0' {
		fracDigits = fracDigits[:len(fracDigits)-1]
	}

	intDigits = strings.TrimLeft(intDigits, "0")
	if len(intDigits) < f.minInt {
		intDigits = strings.Repeat("0", f.minInt-len(intDigits)) + intDigits
	}
	if intDigits == "" && fracDigits == "" {
		intDigits = "0"
	}

	b := strings.Builder{}
	if neg {
		b.WriteRune(sym.Minus)
	}
	b.WriteString(f.prefix)
	writeGrouped(&b, intDigits, f.grouping, sym.Group)
	if fracDigits != "" {
		b.WriteRune(sym.Decimal)
		b.WriteString(fracDigits)
	}
	b.WriteString(f.suffix)

	return b.String()
}

func writeGrouped(b *strings.Builder, digits string, size int, group rune) {
	if size <= 0 || len(digits) <= size {
		b.WriteString(digits)
		return
	}

	head := len(digits) % size
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += size {
		if i > 0 {
			b.WriteRune(group)
		}
		b.WriteString(digits[i : i+size])
	}
}

// Parse reads text written by Format. Group separators are accepted anywhere
// in the integer part. The prefix and suffix must match exactly.
func (f *NumberFormat) Parse(text string, sym Symbols) (decimal.Decimal, error) {
	s := text
	neg := false
	if r, size := utf8.DecodeRuneInString(s); r == sym.Minus || r == '-' {
		neg = true
		s = s[size:]
	}

	if !strings.HasPrefix(s, f.prefix) || !strings.HasSuffix(s[len(f.prefix):], f.suffix) {
		return decimal.Zero, fmt.Errorf("%w: %q does not match pattern %q", errs.ErrMalformedField, text, f.pattern)
	}
	s = s[len(f.prefix) : len(s)-len(f.suffix)]

	b := strings.Builder{}
	b.Grow(len(s) + 1)
	if neg {
		b.WriteByte('-')
	}
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		case r == sym.Decimal:
			points++
			b.WriteByte('.')
		case r == sym.Group:
			if points > 0 {
				return decimal.Zero, fmt.Errorf("%w: %q has a group separator in the fraction", errs.ErrMalformedField, text)
			}
		default:
			return decimal.Zero, fmt.Errorf("%w: unexpected %q in %q", errs.ErrMalformedField, r, text)
		}
	}
	if digits == 0 || points > 1 {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", errs.ErrMalformedField, text)
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", errs.ErrMalformedField, err)
	}
	if f.percent {
		d = d.Shift(-2)
	}

	return d, nil
}
