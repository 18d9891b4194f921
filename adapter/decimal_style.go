package adapter

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arloliu/dtext/format"
)

// formatDecimal renders d in the given style. The coefficient and exponent
// are kept as stored, so trailing zeros of the scale are preserved.
//
//   - StyleDefault: plain when the exponent is non-positive and the adjusted
//     exponent is at least -6, otherwise scientific ("1.2E+11")
//   - StylePlain: never uses an exponent
//   - StyleEngineering: like StyleDefault, with exponents that are multiples of three
func formatDecimal(d decimal.Decimal, style format.OutputStyle) string {
	coef := d.Coefficient()
	neg := coef.Sign() < 0
	digits := new(big.Int).Abs(coef).String()
	scale := -int64(d.Exponent())

	var body string
	if style == format.StylePlain {
		body = plainString(digits, scale)
	} else {
		body = layoutString(digits, scale, coef.Sign() == 0, style != format.StyleEngineering)
	}

	if neg {
		return "-" + body
	}

	return body
}

func plainString(digits string, scale int64) string {
	switch {
	case scale == 0:
		return digits
	case scale < 0:
		if digits == "0" {
			return "0"
		}

		return digits + strings.Repeat("0", int(-scale))
	default:
		return insertPoint(digits, scale)
	}
}

// insertPoint places a decimal point scale digits from the right, padding with zeros.
func insertPoint(digits string, scale int64) string {
	pad := scale - int64(len(digits))
	if pad >= 0 {
		return "0." + strings.Repeat("0", int(pad)) + digits
	}
	cut := len(digits) - int(scale)

	return digits[:cut] + "." + digits[cut:]
}

func layoutString(digits string, scale int64, zero, scientific bool) string {
	if scale == 0 {
		return digits
	}

	adjusted := -scale + int64(len(digits)-1)
	if scale > 0 && adjusted >= -6 {
		return insertPoint(digits, scale)
	}

	b := strings.Builder{}
	if scientific {
		b.WriteByte(digits[0])
		if len(digits) > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
	} else {
		sig := adjusted % 3
		if sig < 0 {
			sig += 3
		}
		adjusted -= sig
		sig++

		switch {
		case zero:
			switch sig {
			case 1:
				b.WriteByte('0')
			case 2:
				b.WriteString("0.00")
				adjusted += 3
			case 3:
				b.WriteString("0.0")
				adjusted += 3
			}
		case int(sig) >= len(digits):
			b.WriteString(digits)
			b.WriteString(strings.Repeat("0", int(sig)-len(digits)))
		default:
			b.WriteString(digits[:sig])
			b.WriteByte('.')
			b.WriteString(digits[sig:])
		}
	}

	if adjusted != 0 {
		b.WriteByte('E')
		if adjusted > 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.FormatInt(adjusted, 10))
	}

	return b.String()
}
