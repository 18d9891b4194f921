package adapter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arloliu/dtext/errs"
)

type decimalCodec struct{}

func (decimalCodec) decode(text string, cfg *Config) (decimal.Decimal, error) {
	if cfg.number != nil {
		return cfg.number.Parse(text, cfg.symbols)
	}

	d, err := decimal.NewFromString(cfg.symbols.delocalize(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal", errs.ErrMalformedField, text)
	}

	return d, nil
}

func (decimalCodec) encode(d decimal.Decimal, cfg *Config) string {
	if cfg.number != nil {
		return cfg.number.Format(d, cfg.symbols)
	}

	return cfg.symbols.localize(formatDecimal(d, cfg.style))
}

// NewDecimal creates an adapter for arbitrary-precision decimals.
//
// Without a number format, values are written in the configured
// format.OutputStyle and parsed from plain or scientific notation.
func NewDecimal(opts ...Option) (*FieldAdapter[decimal.Decimal], error) {
	return newAdapter[decimal.Decimal](decimalCodec{}, newConfig(""), false, opts)
}
