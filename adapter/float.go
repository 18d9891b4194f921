package adapter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arloliu/dtext/errs"
)

type float interface {
	~float32 | ~float64
}

type floatCodec[T float] struct {
	bits int
}

func (c floatCodec[T]) decode(text string, cfg *Config) (T, error) {
	sym := cfg.symbols
	switch text {
	case sym.NaN:
		return T(math.NaN()), nil
	case sym.Infinity, "+" + sym.Infinity:
		return T(math.Inf(1)), nil
	case string(sym.Minus) + sym.Infinity, "-" + sym.Infinity:
		return T(math.Inf(-1)), nil
	}

	if cfg.number != nil {
		d, err := cfg.number.Parse(text, sym)
		if err != nil {
			return 0, err
		}
		f, _ := d.Float64()
		if c.bits == 32 && math.Abs(f) > math.MaxFloat32 {
			return 0, c.overflow(text)
		}

		return T(f), nil
	}

	// strconv also accepts "inf" and "nan"; only the locale texts above are valid here
	canonical := sym.delocalize(text)
	if lower := strings.ToLower(strings.TrimLeft(canonical, "+-")); strings.HasPrefix(lower, "inf") || lower == "nan" {
		return 0, fmt.Errorf("%w: %q is not a number", errs.ErrMalformedField, text)
	}

	f, err := strconv.ParseFloat(canonical, c.bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return 0, c.overflow(text)
		}
		if !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q is not a number", errs.ErrMalformedField, text)
		}
		// underflow to zero is accepted
	}

	return T(f), nil
}

func (c floatCodec[T]) encode(v T, cfg *Config) string {
	f := float64(v)
	sym := cfg.symbols
	switch {
	case math.IsNaN(f):
		return sym.NaN
	case math.IsInf(f, 1):
		return sym.Infinity
	case math.IsInf(f, -1):
		return string(sym.Minus) + sym.Infinity
	}

	if cfg.number != nil {
		var d decimal.Decimal
		if c.bits == 32 {
			d = decimal.NewFromFloat32(float32(v))
		} else {
			d = decimal.NewFromFloat(f)
		}

		return cfg.number.Format(d, sym)
	}

	return sym.localize(strconv.FormatFloat(f, 'g', -1, c.bits))
}

func (c floatCodec[T]) overflow(text string) error {
	return fmt.Errorf("%w: %w: %q does not fit in float%d", errs.ErrMalformedField, errs.ErrFieldOverflow, text, c.bits)
}

// NewFloat32 creates an adapter for 32-bit floating point numbers.
// NaN and infinities are written with the configured Symbols.
func NewFloat32(opts ...Option) (*FieldAdapter[float32], error) {
	return newAdapter[float32](floatCodec[float32]{bits: 32}, newConfig(""), false, opts)
}

// NewFloat64 creates an adapter for 64-bit floating point numbers.
// NaN and infinities are written with the configured Symbols.
func NewFloat64(opts ...Option) (*FieldAdapter[float64], error) {
	return newAdapter[float64](floatCodec[float64]{bits: 64}, newConfig(""), false, opts)
}
