package adapter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/arloliu/dtext/errs"
)

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64
}

type intCodec[T integer] struct {
	bits int
}

func (c intCodec[T]) decode(text string, cfg *Config) (T, error) {
	if cfg.number == nil {
		v, err := strconv.ParseInt(cfg.symbols.delocalize(text), 10, c.bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, c.overflow(text)
			}

			return 0, fmt.Errorf("%w: %q is not an integer", errs.ErrMalformedField, text)
		}

		return T(v), nil
	}

	d, err := cfg.number.Parse(text, cfg.symbols)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %q is not an integer", errs.ErrMalformedField, text)
	}

	lo := int64(-1) << (c.bits - 1)
	hi := -(lo + 1)
	if d.LessThan(decimal.NewFromInt(lo)) || d.GreaterThan(decimal.NewFromInt(hi)) {
		return 0, c.overflow(text)
	}

	return T(d.IntPart()), nil
}

func (c intCodec[T]) encode(v T, cfg *Config) string {
	if cfg.number != nil {
		return cfg.number.Format(decimal.NewFromInt(int64(v)), cfg.symbols)
	}

	return cfg.symbols.localize(strconv.FormatInt(int64(v), 10))
}

func (c intCodec[T]) overflow(text string) error {
	return fmt.Errorf("%w: %w: %q does not fit in int%d", errs.ErrMalformedField, errs.ErrFieldOverflow, text, c.bits)
}

// NewInt8 creates an adapter for 8-bit integers.
func NewInt8(opts ...Option) (*FieldAdapter[int8], error) {
	return newAdapter[int8](intCodec[int8]{bits: 8}, newConfig(""), false, opts)
}

// NewInt16 creates an adapter for 16-bit integers.
func NewInt16(opts ...Option) (*FieldAdapter[int16], error) {
	return newAdapter[int16](intCodec[int16]{bits: 16}, newConfig(""), false, opts)
}

// NewInt32 creates an adapter for 32-bit integers.
func NewInt32(opts ...Option) (*FieldAdapter[int32], error) {
	return newAdapter[int32](intCodec[int32]{bits: 32}, newConfig(""), false, opts)
}

// NewInt64 creates an adapter for 64-bit integers.
func NewInt64(opts ...Option) (*FieldAdapter[int64], error) {
	return newAdapter[int64](intCodec[int64]{bits: 64}, newConfig(""), false, opts)
}
