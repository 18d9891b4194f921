package adapter

import (
	"fmt"

	"github.com/arloliu/dtext/delimited"
	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/internal/options"
)

// textCodec converts between T and non-null field text.
type textCodec[T any] interface {
	decode(text string, cfg *Config) (T, error)
	encode(v T, cfg *Config) string
}

// FieldAdapter converts field text to and from values of T.
//
// A FieldAdapter is immutable after construction and safe for concurrent use.
type FieldAdapter[T any] struct {
	cfg        Config
	codec      textCodec[T]
	allowEmpty bool // empty text is a value, not malformed
}

func newAdapter[T any](codec textCodec[T], cfg Config, allowEmpty bool, opts []Option) (*FieldAdapter[T], error) {
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &FieldAdapter[T]{cfg: cfg, codec: codec, allowEmpty: allowEmpty}, nil
}

// Config returns the adapter configuration.
func (a *FieldAdapter[T]) Config() *Config {
	cfg := a.cfg
	return &cfg
}

// Parse converts text to a value.
//
// Text equal to the null format is null. Empty text is malformed unless it
// is the null format, except for string adapters.
//
// Returns:
//   - Nullable[T]: The value, or null when text is the null format or malformed
//   - error: nil, or an error wrapping errs.ErrMalformedField (and
//     errs.ErrFieldOverflow when a number does not fit in T)
func (a *FieldAdapter[T]) Parse(text string) (Nullable[T], error) {
	if a.cfg.hasNull && text == a.cfg.nullFormat {
		return Null[T](), nil
	}
	if text == "" && !a.allowEmpty {
		return Null[T](), fmt.Errorf("%w: empty text", errs.ErrMalformedField)
	}

	v, err := a.codec.decode(text, &a.cfg)
	if err != nil {
		return Null[T](), err
	}

	return Value(v), nil
}

// ParseField converts a field read by delimited.FieldReader. Null fields are null.
func (a *FieldAdapter[T]) ParseField(f delimited.Field) (Nullable[T], error) {
	if f.Null {
		return Null[T](), nil
	}

	return a.Parse(f.Text)
}

// Emit converts v to a field.
//
// Null values become the null format text when one is configured, and a
// null field otherwise, which the writer encodes with its null trigger.
func (a *FieldAdapter[T]) Emit(v Nullable[T]) delimited.Field {
	value, ok := v.Get()
	if !ok {
		if a.cfg.hasNull {
			return delimited.Text(a.cfg.nullFormat)
		}

		return delimited.Null()
	}

	return delimited.Text(a.codec.encode(value, &a.cfg))
}

// Format converts a non-null value to text.
func (a *FieldAdapter[T]) Format(v T) string {
	return a.codec.encode(v, &a.cfg)
}

// EmitTo writes v as the next field of w.
func (a *FieldAdapter[T]) EmitTo(w *delimited.FieldWriter, v Nullable[T]) error {
	return w.Put(a.Emit(v))
}
