package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"

	"github.com/arloliu/dtext/errs"
)

// Default time layouts.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

type boolCodec struct{}

func (boolCodec) decode(text string, cfg *Config) (bool, error) {
	switch {
	case strings.EqualFold(text, cfg.trueText):
		return true, nil
	case strings.EqualFold(text, cfg.falseText):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is neither %q nor %q", errs.ErrMalformedField, text, cfg.trueText, cfg.falseText)
	}
}

func (boolCodec) encode(v bool, cfg *Config) string {
	if v {
		return cfg.trueText
	}

	return cfg.falseText
}

// NewBool creates an adapter for booleans.
func NewBool(opts ...Option) (*FieldAdapter[bool], error) {
	return newAdapter[bool](boolCodec{}, newConfig(""), false, opts)
}

type timeCodec struct{}

func (timeCodec) decode(text string, cfg *Config) (time.Time, error) {
	t, err := time.ParseInLocation(cfg.layout, text, cfg.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", errs.ErrMalformedField, err)
	}

	return t, nil
}

func (timeCodec) encode(v time.Time, cfg *Config) string {
	return v.In(cfg.location).Format(cfg.layout)
}

// NewDate creates an adapter for calendar dates, "2006-01-02" by default.
func NewDate(opts ...Option) (*FieldAdapter[time.Time], error) {
	return newAdapter[time.Time](timeCodec{}, newConfig(DateLayout), false, opts)
}

// NewDateTime creates an adapter for timestamps, "2006-01-02 15:04:05" by default.
func NewDateTime(opts ...Option) (*FieldAdapter[time.Time], error) {
	return newAdapter[time.Time](timeCodec{}, newConfig(DateTimeLayout), false, opts)
}

type stringCodec struct{}

func (stringCodec) decode(text string, _ *Config) (string, error) { return text, nil }

func (stringCodec) encode(v string, _ *Config) string { return v }

// NewString creates an adapter for text. Empty text is an empty string
// unless it is the null format.
func NewString(opts ...Option) (*FieldAdapter[string], error) {
	return newAdapter[string](stringCodec{}, newConfig(""), true, opts)
}

type uuidCodec struct{}

func (uuidCodec) decode(text string, _ *Config) (uuid.UUID, error) {
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", errs.ErrMalformedField, err)
	}

	return id, nil
}

func (uuidCodec) encode(v uuid.UUID, _ *Config) string {
	return v.String()
}

// NewUUID creates an adapter for UUIDs in their canonical 36-character form.
func NewUUID(opts ...Option) (*FieldAdapter[uuid.UUID], error) {
	return newAdapter[uuid.UUID](uuidCodec{}, newConfig(""), false, opts)
}

type ksuidCodec struct{}

func (ksuidCodec) decode(text string, _ *Config) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(text)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("%w: %w", errs.ErrMalformedField, err)
	}

	return id, nil
}

func (ksuidCodec) encode(v ksuid.KSUID, _ *Config) string {
	return v.String()
}

// NewKSUID creates an adapter for KSUIDs in their 27-character base62 form.
func NewKSUID(opts ...Option) (*FieldAdapter[ksuid.KSUID], error) {
	return newAdapter[ksuid.KSUID](ksuidCodec{}, newConfig(""), false, opts)
}
