package delimited

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/arloliu/dtext/compress"
	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/format"
	"github.com/arloliu/dtext/internal/options"
)

// DefaultFieldSeparator is the field separator used when none is configured.
const DefaultFieldSeparator = '\t'

// WriterConfig holds the configuration of a FieldWriter.
type WriterConfig struct {
	fieldSeparator rune
	lineSeparator  format.LineSeparator
	transform      FieldTransform
	codec          compress.Codec
	logger         *slog.Logger
}

// NewWriterConfig creates a WriterConfig with TAB-separated fields, Unix line
// endings and no compression.
func NewWriterConfig() *WriterConfig {
	return &WriterConfig{
		fieldSeparator: DefaultFieldSeparator,
		lineSeparator:  format.LineSeparatorUnix,
		codec:          compress.NewNoOpCodec(),
		logger:         discardLogger,
	}
}

// FieldSeparator returns the configured field separator.
func (c *WriterConfig) FieldSeparator() rune {
	return c.fieldSeparator
}

// LineSeparator returns the configured record terminator.
func (c *WriterConfig) LineSeparator() format.LineSeparator {
	return c.lineSeparator
}

// Compression returns the configured compression type.
func (c *WriterConfig) Compression() format.CompressionType {
	return c.codec.Type()
}

func (c *WriterConfig) setFieldSeparator(sep rune) error {
	if err := checkSeparator(sep); err != nil {
		return err
	}
	c.fieldSeparator = sep

	return nil
}

func (c *WriterConfig) setLineSeparator(ls format.LineSeparator) error {
	switch ls {
	case format.LineSeparatorUnix, format.LineSeparatorWindows:
		c.lineSeparator = ls
		return nil
	default:
		return fmt.Errorf("%w: %v", errs.ErrInvalidLineBreak, ls)
	}
}

func (c *WriterConfig) setCompression(ct format.CompressionType) error {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return err
	}
	c.codec = codec

	return nil
}

// validate checks the separator against the escape table in use.
func (c *WriterConfig) validate(table *escape.Table) error {
	return checkSeparatorAgainst(c.fieldSeparator, table)
}

// WriterOption is a functional option for configuring FieldWriter.
type WriterOption = options.Option[*WriterConfig]

// WithFieldSeparator sets the field separator. CR, LF and invalid runes are rejected.
// Default is TAB.
func WithFieldSeparator(sep rune) WriterOption {
	return options.New(func(c *WriterConfig) error {
		return c.setFieldSeparator(sep)
	})
}

// WithLineSeparator sets the record terminator.
// Default is format.LineSeparatorUnix.
func WithLineSeparator(ls format.LineSeparator) WriterOption {
	return options.New(func(c *WriterConfig) error {
		return c.setLineSeparator(ls)
	})
}

// WithTransform installs a function applied to the text of every non-null field.
func WithTransform(fn FieldTransform) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.transform = fn
	})
}

// WithCompression compresses the written stream.
// Default is format.CompressionNone.
func WithCompression(ct format.CompressionType) WriterOption {
	return options.New(func(c *WriterConfig) error {
		return c.setCompression(ct)
	})
}

// WithLogger sets the logger used for diagnostics. A nil logger disables logging.
func WithLogger(logger *slog.Logger) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	})
}

var discardLogger = slog.New(slog.DiscardHandler)

func checkSeparator(sep rune) error {
	if sep == '\r' || sep == '\n' {
		return fmt.Errorf("%w: %q is a line break", errs.ErrInvalidSeparator, sep)
	}
	if sep < 0 || sep == utf8.RuneError || !utf8.ValidRune(sep) {
		return fmt.Errorf("%w: %U", errs.ErrInvalidSeparator, sep)
	}

	return nil
}

func checkSeparatorAgainst(sep rune, table *escape.Table) error {
	if table.IsEscape(sep) {
		return fmt.Errorf("%w: %q", errs.ErrSeparatorIsEscape, sep)
	}

	return nil
}
