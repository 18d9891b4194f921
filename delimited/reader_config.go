package delimited

import (
	"log/slog"

	"github.com/arloliu/dtext/compress"
	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/format"
	"github.com/arloliu/dtext/internal/options"
)

// ReaderConfig holds the configuration of a FieldReader.
type ReaderConfig struct {
	fieldSeparator  rune
	fieldsPerRecord int
	codec           compress.Codec
	logger          *slog.Logger
}

// NewReaderConfig creates a ReaderConfig with TAB-separated fields, no
// compression, and a field count learned from the first record.
func NewReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		fieldSeparator: DefaultFieldSeparator,
		codec:          compress.NewNoOpCodec(),
		logger:         discardLogger,
	}
}

// FieldSeparator returns the configured field separator.
func (c *ReaderConfig) FieldSeparator() rune {
	return c.fieldSeparator
}

// FieldsPerRecord returns the expected number of fields per record.
func (c *ReaderConfig) FieldsPerRecord() int {
	return c.fieldsPerRecord
}

func (c *ReaderConfig) validate(table *escape.Table) error {
	return checkSeparatorAgainst(c.fieldSeparator, table)
}

// ReaderOption is a functional option for configuring FieldReader.
type ReaderOption = options.Option[*ReaderConfig]

// WithReaderFieldSeparator sets the field separator. It must match the writer's.
// Default is TAB.
func WithReaderFieldSeparator(sep rune) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if err := checkSeparator(sep); err != nil {
			return err
		}
		c.fieldSeparator = sep

		return nil
	})
}

// WithFieldsPerRecord sets the expected number of fields per record.
//
// A positive n requires every record to have exactly n fields. Zero (the
// default) takes the count from the first record. A negative n disables the check.
func WithFieldsPerRecord(n int) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.fieldsPerRecord = n
	})
}

// WithReaderCompression decompresses the source stream.
// Default is format.CompressionNone.
func WithReaderCompression(ct format.CompressionType) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		c.codec = codec

		return nil
	})
}

// WithReaderLogger sets the logger. A nil logger disables logging.
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	})
}
