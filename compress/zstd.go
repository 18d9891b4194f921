package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/dtext/format"
)

// ZstdCodec provides Zstandard stream compression.
//
// Zstd gives the best ratio of the built-in codecs on delimited text and is
// the usual choice for files kept at rest.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}

// NewWriter returns a Zstd encoder writing frames to w.
func (ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1), // one record stream, one goroutine
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}

	return enc, nil
}

// NewReader returns a Zstd decoder reading from r.
func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return readCloser{Reader: dec, close: dec.Close}, nil
}
