package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/dtext/format"
)

type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates an S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns format.CompressionS2.
func (S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// NewWriter returns an S2 stream writer. Close flushes the last block.
func (S2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
}

// NewReader returns an S2 stream reader.
func (S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return readCloser{Reader: s2.NewReader(r)}, nil
}
