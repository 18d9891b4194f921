package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/dtext/format"
)

type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates an LZ4 frame codec.
//
// Returns:
//   - LZ4Codec: New LZ4 codec instance
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Type returns format.CompressionLZ4.
func (LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}

// NewWriter returns an LZ4 frame writer. Close writes the frame footer.
func (LZ4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

// NewReader returns an LZ4 frame reader.
func (LZ4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return readCloser{Reader: lz4.NewReader(r)}, nil
}
