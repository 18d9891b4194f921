package compress

import (
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/arloliu/dtext/format"
)

// XZCodec provides xz (LZMA2) stream compression, for exchanging files with
// tools that expect .xz archives.
type XZCodec struct{}

var _ Codec = XZCodec{}

// NewXZCodec creates an xz codec.
func NewXZCodec() XZCodec {
	return XZCodec{}
}

// Type returns format.CompressionXZ.
func (XZCodec) Type() format.CompressionType {
	return format.CompressionXZ
}

// NewWriter returns an xz writer. Close writes the stream footer.
func (XZCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("xz encoder: %w", err)
	}

	return xw, nil
}

// NewReader returns an xz reader. It fails if r does not start with an xz header.
func (XZCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz decoder: %w", err)
	}

	return readCloser{Reader: xr}, nil
}
