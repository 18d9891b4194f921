package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/format"
)

// Codec wraps a record stream in a compression format.
//
// Closing a stream returned by NewWriter flushes the compressed trailer but
// never closes the wrapped io.Writer; closing a stream returned by NewReader
// releases decoder resources but never closes the wrapped io.Reader. The
// owner of the underlying sink or source stays responsible for it.
//
// Codec values are stateless and safe for concurrent use.
type Codec interface {
	// Type returns the compression type implemented by this codec.
	Type() format.CompressionType

	// NewWriter returns a stream that compresses everything written to it into w.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// NewReader returns a stream that decompresses r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
	format.CompressionXZ:   NewXZCodec(),
}

// GetCodec returns the built-in codec for compressionType.
//
// Returns an error wrapping errs.ErrUnsupportedCodec for unknown types.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, compressionType)
}

// readCloser adapts decoders without a Close method, or with a Close method
// that does not return an error.
type readCloser struct {
	io.Reader
	close func()
}

func (rc readCloser) Close() error {
	if rc.close != nil {
		rc.close()
	}

	return nil
}
