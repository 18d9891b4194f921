package pool

import (
	"io"
	"sync"
	"unicode/utf8"
)

const (
	RecordBufferDefaultSize  = 1024 * 4  // 4KiB covers most delimited records
	RecordBufferMaxThreshold = 1024 * 64 // buffers grown past 64KiB are dropped
)

// ByteBuffer is an append-only byte slice used to assemble one record (or one
// decoded field) before it is handed to the sink.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffered bytes. The slice is only valid until the next write.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// String returns a copy of the buffered bytes.
func (bb *ByteBuffer) String() string {
	return string(bb.B)
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Write appends data. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteString appends s. It never fails.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// WriteByte appends c. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteRune appends the UTF-8 encoding of r.
func (bb *ByteBuffer) WriteRune(r rune) (int, error) {
	n := len(bb.B)
	bb.B = utf8.AppendRune(bb.B, r)

	return len(bb.B) - n, nil
}

// WriteTo writes the buffered bytes to w. The buffer is left untouched.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers. Buffers that grew past maxThreshold
// are not returned to the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose new buffers start at defaultSize bytes.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put recycles bb. Nil and oversized buffers are dropped.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var recordPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)

// GetRecordBuffer takes a buffer from the shared record pool.
func GetRecordBuffer() *ByteBuffer {
	return recordPool.Get()
}

// PutRecordBuffer returns a buffer to the shared record pool.
func PutRecordBuffer(bb *ByteBuffer) {
	recordPool.Put(bb)
}
