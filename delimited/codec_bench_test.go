package delimited

import (
	"bytes"
	"io"
	"strconv"
	"testing"

	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/format"
)

func benchRecord() []Field {
	return []Field{
		Text("2025-01-02 15:04:05"),
		Text("sensor-0042"),
		Text("temperature reading\twith a tab"),
		Null(),
		Text(strconv.FormatFloat(21.375, 'f', -1, 64)),
	}
}

func BenchmarkFieldWriter_WriteRecord(b *testing.B) {
	record := benchRecord()

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2} {
		b.Run(ct.String(), func(b *testing.B) {
			w, err := NewFieldWriter(io.Discard, escape.Default(), WithCompression(ct))
			if err != nil {
				b.Fatal(err)
			}
			defer w.Close()

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if err := w.WriteRecord(record...); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFieldReader_Next(b *testing.B) {
	buf := &bytes.Buffer{}
	w, err := NewFieldWriter(buf, escape.Default())
	if err != nil {
		b.Fatal(err)
	}
	for range 1000 {
		if err := w.WriteRecord(benchRecord()...); err != nil {
			b.Fatal(err)
		}
	}
	_ = w.Close()
	data := buf.Bytes()

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		r, err := NewFieldReader(bytes.NewReader(data), escape.Default())
		if err != nil {
			b.Fatal(err)
		}
		if _, err := r.ReadAll(); err != nil {
			b.Fatal(err)
		}
		_ = r.Close()
	}
}
