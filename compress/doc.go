// Package compress provides stream compression codecs for delimited record streams.
//
// A field writer configured with a compression type wraps its sink in the
// codec's writer; a field reader wraps its source in the codec's reader. The
// text layer above never sees compressed bytes, so escape tables and
// diagnostics behave identically with or without compression.
//
// # Supported Algorithms
//
//   - None: bytes pass through unchanged
//   - Zstd: best ratio, moderate speed (klauspost/compress/zstd)
//   - S2: fast, Snappy-compatible framing (klauspost/compress/s2)
//   - LZ4: fastest decompression, LZ4 frame format (pierrec/lz4/v4)
//   - XZ: LZMA2 in the .xz container, for interchange with xz tooling (ulikunitz/xz)
//
// # Algorithm Selection Guide
//
// | Workload Type          | Recommended | Reason                          |
// |------------------------|-------------|---------------------------------|
// | Files at rest          | Zstd        | Best compression ratio          |
// | Streaming ingestion    | S2          | Balanced speed and compression  |
// | Read-heavy scans       | LZ4         | Fastest decompression           |
// | External tool exchange | XZ          | Standard .xz container          |
// | CPU-constrained        | None        | No overhead                     |
//
// # Ownership
//
// Codec streams never close what they wrap. Closing the compressed writer
// writes the trailer; the caller then closes the file or connection.
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	zw, _ := codec.NewWriter(file)
//	// ... write records ...
//	_ = zw.Close()   // flush zstd frame
//	_ = file.Close() // release the file
//
// # Thread Safety
//
// Codec values are safe for concurrent use. The streams they return are not.
package compress
