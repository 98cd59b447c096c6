// Package compress provides optional, transparent compression for blobs
// held by a spatiotemporal index.
//
// Compression is a storage-layer decision made once, at session creation
// (see session.WithCompression), and never changes what a query returns:
// a blob retrieved by QueryMetadata is byte-for-byte identical to the one
// originally passed to InsertMetadata. Structural length validation (§4.4)
// always runs against the uncompressed bytes, before Compress is called.
//
// Four algorithms are available:
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression ratio
package compress
