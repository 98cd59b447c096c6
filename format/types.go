// Package format defines the small value types shared between the
// spatiotemporal index and the blob compression layer.
package format

// CompressionType selects the algorithm used to compress stored blob
// payloads in the spatiotemporal index. It never affects the blob bytes a
// caller sees back from a query; compression is purely an at-rest
// storage decision made at session-creation time.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores blobs uncompressed.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
