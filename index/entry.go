// Package index provides the spatiotemporal metadata store: two
// interchangeable backends (BulkScan and RTree) over a common Index
// contract, storing owned, optionally-compressed copies of caller blobs
// keyed by a 4-D bounding box and designation.
package index

import (
	"fmt"

	"github.com/sandialabs/elucidator-go/compress"
	"github.com/sandialabs/elucidator-go/format"
	"github.com/sandialabs/elucidator-go/geom"
)

// Entry is one stored (bbox, designation, blob) triple. Blob holds the
// stored, in-memory form of the payload: compressed bytes when Compression
// is not format.CompressionNone, raw bytes otherwise.
type Entry struct {
	BBox        geom.BoundingBox
	Designation string
	Blob        []byte
	Compression format.CompressionType
}

// Index is the contract shared by BulkScan and RTree: both backends must
// return identical result sets for identical insertion histories and
// queries, differing only in algorithmic complexity.
type Index interface {
	// Insert stores an owned copy of blob, compressed per codec if codec is
	// non-nil. bbox must already be validated by the caller.
	Insert(bbox geom.BoundingBox, designation string, blob []byte, codec compress.Codec, ct format.CompressionType) error

	// Query returns decompressed, owned copies of every stored blob whose
	// designation matches and whose bbox is contained in queryBBox expanded
	// by epsilon. An empty result is success, never an error.
	Query(queryBBox geom.BoundingBox, designation string, epsilon float64, codecs func(format.CompressionType) (compress.Codec, error)) ([][]byte, error)

	// Len returns the number of stored entries, for diagnostics.
	Len() int
}

func decompress(e Entry, codecs func(format.CompressionType) (compress.Codec, error)) ([]byte, error) {
	if e.Compression == 0 || e.Compression == format.CompressionNone {
		out := make([]byte, len(e.Blob))
		copy(out, e.Blob)

		return out, nil
	}

	codec, err := codecs(e.Compression)
	if err != nil {
		return nil, fmt.Errorf("index: resolve codec for entry: %w", err)
	}

	out, err := codec.Decompress(e.Blob)
	if err != nil {
		return nil, fmt.Errorf("index: decompress entry: %w", err)
	}

	return out, nil
}

func compressBlob(blob []byte, codec compress.Codec) ([]byte, error) {
	if codec == nil {
		out := make([]byte, len(blob))
		copy(out, blob)

		return out, nil
	}

	out, err := codec.Compress(blob)
	if err != nil {
		return nil, fmt.Errorf("index: compress entry: %w", err)
	}

	owned := make([]byte, len(out))
	copy(owned, out)

	return owned, nil
}
