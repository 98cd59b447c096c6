package index

import (
	"fmt"

	"github.com/sandialabs/elucidator-go/compress"
	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/format"
	"github.com/sandialabs/elucidator-go/geom"
)

// BulkScan is the simplest backend: an ordered slice of Entry. Insert is
// O(1) amortized; Query is O(n), scanning every entry and keeping those
// whose designation matches and whose bbox is contained in the expanded
// query box.
type BulkScan struct {
	entries []Entry
}

// NewBulkScan returns an empty BulkScan index.
func NewBulkScan() *BulkScan {
	return &BulkScan{}
}

func (b *BulkScan) Insert(bbox geom.BoundingBox, designation string, blob []byte, codec compress.Codec, ct format.CompressionType) error {
	stored, err := compressBlob(blob, codec)
	if err != nil {
		return err
	}

	b.entries = append(b.entries, Entry{BBox: bbox, Designation: designation, Blob: stored, Compression: ct})

	return nil
}

func (b *BulkScan) Query(queryBBox geom.BoundingBox, designation string, epsilon float64, codecs func(format.CompressionType) (compress.Codec, error)) ([][]byte, error) {
	if epsilon < 0 {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEpsilon, epsilon)
	}

	var results [][]byte

	for _, e := range b.entries {
		if e.Designation != designation {
			continue
		}

		if !queryBBox.Contains(e.BBox, epsilon) {
			continue
		}

		blob, err := decompress(e, codecs)
		if err != nil {
			return nil, err
		}

		results = append(results, blob)
	}

	return results, nil
}

func (b *BulkScan) Len() int {
	return len(b.entries)
}
