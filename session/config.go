package session

import (
	"github.com/sandialabs/elucidator-go/compress"
	"github.com/sandialabs/elucidator-go/format"
	"github.com/sandialabs/elucidator-go/internal/options"
)

// Backend selects the spatiotemporal index implementation a Session uses.
type Backend uint8

const (
	// BackendBulkScan is an O(1) insert, O(n) query linear scan. The
	// default: simplest to reason about, and fast enough until a session
	// holds many thousands of entries.
	BackendBulkScan Backend = iota
	// BackendRTree is a 4-D R-tree: a query only visits nodes overlapping
	// the search box. Insert is not O(log n): after descending to a leaf it
	// locates each ancestor by searching from the root, which costs time
	// linear in the number of tree nodes.
	BackendRTree
)

// config holds a Session's construction-time configuration, built up by
// applying Option values.
type config struct {
	backend     Backend
	compression format.CompressionType
	codec       compress.Codec
}

func newConfig() *config {
	return &config{backend: BackendBulkScan, compression: format.CompressionNone}
}

// Option represents a functional option for configuring a Session at
// construction time.
type Option = options.Option[*config]

// WithBackend selects the index backend a session uses. The default is
// BackendBulkScan.
func WithBackend(b Backend) Option {
	return options.NoError(func(c *config) {
		c.backend = b
	})
}

// WithCompression transparently compresses every stored blob with the
// given algorithm. Compression never affects what a query returns — blobs
// are decompressed before being handed back to the caller — it only
// changes how they are held at rest in the index.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}

		c.compression = ct
		c.codec = codec

		return nil
	})
}
