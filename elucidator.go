// Package elucidator describes, stores, and retrieves structured byte-blob
// metadata tagged by a 4-D spatiotemporal bounding box.
//
// # Core Features
//
//   - A small specification language (see package spec) that maps a
//     designation to an ordered list of typed members
//   - A little-endian byte codec (see package codec) between a
//     Specification and concrete Go values
//   - A per-session registry of designations plus a spatiotemporal index
//     supporting bounding-box queries with an epsilon containment
//     tolerance (see packages registry, geom, index, session)
//   - Two interchangeable index backends: a linear BulkScan and a 4-D
//     R-tree
//   - A process-wide handle table and ABI-shaped surface (see packages
//     handle, abi) for foreign-language bindings
//
// # Basic Usage
//
//	import "github.com/sandialabs/elucidator-go"
//
//	s, err := elucidator.NewSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := s.AddSpec("state", "hits:u64,misses:u64"); err != nil {
//	    log.Fatal(err)
//	}
//
//	bbox, err := elucidator.NewBoundingBox(
//	    elucidator.Point{X: -1, Y: -1, Z: -1, T: 0},
//	    elucidator.Point{X: 1, Y: 1, Z: 1, T: 0},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sp, _ := spec.Parse("state(hits:u64,misses:u64)")
//	blob, _ := codec.Encode(sp, map[string]codec.Value{"hits": uint64(7), "misses": uint64(3)}, endian.GetLittleEndianEngine())
//	if err := s.InsertMetadata(bbox, "state", blob); err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := s.QueryMetadata(bbox, "state", 0)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around package
// session and package geom, simplifying the most common use case: a single
// process-local session. For advanced usage (index backend selection,
// compression, the process-wide handle table, or the ABI surface) use the
// session, index, handle, and abi packages directly.
package elucidator

import (
	"github.com/sandialabs/elucidator-go/format"
	"github.com/sandialabs/elucidator-go/geom"
	"github.com/sandialabs/elucidator-go/session"
)

// Point is a position in the 3 spatial dimensions plus time.
type Point = geom.Point

// BoundingBox is a closed, axis-aligned box in (x, y, z, t).
type BoundingBox = geom.BoundingBox

// NewBoundingBox validates min <= max on every axis and returns a
// BoundingBox, or an error wrapping errs.ErrInvalidBoundingBox if any axis
// is inverted.
func NewBoundingBox(min, max Point) (BoundingBox, error) {
	return geom.NewBoundingBox(min, max)
}

// Session is a per-caller registry of designations plus a spatiotemporal
// index over stored metadata blobs.
type Session = session.Session

// Backend selects the spatiotemporal index implementation a Session uses.
type Backend = session.Backend

const (
	BackendBulkScan = session.BackendBulkScan
	BackendRTree    = session.BackendRTree
)

// Option configures a Session at construction time.
type Option = session.Option

// WithBackend selects the index backend. The default is BackendBulkScan.
func WithBackend(b Backend) Option {
	return session.WithBackend(b)
}

// CompressionType selects the algorithm WithCompression transparently
// applies to stored blobs.
type CompressionType = format.CompressionType

const (
	CompressionNone = format.CompressionNone
	CompressionZstd = format.CompressionZstd
	CompressionS2   = format.CompressionS2
	CompressionLZ4  = format.CompressionLZ4
)

// WithCompression transparently compresses stored blobs with the given
// algorithm; see session.WithCompression.
func WithCompression(ct CompressionType) Option {
	return session.WithCompression(ct)
}

// NewSession constructs a Session with the given options applied. The
// default configuration uses BackendBulkScan with no compression.
//
// Example:
//
//	s, err := elucidator.NewSession(elucidator.WithBackend(elucidator.BackendRTree))
func NewSession(opts ...Option) (*Session, error) {
	return session.New(opts...)
}
