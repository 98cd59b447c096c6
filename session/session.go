// Package session implements the per-caller unit of registry + index state:
// a Session registers specifications, stores metadata blobs against a 4-D
// bounding box, and answers bounding-box queries filtered by designation.
package session

import (
	"fmt"
	"sync"

	"github.com/sandialabs/elucidator-go/codec"
	"github.com/sandialabs/elucidator-go/compress"
	"github.com/sandialabs/elucidator-go/endian"
	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/format"
	"github.com/sandialabs/elucidator-go/geom"
	"github.com/sandialabs/elucidator-go/index"
	"github.com/sandialabs/elucidator-go/internal/options"
	"github.com/sandialabs/elucidator-go/registry"
	"github.com/sandialabs/elucidator-go/spec"
)

// Session bundles one caller's registry and spatiotemporal index. All
// exported methods are safe for concurrent use: a single RWMutex serializes
// mutation (AddSpec, InsertMetadata) against queries (QueryMetadata), since
// both the registry and the index backends are mutated in place.
//
// Session itself holds no process-wide handle; the handle package maps an
// opaque caller-visible integer to a *Session.
type Session struct {
	mu       sync.RWMutex
	registry *registry.Registry
	idx      index.Index
	cfg      *config
}

// New constructs a Session with the given options applied. The default
// configuration uses BackendBulkScan with no compression.
func New(opts ...Option) (*Session, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var idx index.Index
	switch cfg.backend {
	case BackendRTree:
		idx = index.NewRTree()
	default:
		idx = index.NewBulkScan()
	}

	return &Session{registry: registry.New(), idx: idx, cfg: cfg}, nil
}

// AddSpec parses specText and registers the resulting Specification under
// designation. It fails with the parser's own errors if specText is
// malformed, or errs.ErrDuplicateDesignation if designation is already
// registered.
func (s *Session) AddSpec(designation, specText string) error {
	parsed, err := spec.ParseMembers(specText)
	if err != nil {
		// specText may also be given in full form (designation(...)); retry
		// as a full parse so callers aren't forced to strip the designation
		// themselves.
		full, fullErr := spec.Parse(specText)
		if fullErr != nil {
			return err
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		return s.registry.Add(designation, full)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.Add(designation, &spec.Specification{Designation: designation, Members: parsed})
}

// InsertMetadata stores an owned, optionally compressed copy of blob in the
// index under bbox and designation. designation must already be registered
// via AddSpec; blob's length must exactly match the registered
// specification's wire layout (its static size plus every dynamic/string
// component's actual declared length) — a cheap prefix-based check, not a
// full decode, per the member-by-member rule in codec.ExpectedLength.
func (s *Session) InsertMetadata(bbox geom.BoundingBox, designation string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, err := s.registry.Get(designation)
	if err != nil {
		return err
	}

	want, err := codec.ExpectedLength(sp, blob, endian.GetLittleEndianEngine())
	if err != nil {
		return fmt.Errorf("%w: designation %q: %v", errs.ErrInvalidBlobLength, designation, err)
	}

	if len(blob) != want {
		return fmt.Errorf("%w: designation %q needs exactly %d bytes, got %d", errs.ErrInvalidBlobLength, designation, want, len(blob))
	}

	return s.idx.Insert(bbox, designation, blob, s.cfg.codec, s.cfg.compression)
}

// QueryMetadata returns owned copies of every blob stored under
// designation whose bounding box is contained in bbox expanded by epsilon.
// An empty result is success, never an error. designation must already be
// registered via AddSpec.
func (s *Session) QueryMetadata(bbox geom.BoundingBox, designation string, epsilon float64) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.registry.Has(designation) {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownDesignation, designation)
	}

	return s.idx.Query(bbox, designation, epsilon, func(ct format.CompressionType) (compress.Codec, error) {
		return compress.GetCodec(ct)
	})
}

// Registry exposes the session's designation registry for inspection
// (debug printers, abi layer introspection). Callers must not rely on the
// returned pointer surviving a future Session redesign; it is exposed for
// read-only use only.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

// Len returns the number of entries currently stored in the index.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.idx.Len()
}
