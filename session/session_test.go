package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/format"
	"github.com/sandialabs/elucidator-go/geom"
)

func TestSession_InsertQueryCycle(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	require.NoError(t, s.AddSpec("state", "hits:u64,misses:u64"))

	bbox, err := geom.NewBoundingBox(geom.Point{X: -1, Y: -1, Z: -1, T: 0}, geom.Point{X: 1, Y: 1, Z: 1, T: 0})
	require.NoError(t, err)

	blob := []byte{7, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, 0, 0, 0, 0}
	require.NoError(t, s.InsertMetadata(bbox, "state", blob))

	results, err := s.QueryMetadata(bbox, "state", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, blob, results[0])
}

func TestSession_EpsilonSlack(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.AddSpec("marker", ""))

	stored, err := geom.NewBoundingBox(geom.Point{T: 5}, geom.Point{T: 5})
	require.NoError(t, err)
	require.NoError(t, s.InsertMetadata(stored, "marker", nil))

	query, err := geom.NewBoundingBox(geom.Point{T: 0}, geom.Point{T: 4})
	require.NoError(t, err)

	results, err := s.QueryMetadata(query, "marker", 0)
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = s.QueryMetadata(query, "marker", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSession_UnknownDesignation(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	bbox, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})

	_, err = s.QueryMetadata(bbox, "nope", 0)
	require.ErrorIs(t, err, errs.ErrUnknownDesignation)

	err = s.InsertMetadata(bbox, "nope", nil)
	require.ErrorIs(t, err, errs.ErrUnknownDesignation)
}

func TestSession_InvalidBlobLength(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.AddSpec("state", "hits:u64,misses:u64"))

	bbox, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})

	err = s.InsertMetadata(bbox, "state", []byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidBlobLength)
}

func TestSession_InvalidBlobLength_OverLength(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.AddSpec("state", "hits:u64,misses:u64"))

	bbox, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})

	err = s.InsertMetadata(bbox, "state", make([]byte, 17))
	require.ErrorIs(t, err, errs.ErrInvalidBlobLength)
}

func TestSession_InvalidBlobLength_BadDynamicPrefix(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.AddSpec("frame", "payload:u8[]"))

	bbox, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})

	// length prefix claims 5 bytes of payload, but only 2 trailing bytes follow
	blob := []byte{5, 0, 0, 0, 0, 0, 0, 0, 1, 2}
	err = s.InsertMetadata(bbox, "frame", blob)
	require.ErrorIs(t, err, errs.ErrInvalidBlobLength)
}

func TestSession_NegativeEpsilon(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.AddSpec("state", "hits:u64"))

	bbox, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})
	require.NoError(t, s.InsertMetadata(bbox, "state", make([]byte, 8)))

	_, err = s.QueryMetadata(bbox, "state", -1)
	require.ErrorIs(t, err, errs.ErrInvalidEpsilon)
}

func TestSession_DuplicateDesignation(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.AddSpec("state", "hits:u64"))

	err = s.AddSpec("state", "hits:u64")
	require.ErrorIs(t, err, errs.ErrDuplicateDesignation)
}

func TestSession_WithBackend_RTree(t *testing.T) {
	s, err := New(WithBackend(BackendRTree))
	require.NoError(t, err)
	require.NoError(t, s.AddSpec("state", "hits:u64"))

	bbox, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})
	require.NoError(t, s.InsertMetadata(bbox, "state", make([]byte, 8)))

	results, err := s.QueryMetadata(bbox, "state", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSession_WithCompression(t *testing.T) {
	s, err := New(WithCompression(format.CompressionS2))
	require.NoError(t, err)
	require.NoError(t, s.AddSpec("state", "hits:u64"))

	bbox, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})
	payload := make([]byte, 8)
	payload[0] = 42
	require.NoError(t, s.InsertMetadata(bbox, "state", payload))

	results, err := s.QueryMetadata(bbox, "state", 0)
	require.NoError(t, err)
	require.Equal(t, payload, results[0])
}
