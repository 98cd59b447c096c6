package index

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/format"
	"github.com/sandialabs/elucidator-go/geom"
)

func pt(x, y, z, t float64) geom.Point { return geom.Point{X: x, Y: y, Z: z, T: t} }

func bb(t *testing.T, min, max geom.Point) geom.BoundingBox {
	t.Helper()

	box, err := geom.NewBoundingBox(min, max)
	require.NoError(t, err)

	return box
}

func TestBulkScan_InsertQuery(t *testing.T) {
	idx := NewBulkScan()
	box := bb(t, pt(-1, -1, -1, 0), pt(1, 1, 1, 0))

	require.NoError(t, idx.Insert(box, "state", []byte{7, 3}, nil, format.CompressionNone))

	results, err := idx.Query(box, "state", 0, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, []byte{7, 3}, results[0])
}

func TestBulkScan_NegativeEpsilon(t *testing.T) {
	idx := NewBulkScan()
	box := bb(t, pt(0, 0, 0, 0), pt(0, 0, 0, 0))

	_, err := idx.Query(box, "x", -1, nil)
	require.ErrorIs(t, err, errs.ErrInvalidEpsilon)
}

func TestBulkScan_EpsilonSlack(t *testing.T) {
	idx := NewBulkScan()
	stored := bb(t, pt(0, 0, 0, 5), pt(0, 0, 0, 5))
	require.NoError(t, idx.Insert(stored, "x", []byte{1}, nil, format.CompressionNone))

	query := bb(t, pt(0, 0, 0, 0), pt(0, 0, 0, 4))

	results, err := idx.Query(query, "x", 0, nil)
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = idx.Query(query, "x", 1, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestBackendEquivalence(t *testing.T) {
	bulk := NewBulkScan()
	tree := NewRTree()

	entries := []struct {
		box  geom.BoundingBox
		desg string
		blob []byte
	}{
		{bb(t, pt(0, 0, 0, 0), pt(1, 1, 1, 1)), "a", []byte{1}},
		{bb(t, pt(2, 2, 2, 2), pt(3, 3, 3, 3)), "a", []byte{2}},
		{bb(t, pt(-5, -5, -5, -5), pt(-4, -4, -4, -4)), "b", []byte{3}},
		{bb(t, pt(0.5, 0.5, 0.5, 0.5), pt(0.75, 0.75, 0.75, 0.75)), "a", []byte{4}},
		{bb(t, pt(10, 10, 10, 10), pt(20, 20, 20, 20)), "a", []byte{5}},
		{bb(t, pt(1, 1, 1, 1), pt(1, 1, 1, 1)), "a", []byte{6}},
		{bb(t, pt(0, 0, 0, 0), pt(0, 0, 0, 0)), "a", []byte{7}},
		{bb(t, pt(100, 0, 0, 0), pt(101, 1, 1, 1)), "a", []byte{8}},
		{bb(t, pt(3, 3, 3, 3), pt(3, 3, 3, 3)), "a", []byte{9}},
		{bb(t, pt(-1, -1, -1, -1), pt(2, 2, 2, 2)), "a", []byte{10}},
		{bb(t, pt(2, 2, 2, 2), pt(2.5, 2.5, 2.5, 2.5)), "a", []byte{11}},
		{bb(t, pt(0, 0, 0, 0), pt(5, 5, 5, 5)), "a", []byte{12}},
	}

	for _, e := range entries {
		require.NoError(t, bulk.Insert(e.box, e.desg, e.blob, nil, format.CompressionNone))
		require.NoError(t, tree.Insert(e.box, e.desg, e.blob, nil, format.CompressionNone))
	}

	query := bb(t, pt(-1, -1, -1, -1), pt(3, 3, 3, 3))

	bulkResults, err := bulk.Query(query, "a", 0.01, nil)
	require.NoError(t, err)

	treeResults, err := tree.Query(query, "a", 0.01, nil)
	require.NoError(t, err)

	require.ElementsMatch(t, toStrings(bulkResults), toStrings(treeResults))
}

func toStrings(blobs [][]byte) []string {
	out := make([]string, len(blobs))
	for i, b := range blobs {
		out[i] = string(b)
	}

	sort.Strings(out)

	return out
}

func TestRTree_UnknownDesignationYieldsEmpty(t *testing.T) {
	tree := NewRTree()
	box := bb(t, pt(0, 0, 0, 0), pt(1, 1, 1, 1))
	require.NoError(t, tree.Insert(box, "a", []byte{1}, nil, format.CompressionNone))

	results, err := tree.Query(box, "missing", 0, nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestRTree_ManyInsertsTriggersSplit(t *testing.T) {
	tree := NewRTree()

	for i := 0; i < 64; i++ {
		f := float64(i)
		box := bb(t, pt(f, f, f, f), pt(f+0.5, f+0.5, f+0.5, f+0.5))
		require.NoError(t, tree.Insert(box, "series", []byte{byte(i)}, nil, format.CompressionNone))
	}

	require.Equal(t, 64, tree.Len())

	full := bb(t, pt(0, 0, 0, 0), pt(64, 64, 64, 64))
	results, err := tree.Query(full, "series", 0, nil)
	require.NoError(t, err)
	require.Len(t, results, 64)
}
