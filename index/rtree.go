package index

import (
	"fmt"

	"github.com/sandialabs/elucidator-go/compress"
	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/format"
	"github.com/sandialabs/elucidator-go/geom"
)

const (
	rtreeMinEntries = 2
	rtreeMaxEntries = 8
)

// rnode is one node of the tree. Leaf nodes hold Entry values directly;
// internal nodes hold pointers to child rnodes. bbox is always the tight
// bounding box of everything below it.
type rnode struct {
	bbox     geom.BoundingBox
	leaf     bool
	entries  []Entry  // populated when leaf
	children []*rnode // populated when !leaf
}

func (n *rnode) numChildren() int {
	if n.leaf {
		return len(n.entries)
	}

	return len(n.children)
}

func (n *rnode) recomputeBBox() {
	if n.leaf {
		if len(n.entries) == 0 {
			return
		}

		box := n.entries[0].BBox
		for _, e := range n.entries[1:] {
			box = box.Union(e.BBox)
		}

		n.bbox = box

		return
	}

	if len(n.children) == 0 {
		return
	}

	box := n.children[0].bbox
	for _, c := range n.children[1:] {
		box = box.Union(c.bbox)
	}

	n.bbox = box
}

// RTree is a 4-D, Guttman-style R-tree: insertion follows ChooseLeaf (least
// area enlargement) and splits overflowing nodes with the quadratic-cost
// split algorithm; search descends only into nodes whose bbox overlaps the
// query box, then applies the exact containment filter at the leaf level.
type RTree struct {
	root  *rnode
	count int
}

// NewRTree returns an empty RTree index.
func NewRTree() *RTree {
	return &RTree{root: &rnode{leaf: true}}
}

func (t *RTree) Insert(bbox geom.BoundingBox, designation string, blob []byte, codec compress.Codec, ct format.CompressionType) error {
	stored, err := compressBlob(blob, codec)
	if err != nil {
		return err
	}

	entry := Entry{BBox: bbox, Designation: designation, Blob: stored, Compression: ct}

	leaf := t.chooseLeaf(t.root, bbox)
	leaf.entries = append(leaf.entries, entry)
	leaf.recomputeBBox()

	t.adjustTree(leaf)
	t.count++

	return nil
}

// chooseLeaf descends the tree picking, at each internal node, the child
// whose bbox requires the least area enlargement to include bbox (ties
// broken by smaller resulting area).
func (t *RTree) chooseLeaf(n *rnode, bbox geom.BoundingBox) *rnode {
	for !n.leaf {
		best := 0
		bestEnlargement := enlargement(n.children[0].bbox, bbox)
		bestArea := n.children[0].bbox.Area()

		for i := 1; i < len(n.children); i++ {
			enl := enlargement(n.children[i].bbox, bbox)
			area := n.children[i].bbox.Area()

			if enl < bestEnlargement || (enl == bestEnlargement && area < bestArea) {
				best = i
				bestEnlargement = enl
				bestArea = area
			}
		}

		n = n.children[best]
	}

	return n
}

func enlargement(existing, add geom.BoundingBox) float64 {
	return existing.Union(add).Area() - existing.Area()
}

// adjustTree walks from leaf back to the root, splitting any node that now
// exceeds rtreeMaxEntries and propagating bbox updates upward.
func (t *RTree) adjustTree(n *rnode) {
	parent := t.findParent(t.root, n)

	for {
		var split *rnode

		if n.numChildren() > rtreeMaxEntries {
			split = quadraticSplit(n)
		}

		if parent == nil {
			if split != nil {
				newRoot := &rnode{children: []*rnode{n, split}}
				newRoot.recomputeBBox()
				t.root = newRoot
			}

			return
		}

		if split != nil {
			parent.children = append(parent.children, split)
		}

		parent.recomputeBBox()

		n = parent
		parent = t.findParent(t.root, n)
	}
}

// findParent locates target's parent by a depth-first search from root,
// since rnode carries no parent pointer (kept small and GC-friendly). The
// search may visit every internal node, so each call costs time linear in
// the number of nodes, and adjustTree makes one call per level.
func (t *RTree) findParent(root, target *rnode) *rnode {
	if root == target || root.leaf {
		return nil
	}

	for _, c := range root.children {
		if c == target {
			return root
		}

		if p := t.findParent(c, target); p != nil {
			return p
		}
	}

	return nil
}

// quadraticSplit partitions an overflowing node's children into the
// original node (mutated in place) and a freshly returned sibling, using
// Guttman's quadratic-cost seed-picking and assignment heuristic.
func quadraticSplit(n *rnode) *rnode {
	if n.leaf {
		return quadraticSplitLeaf(n)
	}

	return quadraticSplitInternal(n)
}

func quadraticSplitLeaf(n *rnode) *rnode {
	entries := n.entries
	i, j := pickSeedsEntries(entries)

	groupA := []Entry{entries[i]}
	groupB := []Entry{entries[j]}

	boxA := entries[i].BBox
	boxB := entries[j].BBox

	remaining := make([]Entry, 0, len(entries)-2)
	for k, e := range entries {
		if k != i && k != j {
			remaining = append(remaining, e)
		}
	}

	for len(remaining) > 0 {
		if len(groupA)+len(remaining) <= rtreeMinEntries {
			groupA = append(groupA, remaining...)
			for _, e := range remaining {
				boxA = boxA.Union(e.BBox)
			}

			remaining = nil

			break
		}

		if len(groupB)+len(remaining) <= rtreeMinEntries {
			groupB = append(groupB, remaining...)
			for _, e := range remaining {
				boxB = boxB.Union(e.BBox)
			}

			remaining = nil

			break
		}

		bestIdx, toA := pickNextEntry(remaining, boxA, boxB)
		if toA {
			groupA = append(groupA, remaining[bestIdx])
			boxA = boxA.Union(remaining[bestIdx].BBox)
		} else {
			groupB = append(groupB, remaining[bestIdx])
			boxB = boxB.Union(remaining[bestIdx].BBox)
		}

		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	n.entries = groupA
	n.recomputeBBox()

	sibling := &rnode{leaf: true, entries: groupB}
	sibling.recomputeBBox()

	return sibling
}

func quadraticSplitInternal(n *rnode) *rnode {
	children := n.children
	i, j := pickSeedsChildren(children)

	groupA := []*rnode{children[i]}
	groupB := []*rnode{children[j]}

	boxA := children[i].bbox
	boxB := children[j].bbox

	remaining := make([]*rnode, 0, len(children)-2)
	for k, c := range children {
		if k != i && k != j {
			remaining = append(remaining, c)
		}
	}

	for len(remaining) > 0 {
		if len(groupA)+len(remaining) <= rtreeMinEntries {
			groupA = append(groupA, remaining...)
			for _, c := range remaining {
				boxA = boxA.Union(c.bbox)
			}

			remaining = nil

			break
		}

		if len(groupB)+len(remaining) <= rtreeMinEntries {
			groupB = append(groupB, remaining...)
			for _, c := range remaining {
				boxB = boxB.Union(c.bbox)
			}

			remaining = nil

			break
		}

		bestIdx, toA := pickNextChild(remaining, boxA, boxB)
		if toA {
			groupA = append(groupA, remaining[bestIdx])
			boxA = boxA.Union(remaining[bestIdx].bbox)
		} else {
			groupB = append(groupB, remaining[bestIdx])
			boxB = boxB.Union(remaining[bestIdx].bbox)
		}

		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	n.children = groupA
	n.recomputeBBox()

	sibling := &rnode{children: groupB}
	sibling.recomputeBBox()

	return sibling
}

// pickSeedsEntries implements Guttman's PickSeeds: the pair whose combined
// bounding box wastes the most area relative to the two original boxes.
func pickSeedsEntries(entries []Entry) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := -1.0

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			waste := entries[i].BBox.Union(entries[j].BBox).Area() - entries[i].BBox.Area() - entries[j].BBox.Area()
			if waste > bestWaste {
				bestWaste = waste
				bestI, bestJ = i, j
			}
		}
	}

	return bestI, bestJ
}

func pickSeedsChildren(children []*rnode) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := -1.0

	for i := 0; i < len(children); i++ {
		for j := i + 1; j < len(children); j++ {
			waste := children[i].bbox.Union(children[j].bbox).Area() - children[i].bbox.Area() - children[j].bbox.Area()
			if waste > bestWaste {
				bestWaste = waste
				bestI, bestJ = i, j
			}
		}
	}

	return bestI, bestJ
}

// pickNextEntry implements Guttman's PickNext: the remaining entry with the
// greatest difference between the enlargement it would cost group A versus
// group B, assigned to whichever group enlarges less.
func pickNextEntry(remaining []Entry, boxA, boxB geom.BoundingBox) (int, bool) {
	bestIdx := 0
	bestDiff := -1.0
	toA := true

	for i, e := range remaining {
		enlA := enlargement(boxA, e.BBox)
		enlB := enlargement(boxB, e.BBox)

		diff := enlA - enlB
		if diff < 0 {
			diff = -diff
		}

		if diff > bestDiff {
			bestDiff = diff
			bestIdx = i
			toA = enlA <= enlB
		}
	}

	return bestIdx, toA
}

func pickNextChild(remaining []*rnode, boxA, boxB geom.BoundingBox) (int, bool) {
	bestIdx := 0
	bestDiff := -1.0
	toA := true

	for i, c := range remaining {
		enlA := enlargement(boxA, c.bbox)
		enlB := enlargement(boxB, c.bbox)

		diff := enlA - enlB
		if diff < 0 {
			diff = -diff
		}

		if diff > bestDiff {
			bestDiff = diff
			bestIdx = i
			toA = enlA <= enlB
		}
	}

	return bestIdx, toA
}

func (t *RTree) Query(queryBBox geom.BoundingBox, designation string, epsilon float64, codecs func(format.CompressionType) (compress.Codec, error)) ([][]byte, error) {
	if epsilon < 0 {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEpsilon, epsilon)
	}

	expanded := queryBBox.Expand(epsilon)

	var results [][]byte

	var err error

	t.search(t.root, expanded, designation, queryBBox, epsilon, codecs, &results, &err)

	if err != nil {
		return nil, err
	}

	return results, nil
}

// search descends nodes whose bbox overlaps expanded, and at leaves applies
// the exact containment test against the un-expanded queryBBox+epsilon —
// per the redesign note in §9, the tree must not prune on the expanded box
// alone, only use it to avoid missing true candidates.
func (t *RTree) search(
	n *rnode,
	expanded geom.BoundingBox,
	designation string,
	queryBBox geom.BoundingBox,
	epsilon float64,
	codecs func(format.CompressionType) (compress.Codec, error),
	results *[][]byte,
	errOut *error,
) {
	if n.numChildren() == 0 {
		return
	}

	if !n.bbox.Overlaps(expanded) {
		return
	}

	if n.leaf {
		for _, e := range n.entries {
			if e.Designation != designation {
				continue
			}

			if !queryBBox.Contains(e.BBox, epsilon) {
				continue
			}

			blob, err := decompress(e, codecs)
			if err != nil {
				*errOut = err
				return
			}

			*results = append(*results, blob)
		}

		return
	}

	for _, c := range n.children {
		t.search(c, expanded, designation, queryBBox, epsilon, codecs, results, errOut)

		if *errOut != nil {
			return
		}
	}
}

func (t *RTree) Len() int {
	return t.count
}
