package geom

import (
	"math"

	"github.com/sandialabs/elucidator-go/errs"
)

// BoundingBox is a closed, axis-aligned box in (x, y, z, t).
type BoundingBox struct {
	Min, Max Point
}

// NewBoundingBox validates that min <= max on every axis before
// constructing a BoundingBox. An inverted axis is rejected, never
// silently normalized.
func NewBoundingBox(min, max Point) (BoundingBox, error) {
	if !min.IsFinite() || !max.IsFinite() {
		return BoundingBox{}, errs.ErrInvalidBoundingBox
	}

	for d := Dim(0); d < numDims; d++ {
		if min.Axis(d) > max.Axis(d) {
			return BoundingBox{}, errs.ErrInvalidBoundingBox
		}
	}

	return BoundingBox{Min: min, Max: max}, nil
}

// Contains reports whether b is contained in q, expanded symmetrically by
// epsilon on every axis: for each axis, q.Min-epsilon <= b.Min and
// b.Max <= q.Max+epsilon. epsilon must be >= 0; the caller is responsible
// for rejecting negative epsilon via errs.ErrInvalidEpsilon before calling.
func (q BoundingBox) Contains(b BoundingBox, epsilon float64) bool {
	for d := Dim(0); d < numDims; d++ {
		if b.Min.Axis(d) < q.Min.Axis(d)-epsilon {
			return false
		}

		if b.Max.Axis(d) > q.Max.Axis(d)+epsilon {
			return false
		}
	}

	return true
}

// Expand returns a copy of b enlarged symmetrically by epsilon on every
// axis. Used by the R-tree backend to widen the query box once up front,
// so tree descent can use plain (non-epsilon) overlap tests and the exact
// Contains filter is applied only to the small leaf-level candidate set.
func (b BoundingBox) Expand(epsilon float64) BoundingBox {
	return BoundingBox{
		Min: Point{X: b.Min.X - epsilon, Y: b.Min.Y - epsilon, Z: b.Min.Z - epsilon, T: b.Min.T - epsilon},
		Max: Point{X: b.Max.X + epsilon, Y: b.Max.Y + epsilon, Z: b.Max.Z + epsilon, T: b.Max.T + epsilon},
	}
}

// Overlaps reports whether b and o share any point, on every axis. Used for
// R-tree internal-node pruning during descent.
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	for d := Dim(0); d < numDims; d++ {
		if b.Max.Axis(d) < o.Min.Axis(d) || o.Max.Axis(d) < b.Min.Axis(d) {
			return false
		}
	}

	return true
}

// Union returns the smallest BoundingBox containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Point{
			X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y),
			Z: math.Min(b.Min.Z, o.Min.Z), T: math.Min(b.Min.T, o.Min.T),
		},
		Max: Point{
			X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y),
			Z: math.Max(b.Max.Z, o.Max.Z), T: math.Max(b.Max.T, o.Max.T),
		},
	}
}

// Area returns the 4-D hyper-volume of b, used by the R-tree split
// heuristic to score candidate groupings.
func (b BoundingBox) Area() float64 {
	vol := 1.0
	for d := Dim(0); d < numDims; d++ {
		vol *= b.Max.Axis(d) - b.Min.Axis(d)
	}

	return vol
}
