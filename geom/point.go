// Package geom provides the 4-dimensional spatiotemporal primitives (Point,
// BoundingBox) shared by the index package's two backends.
package geom

import "math"

// Point is a position in the 3 spatial dimensions plus time that the index
// queries over.
type Point struct {
	X, Y, Z, T float64
}

// Dim indexes the four axes of a Point/BoundingBox for loop-driven code
// that needs to treat all four axes uniformly (R-tree split heuristics,
// in particular).
type Dim uint8

const (
	DimX Dim = iota
	DimY
	DimZ
	DimT
	numDims = 4
)

// Axis returns p's coordinate along d.
func (p Point) Axis(d Dim) float64 {
	switch d {
	case DimX:
		return p.X
	case DimY:
		return p.Y
	case DimZ:
		return p.Z
	case DimT:
		return p.T
	default:
		return 0
	}
}

// IsFinite reports whether every coordinate of p is a finite float64 (not
// NaN, not +/-Inf).
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z) && isFinite(p.T)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
