// Package heightfield samples the blown-sheet profile over a uniform
// rectilinear grid.
//
// The profile is an ellipsoidal cap inscribed in the sheet rectangle: it
// rises to the requested height at the center, falls to zero on the
// inscribed ellipse and stays flat in the four corners, where the sheet is
// clamped and does not stretch.
package heightfield

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Grid is a resolution x resolution set of sample points stored as one
// flat, row-major vertex array. Row i walks the y axis and column j walks
// the x axis, so vertex i*Resolution+j sits at (x_j, y_i).
type Grid struct {
	Resolution int
	Vertices   []v3.Vec
}

// Index returns the flat vertex index of grid point (i, j).
func (g *Grid) Index(i, j int) int {
	return i*g.Resolution + j
}

// At returns the vertex at grid point (i, j).
func (g *Grid) At(i, j int) v3.Vec {
	return g.Vertices[g.Index(i, j)]
}

// Len returns the number of sample points.
func (g *Grid) Len() int {
	return len(g.Vertices)
}

// Heights returns the z value of every sample in row-major order.
func (g *Grid) Heights() []float64 {
	zs := make([]float64, len(g.Vertices))
	for k, v := range g.Vertices {
		zs[k] = v.Z
	}
	return zs
}

// Center returns the sample closest to the origin in the xy plane.
// ok is false for an empty grid.
func (g *Grid) Center() (v v3.Vec, ok bool) {
	best := math.Inf(1)
	for _, p := range g.Vertices {
		d := p.X*p.X + p.Y*p.Y
		if d < best {
			best, v, ok = d, p, true
		}
	}
	return v, ok
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// The last value is exactly stop. n == 1 yields just start; n <= 0 yields
// an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	out[0] = start
	if n == 1 {
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := 1; i < n; i++ {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Profile evaluates the ellipsoidal cap with semi-axes a, b and apex
// height at (x, y). Points on or outside the ellipse are at zero.
// 1-d² is clamped before the square root, so rounding right at d² = 1
// can never produce NaN.
func Profile(x, y, a, b, height float64) float64 {
	u, w := x/a, y/b
	d2 := u*u + w*w
	if !(d2 <= 1) {
		return 0
	}
	return height * math.Sqrt(math.Max(0, 1-d2))
}

// Sample evaluates the bubble profile on a resolution x resolution grid
// spanning [-length/2, length/2] x [-width/2, width/2].
//
// No validation is done here. A resolution below 2 gives a grid that
// cannot be triangulated. Negative extents mirror the domain. A zero
// extent collapses it, and every z is then zero.
func Sample(length, width, height float64, resolution int) *Grid {
	if resolution < 0 {
		resolution = 0
	}
	xs := Linspace(-length/2, length/2, resolution)
	ys := Linspace(-width/2, width/2, resolution)
	a, b := length/2, width/2

	verts := make([]v3.Vec, 0, resolution*resolution)
	for _, y := range ys {
		for _, x := range xs {
			verts = append(verts, v3.Vec{X: x, Y: y, Z: Profile(x, y, a, b, height)})
		}
	}
	return &Grid{Resolution: resolution, Vertices: verts}
}
