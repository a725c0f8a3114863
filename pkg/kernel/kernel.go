// Package kernel defines the triangle mesh passed between the bubble
// pipeline stages. A mesh is created once by the tessellator, never
// mutated afterwards, and consumed by exactly one encoder.
package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// degenerateLength is the cross-product length below which a triangle is
// treated as collinear and given a zero normal.
const degenerateLength = 1e-12

// Face is an ordered triple of indices into a mesh's flat vertex array.
// The winding order defines the facet normal direction.
type Face [3]uint32

// FacetNormal returns the unit normal of triangle (a, b, c), computed as
// (b-a) x (c-a). Degenerate triangles get the zero vector, which STL
// consumers read as "unspecified".
func FacetNormal(a, b, c v3.Vec) v3.Vec {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if !(l >= degenerateLength) || math.IsInf(l, 0) {
		return v3.Vec{}
	}
	return v3.Vec{X: n.X / l, Y: n.Y / l, Z: n.Z / l}
}
