// Package triangulate splits a structured row-major grid into triangles.
//
// The decomposition depends only on the grid resolution. Every quad cell
// (i, j) with corners
//
//	v0 = i*R + j      v1 = i*R + j+1
//	v2 = (i+1)*R + j  v3 = (i+1)*R + j+1
//
// becomes (v0, v1, v2) followed by (v1, v3, v2). The diagonal always runs
// from v1 to v2, and both triangles share the same winding, so output is
// byte-for-byte reproducible for a given resolution.
package triangulate

import "github.com/chazu/pyblow/pkg/kernel"

// MaxResolution is the largest resolution whose vertex indices fit in a
// kernel.Face. One more and R² passes 2³².
const MaxResolution = 1<<16 - 1

// FaceCount returns the number of triangles Triangulate emits for a grid
// of the given resolution: 2*(R-1)², or 0 when R < 2.
func FaceCount(resolution int) int {
	if resolution < 2 {
		return 0
	}
	cells := resolution - 1
	return 2 * cells * cells
}

// Triangulate returns the faces covering every interior cell of a
// resolution x resolution grid, cells visited row by row.
// Resolutions below 2 give an empty, non-nil slice. Resolutions above
// MaxResolution wrap around and must be rejected by the caller.
func Triangulate(resolution int) []kernel.Face {
	faces := make([]kernel.Face, 0, FaceCount(resolution))
	r := uint32(max(resolution, 0))
	for i := uint32(0); i+1 < r; i++ {
		for j := uint32(0); j+1 < r; j++ {
			v0 := i*r + j
			v1 := i*r + j + 1
			v2 := (i+1)*r + j
			v3 := (i+1)*r + j + 1
			faces = append(faces,
				kernel.Face{v0, v1, v2},
				kernel.Face{v1, v3, v2},
			)
		}
	}
	return faces
}
