// Package tessellate turns sheet parameters into a triangle mesh: it
// samples the bubble height field, triangulates the grid and pairs the
// two. Data flows one way and nothing is shared between calls.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/pyblow/pkg/heightfield"
	"github.com/chazu/pyblow/pkg/kernel"
	"github.com/chazu/pyblow/pkg/sheet"
	"github.com/chazu/pyblow/pkg/triangulate"
)

// ErrEmptyMesh is returned by RequireFaces for a mesh with no triangles.
// Whether that is fatal is up to the caller.
var ErrEmptyMesh = errors.New("tessellate: mesh has no triangles")

// Result is the output of one tessellation. The mesh shares its vertex
// array with the grid.
type Result struct {
	Grid *heightfield.Grid
	Mesh *kernel.Mesh
}

// Tessellate samples and triangulates one bubble. It does not validate p;
// a resolution below 2 yields a mesh without faces.
func Tessellate(p sheet.Params) *Result {
	grid := heightfield.Sample(p.Length, p.Width, p.Height, p.Resolution)
	mesh := &kernel.Mesh{
		Vertices: grid.Vertices,
		Faces:    triangulate.Triangulate(grid.Resolution),
		Name:     MeshName(p),
	}
	return &Result{Grid: grid, Mesh: mesh}
}

// MeshName is the solid name stored in the output file.
func MeshName(p sheet.Params) string {
	return fmt.Sprintf("pyblow bubble %gx%gx%g r%d", p.Length, p.Width, p.Height, p.Resolution)
}

// RequireFaces returns ErrEmptyMesh if m has no triangles.
func RequireFaces(m *kernel.Mesh) error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	return nil
}
