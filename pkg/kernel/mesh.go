package kernel

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrIndexOutOfRange is returned when a face references a vertex that the
// mesh does not have.
var ErrIndexOutOfRange = errors.New("face index out of range")

// Mesh is a triangle mesh over a flat vertex array.
// Faces index into Vertices; vertices may be shared between faces.
type Mesh struct {
	Vertices []v3.Vec `json:"vertices"`
	Faces    []Face   `json:"faces"`
	Name     string   `json:"name"` // solid name written by formats that carry one
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// Triangle resolves the three vertex positions of face i.
func (m *Mesh) Triangle(i int) (a, b, c v3.Vec) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// Normal returns the facet normal of face i.
func (m *Mesh) Normal(i int) v3.Vec {
	return FacetNormal(m.Triangle(i))
}

// CheckIndices verifies that every face index addresses an existing vertex.
func (m *Mesh) CheckIndices() error {
	n := uint32(len(m.Vertices))
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx >= n {
				return fmt.Errorf("face %d references vertex %d of %d: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// BoundingBox returns the axis-aligned bounds of all vertices.
// An empty vertex array yields the zero box.
func (m *Mesh) BoundingBox() sdf.Box3 {
	if len(m.Vertices) == 0 {
		return sdf.Box3{}
	}
	bb := sdf.Box3{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		bb.Min = bb.Min.Min(v)
		bb.Max = bb.Max.Max(v)
	}
	return bb
}
