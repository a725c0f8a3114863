package export

import (
	"fmt"
	"io"

	"github.com/chazu/pyblow/pkg/kernel"
	"github.com/hpinc/go3mf"
)

// meshObjectID is the resource id of the single mesh object in a 3MF
// package written by write3MF.
const meshObjectID = 1

// write3MF packages m as a single-object 3MF model with one build item.
// Coordinates are stored as float32, the same precision as binary STL.
func write3MF(w io.Writer, m *kernel.Mesh) error {
	if err := m.CheckIndices(); err != nil {
		return fmt.Errorf("export: 3mf: %w", err)
	}

	mesh := new(go3mf.Mesh)
	mesh.Vertices.Vertex = make([]go3mf.Point3D, 0, len(m.Vertices))
	for _, v := range m.Vertices {
		mesh.Vertices.Vertex = append(mesh.Vertices.Vertex,
			go3mf.Point3D{float32(v.X), float32(v.Y), float32(v.Z)})
	}
	mesh.Triangles.Triangle = make([]go3mf.Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		mesh.Triangles.Triangle = append(mesh.Triangles.Triangle,
			go3mf.Triangle{V1: f[0], V2: f[1], V3: f[2]})
	}

	model := &go3mf.Model{}
	model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{
		ID:   meshObjectID,
		Name: m.Name,
		Mesh: mesh,
	})
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: meshObjectID})

	if err := go3mf.NewEncoder(w).Encode(model); err != nil {
		return fmt.Errorf("export: 3mf: %w", err)
	}
	return nil
}
